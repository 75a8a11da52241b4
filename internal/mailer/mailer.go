// Package mailer delivers objection notifications over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type Mailer struct {
	cfg  Config
	addr string
	auth smtp.Auth
}

func New(cfg Config) *Mailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &Mailer{
		cfg:  cfg,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
	}
}

func (m *Mailer) IsConfigured() bool {
	return m.cfg.Host != "" && m.cfg.Port != 0 && m.cfg.From != ""
}

type objectionData struct {
	NoticeTitle  string
	ObjectorName string
	Reason       string
}

var objectionTmpl = template.Must(template.New("objection").Parse(`<p>Hello Lawyer,</p>
<p>A new objection has been raised on your notice <strong>{{.NoticeTitle}}</strong>.</p>
<p><strong>Objector:</strong> {{.ObjectorName}}</p>
<p><strong>Reason:</strong> {{.Reason}}</p>
<p>Login to your dashboard to review it.</p>`))

func renderObjectionBody(d objectionData) (string, error) {
	var buf bytes.Buffer
	if err := objectionTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendObjectionMail 给公示属主发异议提醒
func (m *Mailer) SendObjectionMail(to, noticeTitle, objectorName, reason string) error {
	if !m.IsConfigured() {
		return fmt.Errorf("smtp not configured")
	}
	if objectorName == "" {
		objectorName = "Anonymous"
	}
	if reason == "" {
		reason = "No reason provided"
	}

	body, err := renderObjectionBody(objectionData{
		NoticeTitle:  noticeTitle,
		ObjectorName: objectorName,
		Reason:       reason,
	})
	if err != nil {
		return err
	}

	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "Subject: New Objection on Notice: %s\r\n", noticeTitle)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "%s\r\n", body)

	return smtp.SendMail(m.addr, m.auth, m.cfg.From, []string{to}, msg.Bytes())
}
