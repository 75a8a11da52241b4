package notify

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeObjectionEmail = "objection:email"

// ObjectionMail 出站通知任务载荷
type ObjectionMail struct {
	To           string `json:"to"`
	NoticeID     string `json:"noticeId"`
	NoticeTitle  string `json:"noticeTitle"`
	ObjectorName string `json:"objectorName"`
	Reason       string `json:"reason"`
}

func NewObjectionMailTask(m ObjectionMail) (*asynq.Task, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeObjectionEmail, b), nil
}
