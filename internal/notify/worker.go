package notify

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"jahir-soochna/internal/mailer"
)

// NewMux 通知 worker 的任务路由
func NewMux(m *mailer.Mailer, log *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeObjectionEmail, HandleObjectionEmail(m, log))
	return mux
}

// HandleObjectionEmail 消费 objection:email 任务。
// 载荷损坏或 SMTP 未配置直接丢弃（返回 nil 不重试），投递失败交给 asynq 重试。
func HandleObjectionEmail(m *mailer.Mailer, log *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ObjectionMail
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Error("invalid objection mail payload", zap.Error(err))
			return nil
		}
		if !m.IsConfigured() {
			log.Warn("smtp not configured, objection mail dropped",
				zap.String("notice_id", p.NoticeID))
			return nil
		}
		if err := m.SendObjectionMail(p.To, p.NoticeTitle, p.ObjectorName, p.Reason); err != nil {
			log.Warn("objection mail send failed",
				zap.String("notice_id", p.NoticeID), zap.Error(err))
			return err
		}
		log.Info("objection mail sent",
			zap.String("notice_id", p.NoticeID), zap.String("to", p.To))
		return nil
	}
}
