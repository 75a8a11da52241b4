package notify

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"jahir-soochna/internal/mailer"
)

// Dispatcher 把异议提醒交给通知侧；调用方不等投递结果，
// 失败只记日志，绝不影响异议写入
type Dispatcher interface {
	DispatchObjectionMail(ctx context.Context, m ObjectionMail) error
}

// QueueDispatcher 入队 Redis，由 cmd/worker 消费
type QueueDispatcher struct {
	client *asynq.Client
	log    *zap.Logger
}

func NewQueueDispatcher(opt asynq.RedisClientOpt, log *zap.Logger) *QueueDispatcher {
	return &QueueDispatcher{client: asynq.NewClient(opt), log: log}
}

func (d *QueueDispatcher) DispatchObjectionMail(ctx context.Context, m ObjectionMail) error {
	task, err := NewObjectionMailTask(m)
	if err != nil {
		return err
	}
	info, err := d.client.EnqueueContext(ctx, task, asynq.MaxRetry(5), asynq.Timeout(30*time.Second))
	if err != nil {
		return err
	}
	d.log.Debug("objection mail enqueued",
		zap.String("task_id", info.ID),
		zap.String("notice_id", m.NoticeID),
	)
	return nil
}

func (d *QueueDispatcher) Close() error { return d.client.Close() }

// InlineDispatcher 不走队列时的兜底：后台 goroutine 直接发信
type InlineDispatcher struct {
	mailer  *mailer.Mailer
	log     *zap.Logger
	timeout time.Duration
}

func NewInlineDispatcher(m *mailer.Mailer, log *zap.Logger) *InlineDispatcher {
	return &InlineDispatcher{mailer: m, log: log, timeout: 15 * time.Second}
}

func (d *InlineDispatcher) DispatchObjectionMail(_ context.Context, m ObjectionMail) error {
	if !d.mailer.IsConfigured() {
		d.log.Warn("smtp not configured, objection mail skipped",
			zap.String("notice_id", m.NoticeID))
		return nil
	}
	go func() {
		done := make(chan error, 1)
		go func() {
			done <- d.mailer.SendObjectionMail(m.To, m.NoticeTitle, m.ObjectorName, m.Reason)
		}()
		select {
		case err := <-done:
			if err != nil {
				d.log.Warn("objection mail send failed",
					zap.String("notice_id", m.NoticeID), zap.Error(err))
			}
		case <-time.After(d.timeout):
			d.log.Warn("objection mail send timed out",
				zap.String("notice_id", m.NoticeID))
		}
	}()
	return nil
}
