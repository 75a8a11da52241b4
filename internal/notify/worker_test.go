package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jahir-soochna/internal/mailer"
)

func TestNewObjectionMailTask(t *testing.T) {
	task, err := NewObjectionMailTask(ObjectionMail{
		To:           "lawyer@example.com",
		NoticeID:     "n1",
		NoticeTitle:  "Plot auction",
		ObjectorName: "Ramesh",
		Reason:       "boundary dispute",
	})
	require.NoError(t, err)
	assert.Equal(t, TypeObjectionEmail, task.Type())

	var got ObjectionMail
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, "lawyer@example.com", got.To)
	assert.Equal(t, "n1", got.NoticeID)
	assert.Equal(t, "Plot auction", got.NoticeTitle)
}

func TestHandleObjectionEmailUnconfigured(t *testing.T) {
	h := HandleObjectionEmail(mailer.New(mailer.Config{}), zap.NewNop())
	task, err := NewObjectionMailTask(ObjectionMail{To: "x@example.com", NoticeID: "n1"})
	require.NoError(t, err)

	// SMTP 没配：丢弃而不是重试
	assert.NoError(t, h(context.Background(), task))
}

func TestHandleObjectionEmailBadPayload(t *testing.T) {
	h := HandleObjectionEmail(mailer.New(mailer.Config{}), zap.NewNop())

	// 载荷损坏：不重试
	bad := asynq.NewTask(TypeObjectionEmail, []byte("{not json"))
	assert.NoError(t, h(context.Background(), bad))
}

func TestInlineDispatcherUnconfigured(t *testing.T) {
	d := NewInlineDispatcher(mailer.New(mailer.Config{}), zap.NewNop())
	// 投递永远不阻塞调用方
	assert.NoError(t, d.DispatchObjectionMail(context.Background(), ObjectionMail{NoticeID: "n1"}))
}
