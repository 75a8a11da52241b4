package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jahir-soochna/internal/domain"
	"jahir-soochna/internal/notify"
	"jahir-soochna/internal/repo"
)

type recordingDispatcher struct {
	sent []notify.ObjectionMail
}

func (d *recordingDispatcher) DispatchObjectionMail(_ context.Context, m notify.ObjectionMail) error {
	d.sent = append(d.sent, m)
	return nil
}

func newObjectionService(t *testing.T) (*ObjectionService, *recordingDispatcher, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	d := &recordingDispatcher{}
	svc := NewObjectionService(
		repo.NewNoticeRepo(db),
		repo.NewObjectionRepo(db),
		repo.NewAccountRepo(db),
		d,
		zap.NewNop(),
	)
	return svc, d, db
}

func seedLawyer(t *testing.T, db *gorm.DB, id, name, email string) {
	t.Helper()
	require.NoError(t, db.Create(&domain.Account{
		ID: id, Name: name, Email: email, PasswordHash: "x", Role: domain.RoleLawyer,
	}).Error)
}

func seedActiveNotice(t *testing.T, db *gorm.DB, id, title, lawyerName, ownerID string) {
	t.Helper()
	require.NoError(t, db.Create(&domain.Notice{
		ID: id, Title: title, Category: "land", LawyerName: lawyerName, OwnerID: ownerID,
		FileName: "f.pdf", FilePath: "uploads/f.pdf", FileType: "application/pdf", IsActive: true,
	}).Error)
}

func TestObjectionServiceFile(t *testing.T) {
	svc, d, db := newObjectionService(t)
	ctx := context.Background()

	seedLawyer(t, db, "law1", "Adv. Mehta", "mehta@example.com")
	seedActiveNotice(t, db, "n1", "Plot auction", "Adv. Mehta", "law1")

	o, err := svc.File(ctx, "n1", FileObjectionInput{
		ObjectorName:  "  Ramesh  ",
		ObjectorEmail: "ramesh@example.com",
		Reason:        "boundary dispute",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "Ramesh", o.ObjectorName)

	require.Len(t, d.sent, 1)
	m := d.sent[0]
	assert.Equal(t, "mehta@example.com", m.To)
	assert.Equal(t, "n1", m.NoticeID)
	assert.Equal(t, "Plot auction", m.NoticeTitle)
	assert.Equal(t, "Ramesh", m.ObjectorName)
	assert.Equal(t, "boundary dispute", m.Reason)
}

func TestObjectionServiceUnknownNotice(t *testing.T) {
	svc, d, db := newObjectionService(t)

	_, err := svc.File(context.Background(), "missing", FileObjectionInput{
		ObjectorName: "Ramesh", Reason: "r",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, d.sent)

	var count int64
	require.NoError(t, db.Model(&domain.Objection{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestObjectionServiceInactiveNotice(t *testing.T) {
	svc, _, db := newObjectionService(t)
	seedActiveNotice(t, db, "n1", "Gone", "Adv. X", "law1")
	require.NoError(t, db.Model(&domain.Notice{}).Where("id = ?", "n1").Update("is_active", false).Error)

	_, err := svc.File(context.Background(), "n1", FileObjectionInput{ObjectorName: "R", Reason: "r"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestObjectionServiceValidation(t *testing.T) {
	svc, _, _ := newObjectionService(t)
	ctx := context.Background()

	_, err := svc.File(ctx, "n1", FileObjectionInput{Reason: "r"})
	assert.True(t, domain.IsValidation(err))
	_, err = svc.File(ctx, "n1", FileObjectionInput{ObjectorName: "R", Reason: "   "})
	assert.True(t, domain.IsValidation(err))
}

func TestObjectionServiceOwnerUnresolvable(t *testing.T) {
	svc, d, db := newObjectionService(t)

	// 属主账号不存在，姓名也匹配不上：异议照常写入，通知跳过
	seedActiveNotice(t, db, "n1", "Orphan", "Adv. Unknown", "")

	o, err := svc.File(context.Background(), "n1", FileObjectionInput{
		ObjectorName: "Ramesh", Reason: "r",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Empty(t, d.sent)
}

func TestObjectionServiceLawyerNameFallback(t *testing.T) {
	svc, d, db := newObjectionService(t)

	// 旧数据没有 OwnerID，按律师姓名兜底找邮箱
	seedLawyer(t, db, "law1", "Adv. Rao", "rao@example.com")
	seedActiveNotice(t, db, "n1", "Legacy", "Adv. Rao", "")

	_, err := svc.File(context.Background(), "n1", FileObjectionInput{
		ObjectorName: "Ramesh", Reason: "r",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)
	assert.Equal(t, "rao@example.com", d.sent[0].To)
}
