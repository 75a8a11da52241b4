package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jahir-soochna/internal/domain"
)

func TestAccountRepoRoundtrip(t *testing.T) {
	db := testDB(t)
	r := NewAccountRepo(db)
	ctx := context.Background()

	a := &domain.Account{
		ID:           "acc1",
		Name:         "Adv. Sharma",
		Email:        "sharma@example.com",
		PasswordHash: "x",
		Role:         domain.RoleLawyer,
	}
	require.NoError(t, r.Create(ctx, a))

	got, err := r.FindByID(ctx, "acc1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "sharma@example.com", got.Email)

	got, err = r.FindByEmail(ctx, "sharma@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "acc1", got.ID)

	got, err = r.FindByName(ctx, "Adv. Sharma")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "acc1", got.ID)

	// 不存在一律 (nil, nil)
	got, err = r.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = r.FindByName(ctx, "Nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestObjectionRepoCreate(t *testing.T) {
	db := testDB(t)
	r := NewObjectionRepo(db)

	require.NoError(t, r.Create(context.Background(), &domain.Objection{
		ID:           "o1",
		NoticeID:     "n1",
		ObjectorName: "Citizen",
		Reason:       "boundary dispute",
	}))

	var count int64
	require.NoError(t, db.Model(&domain.Objection{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
