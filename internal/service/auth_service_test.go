package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jahir-soochna/internal/core/auth"
	"jahir-soochna/internal/domain"
	"jahir-soochna/internal/repo"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testDB(t)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	return NewAuthService(repo.NewAccountRepo(db), jwter, zap.NewNop())
}

func TestAuthServiceRegister(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	tok, a, err := svc.Register(ctx, "Adv. Mehta", "  Mehta@Example.COM ", "secret1", "lawyer")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, "mehta@example.com", a.Email) // 小写归一
	assert.Equal(t, domain.RoleLawyer, a.Role)
	assert.NotEqual(t, "secret1", a.PasswordHash)

	// 邮箱唯一，大小写视为同一个
	_, _, err = svc.Register(ctx, "Other", "MEHTA@example.com", "secret2", "lawyer")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// 未知 role 落 citizen
	_, b, err := svc.Register(ctx, "Citizen", "c@example.com", "secret1", "superadmin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCitizen, b.Role)

	_, _, err = svc.Register(ctx, "", "x@example.com", "secret1", "")
	assert.True(t, domain.IsValidation(err))
}

func TestAuthServiceLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Adv. Mehta", "mehta@example.com", "secret1", "lawyer")
	require.NoError(t, err)

	tok, a, err := svc.Login(ctx, "mehta@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, domain.RoleLawyer, a.Role)

	_, _, err = svc.Login(ctx, "mehta@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthServiceMe(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, a, err := svc.Register(ctx, "Adv. Mehta", "mehta@example.com", "secret1", "lawyer")
	require.NoError(t, err)

	got, err := svc.Me(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Email, got.Email)

	_, err = svc.Me(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
