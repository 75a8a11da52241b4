package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"jahir-soochna/internal/core/auth"
	"jahir-soochna/internal/domain"
	"jahir-soochna/pkg/utils"
)

type AuthService struct {
	accounts domain.AccountRepository
	jwter    *auth.JWTer
	log      *zap.Logger
}

func NewAuthService(accounts domain.AccountRepository, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{accounts: accounts, jwter: jwter, log: log}
}

// Register 邮箱唯一；role 只认 lawyer，其余一律落 citizen
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (string, *domain.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return "", nil, domain.Validation("name, email and password are required")
	}

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, domain.ErrEmailTaken
	}

	if role != domain.RoleLawyer {
		role = domain.RoleCitizen
	}
	a := &domain.Account{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         role,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return "", nil, err
	}

	tok, err := s.jwter.Issue(a.ID, a.Role)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("account registered", zap.String("account_id", a.ID), zap.String("role", a.Role))
	return tok, a, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	a, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if a == nil || !utils.CheckPassword(password, a.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	tok, err := s.jwter.Issue(a.ID, a.Role)
	if err != nil {
		return "", nil, err
	}
	return tok, a, nil
}

func (s *AuthService) Me(ctx context.Context, accountID string) (*domain.Account, error) {
	a, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}
