package domain

import (
	"context"
	"time"
)

const (
	RoleLawyer  = "lawyer"
	RoleCitizen = "citizen"
)

type Account struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:citizen" json:"role"` // "lawyer"/"citizen"
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Account) TableName() string { return "users" }

type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByName(ctx context.Context, name string) (*Account, error)
}
