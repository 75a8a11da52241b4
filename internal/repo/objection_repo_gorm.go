package repo

import (
	"context"

	"gorm.io/gorm"

	"jahir-soochna/internal/domain"
)

type ObjectionRepo struct{ db *gorm.DB }

func NewObjectionRepo(db *gorm.DB) *ObjectionRepo { return &ObjectionRepo{db: db} }

func (r *ObjectionRepo) Create(ctx context.Context, o *domain.Objection) error {
	return r.db.WithContext(ctx).Create(o).Error
}
