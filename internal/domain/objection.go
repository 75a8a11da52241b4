package domain

import (
	"context"
	"time"
)

// Objection 创建后不可变，仅以计数形式被读取
type Objection struct {
	ID            string    `gorm:"primaryKey;size:32" json:"id"`
	NoticeID      string    `gorm:"size:32;not null;index" json:"noticeId"`
	ObjectorName  string    `gorm:"size:100;not null" json:"objectorName"`
	ObjectorEmail string    `gorm:"size:191" json:"objectorEmail"`
	ObjectorPhone string    `gorm:"size:32" json:"objectorPhone"`
	Reason        string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Objection) TableName() string { return "objections" }

type ObjectionRepository interface {
	Create(ctx context.Context, o *Objection) error
}
