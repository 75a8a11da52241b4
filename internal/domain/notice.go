package domain

import (
	"context"
	"time"
)

// Notice 公示记录；IsActive=false 为软删，列表/统计一律排除
type Notice struct {
	ID         string    `gorm:"primaryKey;size:32" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	Category   string    `gorm:"size:50;not null;index" json:"category"`
	LawyerName string    `gorm:"size:64;not null" json:"lawyerName"`
	OwnerID    string    `gorm:"size:32;index" json:"ownerId"`
	Location   string    `gorm:"size:255" json:"location"`
	FileName   string    `gorm:"size:255;not null" json:"fileName"`
	FilePath   string    `gorm:"size:255;not null" json:"filePath"`
	FileType   string    `gorm:"size:100;not null" json:"fileType"`
	UploadDate time.Time `gorm:"autoCreateTime;index" json:"uploadDate"`
	IsActive   bool      `gorm:"not null;default:true" json:"isActive"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Notice) TableName() string { return "notices" }

// NoticeWithCount 列表行：公示 + 当前异议数（LEFT JOIN 聚合）
type NoticeWithCount struct {
	Notice
	ObjectionCount int64 `gorm:"column:objection_count" json:"objectionCount"`
}

type NoticeListParams struct {
	Page       int
	Limit      int
	Category   string // 空或 "all" 不过滤
	Search     string
	DateFilter string // today / last7days / thismonth
	SortBy     string // "oldest" 升序，其余按最新
}

type NoticeRepository interface {
	Create(ctx context.Context, n *Notice) error
	// FindByID 仅返回 active 记录
	FindByID(ctx context.Context, id string) (*Notice, error)
	// FindAnyByID 含软删记录（属主流程用）
	FindAnyByID(ctx context.Context, id string) (*Notice, error)
	List(ctx context.Context, p NoticeListParams) ([]NoticeWithCount, int64, error)
	Update(ctx context.Context, n *Notice) error
	Deactivate(ctx context.Context, id string) error
	CategoryCounts(ctx context.Context) (map[string]int64, error)
}
