package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"jahir-soochna/internal/domain"
)

type NoticeRepo struct{ db *gorm.DB }

func NewNoticeRepo(db *gorm.DB) *NoticeRepo { return &NoticeRepo{db: db} }

func (r *NoticeRepo) Create(ctx context.Context, n *domain.Notice) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NoticeRepo) FindByID(ctx context.Context, id string) (*domain.Notice, error) {
	var n domain.Notice
	err := r.db.WithContext(ctx).First(&n, "id = ? AND is_active = ?", id, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &n, err
}

func (r *NoticeRepo) FindAnyByID(ctx context.Context, id string) (*domain.Notice, error) {
	var n domain.Notice
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &n, err
}

// applyFilters 组合列表/计数共用的 AND 条件；时间窗口按服务器本地时区现算
func applyFilters(q *gorm.DB, p domain.NoticeListParams, now time.Time) *gorm.DB {
	q = q.Where("notices.is_active = ?", true)

	if p.Category != "" && p.Category != "all" {
		q = q.Where("notices.category = ?", p.Category)
	}

	if s := strings.TrimSpace(p.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(notices.title) LIKE ? OR LOWER(notices.lawyer_name) LIKE ? OR LOWER(notices.location) LIKE ?",
			like, like, like,
		)
	}

	switch p.DateFilter {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		q = q.Where("notices.upload_date >= ? AND notices.upload_date < ?", start, start.AddDate(0, 0, 1))
	case "last7days":
		q = q.Where("notices.upload_date >= ?", now.Add(-7*24*time.Hour))
	case "thismonth":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		q = q.Where("notices.upload_date >= ? AND notices.upload_date < ?", start, start.AddDate(0, 1, 0))
	}
	return q
}

// List 过滤 + 排序 + 偏移分页，每行带异议计数（LEFT JOIN，零计数也出现）。
// 排序带 id 次键，保证同一时刻的记录翻页稳定。
func (r *NoticeRepo) List(ctx context.Context, p domain.NoticeListParams) ([]domain.NoticeWithCount, int64, error) {
	now := time.Now()

	var total int64
	countQ := applyFilters(r.db.WithContext(ctx).Model(&domain.Notice{}), p, now)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "notices.upload_date DESC, notices.id DESC"
	if p.SortBy == "oldest" {
		order = "notices.upload_date ASC, notices.id ASC"
	}

	rows := make([]domain.NoticeWithCount, 0, p.Limit)
	listQ := applyFilters(r.db.WithContext(ctx).Model(&domain.Notice{}), p, now)
	err := listQ.
		Select("notices.*, COUNT(objections.id) AS objection_count").
		Joins("LEFT JOIN objections ON objections.notice_id = notices.id").
		Group("notices.id").
		Order(order).
		Limit(p.Limit).
		Offset((p.Page - 1) * p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *NoticeRepo) Update(ctx context.Context, n *domain.Notice) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// Deactivate 软删：置 is_active=false，记录与文件保留
func (r *NoticeRepo) Deactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Notice{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CategoryCounts 各分类的 active 公示数，外加合成键 "all" = 总数
func (r *NoticeRepo) CategoryCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Notice{}).
		Select("category, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("category").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows)+1)
	var total int64
	for _, row := range rows {
		out[row.Category] = row.Count
		total += row.Count
	}
	out["all"] = total
	return out, nil
}
