package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"jahir-soochna/internal/core/cache"
	"jahir-soochna/internal/domain"
	"jahir-soochna/internal/filestore"
	"jahir-soochna/pkg/utils"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type NoticeService struct {
	notices domain.NoticeRepository
	files   *filestore.Store
	log     *zap.Logger

	catCache *cache.Cache
	catTTL   time.Duration
}

func NewNoticeService(notices domain.NoticeRepository, files *filestore.Store, log *zap.Logger) *NoticeService {
	return &NoticeService{notices: notices, files: files, log: log}
}

// EnableCategoryCache 可选的分类计数缓存；TTL=0 保持默认的每次现算
func (s *NoticeService) EnableCategoryCache(c *cache.Cache, ttl time.Duration) {
	s.catCache = c
	s.catTTL = ttl
}

type NoticePage struct {
	Notices []domain.NoticeWithCount `json:"notices"`
	Total   int64                    `json:"total"`
	Page    int                      `json:"page"`
	Limit   int                      `json:"limit"`
	HasMore bool                     `json:"hasMore"`
}

// List 非法 page/limit 回落安全值而不是报错
func (s *NoticeService) List(ctx context.Context, p domain.NoticeListParams) (*NoticePage, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}

	rows, total, err := s.notices.List(ctx, p)
	if err != nil {
		return nil, err
	}
	return &NoticePage{
		Notices: rows,
		Total:   total,
		Page:    p.Page,
		Limit:   p.Limit,
		HasMore: int64(p.Page)*int64(p.Limit) < total,
	}, nil
}

func (s *NoticeService) Get(ctx context.Context, id string) (*domain.Notice, error) {
	n, err := s.notices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

func (s *NoticeService) CategoryCounts(ctx context.Context) (map[string]int64, error) {
	if s.catCache == nil || s.catTTL <= 0 {
		return s.notices.CategoryCounts(ctx)
	}
	out, err := cache.GetOrLoadJSON(s.catCache, ctx, "notices:categories", s.catTTL,
		func(ctx context.Context) (*map[string]int64, error) {
			m, err := s.notices.CategoryCounts(ctx)
			if err != nil {
				return nil, err
			}
			return &m, nil
		})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

type CreateNoticeInput struct {
	Title      string
	Content    string
	LawyerName string
	Location   string
	Category   string
	OwnerID    string
	File       *filestore.StoredFile
}

func (s *NoticeService) Create(ctx context.Context, in CreateNoticeInput) (*domain.Notice, error) {
	if strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.LawyerName) == "" ||
		strings.TrimSpace(in.Category) == "" {
		return nil, domain.Validation("title, lawyerName and category are required")
	}
	if in.File == nil {
		return nil, domain.Validation("file is required")
	}

	n := &domain.Notice{
		ID:         utils.NewID(),
		Title:      strings.TrimSpace(in.Title),
		Content:    in.Content,
		Category:   in.Category,
		LawyerName: strings.TrimSpace(in.LawyerName),
		OwnerID:    in.OwnerID,
		Location:   in.Location,
		FileName:   in.File.Name,
		FilePath:   in.File.Path,
		FileType:   in.File.MIME,
		IsActive:   true,
	}
	if err := s.notices.Create(ctx, n); err != nil {
		return nil, err
	}
	s.log.Info("notice created", zap.String("notice_id", n.ID), zap.String("category", n.Category))
	return n, nil
}

type GeneratedNoticeInput struct {
	ImageData  string
	Title      string
	Content    string
	LawyerName string
	Location   string
	Category   string
	OwnerID    string
}

// CreateGenerated 模板生成路径：服务自己解码 base64 图片并落盘
func (s *NoticeService) CreateGenerated(ctx context.Context, in GeneratedNoticeInput) (*domain.Notice, error) {
	if in.ImageData == "" || strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.LawyerName) == "" {
		return nil, domain.Validation("imageData, title and lawyerName are required")
	}
	if in.Category == "" {
		in.Category = "public"
	}

	f, err := s.files.SaveGeneratedPNG(in.ImageData)
	if err != nil {
		return nil, domain.Validation("invalid image data")
	}

	n := &domain.Notice{
		ID:         utils.NewID(),
		Title:      strings.TrimSpace(in.Title),
		Content:    in.Content,
		Category:   in.Category,
		LawyerName: strings.TrimSpace(in.LawyerName),
		OwnerID:    in.OwnerID,
		Location:   in.Location,
		FileName:   f.Name,
		FilePath:   f.Path,
		FileType:   f.MIME,
		IsActive:   true,
	}
	if err := s.notices.Create(ctx, n); err != nil {
		// 记录没写成，补偿清掉刚落盘的文件
		if rmErr := s.files.Remove(f.Path); rmErr != nil {
			s.log.Warn("generated file cleanup failed", zap.String("path", f.Path), zap.Error(rmErr))
		}
		return nil, err
	}
	return n, nil
}

type UpdateNoticeInput struct {
	Title      string
	Content    string
	LawyerName string
	Location   string
	Category   string
	File       *filestore.StoredFile // 替换文件，nil 表示不换
}

// Update 部分更新，空字段保持原值；换文件时先删旧文件（两步 saga，
// 删旧失败只记日志，不阻塞记录更新）
func (s *NoticeService) Update(ctx context.Context, id, ownerID string, in UpdateNoticeInput) (*domain.Notice, error) {
	n, err := s.notices.FindAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	if n.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	if in.File != nil {
		if err := s.files.Remove(n.FilePath); err != nil {
			s.log.Warn("old notice file cleanup failed",
				zap.String("notice_id", n.ID), zap.String("path", n.FilePath), zap.Error(err))
		}
		n.FileName = in.File.Name
		n.FilePath = in.File.Path
		n.FileType = in.File.MIME
	}
	if v := strings.TrimSpace(in.Title); v != "" {
		n.Title = v
	}
	if in.Content != "" {
		n.Content = in.Content
	}
	if v := strings.TrimSpace(in.LawyerName); v != "" {
		n.LawyerName = v
	}
	if in.Location != "" {
		n.Location = in.Location
	}
	if in.Category != "" {
		n.Category = in.Category
	}

	if err := s.notices.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete 软删；文件保留在磁盘上以便历史访问
func (s *NoticeService) Delete(ctx context.Context, id, ownerID string) error {
	n, err := s.notices.FindAnyByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	if n.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	if err := s.notices.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info("notice deactivated", zap.String("notice_id", id))
	return nil
}
