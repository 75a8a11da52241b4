package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"jahir-soochna/internal/domain"
	"jahir-soochna/internal/notify"
	"jahir-soochna/pkg/utils"
)

type ObjectionService struct {
	notices    domain.NoticeRepository
	objections domain.ObjectionRepository
	accounts   domain.AccountRepository
	dispatcher notify.Dispatcher
	log        *zap.Logger
}

func NewObjectionService(
	notices domain.NoticeRepository,
	objections domain.ObjectionRepository,
	accounts domain.AccountRepository,
	dispatcher notify.Dispatcher,
	log *zap.Logger,
) *ObjectionService {
	return &ObjectionService{
		notices:    notices,
		objections: objections,
		accounts:   accounts,
		dispatcher: dispatcher,
		log:        log,
	}
}

type FileObjectionInput struct {
	ObjectorName  string
	ObjectorEmail string
	ObjectorPhone string
	Reason        string
}

// File 对公示提异议：先落库，再尽力通知属主（通知失败不影响结果）
func (s *ObjectionService) File(ctx context.Context, noticeID string, in FileObjectionInput) (*domain.Objection, error) {
	if strings.TrimSpace(in.ObjectorName) == "" || strings.TrimSpace(in.Reason) == "" {
		return nil, domain.Validation("objectorName and reason are required")
	}

	n, err := s.notices.FindByID(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}

	o := &domain.Objection{
		ID:            utils.NewID(),
		NoticeID:      n.ID,
		ObjectorName:  strings.TrimSpace(in.ObjectorName),
		ObjectorEmail: strings.TrimSpace(in.ObjectorEmail),
		ObjectorPhone: strings.TrimSpace(in.ObjectorPhone),
		Reason:        strings.TrimSpace(in.Reason),
	}
	if err := s.objections.Create(ctx, o); err != nil {
		return nil, err
	}

	if to := s.resolveOwnerEmail(ctx, n); to != "" {
		msg := notify.ObjectionMail{
			To:           to,
			NoticeID:     n.ID,
			NoticeTitle:  n.Title,
			ObjectorName: o.ObjectorName,
			Reason:       o.Reason,
		}
		if err := s.dispatcher.DispatchObjectionMail(ctx, msg); err != nil {
			s.log.Warn("objection mail dispatch failed",
				zap.String("notice_id", n.ID), zap.Error(err))
		}
	} else {
		s.log.Debug("notice owner email unresolved, notification skipped",
			zap.String("notice_id", n.ID))
	}
	return o, nil
}

// resolveOwnerEmail 优先按 OwnerID，旧数据回退到律师姓名匹配
func (s *ObjectionService) resolveOwnerEmail(ctx context.Context, n *domain.Notice) string {
	if n.OwnerID != "" {
		a, err := s.accounts.FindByID(ctx, n.OwnerID)
		if err != nil {
			s.log.Warn("owner lookup failed", zap.String("notice_id", n.ID), zap.Error(err))
			return ""
		}
		if a != nil {
			return a.Email
		}
	}
	a, err := s.accounts.FindByName(ctx, n.LawyerName)
	if err != nil || a == nil {
		return ""
	}
	return a.Email
}
