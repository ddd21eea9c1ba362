package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/srl-logistica/rotaportal/internal/core"
	"github.com/srl-logistica/rotaportal/internal/data"
	"github.com/srl-logistica/rotaportal/internal/domain/model"
	"github.com/srl-logistica/rotaportal/internal/ports"
)

// NoticeServiceOptions groups dependencies for NoticeService.
type NoticeServiceOptions struct {
	Repo      core.NoticeRepository
	Broadcast ports.Broadcaster // optional
	Logger    *slog.Logger      // optional
}

// NoticeService manages the administrator notice board.
type NoticeService struct {
	repo      core.NoticeRepository
	broadcast ports.Broadcaster
	logger    *slog.Logger
}

// NewNoticeService constructs a new NoticeService.
func NewNoticeService(opts NoticeServiceOptions) *NoticeService {
	if opts.Repo == nil {
		panic("NoticeRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &NoticeService{
		repo:      opts.Repo,
		broadcast: opts.Broadcast,
		logger:    logger,
	}
}

// Create validates and publishes a new notice, then signals open views.
func (s *NoticeService) Create(ctx context.Context, req model.CreateNoticeRequest) (*model.Notice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, err := s.repo.Create(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("create notice: %w", err)
	}

	s.publishRefresh(ctx)
	return n, nil
}

// List returns all notices, newest first.
func (s *NoticeService) List(ctx context.Context) ([]*model.Notice, error) {
	notices, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// Update applies a partial update to a notice.
func (s *NoticeService) Update(ctx context.Context, id string, req model.UpdateNoticeRequest) (*model.Notice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.publishRefresh(ctx)
	return n, nil
}

// Delete removes a notice from the board.
func (s *NoticeService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	if !removed {
		return data.ErrNoticeNotFound
	}

	s.publishRefresh(ctx)
	return nil
}

func (s *NoticeService) publishRefresh(ctx context.Context) {
	if s.broadcast == nil {
		return
	}
	if err := s.broadcast.Publish(ctx); err != nil {
		s.logger.WarnContext(ctx, "refresh broadcast failed", "error", err)
	}
}
