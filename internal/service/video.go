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

// VideoServiceOptions groups dependencies for VideoService.
type VideoServiceOptions struct {
	Repo      core.VideoRepository
	Broadcast ports.Broadcaster // optional
	Logger    *slog.Logger      // optional
}

// VideoService manages the catalog of instructional route videos.
type VideoService struct {
	repo      core.VideoRepository
	broadcast ports.Broadcaster
	logger    *slog.Logger
}

// NewVideoService constructs a new VideoService.
func NewVideoService(opts VideoServiceOptions) *VideoService {
	if opts.Repo == nil {
		panic("VideoRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &VideoService{
		repo:      opts.Repo,
		broadcast: opts.Broadcast,
		logger:    logger,
	}
}

// Create validates and stores a new route video, then signals open views.
func (s *VideoService) Create(ctx context.Context, req model.CreateVideoRequest) (*model.VideoRoute, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	v, err := s.repo.Create(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	s.publishRefresh(ctx)
	return v, nil
}

// Get returns a single route video by ID.
func (s *VideoService) Get(ctx context.Context, id string) (*model.VideoRoute, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the catalog in insertion order, oldest first.
func (s *VideoService) List(ctx context.Context) ([]*model.VideoRoute, error) {
	videos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// Update applies a partial update to a route video.
func (s *VideoService) Update(ctx context.Context, id string, req model.UpdateVideoRequest) (*model.VideoRoute, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	v, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.publishRefresh(ctx)
	return v, nil
}

// Delete removes a route video from the catalog.
func (s *VideoService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if !removed {
		return data.ErrVideoNotFound
	}

	s.publishRefresh(ctx)
	return nil
}

func (s *VideoService) publishRefresh(ctx context.Context) {
	if s.broadcast == nil {
		return
	}
	if err := s.broadcast.Publish(ctx); err != nil {
		s.logger.WarnContext(ctx, "refresh broadcast failed", "error", err)
	}
}
