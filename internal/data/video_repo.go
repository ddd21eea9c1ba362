package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/srl-logistica/rotaportal/internal/data/pgxutil"
	"github.com/srl-logistica/rotaportal/internal/domain/model"
)

// VideoRepo provides database operations for the video catalog.
type VideoRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewVideoRepo creates a new VideoRepo with the real time provider.
func NewVideoRepo(db *sql.DB) *VideoRepo {
	return &VideoRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewVideoRepoWithTimeProvider creates a new VideoRepo with a custom time provider (useful for tests).
func NewVideoRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *VideoRepo {
	return &VideoRepo{DB: db, timeProvider: tp}
}

// Create inserts a new video route.
func (r *VideoRepo) Create(ctx context.Context, req *model.CreateVideoRequest) (*model.VideoRoute, error) {
	if req == nil {
		return nil, errors.New("create video request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.VideoRoute
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			INSERT INTO custom_videos (
				id, title, description, video_url, thumbnail, category_id, duration, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $8
			) RETURNING id, title, description, video_url, thumbnail, category_id, duration, created_at, updated_at`,
			uuid.NewString(),
			strings.TrimSpace(req.Title),
			req.Description,
			strings.TrimSpace(req.VideoURL),
			req.Thumbnail,
			req.CategoryID,
			req.Duration,
			now,
		)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.VideoRoute])
		return collectErr
	}); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a video route by ID.
func (r *VideoRepo) GetByID(ctx context.Context, id string) (*model.VideoRoute, error) {
	var out model.VideoRoute
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, videoGetByIDQuery, id)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.VideoRoute])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("get video by id: %w", err)
	}
	return &out, nil
}

// List retrieves all video routes in insertion order, oldest first, so the
// catalog renders the stock routes before administrator additions.
func (r *VideoRepo) List(ctx context.Context) ([]*model.VideoRoute, error) {
	var rowsOut []model.VideoRoute
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, videoListQuery)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		rowsOut, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.VideoRoute])
		return collectErr
	}); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	res := make([]*model.VideoRoute, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a video route.
func (r *VideoRepo) Update(ctx context.Context, id string, req model.UpdateVideoRequest) (*model.VideoRoute, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	if setClause == "" {
		return r.GetByID(ctx, id)
	}

	var out model.VideoRoute
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE custom_videos SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING id, title, description, video_url, thumbnail, category_id, duration, created_at, updated_at"
		rows, queryErr := conn.Query(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.VideoRoute])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("update video: %w", err)
	}
	return &out, nil
}

// Delete deletes a video route by ID.
func (r *VideoRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM custom_videos WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete video: %w", err)
	}
	return rows > 0, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a video.
func (r *VideoRepo) buildUpdateClause(req model.UpdateVideoRequest) (string, []any) {
	setParts := make([]string, 0, 7)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.VideoURL != nil {
		setParts = append(setParts, fmt.Sprintf("video_url = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.VideoURL))
	}
	if req.Thumbnail != nil {
		setParts = append(setParts, fmt.Sprintf("thumbnail = $%d", nextIdx()))
		args = append(args, *req.Thumbnail)
	}
	if req.CategoryID != nil {
		setParts = append(setParts, fmt.Sprintf("category_id = $%d", nextIdx()))
		args = append(args, *req.CategoryID)
	}
	if req.Duration != nil {
		setParts = append(setParts, fmt.Sprintf("duration = $%d", nextIdx()))
		args = append(args, *req.Duration)
	}

	if len(setParts) == 0 {
		return "", nil
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	videoGetByIDQuery = `
		SELECT id, title, description, video_url, thumbnail, category_id, duration, created_at, updated_at
		FROM custom_videos
		WHERE id = $1`

	videoListQuery = `
		SELECT id, title, description, video_url, thumbnail, category_id, duration, created_at, updated_at
		FROM custom_videos
		ORDER BY created_at, id`
)
