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

// NoticeRepo provides database operations for the notice board.
type NoticeRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewNoticeRepo creates a new NoticeRepo with the real time provider.
func NewNoticeRepo(db *sql.DB) *NoticeRepo {
	return &NoticeRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewNoticeRepoWithTimeProvider creates a new NoticeRepo with a custom time provider (useful for tests).
func NewNoticeRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *NoticeRepo {
	return &NoticeRepo{DB: db, timeProvider: tp}
}

// Create inserts a new notice.
func (r *NoticeRepo) Create(ctx context.Context, req *model.CreateNoticeRequest) (*model.Notice, error) {
	if req == nil {
		return nil, errors.New("create notice request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Notice
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			INSERT INTO srl_notices (id, title, message, type, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING id, title, message, type, created_at, updated_at`,
			uuid.NewString(),
			strings.TrimSpace(req.Title),
			req.Message,
			req.Type,
			now,
		)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notice])
		return collectErr
	}); err != nil {
		return nil, fmt.Errorf("create notice: %w", err)
	}
	return &out, nil
}

// List retrieves all notices, most recent first.
func (r *NoticeRepo) List(ctx context.Context) ([]*model.Notice, error) {
	var rowsOut []model.Notice
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, noticeListQuery)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		rowsOut, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Notice])
		return collectErr
	}); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}

	res := make([]*model.Notice, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a notice.
func (r *NoticeRepo) Update(ctx context.Context, id string, req model.UpdateNoticeRequest) (*model.Notice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	if setClause == "" {
		return r.getByID(ctx, id)
	}

	var out model.Notice
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE srl_notices SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING id, title, message, type, created_at, updated_at"
		rows, queryErr := conn.Query(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notice])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, fmt.Errorf("update notice: %w", err)
	}
	return &out, nil
}

// Delete deletes a notice by ID.
func (r *NoticeRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM srl_notices WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete notice: %w", err)
	}
	return rows > 0, nil
}

func (r *NoticeRepo) getByID(ctx context.Context, id string) (*model.Notice, error) {
	var out model.Notice
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, noticeGetByIDQuery, id)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notice])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, fmt.Errorf("get notice by id: %w", err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a notice.
func (r *NoticeRepo) buildUpdateClause(req model.UpdateNoticeRequest) (string, []any) {
	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Message != nil {
		setParts = append(setParts, fmt.Sprintf("message = $%d", nextIdx()))
		args = append(args, *req.Message)
	}
	if req.Type != nil {
		setParts = append(setParts, fmt.Sprintf("type = $%d", nextIdx()))
		args = append(args, *req.Type)
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
	noticeGetByIDQuery = `
		SELECT id, title, message, type, created_at, updated_at
		FROM srl_notices
		WHERE id = $1`

	noticeListQuery = `
		SELECT id, title, message, type, created_at, updated_at
		FROM srl_notices
		ORDER BY created_at DESC, id`
)
