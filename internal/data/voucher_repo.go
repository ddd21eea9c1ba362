package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/srl-logistica/rotaportal/internal/data/pgxutil"
	"github.com/srl-logistica/rotaportal/internal/domain/model"
)

// VoucherRepo provides database operations for the unredeemed voucher set.
//
// The table holds only unredeemed vouchers: redemption and revocation delete
// the row, and absence of the row is the "used" marker. A single-statement
// DELETE ... RETURNING is the atomic check-and-remove that guarantees
// at-most-once redemption under concurrent attempts; no separate existence
// check precedes the removal, because between a check and a remove another
// view could redeem the same code.
//
// Known gap, kept deliberately: rows past their issuance expires_at stay
// redeemable until revoked. Nothing purges or rejects them here.
type VoucherRepo struct {
	DB *sql.DB
}

// NewVoucherRepo creates a new VoucherRepo.
func NewVoucherRepo(db *sql.DB) *VoucherRepo {
	return &VoucherRepo{DB: db}
}

// Insert appends a voucher to the unredeemed set.
// Returns ErrVoucherCodeExists when the generated code collides with a live one.
func (r *VoucherRepo) Insert(ctx context.Context, v model.Voucher) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO admin_vouchers (code, created_at, expires_at)
			VALUES ($1, $2, $3)`,
			v.Code, v.CreatedAt, v.ExpiresAt,
		)
		return execErr
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrVoucherCodeExists
		}
		return fmt.Errorf("insert voucher: %w", err)
	}
	return nil
}

// Burn atomically removes the voucher with the given normalized code and
// returns it. When two views race to redeem the same code, the row-level
// semantics of DELETE guarantee at most one of them observes the row; the
// other gets ErrVoucherInvalidOrUsed.
func (r *VoucherRepo) Burn(ctx context.Context, code string) (*model.Voucher, error) {
	var out model.Voucher
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			DELETE FROM admin_vouchers
			WHERE code = $1
			RETURNING code, created_at, expires_at`,
			code,
		)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Voucher])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVoucherInvalidOrUsed
		}
		return nil, fmt.Errorf("burn voucher: %w", err)
	}
	return &out, nil
}

// Delete removes a voucher unconditionally, reporting whether it existed.
// Idempotent: revoking an already-absent code is not an error.
func (r *VoucherRepo) Delete(ctx context.Context, code string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM admin_vouchers WHERE code = $1`, code)
		if execErr != nil {
			return execErr
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete voucher: %w", err)
	}
	return rows > 0, nil
}

// List returns the unredeemed set, most recently issued first.
func (r *VoucherRepo) List(ctx context.Context) ([]*model.Voucher, error) {
	var rowsOut []model.Voucher
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, voucherListQuery)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		rowsOut, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Voucher])
		return collectErr
	}); err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}

	res := make([]*model.Voucher, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

const voucherListQuery = `
	SELECT code, created_at, expires_at
	FROM admin_vouchers
	ORDER BY created_at DESC, code`
