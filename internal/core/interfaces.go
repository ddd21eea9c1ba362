package core

import (
	"context"

	"github.com/srl-logistica/rotaportal/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// VoucherRepository owns the authoritative unredeemed voucher set.
type VoucherRepository interface {
	// Insert appends a freshly generated voucher to the unredeemed set.
	// Returns data.ErrVoucherCodeExists on a code collision so the caller
	// can regenerate and retry.
	Insert(ctx context.Context, v model.Voucher) error

	// Burn atomically removes the voucher with the given normalized code and
	// returns it. The removal is a single atomic check-and-remove: when
	// concurrent calls race on one code, at most one succeeds and the rest
	// get ErrVoucherInvalidOrUsed.
	Burn(ctx context.Context, code string) (*model.Voucher, error)

	// Delete removes a voucher unconditionally, reporting whether it existed.
	// Idempotent; deleting an absent code is not an error.
	Delete(ctx context.Context, code string) (bool, error)

	// List returns the unredeemed set, most recently issued first.
	List(ctx context.Context) ([]*model.Voucher, error)
}

// VideoRepository defines the interface for video catalog data operations.
type VideoRepository interface {
	Create(ctx context.Context, req *model.CreateVideoRequest) (*model.VideoRoute, error)
	GetByID(ctx context.Context, id string) (*model.VideoRoute, error)
	List(ctx context.Context) ([]*model.VideoRoute, error)
	Update(ctx context.Context, id string, req model.UpdateVideoRequest) (*model.VideoRoute, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NoticeRepository defines the interface for notice board data operations.
type NoticeRepository interface {
	Create(ctx context.Context, req *model.CreateNoticeRequest) (*model.Notice, error)
	List(ctx context.Context) ([]*model.Notice, error)
	Update(ctx context.Context, id string, req model.UpdateNoticeRequest) (*model.Notice, error)
	Delete(ctx context.Context, id string) (bool, error)
}
