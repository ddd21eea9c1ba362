package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Voucher repository sentinels.
	//
	// ErrVoucherInvalidOrUsed deliberately covers never-issued, already
	// redeemed, revoked, and mistyped codes with one answer, so responses
	// never leak which codes are real.
	ErrVoucherInvalidOrUsed = errors.New("voucher invalid or already used")
	ErrVoucherCodeExists    = errors.New("voucher code already exists")

	// Video repository sentinels.
	ErrVideoNotFound = errors.New("video not found")

	// Notice repository sentinels.
	ErrNoticeNotFound = errors.New("notice not found")
)
