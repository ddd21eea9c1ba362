//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

const (
	minVoucherCodeLen = 4
	maxVoucherCodeLen = 64
)

// Voucher is a single-use access token. Presence in the unredeemed set is its
// only state: redemption or revocation deletes the row, and the deletion is the
// "used" marker. There is no used/unused flag.
type Voucher struct {
	Code      string    `json:"code"       db:"code"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	// ExpiresAt is the issuance shelf-life stamped at creation. It is
	// recorded and listed but not enforced at redemption.
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// NormalizeVoucherCode canonicalizes user input for lookup: surrounding
// whitespace is dropped and the code is uppercased, matching the generator's
// output alphabet.
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateVoucherCode reports whether a normalized code is plausible enough to
// look up. It deliberately does not reveal anything about which codes exist.
func ValidateVoucherCode(code string) error {
	if len(code) < minVoucherCodeLen {
		return errors.New("code is too short")
	}
	if len(code) > maxVoucherCodeLen {
		return errors.New("code is too long")
	}
	return nil
}

// RedeemRequest carries a redemption attempt from a view.
type RedeemRequest struct {
	Code string `json:"code"`
}
