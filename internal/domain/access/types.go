// Package access contains domain-level types for the voucher/session gate.
// It is pure and free of framework/adapter concerns.
package access

import "time"

// Session is the per-device record created when a voucher is redeemed.
// ID is an opaque session identifier held by the device in a cookie; at most
// one session exists per device, and starting a new one overwrites it.
type Session struct {
	ID string `json:"id"`

	// ActivatedCode is the voucher that was burned to create this session.
	// Retained for audit display only; the voucher itself no longer exists.
	ActivatedCode string `json:"activated_code"`

	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session's window has passed at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Status is the outcome of a session check: either a valid session with the
// remaining window, or no session at all. An expired session is Absent; the
// check reaps it as a side effect.
type Status struct {
	Valid bool `json:"valid"`

	// Remaining is the time left on a valid session, rounded down to whole
	// minutes. Zero when Valid is false.
	Remaining time.Duration `json:"-"`

	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Absent is the status of a device with no usable session.
var Absent = Status{}

// State is the computed access state for a view render.
type State string

const (
	// StateAdmin short-circuits the voucher flow entirely.
	StateAdmin State = "admin"
	// StateSession renders protected content with a countdown.
	StateSession State = "session"
	// StateGated renders the redemption form.
	StateGated State = "gated"
)
