package config

import "time"

// AccessConfig contains voucher and access-session configuration.
//
// SessionDuration and IssueValidity are independent windows: the first is the
// lifetime of a session granted on redemption, the second is a voucher's
// shelf-life stamped at issuance. Both default to 6 hours.
type AccessConfig struct {
	// SessionDuration is how long a redeemed session remains valid.
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"6h"`

	// IssueValidity is the validity window stamped on a voucher at issue time.
	// Redemption does not currently reject vouchers past this window; the
	// timestamp is recorded and surfaced to administrators only.
	IssueValidity time.Duration `env:"ISSUE_VALIDITY" envDefault:"6h"`

	// PollInterval is how often open views should re-check session validity.
	// Surfaced to clients in session responses; the refresh broadcast
	// additionally triggers immediate re-checks.
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"10s"`

	// CodePrefix is prepended to every generated voucher code.
	CodePrefix string `env:"CODE_PREFIX" envDefault:"ROTA"`

	// CodeLength is the number of random characters after the prefix.
	CodeLength int `env:"CODE_LENGTH" envDefault:"6"`
}

// Sanitize applies guardrails to access configuration values.
func (a *AccessConfig) Sanitize() {
	if a.SessionDuration <= 0 {
		a.SessionDuration = 6 * time.Hour
	}
	if a.IssueValidity <= 0 {
		a.IssueValidity = 6 * time.Hour
	}
	if a.PollInterval < time.Second {
		a.PollInterval = 10 * time.Second
	}
	if a.CodeLength < 4 {
		a.CodeLength = 6
	}
	if a.CodeLength > 32 {
		a.CodeLength = 32
	}
}
