package service

import (
	"context"

	"github.com/srl-logistica/rotaportal/internal/domain/access"
)

// AccessControllerOptions groups dependencies for AccessController.
type AccessControllerOptions struct {
	Sessions *SessionService
	Admin    *AdminGate
}

// AccessController decides which of the three access states a request is in.
// Admin wins over a live session, which wins over the gate.
type AccessController struct {
	sessions *SessionService
	admin    *AdminGate
}

// NewAccessController constructs a new AccessController.
func NewAccessController(opts AccessControllerOptions) *AccessController {
	if opts.Sessions == nil {
		panic("SessionService is required")
	}
	if opts.Admin == nil {
		panic("AdminGate is required")
	}
	return &AccessController{
		sessions: opts.Sessions,
		admin:    opts.Admin,
	}
}

// Evaluate resolves the request's access state from its admin token and
// session ID, either of which may be empty.
func (c *AccessController) Evaluate(ctx context.Context, adminToken, sessionID string) (access.State, access.Status) {
	if c.admin.IsActive(adminToken) {
		return access.StateAdmin, access.Status{Valid: true}
	}

	status := c.sessions.Check(ctx, sessionID)
	if status.Valid {
		return access.StateSession, status
	}

	return access.StateGated, access.Absent
}
