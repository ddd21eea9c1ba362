package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/srl-logistica/rotaportal/config"
	"github.com/srl-logistica/rotaportal/internal/domain/access"
	"github.com/srl-logistica/rotaportal/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Store  ports.SessionStore
	Config config.AccessConfig
	Logger *slog.Logger // optional
}

// SessionService owns the per-device access session: creation on redemption,
// validity evaluation, and explicit termination.
type SessionService struct {
	store  ports.SessionStore
	cfg    config.AccessConfig
	logger *slog.Logger
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Store == nil {
		panic("SessionStore is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:  opts.Store,
		cfg:    opts.Config,
		logger: logger,
	}
}

// StartInput groups parameters for Start.
type StartInput struct {
	// ActivatedCode is the voucher that was just burned for this session.
	ActivatedCode string

	// PriorSessionID, when set, is the device's previous session, which is
	// discarded first: sessions never stack.
	PriorSessionID string
}

// Start creates a session expiring SessionDuration from now and persists it,
// replacing any prior session for the device. The caller has already burned
// the voucher; if persisting fails the voucher stays burned.
func (s *SessionService) Start(ctx context.Context, in StartInput) (*access.Session, error) {
	if in.PriorSessionID != "" {
		if err := s.store.Delete(ctx, in.PriorSessionID); err != nil {
			s.logger.WarnContext(ctx, "discard prior session failed", "error", err)
		}
	}

	sess := access.Session{
		ID:            uuid.NewString(),
		ActivatedCode: in.ActivatedCode,
		ExpiresAt:     time.Now().Add(s.cfg.SessionDuration),
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &sess, nil
}

// Check evaluates the device's session. Missing, unreadable, and expired
// records all come back Absent; storage failures never surface as errors. The
// remaining window on a valid session is rounded down to whole minutes.
func (s *SessionService) Check(ctx context.Context, sessionID string) access.Status {
	if sessionID == "" {
		return access.Absent
	}

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ports.ErrSessionNotFound) {
			s.logger.WarnContext(ctx, "session read failed, treating as absent", "error", err)
		}
		return access.Absent
	}

	now := time.Now()
	if sess.Expired(now) {
		// The store reaps on read as well; this is the safety net for
		// stores that don't.
		if deleteErr := s.store.Delete(ctx, sessionID); deleteErr != nil {
			s.logger.WarnContext(ctx, "reap expired session failed", "error", deleteErr)
		}
		return access.Absent
	}

	return access.Status{
		Valid:     true,
		Remaining: sess.ExpiresAt.Sub(now).Truncate(time.Minute),
		ExpiresAt: sess.ExpiresAt,
	}
}

// End discards the session unconditionally. Irreversible: the voucher behind
// it was burned at redemption, so ending a session means a fresh voucher is
// needed for new access. User confirmation is the caller's responsibility.
func (s *SessionService) End(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to end
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PollInterval is how often views should re-invoke Check while the protected
// view is open; surfaced to clients so the cadence stays a server-side config.
func (s *SessionService) PollInterval() time.Duration {
	return s.cfg.PollInterval
}
