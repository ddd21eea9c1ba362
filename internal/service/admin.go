package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/srl-logistica/rotaportal/config"
	"github.com/srl-logistica/rotaportal/internal/ports"
)

// ErrInvalidCredentials is returned on any authentication failure; the caller
// cannot distinguish a bad username from a bad password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminGateOptions groups dependencies for AdminGate.
type AdminGateOptions struct {
	Config    config.AdminAuthConfig
	Broadcast ports.Broadcaster // optional
	Logger    *slog.Logger      // optional
}

// AdminGate authenticates the fixed administrative credential pair and tracks
// active admin tokens in process memory. Tokens do not survive a restart, so
// every admin re-authenticates after a deploy.
type AdminGate struct {
	cfg       config.AdminAuthConfig
	broadcast ports.Broadcaster
	logger    *slog.Logger

	mu     sync.Mutex
	tokens map[string]struct{}
}

// NewAdminGate constructs a new AdminGate.
func NewAdminGate(opts AdminGateOptions) *AdminGate {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminGate{
		cfg:       opts.Config,
		broadcast: opts.Broadcast,
		logger:    logger,
		tokens:    make(map[string]struct{}),
	}
}

// Authenticate verifies the credential pair and, on success, mints and
// registers an admin token. Comparison is constant time in both the hashed
// and the plaintext-fallback configurations.
func (g *AdminGate) Authenticate(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.cfg.Username)) == 1

	var passOK bool
	if g.cfg.UsesPlaintext() {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(g.cfg.Password)) == 1
	} else {
		passOK = bcrypt.CompareHashAndPassword([]byte(g.cfg.PasswordHash), []byte(password)) == nil
	}

	if !userOK || !passOK {
		g.logger.WarnContext(ctx, "admin authentication rejected")
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	g.mu.Lock()
	g.tokens[token] = struct{}{}
	g.mu.Unlock()

	g.logger.InfoContext(ctx, "admin authenticated")
	return token, nil
}

// IsActive reports whether the token belongs to a live admin login.
func (g *AdminGate) IsActive(token string) bool {
	if token == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.tokens[token]
	return ok
}

// Deactivate revokes the token and nudges open views to refresh. Revoking an
// unknown token is a no-op.
func (g *AdminGate) Deactivate(ctx context.Context, token string) {
	g.mu.Lock()
	delete(g.tokens, token)
	g.mu.Unlock()

	if g.broadcast == nil {
		return
	}
	if err := g.broadcast.Publish(ctx); err != nil {
		g.logger.WarnContext(ctx, "refresh broadcast failed", "error", err)
	}
}
