package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/srl-logistica/rotaportal/config"
	"github.com/srl-logistica/rotaportal/internal/core"
	"github.com/srl-logistica/rotaportal/internal/data"
	"github.com/srl-logistica/rotaportal/internal/domain/model"
	"github.com/srl-logistica/rotaportal/internal/ports"
)

// ErrVoucherInvalidOrUsed is the single answer for every failed redemption:
// never issued, already redeemed, revoked, or mistyped. Collapsing these keeps
// responses from leaking which codes exist.
var ErrVoucherInvalidOrUsed = data.ErrVoucherInvalidOrUsed

// codeAlphabet matches the original generator's output after uppercasing.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// issueCollisionRetries bounds regeneration attempts on a code collision.
// With 36^6 codes a single collision is already remarkable.
const issueCollisionRetries = 5

// VoucherServiceOptions groups dependencies for VoucherService.
type VoucherServiceOptions struct {
	Repo      core.VoucherRepository
	Broadcast ports.Broadcaster // optional: refresh signal on mutations
	Config    config.AccessConfig
}

// VoucherService owns issuance, redemption, revocation, and listing of the
// single-use access vouchers.
type VoucherService struct {
	repo      core.VoucherRepository
	broadcast ports.Broadcaster
	cfg       config.AccessConfig
	logger    *slog.Logger
}

// NewVoucherService constructs a new VoucherService.
func NewVoucherService(opts VoucherServiceOptions) *VoucherService {
	if opts.Repo == nil {
		panic("VoucherRepository is required")
	}
	return &VoucherService{
		repo:      opts.Repo,
		broadcast: opts.Broadcast,
		cfg:       opts.Config,
		logger:    slog.Default(),
	}
}

// Issue generates a fresh voucher and appends it to the unredeemed set.
// The code is high-entropy random; uniqueness is enforced by generation, with
// a bounded regenerate-and-retry on the off chance of a collision.
func (s *VoucherService) Issue(ctx context.Context) (*model.Voucher, error) {
	now := time.Now().UTC()

	for attempt := 0; attempt <= issueCollisionRetries; attempt++ {
		code, err := generateCode(s.cfg.CodePrefix, s.cfg.CodeLength)
		if err != nil {
			return nil, fmt.Errorf("generate voucher code: %w", err)
		}

		v := model.Voucher{
			Code:      code,
			CreatedAt: now,
			ExpiresAt: now.Add(s.cfg.IssueValidity),
		}

		insertErr := s.repo.Insert(ctx, v)
		if errors.Is(insertErr, data.ErrVoucherCodeExists) {
			continue
		}
		if insertErr != nil {
			return nil, fmt.Errorf("issue voucher: %w", insertErr)
		}

		s.publishRefresh(ctx)
		return &v, nil
	}

	return nil, errors.New("issue voucher: exhausted code generation retries")
}

// Redeem burns the voucher matching the submitted code and returns it.
// The code is normalized (trim, uppercase) before lookup. The burn is atomic:
// concurrent redemptions of one code yield exactly one success. The voucher is
// gone the moment this returns, whether or not the caller manages to grant a
// session afterwards.
func (s *VoucherService) Redeem(ctx context.Context, rawCode string) (*model.Voucher, error) {
	code := model.NormalizeVoucherCode(rawCode)
	if err := model.ValidateVoucherCode(code); err != nil {
		// Malformed input cannot match any live voucher; same answer.
		return nil, ErrVoucherInvalidOrUsed
	}

	v, err := s.repo.Burn(ctx, code)
	if err != nil {
		if errors.Is(err, data.ErrVoucherInvalidOrUsed) {
			return nil, ErrVoucherInvalidOrUsed
		}
		return nil, fmt.Errorf("redeem voucher: %w", err)
	}

	s.publishRefresh(ctx)
	return v, nil
}

// Revoke removes a voucher from the unredeemed set unconditionally.
// Idempotent: revoking an absent code reports false with no error.
func (s *VoucherService) Revoke(ctx context.Context, rawCode string) (bool, error) {
	code := model.NormalizeVoucherCode(rawCode)

	removed, err := s.repo.Delete(ctx, code)
	if err != nil {
		return false, fmt.Errorf("revoke voucher: %w", err)
	}

	if removed {
		s.publishRefresh(ctx)
	}
	return removed, nil
}

// List returns the unredeemed set, most recently issued first.
func (s *VoucherService) List(ctx context.Context) ([]*model.Voucher, error) {
	vouchers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	return vouchers, nil
}

// publishRefresh emits the cross-view refresh signal. Best-effort: a failed
// broadcast only delays other views until their next poll.
func (s *VoucherService) publishRefresh(ctx context.Context) {
	if s.broadcast == nil {
		return
	}
	if err := s.broadcast.Publish(ctx); err != nil {
		s.logger.WarnContext(ctx, "refresh broadcast failed", "error", err)
	}
}

// generateCode produces prefix plus n crypto/rand characters from the
// uppercase base36 alphabet.
func generateCode(prefix string, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return prefix + string(buf), nil
}
