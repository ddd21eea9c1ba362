// Package httpx provides HTTP handlers and utilities for the route access portal API.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/srl-logistica/rotaportal/internal/domain/access"
	"github.com/srl-logistica/rotaportal/internal/domain/model"
	"github.com/srl-logistica/rotaportal/internal/service"
)

// AccessHandlers provides HTTP handlers for voucher redemption and session checks.
type AccessHandlers struct {
	Vouchers     *service.VoucherService
	Sessions     *service.SessionService
	Controller   *service.AccessController
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AccessHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Redeem handles voucher redemption: burn the voucher, then grant a session.
// POST /access/redeem.
func (h *AccessHandlers) Redeem(w http.ResponseWriter, r *http.Request) {
	var req model.RedeemRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	voucher, err := h.Vouchers.Redeem(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, service.ErrVoucherInvalidOrUsed) {
			WriteError(w, ErrorParams{
				Code:    http.StatusUnprocessableEntity,
				ErrCode: "voucher_invalid_or_used",
				Err:     err,
			})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "redeem_failed", Err: err})
		return
	}

	sess, err := h.Sessions.Start(r.Context(), service.StartInput{
		ActivatedCode:  voucher.Code,
		PriorSessionID: sessionIDFromRequest(r),
	})
	if err != nil {
		// The voucher is already burned; the client must request a new one.
		h.logger().ErrorContext(r.Context(), "session grant failed after burn",
			slog.String("code", voucher.Code), slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_grant_failed", Err: err})
		return
	}

	setCookie(w, r, cookieParams{
		Name:      sessionCookieName,
		Value:     sess.ID,
		Domain:    h.CookieDomain,
		ExpiresAt: sess.ExpiresAt,
	})

	WriteJSON(w, http.StatusOK, map[string]any{
		"expires_at":        sess.ExpiresAt,
		"remaining_minutes": int(time.Until(sess.ExpiresAt).Minutes()),
		"poll_seconds":      int(h.Sessions.PollInterval().Seconds()),
	})
}

// Session reports the current session's validity and remaining window.
// GET /access/session.
func (h *AccessHandlers) Session(w http.ResponseWriter, r *http.Request) {
	status := h.Sessions.Check(r.Context(), sessionIDFromRequest(r))
	if !status.Valid {
		WriteJSON(w, http.StatusOK, map[string]any{"status": "absent"})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status":            "valid",
		"remaining_minutes": int(status.Remaining.Minutes()),
		"expires_at":        status.ExpiresAt,
		"poll_seconds":      int(h.Sessions.PollInterval().Seconds()),
	})
}

// Logout ends the access session. The voucher behind it was burned at
// redemption, so the client is expected to confirm with the user first.
// POST /access/logout.
func (h *AccessHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromRequest(r)
	if err := h.Sessions.End(r.Context(), id); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "logout_failed", Err: err})
		return
	}

	clearCookie(w, r, sessionCookieName, h.CookieDomain)
	w.WriteHeader(http.StatusNoContent)
}

// State resolves which of the three access states the request is in.
// GET /access/state.
func (h *AccessHandlers) State(w http.ResponseWriter, r *http.Request) {
	state, status := h.Controller.Evaluate(r.Context(), adminTokenFromRequest(r), sessionIDFromRequest(r))

	body := map[string]any{"state": state}
	if state == access.StateSession {
		body["remaining_minutes"] = int(status.Remaining.Minutes())
		body["expires_at"] = status.ExpiresAt
	}
	WriteJSON(w, http.StatusOK, body)
}
