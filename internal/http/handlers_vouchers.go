package httpx

import (
	"errors"
	"net/http"

	"github.com/srl-logistica/rotaportal/internal/domain/model"
	"github.com/srl-logistica/rotaportal/internal/service"
)

// maxVouchersPerIssue caps vouchers minted in a single request.
const maxVouchersPerIssue = 100

// VoucherHandlers provides HTTP handlers for voucher administration.
type VoucherHandlers struct {
	Svc *service.VoucherService
}

type issueVouchersRequest struct {
	// Count is how many vouchers to mint; zero or omitted means one.
	Count int `json:"count"`
}

// Issue mints one or more fresh vouchers.
// POST /admin/vouchers.
func (h *VoucherHandlers) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueVouchersRequest
	if r.ContentLength != 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	}
	if req.Count <= 0 {
		req.Count = 1
	}
	if req.Count > maxVouchersPerIssue {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "count_too_large",
			Err:     errors.New("count cannot exceed 100"),
		})
		return
	}

	vouchers := make([]*model.Voucher, 0, req.Count)
	for range req.Count {
		v, err := h.Svc.Issue(r.Context())
		if err != nil {
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "issue_failed", Err: err})
			return
		}
		vouchers = append(vouchers, v)
	}

	WriteJSON(w, http.StatusCreated, map[string]any{"vouchers": vouchers})
}

// List returns the unredeemed voucher set, newest first.
// GET /admin/vouchers.
func (h *VoucherHandlers) List(w http.ResponseWriter, r *http.Request) {
	vouchers, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"vouchers": vouchers})
}

// Revoke removes a voucher from circulation.
// DELETE /admin/vouchers/{code}.
func (h *VoucherHandlers) Revoke(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("voucher code is required")},
		)
		return
	}

	removed, err := h.Svc.Revoke(r.Context(), code)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "revoke_failed", Err: err})
		return
	}
	if !removed {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "voucher_not_found",
			Err:     errors.New("no unredeemed voucher with that code"),
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
