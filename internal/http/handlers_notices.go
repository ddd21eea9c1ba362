package httpx

import (
	"errors"
	"net/http"

	"github.com/srl-logistica/rotaportal/internal/data"
	"github.com/srl-logistica/rotaportal/internal/domain/model"
	"github.com/srl-logistica/rotaportal/internal/service"
)

// NoticeHandlers provides HTTP handlers for the notice board.
type NoticeHandlers struct {
	Svc *service.NoticeService
}

// Create handles HTTP requests to publish a notice.
func (h *NoticeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateNoticeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	notice, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, notice)
}

// List handles HTTP requests to list the notice board, newest first.
func (h *NoticeHandlers) List(w http.ResponseWriter, r *http.Request) {
	notices, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"notices": notices})
}

// Update handles HTTP requests to update a notice.
func (h *NoticeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("notice id is required")},
		)
		return
	}

	var req model.UpdateNoticeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	notice, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNoticeNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "notice_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, notice)
}

// Delete handles HTTP requests to remove a notice.
func (h *NoticeHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("notice id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, data.ErrNoticeNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "notice_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
