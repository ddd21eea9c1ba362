package httpx

import (
	"errors"
	"net/http"

	"github.com/srl-logistica/rotaportal/internal/data"
	"github.com/srl-logistica/rotaportal/internal/domain/model"
	"github.com/srl-logistica/rotaportal/internal/service"
)

// VideoHandlers provides HTTP handlers for the route video catalog.
type VideoHandlers struct {
	Svc *service.VideoService
}

// Create handles HTTP requests to add a route video.
func (h *VideoHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVideoRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	video, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, video)
}

// List handles HTTP requests to list the catalog.
func (h *VideoHandlers) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.Svc.List(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"videos": videos})
}

// GetByID handles HTTP requests to get a single route video.
func (h *VideoHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("video id is required")},
		)
		return
	}

	video, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrVideoNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "video_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, video)
}

// Update handles HTTP requests to update a route video.
func (h *VideoHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("video id is required")},
		)
		return
	}

	var req model.UpdateVideoRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	video, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrVideoNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "video_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, video)
}

// Delete handles HTTP requests to remove a route video.
func (h *VideoHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("video id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, data.ErrVideoNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "video_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
