package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/srl-logistica/rotaportal/internal/service"
)

// adminCookieTTL bounds the admin cookie lifetime; the in-process token it
// carries dies with the server anyway.
const adminCookieTTL = 12 * time.Hour

// AdminHandlers provides HTTP handlers for administrator login and logout.
type AdminHandlers struct {
	Gate         *service.AdminGate
	CookieDomain string
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles the administrator credential check.
// POST /admin/login.
func (h *AdminHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	token, err := h.Gate.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "invalid_credentials",
				Err:     err,
			})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	setCookie(w, r, cookieParams{
		Name:      adminCookieName,
		Value:     token,
		Domain:    h.CookieDomain,
		ExpiresAt: time.Now().Add(adminCookieTTL),
	})

	WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout revokes the admin token and clears the cookie.
// POST /admin/logout.
func (h *AdminHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Gate.Deactivate(r.Context(), adminTokenFromRequest(r))
	clearCookie(w, r, adminCookieName, h.CookieDomain)
	w.WriteHeader(http.StatusNoContent)
}
