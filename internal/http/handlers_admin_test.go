package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srl-logistica/rotaportal/config"
	"github.com/srl-logistica/rotaportal/internal/service"
)

func newAdminHandlers() (*AdminHandlers, *service.AdminGate) {
	gate := service.NewAdminGate(service.AdminGateOptions{
		Config: config.AdminAuthConfig{Username: "123456", Password: "123456"},
	})
	return &AdminHandlers{Gate: gate}, gate
}

func postLogin(t *testing.T, h *AdminHandlers, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(adminLoginRequest{Username: username, Password: password})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	h.Login(w, r)
	return w
}

func TestAdminHandlers_Login(t *testing.T) {
	h, gate := newAdminHandlers()

	w := postLogin(t, h, "123456", "123456")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	assert.True(t, gate.IsActive(resp["token"]))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "admin cookie must be set")
	assert.Equal(t, resp["token"], cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestAdminHandlers_Login_BadPair(t *testing.T) {
	h, _ := newAdminHandlers()

	w := postLogin(t, h, "123456", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_credentials", resp["error"])
}

func TestAdminHandlers_Logout(t *testing.T) {
	h, gate := newAdminHandlers()

	w := postLogin(t, h, "123456", "123456")
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["token"]
	require.True(t, gate.IsActive(token))

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	h.Logout(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, gate.IsActive(token))
}
