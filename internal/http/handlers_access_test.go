package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/srl-logistica/rotaportal/config"
	"github.com/srl-logistica/rotaportal/internal/data"
	"github.com/srl-logistica/rotaportal/internal/domain/model"
	"github.com/srl-logistica/rotaportal/internal/mocks"
	accessmocks "github.com/srl-logistica/rotaportal/internal/mocks/access"
	"github.com/srl-logistica/rotaportal/internal/service"
)

func accessTestConfig() config.AccessConfig {
	return config.AccessConfig{
		SessionDuration: 6 * time.Hour,
		IssueValidity:   6 * time.Hour,
		PollInterval:    10 * time.Second,
		CodePrefix:      "ROTA",
		CodeLength:      6,
	}
}

type accessFixture struct {
	handlers *AccessHandlers
	repo     *mocks.MockVoucherRepository
	store    *accessmocks.MemorySessionStore
	sessions *service.SessionService
	admin    *service.AdminGate
}

func newAccessFixture(t *testing.T) *accessFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockVoucherRepository(ctrl)
	store := accessmocks.NewMemorySessionStore()
	cfg := accessTestConfig()

	vouchers := service.NewVoucherService(service.VoucherServiceOptions{
		Repo:      repo,
		Broadcast: accessmocks.NewMemoryBroadcaster(),
		Config:    cfg,
	})
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: store, Config: cfg})
	admin := service.NewAdminGate(service.AdminGateOptions{
		Config: config.AdminAuthConfig{Username: "123456", Password: "123456"},
	})
	controller := service.NewAccessController(service.AccessControllerOptions{Sessions: sessions, Admin: admin})

	return &accessFixture{
		handlers: &AccessHandlers{Vouchers: vouchers, Sessions: sessions, Controller: controller},
		repo:     repo,
		store:    store,
		sessions: sessions,
		admin:    admin,
	}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestAccessHandlers_Redeem_GrantsSession(t *testing.T) {
	fix := newAccessFixture(t)

	burned := &model.Voucher{Code: "ROTA1A2B3C"}
	fix.repo.EXPECT().Burn(gomock.Any(), "ROTA1A2B3C").Return(burned, nil)

	body, err := json.Marshal(model.RedeemRequest{Code: " rota1a2b3c "})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/access/redeem", bytes.NewReader(body))
	fix.handlers.Redeem(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie, "session cookie must be set")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 1, fix.store.Len())

	var resp struct {
		ExpiresAt        time.Time `json:"expires_at"`
		RemainingMinutes int       `json:"remaining_minutes"`
		PollSeconds      int       `json:"poll_seconds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.ExpiresAt.IsZero())
	assert.InDelta(t, 6*60, resp.RemainingMinutes, 1)
	assert.Equal(t, 10, resp.PollSeconds)
}

func TestAccessHandlers_Redeem_InvalidOrUsedCode(t *testing.T) {
	fix := newAccessFixture(t)

	fix.repo.EXPECT().Burn(gomock.Any(), "ROTAZZZZZZ").Return(nil, data.ErrVoucherInvalidOrUsed)

	body, err := json.Marshal(model.RedeemRequest{Code: "ROTAZZZZZZ"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/access/redeem", bytes.NewReader(body))
	fix.handlers.Redeem(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "voucher_invalid_or_used", resp["error"])
	assert.Nil(t, sessionCookie(t, w))
	assert.Zero(t, fix.store.Len())
}

func TestAccessHandlers_Redeem_ReplacesPriorSession(t *testing.T) {
	fix := newAccessFixture(t)
	ctx := context.Background()

	prior, err := fix.sessions.Start(ctx, service.StartInput{ActivatedCode: "ROTA111111"})
	require.NoError(t, err)

	fix.repo.EXPECT().Burn(gomock.Any(), "ROTA222222").Return(&model.Voucher{Code: "ROTA222222"}, nil)

	body, err := json.Marshal(model.RedeemRequest{Code: "ROTA222222"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/access/redeem", bytes.NewReader(body))
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: prior.ID})
	fix.handlers.Redeem(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fix.store.Len())
	_, err = fix.store.Get(ctx, prior.ID)
	assert.ErrorIs(t, err, accessmocks.ErrNotFound)
}

func TestAccessHandlers_Session_Valid(t *testing.T) {
	fix := newAccessFixture(t)

	sess, err := fix.sessions.Start(context.Background(), service.StartInput{ActivatedCode: "ROTA1A2B3C"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/access/session", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.ID})
	fix.handlers.Session(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "valid", resp["status"])
	assert.Contains(t, resp, "remaining_minutes")
	assert.Contains(t, resp, "expires_at")
}

func TestAccessHandlers_Session_Absent(t *testing.T) {
	fix := newAccessFixture(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/access/session", nil)
	fix.handlers.Session(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "absent", resp["status"])
	assert.NotContains(t, resp, "remaining_minutes")
}

func TestAccessHandlers_Logout_EndsSession(t *testing.T) {
	fix := newAccessFixture(t)

	sess, err := fix.sessions.Start(context.Background(), service.StartInput{ActivatedCode: "ROTA1A2B3C"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/access/logout", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.ID})
	fix.handlers.Logout(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, fix.store.Len())

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAccessHandlers_State(t *testing.T) {
	fix := newAccessFixture(t)
	ctx := context.Background()

	// Gated: no credentials at all.
	w := httptest.NewRecorder()
	fix.handlers.State(w, httptest.NewRequest(http.MethodGet, "/access/state", nil))
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "gated", resp["state"])

	// Session state carries the countdown.
	sess, err := fix.sessions.Start(ctx, service.StartInput{ActivatedCode: "ROTA1A2B3C"})
	require.NoError(t, err)
	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/access/state", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.ID})
	fix.handlers.State(w, r)
	resp = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "session", resp["state"])
	assert.Contains(t, resp, "remaining_minutes")

	// Admin wins over the session.
	token, err := fix.admin.Authenticate(ctx, "123456", "123456")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/access/state", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.ID})
	r.Header.Set("Authorization", "Bearer "+token)
	fix.handlers.State(w, r)
	resp = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp["state"])
}
