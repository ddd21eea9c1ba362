package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/srl-logistica/rotaportal/config"
	"github.com/srl-logistica/rotaportal/internal/mocks"
	accessmocks "github.com/srl-logistica/rotaportal/internal/mocks/access"
	"github.com/srl-logistica/rotaportal/internal/service"
)

type routerFixture struct {
	handler  http.Handler
	sessions *service.SessionService
	admin    *service.AdminGate
	videos   *mocks.MockVideoRepository
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := accessTestConfig()
	broadcast := accessmocks.NewMemoryBroadcaster()
	voucherRepo := mocks.NewMockVoucherRepository(ctrl)
	videoRepo := mocks.NewMockVideoRepository(ctrl)
	noticeRepo := mocks.NewMockNoticeRepository(ctrl)

	vouchers := service.NewVoucherService(service.VoucherServiceOptions{Repo: voucherRepo, Broadcast: broadcast, Config: cfg})
	sessions := service.NewSessionService(service.SessionServiceOptions{Store: accessmocks.NewMemorySessionStore(), Config: cfg})
	admin := service.NewAdminGate(service.AdminGateOptions{
		Config:    config.AdminAuthConfig{Username: "123456", Password: "123456"},
		Broadcast: broadcast,
	})
	controller := service.NewAccessController(service.AccessControllerOptions{Sessions: sessions, Admin: admin})
	videos := service.NewVideoService(service.VideoServiceOptions{Repo: videoRepo, Broadcast: broadcast})
	notices := service.NewNoticeService(service.NoticeServiceOptions{Repo: noticeRepo, Broadcast: broadcast})

	handler := NewRouter(RouterServices{
		Vouchers:   vouchers,
		Sessions:   sessions,
		Admin:      admin,
		Controller: controller,
		Videos:     videos,
		Notices:    notices,
		Broadcast:  broadcast,
	})

	return &routerFixture{handler: handler, sessions: sessions, admin: admin, videos: videoRepo}
}

func TestRouter_Healthz(t *testing.T) {
	fix := newRouterFixture(t)

	w := httptest.NewRecorder()
	fix.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"rotaportal"}`, w.Body.String())
}

func TestRouter_AdminEndpointsRequireToken(t *testing.T) {
	fix := newRouterFixture(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/admin/vouchers"},
		{http.MethodGet, "/admin/vouchers"},
		{http.MethodDelete, "/admin/vouchers/ROTA1A2B3C"},
		{http.MethodPost, "/videos"},
		{http.MethodDelete, "/videos/some-id"},
		{http.MethodPost, "/notices"},
	} {
		w := httptest.NewRecorder()
		fix.handler.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_CatalogReadsRequireAccess(t *testing.T) {
	fix := newRouterFixture(t)

	// Gated device: no session, no admin token.
	w := httptest.NewRecorder()
	fix.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A live session opens the reads.
	sess, err := fix.sessions.Start(context.Background(), service.StartInput{ActivatedCode: "ROTA1A2B3C"})
	require.NoError(t, err)
	fix.videos.EXPECT().List(gomock.Any()).Return(nil, nil)

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/videos", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.ID})
	fix.handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	// So does an admin token, without any session.
	token, err := fix.admin.Authenticate(context.Background(), "123456", "123456")
	require.NoError(t, err)
	fix.videos.EXPECT().List(gomock.Any()).Return(nil, nil)

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/videos", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	fix.handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AccessEndpointsAreOpen(t *testing.T) {
	fix := newRouterFixture(t)

	w := httptest.NewRecorder()
	fix.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/access/session", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	fix.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/access/state", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
