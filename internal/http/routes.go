package httpx

import (
	"log/slog"
	"net/http"

	"github.com/srl-logistica/rotaportal/internal/ports"
	"github.com/srl-logistica/rotaportal/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Vouchers   *service.VoucherService
	Sessions   *service.SessionService
	Admin      *service.AdminGate
	Controller *service.AccessController
	Videos     *service.VideoService
	Notices    *service.NoticeService
	Broadcast  ports.Broadcaster

	CookieDomain string
	Logger       *slog.Logger // Logger for handler errors (optional)
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	accessHandlers := &AccessHandlers{
		Vouchers:     services.Vouchers,
		Sessions:     services.Sessions,
		Controller:   services.Controller,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	adminHandlers := &AdminHandlers{Gate: services.Admin, CookieDomain: services.CookieDomain}
	voucherHandlers := &VoucherHandlers{Svc: services.Vouchers}
	videoHandlers := &VideoHandlers{Svc: services.Videos}
	noticeHandlers := &NoticeHandlers{Svc: services.Notices}
	eventHandlers := &EventHandlers{Broadcast: services.Broadcast, Logger: services.Logger}

	adminOnly := RequireAdmin(services.Admin)
	sessionOrAdmin := RequireAccess(services.Admin, sessionValidity{svc: services.Sessions})

	registerAccessRoutes(mux, accessHandlers, eventHandlers)
	registerAdminRoutes(mux, adminHandlers, voucherHandlers, adminOnly)
	registerCatalogRoutes(mux, videoHandlers, noticeHandlers, routeGates{
		Read:  sessionOrAdmin,
		Write: adminOnly,
	})

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

// sessionValidity adapts SessionService to the SessionChecker middleware port.
type sessionValidity struct {
	svc *service.SessionService
}

func (s sessionValidity) Valid(r *http.Request) bool {
	return s.svc.Check(r.Context(), sessionIDFromRequest(r)).Valid
}

func registerAccessRoutes(mux *http.ServeMux, h *AccessHandlers, events *EventHandlers) {
	mux.HandleFunc("POST /access/redeem", h.Redeem)
	mux.HandleFunc("GET /access/session", h.Session)
	mux.HandleFunc("POST /access/logout", h.Logout)
	mux.HandleFunc("GET /access/state", h.State)
	mux.HandleFunc("GET /access/events", events.Stream)
}

func registerAdminRoutes(
	mux *http.ServeMux,
	h *AdminHandlers,
	vouchers *VoucherHandlers,
	adminOnly func(http.Handler) http.Handler,
) {
	mux.HandleFunc("POST /admin/login", h.Login)
	mux.HandleFunc("POST /admin/logout", h.Logout)

	mux.Handle("POST /admin/vouchers", adminOnly(http.HandlerFunc(vouchers.Issue)))
	mux.Handle("GET /admin/vouchers", adminOnly(http.HandlerFunc(vouchers.List)))
	mux.Handle("DELETE /admin/vouchers/{code}", adminOnly(http.HandlerFunc(vouchers.Revoke)))
}

// routeGates pairs the middleware for catalog reads and writes: protected
// reads admit a session or an admin, writes are admin only.
type routeGates struct {
	Read  func(http.Handler) http.Handler
	Write func(http.Handler) http.Handler
}

func registerCatalogRoutes(mux *http.ServeMux, videos *VideoHandlers, notices *NoticeHandlers, gates routeGates) {
	mux.Handle("GET /videos", gates.Read(http.HandlerFunc(videos.List)))
	mux.Handle("GET /videos/{id}", gates.Read(http.HandlerFunc(videos.GetByID)))
	mux.Handle("POST /videos", gates.Write(http.HandlerFunc(videos.Create)))
	mux.Handle("PUT /videos/{id}", gates.Write(http.HandlerFunc(videos.Update)))
	mux.Handle("DELETE /videos/{id}", gates.Write(http.HandlerFunc(videos.Delete)))

	mux.Handle("GET /notices", gates.Read(http.HandlerFunc(notices.List)))
	mux.Handle("POST /notices", gates.Write(http.HandlerFunc(notices.Create)))
	mux.Handle("PUT /notices/{id}", gates.Write(http.HandlerFunc(notices.Update)))
	mux.Handle("DELETE /notices/{id}", gates.Write(http.HandlerFunc(notices.Delete)))
}
