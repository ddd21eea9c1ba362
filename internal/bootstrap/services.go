package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/srl-logistica/rotaportal/config"
	redisadapter "github.com/srl-logistica/rotaportal/internal/adapters/redis"
	"github.com/srl-logistica/rotaportal/internal/data"
	"github.com/srl-logistica/rotaportal/internal/ports"
	"github.com/srl-logistica/rotaportal/internal/service"
)

// ServiceContainer holds all initialized services.
type ServiceContainer struct {
	Vouchers   *service.VoucherService
	Sessions   *service.SessionService
	Admin      *service.AdminGate
	Controller *service.AccessController
	Videos     *service.VideoService
	Notices    *service.NoticeService
	Broadcast  ports.Broadcaster
}

// ServicesConfig contains dependencies for service initialization.
type ServicesConfig struct {
	Config *config.AppConfig
	DB     *sql.DB
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// InitServices builds the full service graph from storage connections.
func InitServices(cfg ServicesConfig) ServiceContainer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Config.AdminAuth.UsesPlaintext() {
		logger.Warn("admin password hash unset; using plaintext comparison (development only)")
	}

	broadcast := redisadapter.NewBroadcaster(cfg.Redis)
	sessionStore := redisadapter.NewSessionStore(cfg.Redis)

	vouchers := service.NewVoucherService(service.VoucherServiceOptions{
		Repo:      data.NewVoucherRepo(cfg.DB),
		Broadcast: broadcast,
		Config:    cfg.Config.Access,
	})
	sessions := service.NewSessionService(service.SessionServiceOptions{
		Store:  sessionStore,
		Config: cfg.Config.Access,
		Logger: logger,
	})
	admin := service.NewAdminGate(service.AdminGateOptions{
		Config:    cfg.Config.AdminAuth,
		Broadcast: broadcast,
		Logger:    logger,
	})
	controller := service.NewAccessController(service.AccessControllerOptions{
		Sessions: sessions,
		Admin:    admin,
	})
	videos := service.NewVideoService(service.VideoServiceOptions{
		Repo:      data.NewVideoRepo(cfg.DB),
		Broadcast: broadcast,
		Logger:    logger,
	})
	notices := service.NewNoticeService(service.NoticeServiceOptions{
		Repo:      data.NewNoticeRepo(cfg.DB),
		Broadcast: broadcast,
		Logger:    logger,
	})

	return ServiceContainer{
		Vouchers:   vouchers,
		Sessions:   sessions,
		Admin:      admin,
		Controller: controller,
		Videos:     videos,
		Notices:    notices,
		Broadcast:  broadcast,
	}
}
