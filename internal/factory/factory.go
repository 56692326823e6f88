package factory

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/yoBruxo/PTbotKND/internal/config"
	"github.com/yoBruxo/PTbotKND/internal/dependencies/clock"
	"github.com/yoBruxo/PTbotKND/internal/events"
	"github.com/yoBruxo/PTbotKND/internal/registry"
	"github.com/yoBruxo/PTbotKND/internal/services/auth"
	"github.com/yoBruxo/PTbotKND/internal/services/party"
	"github.com/yoBruxo/PTbotKND/internal/storage"
	"github.com/yoBruxo/PTbotKND/internal/storage/memory"
	redisstorage "github.com/yoBruxo/PTbotKND/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	Storage    storage.Storage
	Registry   *registry.Registry
	Dispatcher *events.Dispatcher
	Clock      clock.Clock

	PartyController *party.Controller
	AuthService     *auth.Service
}

// New creates the application with all dependencies wired from config
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	switch cfg.Storage.Type {
	case config.StorageTypeMemory, "":
		store = memory.New()
	case config.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.Redis.URL
		if cfg.Storage.Redis.PoolSize > 0 {
			redisCfg.PoolSize = cfg.Storage.Redis.PoolSize
		}
		if cfg.Storage.Redis.MinIdleConns > 0 {
			redisCfg.MinIdleConns = cfg.Storage.Redis.MinIdleConns
		}
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("creating redis storage: %w", err)
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}

	clk := clock.New()
	reg := registry.New(store, logger)
	dispatcher := events.NewDispatcher(logger)
	controller := party.NewController(reg, dispatcher, clk, cfg.Party.AutoCloseDelay, logger)
	authService := auth.New(cfg.Auth.OperatorTokenHash, logger)

	return &App{
		Storage:         store,
		Registry:        reg,
		Dispatcher:      dispatcher,
		Clock:           clk,
		PartyController: controller,
		AuthService:     authService,
	}, nil
}

// Shutdown stops background work owned by the app
func (a *App) Shutdown() {
	a.PartyController.Shutdown()
	a.Dispatcher.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		_ = closer.Close()
	}
}
