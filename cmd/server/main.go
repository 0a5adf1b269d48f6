package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diycomponents/storefront/internal/api"
	"github.com/diycomponents/storefront/internal/api/metrics"
	"github.com/diycomponents/storefront/internal/api/visitor"
	"github.com/diycomponents/storefront/internal/core/service"
	"github.com/diycomponents/storefront/internal/infrastructure/config"
	"github.com/diycomponents/storefront/internal/infrastructure/remote"
	redisstore "github.com/diycomponents/storefront/internal/infrastructure/store/redis"
	"github.com/diycomponents/storefront/internal/notify"
	"github.com/diycomponents/storefront/pkg/logger"
)

const noticeBuffer = 16

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.VisitorSecret == "" {
		if cfg.Env == "production" {
			log.Fatal().Msg("VISITOR_SECRET is required in production")
		}
		cfg.VisitorSecret = "dev-only-visitor-secret"
		log.Warn().Msg("VISITOR_SECRET not set, using development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:         cfg.Redis.Addr,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// Shared catalog pipeline: public endpoints, one cached service for all
	// visitors.
	catalogClient := remote.NewClient(cfg.API.BaseURL, cfg.API.Timeout, remote.NoCredentials{}, log)
	catalogCache := redisstore.NewCatalogCache(rdb, cfg.Redis.CacheTTL)
	catalog := service.NewCatalogService(remote.NewCatalogGateway(catalogClient), catalogCache, log)

	// Per-visitor wiring: each visitor gets a credential store scoped to
	// their ID, a remote client bound to it, and the session/cart pair on
	// top. The unauthorized hook closes the loop back into the session
	// manager so a 401 anywhere invalidates centrally.
	factory := func(visitorID string) *visitor.Container {
		creds := redisstore.NewCredentialStore(rdb, visitorID, cfg.Redis.CredentialTTL)
		client := remote.NewClient(cfg.API.BaseURL, cfg.API.Timeout, creds, log)
		hub := notify.NewHub(noticeBuffer)

		vlog := log.With().Str("visitor_id", visitorID).Logger()
		sessions := service.NewSessionManager(remote.NewAuthGateway(client), creds, hub, vlog)
		client.OnUnauthorized(func(ctx context.Context) {
			metrics.SessionEventsTotal.WithLabelValues("invalidated").Inc()
			sessions.Invalidate(ctx)
		})
		cart := service.NewCartSynchronizer(remote.NewCartGateway(client), sessions, hub, vlog)

		return &visitor.Container{ID: visitorID, Session: sessions, Cart: cart, Notices: hub}
	}

	visitors := visitor.NewRegistry(factory, 0, log)
	visitors.Start(ctx)

	e := api.NewRouter(visitors, catalog, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("api", cfg.API.BaseURL).Msg("storefront started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("storefront stopped cleanly")
}
