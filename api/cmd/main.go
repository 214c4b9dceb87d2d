package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/courtsplit/internal/application/session"
	"github.com/baechuer/courtsplit/internal/audit"
	"github.com/baechuer/courtsplit/internal/billing"
	"github.com/baechuer/courtsplit/internal/config"
	rediscache "github.com/baechuer/courtsplit/internal/infrastructure/caching/redis"
	"github.com/baechuer/courtsplit/internal/infrastructure/db/memory"
	"github.com/baechuer/courtsplit/internal/infrastructure/db/postgres"
	rabbitpub "github.com/baechuer/courtsplit/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/courtsplit/internal/logger"
	"github.com/baechuer/courtsplit/internal/transport/http/handlers"
	authmw "github.com/baechuer/courtsplit/internal/transport/http/middleware"
	"github.com/baechuer/courtsplit/internal/transport/http/router"
)

const shutdownTimeout = 10 * time.Second

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds every dependency the process owns.
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Cache     *rediscache.Client
	Publisher *rabbitpub.Publisher
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("config load failed")
	}

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = openDB(cfg.DatabaseURL)
		if err != nil {
			zlog.Fatal().Err(err).Msg("db init failed")
		}
		defer db.Close()
	} else {
		zlog.Warn().Msg("DATABASE_URL empty: using in-memory store")
	}

	app, err := NewApp(cfg, db)
	if err != nil {
		zlog.Fatal().Err(err).Msg("app wiring failed")
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	}()

	<-ctx.Done()
	zlog.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(sctx); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewApp wires the service. A nil db selects the in-memory store; empty REDIS_URL and
// RABBIT_URL disable the cache and the publisher.
func NewApp(cfg *config.Config, db *sql.DB) (*App, error) {
	app := &App{Config: cfg, DB: db}
	checks := map[string]handlers.Check{}

	// 1) Infrastructure
	var store session.EventStore = memory.New()
	if db != nil {
		store = postgres.New(db)
		checks["postgres"] = db.PingContext
	}

	var cache session.Cache
	if cfg.RedisURL != "" {
		c, err := rediscache.New(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		app.Cache = c
		cache = c
		checks["redis"] = c.Ping
		zlog.Info().Dur("bill_ttl", cfg.CacheTTLBill).Msg("bill cache ready")
	}

	var pub session.Publisher = session.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Publisher = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: domain events will not be published")
	}

	// 2) Application
	svc := session.New(store, sysClock{}, pub, cache, session.Settings{
		BillTTL:  cfg.CacheTTLBill,
		Location: cfg.EventLocation,
		Policy:   &billing.Policy{LateCancellationFine: cfg.LateCancelFine},
		Audit:    audit.New(zlog.Logger.With().Str("component", "session").Logger().Level(zerolog.InfoLevel)),
	})

	// 3) Transport
	h := handlers.NewSessionsHandler(svc)
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)
	z := handlers.NewHealthHandler(checks)

	// 4) Server
	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.New(h, auth, z, cfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
	return app, nil
}

// Close releases the cache and broker connections; the db belongs to main.
func (a *App) Close() {
	if a.Publisher != nil {
		_ = a.Publisher.Close()
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
}
