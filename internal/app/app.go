package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"log/slog"
	"net/http"
	"playerd/auth"
	"playerd/domain"
	"playerd/gates/server"
	"playerd/gates/storage/redis"
	"playerd/gates/storage/sqldb"
	"playerd/internal/config"
	"playerd/internal/metrics"
	"playerd/internal/pkg"
	"time"
)

type App struct {
	log        *slog.Logger
	db         *sqlx.DB
	cache      *redis.HandleCache
	httpServer *http.Server
}

// New connects the store, runs migrations and reconciliation, and builds the
// HTTP server. Nothing listens until Run.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	const op = "app.New"

	if err := cfg.ValidateJWT(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, store, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	a := &App{log: log, db: db}

	var cache domain.HandleCache = domain.NopCache{}
	if cfg.Redis.Addr != "" {
		a.cache, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cache = a.cache
		log.Info("handle cache ready", "op", op, "addr", cfg.Redis.Addr)
	}

	tokens := auth.NewService(log, cfg.JWT.Secret, cfg.JWT.TTL, pkg.NormalClock{})
	players := domain.NewPlayerService(store, cache, tokens, log)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	_ = server.NewServer(players, metrics.New(), cfg.HTTP, log, router)

	a.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// Migrate applies migrations and the startup reconciliation, then closes the
// connection.
func Migrate(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, _, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	return db.Close()
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*sqlx.DB, *sqldb.Store, error) {
	const op = "app.openStore"

	db, err := sqldb.Open(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if err := sqldb.Migrate(ctx, db.DB, cfg.DB.Driver); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	store := sqldb.NewStore(db, log)
	if _, err := store.Reconcile(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	log.Info("database ready", "op", op, "driver", cfg.DB.Driver)
	return db, store, nil
}

func (a *App) Addr() string {
	return a.httpServer.Addr
}

func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

func (a *App) Run() error {
	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and closes
// the database and cache handles.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.httpServer.Shutdown(ctx)
	if a.cache != nil {
		err = errors.Join(err, a.cache.Close())
	}
	return errors.Join(err, a.db.Close())
}
