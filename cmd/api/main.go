package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hhdeals/internal/auth"
	"hhdeals/internal/config"
	"hhdeals/internal/db"
	"hhdeals/internal/deals"
	"hhdeals/internal/establishment"
	"hhdeals/internal/logger"
	"hhdeals/internal/middleware"
	"hhdeals/internal/preferences"
	"hhdeals/internal/router"
	"hhdeals/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {

	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ invalid config: %v", err)
	}

	// ───────────────────────── LOGGER ─────────────────────────
	zl, err := logger.New(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		log.Fatalf("❌ logger: %v", err)
	}
	defer zl.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("postgres init failed", zap.Error(err))
	}
	defer pgDB.Close()

	// ───────────────────────── REDIS ─────────────────────────
	var cache *storage.Cache
	if cfg.UsesRedis() {
		cache, err = storage.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, zl)
		if err != nil {
			if cfg.PreferencesBackend == config.BackendRedis {
				zl.Fatal("redis init failed", zap.Error(err))
			}
			zl.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// ───────────────────────── PREFERENCES ─────────────────────────
	backend, err := preferencesBackend(cfg, pgDB, cache)
	if err != nil {
		zl.Fatal("preferences backend init failed", zap.Error(err))
	}
	prefStore := preferences.NewStore(backend, zl)
	zl.Info("preferences backend ready", zap.String("backend", cfg.PreferencesBackend))

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)

	created, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		zl.Fatal("bootstrap admin failed", zap.Error(err))
	}
	if created {
		zl.Info("bootstrap admin created", zap.String("email", cfg.AdminEmail))
	}

	// ───────────────────────── CORE REPOS ─────────────────────────
	establishmentRepo := establishment.NewPostgresRepository(pgDB)
	dealRepo := deals.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	establishmentService := establishment.NewService(
		establishmentRepo,
		dealRepo,
		prefStore,
		cfg.Location,
		zl,
	)

	dealService := deals.NewService(
		dealRepo,
		establishmentRepo,
		prefStore,
		cfg.Location,
		cfg.RecommendLimit,
		zl,
	)

	// ───────────────────────── ROUTER ─────────────────────────
	deps := router.Deps{
		Auth:               auth.NewHandler(authService),
		Establishments:     establishment.NewHandler(establishmentService),
		Deals:              deals.NewHandler(dealService),
		Preferences:        preferences.NewHandler(prefStore),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		CORSOrigins:        cfg.CORSOrigins,
		Logger:             zl,
	}
	if cache != nil {
		deps.Counter = middleware.Counter(cache)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ───────────────────────── START ─────────────────────────
	go func() {
		zl.Info("🚀 API running",
			zap.String("addr", srv.Addr),
			zap.String("timezone", cfg.Location.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}

// --------------------------------------------------
func preferencesBackend(cfg *config.Config, pool *pgxpool.Pool, cache *storage.Cache) (preferences.Backend, error) {
	switch cfg.PreferencesBackend {
	case config.BackendRedis:
		return preferences.NewRedisBackend(cache), nil
	case config.BackendFile:
		return preferences.NewFileBackend(cfg.PreferencesFile)
	case config.BackendMemory:
		return preferences.NewMemoryBackend(), nil
	default:
		return preferences.NewPostgresBackend(pool), nil
	}
}
