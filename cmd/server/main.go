package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/office-seating/internal/config"
	"github.com/iliyamo/office-seating/internal/database"
	"github.com/iliyamo/office-seating/internal/handler"
	"github.com/iliyamo/office-seating/internal/logging"
	"github.com/iliyamo/office-seating/internal/middleware"
	"github.com/iliyamo/office-seating/internal/queue"
	"github.com/iliyamo/office-seating/internal/repository"
	"github.com/iliyamo/office-seating/internal/repository/memory"
	"github.com/iliyamo/office-seating/internal/router"
	"github.com/iliyamo/office-seating/internal/seed"
	"github.com/iliyamo/office-seating/internal/service"
	"github.com/iliyamo/office-seating/internal/utils"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, "office-seating")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	probes := map[string]handler.Probe{}
	store, closeStore, err := openStore(ctx, cfg, log, probes)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.SeedOnStart {
		if err := seed.Run(ctx, store, cfg.BcryptCost, log); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		log.Warn("redis unavailable, caching and rate limiting disabled")
	} else {
		defer func() { _ = rdb.Close() }()
		probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	qcfg := config.LoadQueueConfig()
	var events service.EventPublisher
	if qcfg.URL != "" {
		events = queue.NewPublisher(qcfg.URL, qcfg.Queue)
	}

	tokens := utils.TokenSettings{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	}
	authSvc := service.NewAuthService(store, service.AuthOptions{
		Tokens:         tokens,
		RefreshTTLDays: cfg.RefreshTTLDays,
		BcryptCost:     cfg.BcryptCost,
	}, log)

	t := cfg.RequestTimeout
	h := router.Handlers{
		Health:    handler.NewHealthHandler(probes),
		Auth:      handler.NewAuthHandler(authSvc, tokens, log, t),
		Buildings: handler.NewBuildingHandler(service.NewBuildingService(store, log), log, t),
		Layouts:   handler.NewLayoutHandler(service.NewLayoutService(store, log), log, t),
		Walls:     handler.NewWallHandler(service.NewWallService(store, log), log, t),
		Furniture: handler.NewFurnitureHandler(service.NewFurnitureService(store, log), log, t),
		Seats:     handler.NewSeatHandler(service.NewSeatService(store, events, cfg.SeatLinkBase, log), log, t),
		Users:     handler.NewUserHandler(service.NewUserService(store, log), authSvc, log, t),
	}

	cacheCfg := config.LoadCacheConfig()
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestLogger(log))
	rl := config.LoadRateLimitConfig()
	router.Register(e, h, router.Middleware{
		Auth:          middleware.JWTAuth(tokens),
		RateLimit:     middleware.RateLimit(rl, rdb, log),
		AuthRateLimit: middleware.RateLimit(rl.PerIP("auth"), rdb, log),
		Cache:         middleware.ResponseCache(cacheCfg, rdb, log),
		Invalidate:    middleware.InvalidateOnWrite(cacheCfg, rdb, log),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("store", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})
	if qcfg.URL != "" && qcfg.ConsumerEnabled {
		g.Go(func() error {
			return queue.NewConsumer(qcfg.URL, qcfg.Queue, qcfg.LogPath, log).Run(gctx)
		})
	}
	return g.Wait()
}

// openStore returns the configured persistence backend and its close func.
// A SQL backend registers its ping under probes.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger, probes map[string]handler.Probe) (repository.Store, func(), error) {
	if cfg.DBDriver == "memory" {
		log.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}
	db, err := database.Open(ctx, database.Options{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		Name: cfg.DBName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	probes["database"] = db.PingContext
	return repository.NewSQLStore(db), func() { _ = db.Close() }, nil
}
