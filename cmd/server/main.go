package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/transfer-calculator/internal/calculator"
	"github.com/anyulbade/transfer-calculator/internal/config"
	"github.com/anyulbade/transfer-calculator/internal/database"
	"github.com/anyulbade/transfer-calculator/internal/handler"
	"github.com/anyulbade/transfer-calculator/internal/handoff"
	"github.com/anyulbade/transfer-calculator/internal/middleware"
	"github.com/anyulbade/transfer-calculator/internal/repository"
	"github.com/anyulbade/transfer-calculator/internal/scheduler"
	"github.com/anyulbade/transfer-calculator/internal/service"
	"github.com/anyulbade/transfer-calculator/internal/session"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		loader service.CatalogLoader = repository.NewStaticCatalogRepository()
		db     handler.Pinger
		rates  scheduler.Reloader
	)

	if cfg.RateSource == config.RateSourcePostgres {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
				log.Fatal().Err(err).Msg("failed to run migrations")
			}
			if err := database.SeedData(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("failed to seed data")
			}
		}
		loader = repository.NewCatalogRepository(pool)
		db = pool
	}

	currencies := service.NewCurrencyService(loader)
	if err := currencies.Reload(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load currency catalog")
	}
	if cfg.RateSource == config.RateSourcePostgres {
		rates = currencies
	}

	discounts := service.NewDiscountService(currencies)
	fees := service.NewFeeService(currencies, discounts)
	errs := service.NewErrorService(currencies)

	sessions := session.NewRegistry(calculator.Deps{
		Currencies: currencies,
		Fees:       fees,
		Errors:     errs,
	})
	defer sessions.CloseAll()

	var (
		store  handoff.Store
		purger scheduler.Purger
	)
	switch cfg.HandoffBackend {
	case config.HandoffRedis:
		client := handoff.NewRedisClient(handoff.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		rs := handoff.NewRedisStore(client)
		if err := rs.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
		}
		store = rs
	default:
		ms := handoff.NewMemoryStore()
		store, purger = ms, ms
	}
	handoffSvc := handoff.NewService(store, cfg.HandoffTTL)

	sched := scheduler.New(scheduler.Config{
		RateRefreshSchedule:  cfg.RateRefreshSchedule,
		SessionSweepSchedule: cfg.SessionSweepSchedule,
		SessionIdleTimeout:   cfg.SessionIdleTimeout,
	}, rates, sessions, purger)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	handler.SetupSwagger(router)
	handler.RegisterRoutes(router, handler.Handlers{
		Health:     handler.NewHealthHandler(cfg.RateSource, db),
		Currency:   handler.NewCurrencyHandler(currencies),
		Fee:        handler.NewFeeHandler(fees, discounts, errs),
		Calculator: handler.NewCalculatorHandler(sessions, handoffSvc),
		Handoff:    handler.NewHandoffHandler(handoffSvc),
		Markdown:   handler.NewMarkdownHandler(cfg.ContentDir),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("rate_source", cfg.RateSource).
			Str("handoff_backend", cfg.HandoffBackend).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
