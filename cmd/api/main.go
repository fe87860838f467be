package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"travelmate/internal/adapter/repo"
	"travelmate/internal/domain"
	"travelmate/internal/http/handlers"
	"travelmate/internal/http/httpapi"
	"travelmate/internal/infra"
	"travelmate/internal/infra/geoip"
	"travelmate/internal/ledger"
	"travelmate/internal/middleware"
	"travelmate/internal/notify"
	"travelmate/internal/providers/tripplan"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Ledger store selection: in-memory, embedded Badger, or Postgres.
	var (
		txs         domain.TransactionStore
		donations   domain.DonationStore
		communities domain.CommunityStore
		closeStore  func() error
	)
	switch cfg.LedgerStore {
	case infra.StorePostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		store := repo.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare ledger schema")
		}
		txs, donations, communities = store, store, store
		closeStore = func() error { pool.Close(); return nil }
	case infra.StoreBadger:
		store, err := repo.NewBadgerStore(cfg.DataDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open ledger store")
		}
		txs, donations, communities = store, store, store
		closeStore = store.Close
	default:
		store := repo.NewMemoryStore()
		txs, donations, communities = store, store, store
		closeStore = func() error { return nil }
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error().Err(err).Msg("failed to close ledger store")
		}
	}()

	// Confirmation events go to Redis when configured.
	var publisher ledger.Publisher
	if cfg.RedisAddr != "" {
		redisPub := notify.NewRedisPublisher(cfg.RedisAddr, cfg.RedisChannel)
		defer func() {
			_ = redisPub.Close()
		}()
		publisher = redisPub
	}

	svc := ledger.NewService(txs, donations, communities, ledger.Config{
		ConfirmDelay: cfg.ConfirmDelay,
		Currency:     cfg.Currency,
		Publisher:    publisher,
		Logger:       &logger,
	})
	defer svc.Close()

	var planner tripplan.Planner = tripplan.StaticPlanner{}
	if cfg.OpenAIAPIKey != "" {
		openaiPlanner, err := tripplan.NewOpenAIPlanner(tripplan.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			OnFallback: func(reason string, err error) {
				logger.Warn().Err(err).Str("reason", reason).Msg("trip planner fell back to static plan")
			},
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build trip planner")
		}
		planner = openaiPlanner
	}

	var countryLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer func() {
			_ = resolver.Close()
		}()
		countryLookup = resolver.CountryCode
	}

	app := handlers.NewApp(svc, planner, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CountryLookup:   countryLookup,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
