package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/uacwallet/creditledger/internal/adapter/http"
	"github.com/uacwallet/creditledger/internal/adapter/http/handler"
	"github.com/uacwallet/creditledger/internal/adapter/http/middleware"
	postgresRepo "github.com/uacwallet/creditledger/internal/adapter/repository/postgres"
	redisRepo "github.com/uacwallet/creditledger/internal/adapter/repository/redis"
	"github.com/uacwallet/creditledger/internal/infrastructure/auth"
	"github.com/uacwallet/creditledger/internal/infrastructure/config"
	"github.com/uacwallet/creditledger/internal/infrastructure/logger"
	"github.com/uacwallet/creditledger/internal/infrastructure/metrics"
	"github.com/uacwallet/creditledger/internal/infrastructure/postgres"
	"github.com/uacwallet/creditledger/internal/infrastructure/redis"
	"github.com/uacwallet/creditledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "creditledger",
	})
	log.Logger = appLogger

	feeRate, err := decimal.NewFromString(cfg.TransferFeeRate)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.TransferFeeRate).Msg("invalid transfer fee rate")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	rateRepo := postgresRepo.NewRateRepository(pool)
	currencyRepo := postgresRepo.NewCurrencyRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()

	// Use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, balanceRepo, entryRepo, ledgerRepo, retrier)
	rateUC := usecase.NewRateUseCase(rateRepo, currencyRepo, idGen, cache, appMetrics)
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	exchangeUC := usecase.NewExchangeUseCase(ledgerUC, rateUC, idGen, appMetrics)
	transferUC := usecase.NewTransferUseCase(ledgerUC, idGen, cfg.FeeAccountID, appMetrics)
	paymentUC := usecase.NewPaymentUseCase(ledgerUC, entryRepo, idGen, usecase.DefaultBonusTiers(), appMetrics)

	// Handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, rateUC)
	exchangeHandler := handler.NewExchangeHandler(exchangeUC)
	transferHandler := handler.NewTransferHandler(transferUC, feeRate)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	rateHandler := handler.NewRateHandler(rateUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	routerCfg := httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		LedgerHandler:    ledgerHandler,
		ExchangeHandler:  exchangeHandler,
		TransferHandler:  transferHandler,
		PaymentHandler:   paymentHandler,
		RateHandler:      rateHandler,
		HealthHandler:    healthHandler,
		Logger:           appLogger,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
	}
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		routerCfg.JWTManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}
	if cfg.RateLimitRPS > 0 {
		routerCfg.RateLimit = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(routerCfg)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
