package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/uacwallet/creditledger/internal/adapter/http/handler"
	"github.com/uacwallet/creditledger/internal/adapter/http/middleware"
	"github.com/uacwallet/creditledger/internal/infrastructure/auth"
	"github.com/uacwallet/creditledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	LedgerHandler    *handler.LedgerHandler
	ExchangeHandler  *handler.ExchangeHandler
	TransferHandler  *handler.TransferHandler
	PaymentHandler   *handler.PaymentHandler
	RateHandler      *handler.RateHandler
	HealthHandler    *handler.HealthHandler
	Logger           zerolog.Logger
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	JWTManager       *auth.JWTManager
	RateLimit        *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	if cfg.RateLimit != nil {
		r.Use(cfg.RateLimit.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.Auth(cfg.JWTManager))
		}

		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts and wallet views
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Delete("/{id}", cfg.AccountHandler.Deactivate)
			r.Get("/{id}/balances", cfg.LedgerHandler.Summary)
			r.Get("/{id}/balances/{currency}", cfg.LedgerHandler.Balance)
			r.Get("/{id}/entries", cfg.LedgerHandler.Entries)
		})

		// Operations
		r.Post("/exchanges", cfg.ExchangeHandler.Create)
		r.Post("/transfers", cfg.TransferHandler.Create)
		r.Post("/payments/confirm", cfg.PaymentHandler.Confirm)

		// Rates
		r.Route("/rates", func(r chi.Router) {
			r.Get("/", cfg.RateHandler.List)
			r.Get("/{currency}", cfg.RateHandler.Get)
			r.Put("/{currency}", cfg.RateHandler.Set)
			r.Get("/{currency}/history", cfg.RateHandler.History)
		})

		// Operational checks
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
