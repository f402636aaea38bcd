package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"booknetwork/internal/book"
	"booknetwork/internal/feedback"
	"booknetwork/internal/httpx"
	"booknetwork/internal/loan"
	"booknetwork/internal/platform/config"
	"booknetwork/internal/platform/lock"
	"booknetwork/internal/platform/metrics"
	"booknetwork/internal/platform/postgres"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiPrefix = "/api/v1"

// storage bundles the repositories of one backend.
type storage struct {
	books     book.Repository
	loans     loan.Repository
	feedbacks feedback.Repository
	ready     func(ctx context.Context) error
	close     func()
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return memoryStorage(), nil
	case config.StoragePostgres:
		pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return storage{}, err
		}
		return storage{
			books:     book.NewPostgresRepo(pool, cfg.DBTimeout),
			loans:     loan.NewPostgresRepo(pool, cfg.DBTimeout),
			feedbacks: feedback.NewPostgresRepo(pool, cfg.DBTimeout),
			ready:     pool.Ping,
			close:     pool.Close,
		}, nil
	default:
		return storage{}, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

func memoryStorage() storage {
	return storage{
		books:     book.NewInMemoryRepo(),
		loans:     loan.NewInMemoryRepo(lock.NewSharded(0)),
		feedbacks: feedback.NewInMemoryRepo(),
		ready:     func(context.Context) error { return nil },
		close:     func() {},
	}
}

// newHandler wires services, routes and the middleware chain. ctx bounds
// background work such as rate limiter cleanup.
func newHandler(
	ctx context.Context,
	cfg config.Config,
	st storage,
	log *slog.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	bookService := book.NewService(st.books, book.WithLogger(log), book.WithMetrics(m))
	loanService := loan.NewService(st.loans, bookService, loan.WithLogger(log), loan.WithMetrics(m))
	feedbackService := feedback.NewService(st.feedbacks, bookService, feedback.WithLogger(log), feedback.WithMetrics(m))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := st.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	api := httpx.NewRouter(mux, apiPrefix, httpx.AuthMiddleware(cfg.JWTSecret))
	book.NewHTTPHandler(bookService).Register(api)
	loan.NewHTTPHandler(loanService).Register(api)
	feedback.NewHTTPHandler(feedbackService).Register(api)

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	return httpx.Chain(mux,
		httpx.RecoveryMiddleware(log),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log, m),
		httpx.SecurityHeadersMiddleware(false),
		httpx.CORSMiddleware(cfg.CORSOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		rateLimiter.Middleware,
	)
}
