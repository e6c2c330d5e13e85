package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/groupadmin/internal/config"
	"github.com/mmynk/groupadmin/internal/groups"
	"github.com/mmynk/groupadmin/internal/latency"
	"github.com/mmynk/groupadmin/internal/metrics"
	"github.com/mmynk/groupadmin/internal/middleware"
	"github.com/mmynk/groupadmin/internal/service"
	"github.com/mmynk/groupadmin/internal/storage"
	"github.com/mmynk/groupadmin/internal/storage/memory"
	"github.com/mmynk/groupadmin/internal/storage/seed"
	"github.com/mmynk/groupadmin/internal/storage/sqlite"
	"github.com/mmynk/groupadmin/pkg/api/apiconnect"
	"github.com/mmynk/groupadmin/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.Store)

	if cfg.Seed {
		seeded, err := seed.LoadIfEmpty(context.Background(), store)
		if err != nil {
			slog.Error("Failed to seed storage", "error", err)
			os.Exit(1)
		}
		slog.Info("Seed data checked", "seeded", seeded)
	}

	strategy := latency.None()
	if cfg.Latency {
		strategy = latency.Default().Scale(cfg.LatencyScale)
	}
	svc := groups.New(store,
		groups.WithLatency(strategy),
		groups.WithDefaultManager(cfg.DefaultManager),
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(svc, metrics.New(store)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", cfg.Addr, "latency", cfg.Latency)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

func openStore(cfg config.Config) (storage.Store, error) {
	if cfg.Store == config.StoreSQLite {
		return sqlite.New(cfg.DBPath)
	}
	return memory.New(), nil
}

// newHandler mounts the Connect services, metrics and health endpoints.
func newHandler(svc *groups.Service, m *metrics.Metrics) http.Handler {
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()

	userPath, userHandler := apiconnect.NewUserServiceHandler(service.NewUserService(svc), interceptors)
	mux.Handle(userPath, userHandler)

	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(service.NewGroupService(svc), interceptors)
	mux.Handle(groupPath, groupHandler)

	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect streaming clients)
	return h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
