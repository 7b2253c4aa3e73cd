package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tripledger/internal/config"
	"github.com/mmynk/tripledger/internal/ledger"
	"github.com/mmynk/tripledger/internal/metrics"
	"github.com/mmynk/tripledger/internal/middleware"
	"github.com/mmynk/tripledger/internal/service"
	"github.com/mmynk/tripledger/internal/storage"
	"github.com/mmynk/tripledger/internal/storage/memory"
	"github.com/mmynk/tripledger/internal/storage/sqlite"
	"github.com/mmynk/tripledger/pkg/logging"
	"github.com/mmynk/tripledger/pkg/tripapi/tripapiconnect"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tripledger: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.Store)

	handler, err := newHandler(cfg, store)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openStore(backend string) (storage.Store, error) {
	switch backend {
	case config.StoreSQLite:
		s, err := sqlite.New("")
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return memory.New(), nil
	}
}

// newHandler wires the ledger, the Connect service and the auxiliary routes.
func newHandler(cfg config.Config, store storage.Store) (http.Handler, error) {
	interceptors := []connect.Interceptor{middleware.LoggingInterceptor(nil)}
	var ledgerOpts []ledger.Option

	mux := http.NewServeMux()
	if cfg.Metrics {
		m := metrics.New()
		interceptors = append(interceptors, m.Interceptor())
		ledgerOpts = append(ledgerOpts, ledger.WithRecorder(m))
		mux.Handle("GET /metrics", m.Handler())
	}

	svc := service.NewTripService(ledger.New(store, ledgerOpts...))
	path, handler := tripapiconnect.NewTripServiceHandler(svc, connect.WithInterceptors(interceptors...))
	mux.Handle(path, handler)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	if cfg.StaticPath != "" {
		static, err := staticHandler(cfg.StaticPath)
		if err != nil {
			return nil, err
		}
		mux.Handle("/", static)
	}

	return middleware.HTTPLogging(middleware.CORS(mux)), nil
}

// staticHandler serves files under dir, falling back to index.html for unknown paths.
func staticHandler(dir string) (http.Handler, error) {
	staticDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve static path: %w", err)
	}
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("static path %s is not a directory", staticDir)
	}
	slog.Info("Serving static files", "path", staticDir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/"+tripapiconnect.TripServiceName+"/") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean("/"+urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}), nil
}
