// Command storefront runs the Nance storefront: it wires the backend
// client, local state, and the application services, and serves the local
// REST facade the UI consumes.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/nance-store/storefront/internal/app"
	"github.com/nance-store/storefront/internal/app/httpapi"
	"github.com/nance-store/storefront/internal/app/metrics"
	"github.com/nance-store/storefront/internal/backend"
	"github.com/nance-store/storefront/internal/config"
	"github.com/nance-store/storefront/internal/localstore"
	"github.com/nance-store/storefront/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	log := logger.NewDefault("storefront")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Error("load configuration")
		os.Exit(1)
	}

	store, cleanup, err := openStore(cfg)
	if err != nil {
		log.WithError(err).Error("open local state")
		os.Exit(1)
	}
	defer cleanup()

	client := backend.NewClient(backend.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
	})

	application, err := app.New(app.Options{Backend: client, Store: store}, log)
	if err != nil {
		log.WithError(err).Error("build application")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := application.Start(ctx); err != nil {
		log.WithError(err).Error("start application")
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           metrics.InstrumentHandler(httpapi.NewHandler(application)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.ListenAddr).
			WithField("backend", cfg.APIBaseURL).
			Info("storefront listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http server shutdown")
	}
	if err := application.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("application shutdown")
	}
}

// openStore picks the local state backend: redis when configured, a slot
// file when a path is set, in-memory otherwise.
func openStore(cfg config.Config) (localstore.Store, func(), error) {
	switch {
	case cfg.RedisAddr != "":
		store, err := localstore.OpenRedis(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case cfg.StatePath != "":
		store, err := localstore.OpenFile(cfg.StatePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		return localstore.NewMemory(), func() {}, nil
	}
}
