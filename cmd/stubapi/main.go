// Command stubapi serves the in-memory stand-in for the remote storefront
// API, for local development without the real backend.
package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/nance-store/storefront/internal/stubapi"
	"github.com/nance-store/storefront/pkg/logger"
)

func main() {
	addr := flag.String("addr", ":8081", "Listen address")
	flag.Parse()

	if v := os.Getenv("STUBAPI_ADDR"); v != "" {
		*addr = v
	}

	log := logger.NewDefault("stubapi")
	server := &http.Server{
		Addr:              *addr,
		Handler:           stubapi.New(log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.WithField("addr", *addr).Info("stub API listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("http server failed")
		os.Exit(1)
	}
}
