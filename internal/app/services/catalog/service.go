// Package catalog implements the product catalog provider: it fetches the
// product list from the backend and exposes it as a read-only snapshot.
package catalog

import (
	"context"
	"sync"

	"github.com/nance-store/storefront/internal/app/domain/product"
	"github.com/nance-store/storefront/internal/backend"
	"github.com/nance-store/storefront/internal/notify"
	"github.com/nance-store/storefront/pkg/logger"
)

// Service caches the last successfully fetched product list. A failed
// refresh keeps the previous list.
type Service struct {
	client *backend.Client
	notify notify.Notifier
	log    *logger.Logger

	mu       sync.RWMutex
	products []product.Product
	fetched  bool
}

// New constructs the catalog provider. No network call happens until
// Refresh.
func New(client *backend.Client, notifier notify.Notifier, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("catalog")
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{client: client, notify: notifier, log: log}
}

// Refresh fetches the catalog from the backend. On failure the previous
// list is kept and an error notice is surfaced.
func (s *Service) Refresh(ctx context.Context) error {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		s.log.WithError(err).Warn("catalog fetch failed")
		s.notify.Error("could not load the catalog")
		return err
	}

	s.mu.Lock()
	s.products = products
	s.fetched = true
	s.mu.Unlock()

	s.log.WithField("count", len(products)).Info("catalog refreshed")
	return nil
}

// Products returns a snapshot of the current product list.
func (s *Service) Products() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]product.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Lookup finds a product by id in the cached list.
func (s *Service) Lookup(id string) (product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return product.Product{}, false
}

// Fetched reports whether at least one refresh has succeeded.
func (s *Service) Fetched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetched
}
