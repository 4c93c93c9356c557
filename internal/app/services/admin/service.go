// Package admin implements the product management flow: CRUD over the
// backend's product collection, gated by the administrator role. Every
// mutation is followed by a full list reload so the view never diverges
// from backend state.
package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/nance-store/storefront/internal/app/domain/product"
	authsvc "github.com/nance-store/storefront/internal/app/services/auth"
	"github.com/nance-store/storefront/internal/backend"
	"github.com/nance-store/storefront/internal/notify"
	"github.com/nance-store/storefront/pkg/logger"
)

var (
	// ErrForbidden rejects access without the administrator role.
	ErrForbidden = errors.New("admin role required")
	// ErrDeclined reports a delete whose confirmation gate was refused;
	// no backend call happens.
	ErrDeclined = errors.New("deletion not confirmed")
)

// Confirmer gates destructive operations on an explicit user confirmation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Service is the admin product-management flow.
type Service struct {
	client  *backend.Client
	auth    *authsvc.Service
	confirm Confirmer
	notify  notify.Notifier
	log     *logger.Logger
}

// New constructs the admin flow. A nil confirmer declines every delete.
func New(client *backend.Client, auth *authsvc.Service, confirm Confirmer, notifier notify.Notifier, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("admin")
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if confirm == nil {
		confirm = ConfirmerFunc(func(string) bool { return false })
	}
	return &Service{client: client, auth: auth, confirm: confirm, notify: notifier, log: log}
}

func (s *Service) gate() error {
	if !s.auth.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// List reloads the full product collection from the backend.
func (s *Service) List(ctx context.Context) ([]product.Product, error) {
	if err := s.gate(); err != nil {
		return nil, err
	}
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		s.notify.Error("could not load the catalog")
		return nil, err
	}
	return products, nil
}

// Search reloads the list and applies the client-side filter.
func (s *Service) Search(ctx context.Context, term string) ([]product.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(products, term), nil
}

// Filter keeps products whose name or category contains term,
// case-insensitively. An empty term keeps everything.
func Filter(products []product.Product, term string) []product.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			out = append(out, p)
		}
	}
	return out
}

// Create adds a product (the backend assigns the id) and returns the
// reloaded list.
func (s *Service) Create(ctx context.Context, p product.Product) ([]product.Product, error) {
	if err := s.gate(); err != nil {
		return nil, err
	}
	created, err := s.client.CreateProduct(ctx, p)
	if err != nil {
		s.notify.Error("could not save the product")
		return nil, err
	}
	s.notify.Success("product created")
	s.log.WithField("product_id", created.ID).Info("product created")
	return s.reload(ctx)
}

// Update modifies the product identified by p.ID and returns the reloaded
// list.
func (s *Service) Update(ctx context.Context, p product.Product) ([]product.Product, error) {
	if err := s.gate(); err != nil {
		return nil, err
	}
	updated, err := s.client.UpdateProduct(ctx, p)
	if err != nil {
		s.notify.Error("could not save the product")
		return nil, err
	}
	s.notify.Success("product updated")
	s.log.WithField("product_id", updated.ID).Info("product updated")
	return s.reload(ctx)
}

// Delete removes a product after the confirmation gate accepts, then
// returns the reloaded list. A declined confirmation makes no backend call.
func (s *Service) Delete(ctx context.Context, id string) ([]product.Product, error) {
	if err := s.gate(); err != nil {
		return nil, err
	}
	if !s.confirm.Confirm("delete product " + id + "?") {
		return nil, ErrDeclined
	}
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		s.notify.Error("could not delete the product")
		return nil, err
	}
	s.notify.Success("product deleted")
	s.log.WithField("product_id", id).Info("product deleted")
	return s.reload(ctx)
}

func (s *Service) reload(ctx context.Context) ([]product.Product, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		s.notify.Error("could not reload the catalog")
		return nil, err
	}
	return products, nil
}
