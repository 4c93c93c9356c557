// Package checkout implements the checkout flow. Payment is simulated: no
// authorization call leaves this process. Anyone wiring a real payment
// provider replaces Submit's confirmation step.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nance-store/storefront/internal/app/metrics"
	cartsvc "github.com/nance-store/storefront/internal/app/services/cart"
	"github.com/nance-store/storefront/internal/notify"
	"github.com/nance-store/storefront/pkg/logger"
)

// ErrEmptyCart gates checkout: an empty cart renders the back-to-catalog
// state instead of the form.
var ErrEmptyCart = errors.New("cart is empty")

// Form is the shipping and payment data collected from the customer.
type Form struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

// Validate enforces the required fields. Validation failures happen before
// any state change.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if strings.TrimSpace(f.CardNumber) == "" {
		return fmt.Errorf("card number is required")
	}
	return nil
}

// Confirmation summarizes a completed (simulated) purchase.
type Confirmation struct {
	OrderNumber string    `json:"order_number"`
	Items       int       `json:"items"`
	Total       float64   `json:"total"`
	PlacedAt    time.Time `json:"placed_at"`
}

// Service drives checkout over the cart store.
type Service struct {
	cart   *cartsvc.Service
	notify notify.Notifier
	log    *logger.Logger
}

// New constructs the checkout flow.
func New(cart *cartsvc.Service, notifier notify.Notifier, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("checkout")
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{cart: cart, notify: notifier, log: log}
}

// Ready reports whether checkout can be rendered at all; an empty cart
// cannot check out.
func (s *Service) Ready() bool {
	return !s.cart.Empty()
}

// Submit finalizes the purchase. The empty-cart gate runs before
// validation; a validation failure blocks submission and leaves the cart
// untouched. On success the cart is cleared and a confirmation is returned.
func (s *Service) Submit(ctx context.Context, form Form) (Confirmation, error) {
	if s.cart.Empty() {
		metrics.RecordCheckout("empty_cart")
		return Confirmation{}, ErrEmptyCart
	}
	if err := form.Validate(); err != nil {
		s.notify.Error("please complete all required fields")
		metrics.RecordCheckout("invalid")
		return Confirmation{}, err
	}
	if err := ctx.Err(); err != nil {
		return Confirmation{}, err
	}

	conf := Confirmation{
		OrderNumber: uuid.New().String(),
		Items:       s.cart.TotalItems(),
		Total:       s.cart.TotalPrice(),
		PlacedAt:    time.Now().UTC(),
	}

	s.cart.Clear()
	s.notify.Success("payment processed successfully")
	metrics.RecordCheckout("completed")
	s.log.WithField("order_number", conf.OrderNumber).
		WithField("total", conf.Total).
		Info("checkout completed")
	return conf, nil
}
