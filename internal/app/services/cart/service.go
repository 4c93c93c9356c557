// Package cart implements the cart store: the single source of truth for
// the shopping cart. Every mutation routes through Service so the stock
// bounds hold and the persisted slot never drifts from the in-memory lines.
package cart

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/nance-store/storefront/internal/app/domain/cart"
	"github.com/nance-store/storefront/internal/app/domain/product"
	"github.com/nance-store/storefront/internal/app/metrics"
	"github.com/nance-store/storefront/internal/localstore"
	"github.com/nance-store/storefront/internal/notify"
	"github.com/nance-store/storefront/pkg/logger"
)

var (
	// ErrNoStock rejects an increment or add past the product's stock.
	ErrNoStock = errors.New("no stock available")
	// ErrInvalidQuantity rejects a direct quantity update below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrNotFound reports a quantity change on a line that is not in the
	// cart. Removing an absent line is deliberately not an error.
	ErrNotFound = errors.New("product not in cart")
)

// Service owns the cart lines. All mutations recompute the persisted slot
// from the full line list; totals are always derived, never cached.
type Service struct {
	mu     sync.Mutex
	lines  []cart.Line
	store  localstore.Store
	notify notify.Notifier
	log    *logger.Logger
}

// New constructs the cart store and restores any persisted cart from the
// local slot. A missing or malformed slot yields an empty cart.
func New(store localstore.Store, notifier notify.Notifier, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("cart")
	}
	if store == nil {
		store = localstore.NewMemory()
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}

	s := &Service{store: store, notify: notifier, log: log}
	s.restore()
	return s
}

func (s *Service) restore() {
	raw, ok := s.store.Get(localstore.KeyCart)
	if !ok {
		return
	}

	var lines []cart.Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.log.WithError(err).Warn("persisted cart is malformed, starting empty")
		return
	}
	for _, l := range lines {
		if !l.Valid() {
			s.log.WithField("product_id", l.ID).Warn("dropping persisted line violating stock bounds")
			continue
		}
		s.lines = append(s.lines, l)
	}
}

// AddItem puts one unit of the product in the cart. A repeated add
// increments the existing line; once the quantity reaches the stock bound
// the add is rejected and the state is left unchanged.
func (s *Service) AddItem(p product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(p.ID); i >= 0 {
		if s.lines[i].Quantity >= s.lines[i].Stock {
			s.notify.Error("no stock available")
			metrics.RecordCartMutation("add", false)
			return ErrNoStock
		}
		s.lines[i].Quantity++
	} else {
		if p.Stock < 1 {
			s.notify.Error("no stock available")
			metrics.RecordCartMutation("add", false)
			return ErrNoStock
		}
		s.lines = append(s.lines, cart.Line{Product: p, Quantity: 1})
	}

	s.persistLocked()
	s.notify.Success("product added to cart")
	metrics.RecordCartMutation("add", true)
	return nil
}

// RemoveItem deletes the line for id. Removing an absent id is a no-op.
func (s *Service) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.persistLocked()
	s.notify.Success("product removed from cart")
	metrics.RecordCartMutation("remove", true)
}

// UpdateQuantity sets the line quantity directly. Quantities below 1 are
// rejected, never interpreted as removal; quantities above stock are
// rejected with a notice.
func (s *Service) UpdateQuantity(id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		metrics.RecordCartMutation("update", false)
		return ErrInvalidQuantity
	}

	i := s.indexLocked(id)
	if i < 0 {
		metrics.RecordCartMutation("update", false)
		return ErrNotFound
	}
	if quantity > s.lines[i].Stock {
		s.notify.Error("no stock available")
		metrics.RecordCartMutation("update", false)
		return ErrNoStock
	}

	s.lines[i].Quantity = quantity
	s.persistLocked()
	metrics.RecordCartMutation("update", true)
	return nil
}

// IncrementQuantity adds one unit to an existing line, bounded by stock.
func (s *Service) IncrementQuantity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		metrics.RecordCartMutation("increment", false)
		return ErrNotFound
	}
	if s.lines[i].Quantity >= s.lines[i].Stock {
		s.notify.Error("no stock available")
		metrics.RecordCartMutation("increment", false)
		return ErrNoStock
	}

	s.lines[i].Quantity++
	s.persistLocked()
	metrics.RecordCartMutation("increment", true)
	return nil
}

// DecrementQuantity removes one unit from an existing line. At quantity 1
// the decrement is a no-op; it never deletes the line.
func (s *Service) DecrementQuantity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		metrics.RecordCartMutation("decrement", false)
		return ErrNotFound
	}
	if s.lines[i].Quantity <= 1 {
		metrics.RecordCartMutation("decrement", true)
		return nil
	}

	s.lines[i].Quantity--
	s.persistLocked()
	metrics.RecordCartMutation("decrement", true)
	return nil
}

// Clear empties the cart.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persistLocked()
	s.notify.Success("cart cleared")
	metrics.RecordCartMutation("clear", true)
}

// Items returns a snapshot of the cart lines in insertion order.
func (s *Service) Items() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]cart.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the sum of quantities, recomputed from the line list.
func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.TotalItems(s.lines)
}

// TotalPrice is the sum of price*quantity, recomputed from the line list.
func (s *Service) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.TotalPrice(s.lines)
}

// Empty reports whether the cart has no lines.
func (s *Service) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *Service) indexLocked(id string) int {
	for i, l := range s.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked serializes the full line list into the cart slot. A storage
// failure is logged but never fails the mutation, matching the
// fire-and-forget localStorage model.
func (s *Service) persistLocked() {
	lines := s.lines
	if lines == nil {
		lines = []cart.Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		s.log.WithError(err).Error("encode cart for persistence")
		return
	}
	if err := s.store.Set(localstore.KeyCart, string(data)); err != nil {
		s.log.WithError(err).Warn("persist cart")
	}
}
