package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tienda-storefront/internal/alert"
	"tienda-storefront/internal/auth"
	"tienda-storefront/internal/catalog"
	"tienda-storefront/internal/logger"
	"tienda-storefront/internal/order"
	"tienda-storefront/internal/session"
)

// Service owns the cart and drives checkout: one order creation followed
// by an unserialized fan-out of per-line detail and stock calls against
// the pedidos API.
type Service struct {
	store    session.Store
	orders   order.Client
	state    *auth.State
	notifier alert.Notifier

	mu    sync.Mutex
	lines []Line
}

func NewService(store session.Store, orders order.Client, state *auth.State, notifier alert.Notifier) *Service {
	return &Service{
		store:    store,
		orders:   orders,
		state:    state,
		notifier: notifier,
	}
}

// LoadCart reads the persisted snapshot into memory. A missing key, an
// unavailable store or a corrupt snapshot all mean an empty cart.
func (s *Service) LoadCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil

	raw, ok := s.store.Get(ctx, session.CartKey)
	if !ok {
		return
	}

	var loaded []Line
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		logger.FromCtx(ctx).Warn("corrupt cart snapshot dropped", zap.Error(err))
		return
	}
	s.lines = loaded
}

// AddLine appends a product to the cart. Quantity outside [1,10] is a
// validation error: signalled to the caller, nothing added, no message
// beyond the one notification.
func (s *Service) AddLine(ctx context.Context, p catalog.Product, quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		s.notifier.Notify(alert.KindDanger,
			fmt.Sprintf("Quantity must be between %d and %d.", MinQuantity, MaxQuantity))
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	line := Line{
		ProductID: p.ID,
		Product:   p.Name,
		Image:     p.Image,
		UnitPrice: p.Price,
		Quantity:  quantity,
	}
	line.Total = line.LineTotal()

	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notifier.Notify(alert.KindSuccess, "Product added to the cart.")
	logger.FromCtx(ctx).Info("cart line added",
		zap.Int64("product_id", p.ID),
		zap.Int("quantity", quantity),
	)
	return nil
}

// RemoveLine deletes the line at index. An out-of-range index is
// signalled and leaves the remaining lines untouched.
func (s *Service) RemoveLine(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.lines) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	s.persistLocked(ctx)
	return nil
}

// Clear empties the cart and removes the persisted snapshot.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(ctx)
}

func (s *Service) clearLocked(ctx context.Context) {
	s.lines = nil
	s.store.Remove(ctx, session.CartKey)
}

// Lines returns a copy of the cart with every line total recomputed.
func (s *Service) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	for i := range out {
		out[i].Total = out[i].LineTotal()
	}
	return out
}

// Total is the sum of unit price times quantity over all lines, always
// recomputed rather than read from stored totals.
func (s *Service) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *Service) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

func (s *Service) persistLocked(ctx context.Context) {
	for i := range s.lines {
		s.lines[i].Total = s.lines[i].LineTotal()
	}

	raw, err := json.Marshal(s.lines)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to marshal cart snapshot", zap.Error(err))
		return
	}
	s.store.Set(ctx, session.CartKey, string(raw))
}
