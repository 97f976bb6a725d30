package cart

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tienda-storefront/internal/alert"
	"tienda-storefront/internal/dates"
	"tienda-storefront/internal/logger"
	"tienda-storefront/internal/metrics"
	"tienda-storefront/internal/order"
)

// LineOutcome is the result of one line's detail + stock pair.
type LineOutcome struct {
	ProductID int64
	Product   string
	DetailErr error
	StockErr  error
}

// Receipt tracks a dispatched checkout. The cart is already cleared by
// the time the caller holds one; Wait is for observers (and tests) that
// care how the per-line calls ended.
type Receipt struct {
	OrderID int64

	wg       sync.WaitGroup
	mu       sync.Mutex
	outcomes []LineOutcome
}

// Wait blocks until every per-line call resolved and returns the
// outcomes. Order between lines is not defined.
func (r *Receipt) Wait() []LineOutcome {
	r.wg.Wait()
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LineOutcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

func (r *Receipt) record(o LineOutcome) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, o)
	r.mu.Unlock()
}

// Checkout registers the order, fans out one detail + stock call pair per
// line, then clears the cart without waiting for the fan-out to resolve.
// Partial per-line failures surface as notifications but do not block the
// success path; that matches the legacy storefront and is deliberate.
//
// Only an authenticated session may check out. An empty cart is rejected
// before any network call. If order creation itself fails, checkout
// aborts and the cart is left untouched.
func (s *Service) Checkout(ctx context.Context, email string) (*Receipt, error) {
	metrics.CheckoutAttempts.Inc()
	log := logger.FromCtx(ctx).With(zap.String("email", email))

	if !s.state.Validate() {
		log.Warn("checkout blocked, session invalid")
		return nil, ErrNotAuthenticated
	}

	s.mu.Lock()
	if len(s.lines) == 0 {
		s.mu.Unlock()
		s.notifier.Notify(alert.KindWarning, "Your cart is empty.")
		return nil, ErrCartEmpty
	}
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	total := s.totalLocked()
	s.mu.Unlock()

	created, err := s.orders.CreateOrder(ctx, order.Order{
		Email:  email,
		Total:  total,
		Date:   dates.Today(),
		Status: order.StatusNew,
	})
	if err != nil {
		metrics.CheckoutOrderFailures.Inc()
		s.notifier.Notify(alert.KindDanger, "Order registration failed.")
		return nil, err
	}

	log = log.With(zap.Int64("order_id", created.ID))
	log.Info("order registered, dispatching lines", zap.Int("line_count", len(lines)))

	receipt := &Receipt{OrderID: created.ID}
	receipt.wg.Add(len(lines))

	// Lines race each other on purpose: each goroutine serializes only its
	// own detail call before its own stock call. No rollback anywhere.
	for _, line := range lines {
		go func(l Line) {
			defer receipt.wg.Done()
			receipt.record(s.dispatchLine(ctx, created.ID, l))
		}(line)
	}

	// Cleared before the fan-out resolves, like the legacy storefront. A
	// detail or stock failure after this point never restores the cart.
	s.Clear(ctx)
	s.notifier.Notify(alert.KindSuccess, fmt.Sprintf("Order #%d registered.", created.ID))

	return receipt, nil
}

func (s *Service) dispatchLine(ctx context.Context, orderID int64, l Line) LineOutcome {
	outcome := LineOutcome{ProductID: l.ProductID, Product: l.Product}
	log := logger.FromCtx(ctx).With(
		zap.Int64("order_id", orderID),
		zap.Int64("product_id", l.ProductID),
	)

	outcome.DetailErr = s.orders.CreateOrderLine(ctx, order.OrderLine{
		Order:     order.OrderRef{ID: orderID},
		ProductID: l.ProductID,
		UnitPrice: l.UnitPrice,
		Quantity:  l.Quantity,
		LineTotal: l.LineTotal(),
	})
	if outcome.DetailErr != nil {
		metrics.CheckoutLineFailures.WithLabelValues("detail").Inc()
		log.Error("order detail registration failed", zap.Error(outcome.DetailErr))
		s.notifier.Notify(alert.KindDanger,
			fmt.Sprintf("Order detail registration failed for %s.", l.Product))
		return outcome
	}

	outcome.StockErr = s.orders.UpdateStock(ctx, l.ProductID, l.Quantity)
	if outcome.StockErr != nil {
		metrics.CheckoutLineFailures.WithLabelValues("stock").Inc()
		log.Error("stock update failed", zap.Error(outcome.StockErr))
		s.notifier.Notify(alert.KindDanger,
			fmt.Sprintf("Stock update failed for %s.", l.Product))
	}

	return outcome
}
