package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tienda-storefront/internal/alert"
	"tienda-storefront/internal/auth"
	"tienda-storefront/internal/order"
)

// countingOrderClient records calls without testify's expectation
// machinery, which suits the concurrent fan-out better.
type countingOrderClient struct {
	mu sync.Mutex

	orderErr   error
	detailErrs map[int64]error
	stockErrs  map[int64]error
	stockGate  chan struct{}

	orders  []order.Order
	details []order.OrderLine
	stocks  map[int64]int
}

func newCountingClient() *countingOrderClient {
	return &countingOrderClient{
		detailErrs: map[int64]error{},
		stockErrs:  map[int64]error{},
		stocks:     map[int64]int{},
	}
}

func (c *countingOrderClient) CreateOrder(_ context.Context, o order.Order) (order.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.orderErr != nil {
		return order.Order{}, c.orderErr
	}
	o.ID = int64(100 + len(c.orders))
	c.orders = append(c.orders, o)
	return o, nil
}

func (c *countingOrderClient) CreateOrderLine(_ context.Context, line order.OrderLine) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.detailErrs[line.ProductID]; err != nil {
		return err
	}
	c.details = append(c.details, line)
	return nil
}

func (c *countingOrderClient) UpdateStock(_ context.Context, productID int64, quantity int) error {
	if c.stockGate != nil {
		<-c.stockGate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.stockErrs[productID]; err != nil {
		return err
	}
	c.stocks[productID] += quantity
	return nil
}

func (c *countingOrderClient) snapshot() (orders []order.Order, details []order.OrderLine, stocks map[int64]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	orders = append(orders, c.orders...)
	details = append(details, c.details...)
	stocks = map[int64]int{}
	for k, v := range c.stocks {
		stocks[k] = v
	}
	return
}

func loadedService(t *testing.T, client order.Client) (*Service, *auth.State, *alert.Recorder) {
	t.Helper()
	svc, _, state, recorder := newService(client)
	state.Login(auth.RoleCustomer)

	ctx := context.Background()
	require.NoError(t, svc.AddLine(ctx, testProduct(1, "Teclado", 25990), 2))
	require.NoError(t, svc.AddLine(ctx, testProduct(2, "Mouse", 9990), 1))
	return svc, state, recorder
}

func TestCheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	client := newCountingClient()
	svc, _, state, recorder := newService(client)
	state.Login(auth.RoleCustomer)

	_, err := svc.Checkout(ctx, "ana@example.com")
	assert.ErrorIs(t, err, ErrCartEmpty)

	orders, details, stocks := client.snapshot()
	assert.Empty(t, orders, "empty cart must trigger zero network calls")
	assert.Empty(t, details)
	assert.Empty(t, stocks)

	messages := recorder.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, alert.KindWarning, messages[0].Kind)
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	ctx := context.Background()
	client := newCountingClient()
	svc, _, _, _ := newService(client)
	require.NoError(t, svc.AddLine(ctx, testProduct(1, "Teclado", 25990), 1))

	_, err := svc.Checkout(ctx, "ana@example.com")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	orders, _, _ := client.snapshot()
	assert.Empty(t, orders)
	// Cart is untouched.
	assert.Len(t, svc.Lines(), 1)
}

func TestCheckoutSuccessTwoLines(t *testing.T) {
	ctx := context.Background()
	client := newCountingClient()
	svc, _, _ := loadedService(t, client)

	receipt, err := svc.Checkout(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, receipt)

	outcomes := receipt.Wait()
	orders, details, stocks := client.snapshot()

	require.Len(t, orders, 1, "exactly one order-create call")
	assert.Equal(t, "ana@example.com", orders[0].Email)
	assert.Equal(t, order.StatusNew, orders[0].Status)
	assert.True(t, orders[0].Total.Equal(decimal.NewFromInt(2*25990+9990)))

	require.Len(t, details, 2, "one order-line call per cart line")
	for _, d := range details {
		assert.Equal(t, receipt.OrderID, d.Order.ID,
			"every line references the backend-assigned order id")
	}

	assert.Equal(t, map[int64]int{1: 2, 2: 1}, stocks)
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.NoError(t, o.DetailErr)
		assert.NoError(t, o.StockErr)
	}

	assert.Empty(t, svc.Lines(), "cart is empty after checkout")
}

func TestCheckoutClearsCartBeforeFanOutResolves(t *testing.T) {
	ctx := context.Background()
	client := newCountingClient()
	client.stockGate = make(chan struct{})
	svc, _, _ := loadedService(t, client)

	receipt, err := svc.Checkout(ctx, "ana@example.com")
	require.NoError(t, err)

	// Stock updates are still blocked, yet the cart is already gone.
	assert.Empty(t, svc.Lines(),
		"cart must be cleared without waiting for per-line calls")

	close(client.stockGate)
	receipt.Wait()
}

func TestCheckoutOrderCreateFailureLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	client := newCountingClient()
	client.orderErr = errors.New("pedidos api down")
	svc, _, recorder := loadedService(t, client)

	before := svc.Lines()
	_, err := svc.Checkout(ctx, "ana@example.com")
	require.Error(t, err)

	_, details, stocks := client.snapshot()
	assert.Empty(t, details, "no order-line call may happen after order-create failure")
	assert.Empty(t, stocks, "no stock call may happen after order-create failure")
	assert.Equal(t, before, svc.Lines(), "cart before == cart after")

	var failures int
	for _, msg := range recorder.Messages() {
		if msg.Kind == alert.KindDanger {
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one user-visible failure message")
}

func TestCheckoutLineFailuresAreIsolated(t *testing.T) {
	ctx := context.Background()
	client := newCountingClient()
	client.detailErrs[1] = errors.New("detail rejected")
	svc, _, recorder := loadedService(t, client)

	receipt, err := svc.Checkout(ctx, "ana@example.com")
	require.NoError(t, err, "per-line failures do not fail checkout")

	outcomes := receipt.Wait()
	_, details, stocks := client.snapshot()

	require.Len(t, details, 1, "the sibling line still registered its detail")
	assert.Equal(t, int64(2), details[0].ProductID)

	assert.Equal(t, map[int64]int{2: 1}, stocks,
		"the sibling's stock update fires; the failed line's does not")

	byProduct := map[int64]LineOutcome{}
	for _, o := range outcomes {
		byProduct[o.ProductID] = o
	}
	assert.Error(t, byProduct[1].DetailErr)
	assert.NoError(t, byProduct[1].StockErr, "stock is never attempted after a detail failure")
	assert.NoError(t, byProduct[2].DetailErr)
	assert.NoError(t, byProduct[2].StockErr)

	assert.Empty(t, svc.Lines(), "cart clears even with partial line failures")

	var dangers []string
	for _, msg := range recorder.Messages() {
		if msg.Kind == alert.KindDanger {
			dangers = append(dangers, msg.Text)
		}
	}
	require.Len(t, dangers, 1)
	assert.Contains(t, dangers[0], "Teclado")
}

func TestCheckoutStockFailureDoesNotUndoDetail(t *testing.T) {
	ctx := context.Background()
	client := newCountingClient()
	client.stockErrs[2] = errors.New("stock service down")
	svc, _, _ := loadedService(t, client)

	receipt, err := svc.Checkout(ctx, "ana@example.com")
	require.NoError(t, err)
	outcomes := receipt.Wait()

	_, details, _ := client.snapshot()
	assert.Len(t, details, 2, "both details stay registered despite the stock failure")

	byProduct := map[int64]LineOutcome{}
	for _, o := range outcomes {
		byProduct[o.ProductID] = o
	}
	assert.NoError(t, byProduct[2].DetailErr)
	assert.Error(t, byProduct[2].StockErr)
}

func TestCheckoutOrderDate(t *testing.T) {
	ctx := context.Background()
	client := newCountingClient()
	svc, _, _ := loadedService(t, client)

	receipt, err := svc.Checkout(ctx, "ana@example.com")
	require.NoError(t, err)
	receipt.Wait()

	orders, _, _ := client.snapshot()
	require.Len(t, orders, 1)
	assert.Equal(t, time.Now().Format("2006-01-02"), orders[0].Date)
}

// mock.Mock is kept exercised for the simpler, serial expectations.
func TestCheckoutWithMockClient(t *testing.T) {
	ctx := context.Background()
	orders := new(MockOrderClient)
	orders.On("CreateOrder", mock.Anything, mock.Anything).
		Return(order.Order{ID: 55}, nil)
	orders.On("CreateOrderLine", mock.Anything, mock.MatchedBy(func(l order.OrderLine) bool {
		return l.Order.ID == 55
	})).Return(nil)
	orders.On("UpdateStock", mock.Anything, int64(1), 2).Return(nil)

	svc, _, state, _ := newService(orders)
	state.Login(auth.RoleCustomer)
	require.NoError(t, svc.AddLine(ctx, testProduct(1, "Teclado", 25990), 2))

	receipt, err := svc.Checkout(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(55), receipt.OrderID)

	receipt.Wait()
	orders.AssertExpectations(t)
}
