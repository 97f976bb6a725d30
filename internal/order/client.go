package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tienda-storefront/internal/logger"
	"tienda-storefront/internal/metrics"
)

// Client talks to the pedidos API. The three operations are independent
// remote calls: nothing here retries, rolls back or coordinates them.
type Client interface {
	CreateOrder(ctx context.Context, o Order) (Order, error)
	CreateOrderLine(ctx context.Context, line OrderLine) error
	UpdateStock(ctx context.Context, productID int64, quantity int) error
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) Client {
	return &client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateOrder registers a new order and returns it with the id the
// backend assigned.
func (c *client) CreateOrder(ctx context.Context, o Order) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("email", o.Email),
		zap.String("total", o.Total.String()),
	)

	timer := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues("pedidos", "create_order").
			Observe(time.Since(timer).Seconds())
	}()

	body, err := c.postJSON(ctx, c.baseURL+"/pedidos", o)
	if err != nil {
		log.Error("order registration failed", zap.Error(err))
		return Order{}, fmt.Errorf("%w: %v", ErrCreateOrderFailed, err)
	}

	var created Order
	if err := json.Unmarshal(body, &created); err != nil {
		log.Error("failed decoding order response", zap.Error(err))
		return Order{}, fmt.Errorf("%w: %v", ErrCreateOrderFailed, err)
	}

	log.Info("order registered", zap.Int64("order_id", created.ID))
	return created, nil
}

// CreateOrderLine registers one order detail. The parent order must
// already exist: a zero order id is rejected before any network call.
func (c *client) CreateOrderLine(ctx context.Context, line OrderLine) error {
	if line.Order.ID == 0 {
		return ErrOrderNotCreated
	}

	log := logger.FromCtx(ctx).With(
		zap.Int64("order_id", line.Order.ID),
		zap.Int64("product_id", line.ProductID),
		zap.Int("quantity", line.Quantity),
	)

	timer := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues("pedidos", "create_order_line").
			Observe(time.Since(timer).Seconds())
	}()

	if _, err := c.postJSON(ctx, c.baseURL+"/pedidos/detalles", line); err != nil {
		log.Error("order detail registration failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrCreateOrderLineFailed, err)
	}

	log.Info("order detail registered")
	return nil
}

// UpdateStock decrements a product's stock by the given quantity.
func (c *client) UpdateStock(ctx context.Context, productID int64, quantity int) error {
	log := logger.FromCtx(ctx).With(
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
	)

	timer := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues("pedidos", "update_stock").
			Observe(time.Since(timer).Seconds())
	}()

	url := fmt.Sprintf("%s/productos/%d/stock?cantidad=%d", c.baseURL, productID, quantity)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateStockFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("stock update request failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUpdateStockFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.Error("stock update rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return fmt.Errorf("%w: status %d", ErrUpdateStockFailed, resp.StatusCode)
	}

	log.Info("stock updated")
	return nil
}

func (c *client) postJSON(ctx context.Context, url string, payload any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return bodyBytes, nil
}
