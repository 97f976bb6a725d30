package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"tienda-storefront/internal/logger"
	"tienda-storefront/internal/metrics"
)

// Client talks to the productos API: catalog browsing for shoppers plus
// the admin CRUD screens.
type Client interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
	CreateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, id int64, p Product) (Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]Category, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error)
	ProductsGroupedByCategory(ctx context.Context) ([]CategoryGroup, error)
	SearchProducts(ctx context.Context, filter string) ([]Product, error)
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

func (c *client) ListProducts(ctx context.Context) ([]Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/productos", nil, "list_products")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListProducts, err)
	}

	var envelope embeddedProducts
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.FromCtx(ctx).Error("unexpected product list shape", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrListProducts, err)
	}

	return mapProducts(envelope.Embedded.ProductoList), nil
}

func (c *client) GetProduct(ctx context.Context, id int64) (Product, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/productos/%d", id), nil, "get_product")
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return Product{}, err
		}
		return Product{}, fmt.Errorf("%w: %v", ErrGetProduct, err)
	}

	var dto productDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrGetProduct, err)
	}

	return mapProduct(dto), nil
}

func (c *client) CreateProduct(ctx context.Context, p Product) (Product, error) {
	body, err := c.do(ctx, http.MethodPost, "/productos", toDTO(p), "create_product")
	if err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrCreateProduct, err)
	}

	var dto productDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrCreateProduct, err)
	}

	logger.FromCtx(ctx).Info("product created", zap.Int64("product_id", dto.ID))
	return mapProduct(dto), nil
}

func (c *client) UpdateProduct(ctx context.Context, id int64, p Product) (Product, error) {
	body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/productos/%d", id), toDTO(p), "update_product")
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return Product{}, err
		}
		return Product{}, fmt.Errorf("%w: %v", ErrUpdateProduct, err)
	}

	var dto productDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrUpdateProduct, err)
	}

	logger.FromCtx(ctx).Info("product updated", zap.Int64("product_id", id))
	return mapProduct(dto), nil
}

func (c *client) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/productos/%d", id), nil, "delete_product"); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteProduct, err)
	}

	logger.FromCtx(ctx).Info("product deleted", zap.Int64("product_id", id))
	return nil
}

func (c *client) ListCategories(ctx context.Context) ([]Category, error) {
	body, err := c.do(ctx, http.MethodGet, "/categorias", nil, "list_categories")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListCategories, err)
	}

	var envelope embeddedCategories
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListCategories, err)
	}

	return envelope.Embedded.CategoriaList, nil
}

func (c *client) ProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	path := fmt.Sprintf("/productos/product-by-category?categoria=%d", categoryID)
	body, err := c.do(ctx, http.MethodGet, path, nil, "products_by_category")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListProducts, err)
	}

	var dtos []productDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListProducts, err)
	}

	return mapProducts(dtos), nil
}

func (c *client) ProductsGroupedByCategory(ctx context.Context) ([]CategoryGroup, error) {
	body, err := c.do(ctx, http.MethodGet, "/productos/productos-agrupados-categoria", nil, "products_grouped")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListProducts, err)
	}

	var dtos []groupDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListProducts, err)
	}

	groups := make([]CategoryGroup, 0, len(dtos))
	for _, g := range dtos {
		groups = append(groups, CategoryGroup{
			Category: g.Categoria,
			Products: mapProducts(g.Productos),
		})
	}
	return groups, nil
}

func (c *client) SearchProducts(ctx context.Context, filter string) ([]Product, error) {
	path := "/productos/buscar?filtro=" + url.QueryEscape(filter)
	body, err := c.do(ctx, http.MethodGet, path, nil, "search_products")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchProducts, err)
	}

	var dtos []productDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchProducts, err)
	}

	return mapProducts(dtos), nil
}

func (c *client) do(ctx context.Context, method, path string, payload any, operation string) ([]byte, error) {
	timer := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues("productos", operation).
			Observe(time.Since(timer).Seconds())
	}()

	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return bodyBytes, nil
}
