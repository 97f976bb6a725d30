package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/cart"
	"tienda-storefront/internal/middleware"
	"tienda-storefront/internal/order"
)

// Quantity is validated by the cart service so an out-of-range value
// surfaces as the shopper-facing alert rather than a bare 400.
type addLineRequest struct {
	ProductID int64 `json:"idProducto" binding:"required"`
	Quantity  int   `json:"cantidad"`
}

func (h *handlers) viewCart(c *gin.Context) {
	sc := h.scope(c)
	sc.respond(c, http.StatusOK, gin.H{
		"lines": sc.cart.Lines(),
		"total": sc.cart.Total(),
	})
}

func (h *handlers) addCartLine(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "idProducto is required")
		return
	}

	sc := h.scope(c)
	ctx := c.Request.Context()

	product, err := h.deps.Catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "product unavailable"})
		return
	}

	if err := sc.cart.AddLine(ctx, product, req.Quantity); err != nil {
		sc.respond(c, http.StatusBadRequest, nil)
		return
	}

	sc.respond(c, http.StatusOK, gin.H{
		"lines": sc.cart.Lines(),
		"total": sc.cart.Total(),
	})
}

func (h *handlers) removeCartLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "invalid line index")
		return
	}

	sc := h.scope(c)
	if err := sc.cart.RemoveLine(c.Request.Context(), index); err != nil {
		badRequest(c, "cart index out of range")
		return
	}

	sc.respond(c, http.StatusOK, gin.H{
		"lines": sc.cart.Lines(),
		"total": sc.cart.Total(),
	})
}

func (h *handlers) clearCart(c *gin.Context) {
	sc := h.scope(c)
	sc.cart.Clear(c.Request.Context())
	sc.respond(c, http.StatusOK, gin.H{"lines": sc.cart.Lines()})
}

func (h *handlers) checkout(c *gin.Context) {
	sc := h.scope(c)
	ctx := c.Request.Context()
	email := middleware.UserEmailFrom(ctx)

	receipt, err := sc.cart.Checkout(ctx, email)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, cart.ErrNotAuthenticated):
			status = http.StatusUnauthorized
		case errors.Is(err, cart.ErrCartEmpty):
			status = http.StatusBadRequest
		case errors.Is(err, order.ErrCreateOrderFailed):
			status = http.StatusBadGateway
		}
		sc.respond(c, status, nil)
		return
	}

	// Waiting here only gathers the per-line outcomes into the response;
	// the cart was already cleared when the fan-out was dispatched.
	outcomes := receipt.Wait()
	lines := make([]gin.H, 0, len(outcomes))
	for _, o := range outcomes {
		lines = append(lines, gin.H{
			"idProducto": o.ProductID,
			"product":    o.Product,
			"detailOk":   o.DetailErr == nil,
			"stockOk":    o.StockErr == nil,
		})
	}

	sc.respond(c, http.StatusOK, gin.H{
		"orderId": receipt.OrderID,
		"lines":   lines,
	})
}
