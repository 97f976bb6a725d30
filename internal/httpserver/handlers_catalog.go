package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/catalog"
)

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (h *handlers) searchProducts(c *gin.Context) {
	products, err := h.deps.Catalog.SearchProducts(c.Request.Context(), c.Query("filtro"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (h *handlers) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid product id")
		return
	}

	p, err := h.deps.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (h *handlers) productsByCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid category id")
		return
	}

	products, err := h.deps.Catalog.ProductsByCategory(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (h *handlers) productsGrouped(c *gin.Context) {
	groups, err := h.deps.Catalog.ProductsGroupedByCategory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": groups})
}

func (h *handlers) createProduct(c *gin.Context) {
	var p catalog.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid product payload")
		return
	}

	created, err := h.deps.Catalog.CreateProduct(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func (h *handlers) updateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid product id")
		return
	}

	var p catalog.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid product payload")
		return
	}

	updated, err := h.deps.Catalog.UpdateProduct(c.Request.Context(), id, p)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid product id")
		return
	}

	if err := h.deps.Catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete product"})
		return
	}
	c.Status(http.StatusNoContent)
}
