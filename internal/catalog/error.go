package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")

	ErrListProducts   = errors.New("failed to list products")
	ErrGetProduct     = errors.New("failed to get product")
	ErrCreateProduct  = errors.New("failed to create product")
	ErrUpdateProduct  = errors.New("failed to update product")
	ErrDeleteProduct  = errors.New("failed to delete product")
	ErrListCategories = errors.New("failed to list categories")
	ErrSearchProducts = errors.New("failed to search products")
)
