package catalog

import "github.com/shopspring/decimal"

// Product is the internal product record the storefront works with,
// mapped from the productos API wire format.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Categories  []Category      `json:"categories"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// CategoryGroup is one bucket of the grouped-by-category listing.
type CategoryGroup struct {
	Category string    `json:"categoria"`
	Products []Product `json:"productos"`
}
