package cart

import "github.com/shopspring/decimal"

// Quantity limits for a single line, enforced at add time.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Line is one product+quantity entry. The JSON tags match the snapshot
// format the legacy storefront persisted, so stored carts stay readable.
type Line struct {
	ProductID int64           `json:"idProducto"`
	Product   string          `json:"product"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// LineTotal recomputes unit price times quantity. Stored totals are never
// trusted at read time.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
