package order

import "github.com/shopspring/decimal"

func init() {
	// The pedidos API speaks plain JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// StatusNew is the status the pedidos API assigns to a freshly registered
// order.
const StatusNew = 1

// Order is the purchase record created once per checkout attempt. The id
// is assigned by the backend and stays 0 until creation succeeds; the
// record is immutable from this side afterwards.
type Order struct {
	ID     int64           `json:"id"`
	Email  string          `json:"email"`
	Total  decimal.Decimal `json:"montoTotal"`
	Date   string          `json:"fecha"`
	Status int             `json:"estado"`
}

// OrderRef is the foreign-key stub embedded in every line.
type OrderRef struct {
	ID int64 `json:"id"`
}

// OrderLine is one per-product line item. It must never be created before
// its parent order has a backend-assigned id.
type OrderLine struct {
	ID        int64           `json:"id"`
	Order     OrderRef        `json:"orden"`
	ProductID int64           `json:"idProducto"`
	UnitPrice decimal.Decimal `json:"precio"`
	Quantity  int             `json:"cantidad"`
	LineTotal decimal.Decimal `json:"montoTotal"`
}
