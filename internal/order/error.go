package order

import "errors"

var (
	ErrOrderNotCreated = errors.New("order has no backend-assigned id")

	ErrCreateOrderFailed     = errors.New("failed to register order")
	ErrCreateOrderLineFailed = errors.New("failed to register order detail")
	ErrUpdateStockFailed     = errors.New("failed to update stock")
)
