package cart

import "errors"

var (
	// -- Authentication --
	ErrNotAuthenticated = errors.New("user not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrIndexOutOfRange = errors.New("cart index out of range")
	ErrCartEmpty       = errors.New("cart is empty")
)
