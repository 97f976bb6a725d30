// Package session is the key-value persistence layer for per-visitor
// state: the cart snapshot and the logged-in identity snapshot. It plays
// the part browser localStorage played for the storefront.
package session

import "context"

// Fixed storage keys shared by the cart orchestrator and the identity
// service. Values are JSON snapshots.
const (
	CartKey         = "carts"
	LoggedInUserKey = "loggedInUser"
)

// Store is the session persistence contract. Implementations must degrade
// gracefully: when the backing store is unreachable, Get reports a miss and
// Set/Remove are silent no-ops. Callers never see an error from this layer.
type Store interface {
	// Get returns the stored value and true, or "" and false when the key
	// is absent or the store is unavailable.
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Remove(ctx context.Context, key string)
	// IsAvailable probes the store with a scoped write/remove.
	IsAvailable(ctx context.Context) bool
}
