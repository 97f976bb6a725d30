package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreGetSetRemove(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok := store.Get(ctx, CartKey)
	assert.False(t, ok)

	store.Set(ctx, CartKey, `[{"idProducto":1}]`)
	val, ok := store.Get(ctx, CartKey)
	assert.True(t, ok)
	assert.Equal(t, `[{"idProducto":1}]`, val)

	store.Remove(ctx, CartKey)
	_, ok = store.Get(ctx, CartKey)
	assert.False(t, ok)
}

func TestMemoryStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Set(ctx, LoggedInUserKey, "{}")

	store.SetAvailable(false)
	assert.False(t, store.IsAvailable(ctx))

	// Writes and reads no-op instead of failing loudly.
	store.Set(ctx, CartKey, "ignored")
	_, ok := store.Get(ctx, LoggedInUserKey)
	assert.False(t, ok)
	store.Remove(ctx, LoggedInUserKey)

	store.SetAvailable(true)
	val, ok := store.Get(ctx, LoggedInUserKey)
	assert.True(t, ok)
	assert.Equal(t, "{}", val)
}

func TestMemoryStoresScopePerVisitor(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()

	stores.ForVisitor("a").Set(ctx, CartKey, "cart-a")
	stores.ForVisitor("b").Set(ctx, CartKey, "cart-b")

	val, ok := stores.ForVisitor("a").Get(ctx, CartKey)
	assert.True(t, ok)
	assert.Equal(t, "cart-a", val)

	val, _ = stores.ForVisitor("b").Get(ctx, CartKey)
	assert.Equal(t, "cart-b", val)
}

func TestRedisStoreKeyScoping(t *testing.T) {
	s := &RedisStore{prefix: "visitor42"}
	assert.Equal(t, "visitor42:carts", s.key(CartKey))

	scoped := s.WithPrefix("inner")
	assert.Equal(t, "visitor42:inner:carts", scoped.key(CartKey))

	bare := &RedisStore{}
	assert.Equal(t, "carts", bare.key(CartKey))
}
