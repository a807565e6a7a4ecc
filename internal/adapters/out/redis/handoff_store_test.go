package redis_test

import (
	"testing"
	"time"

	"marketplace/internal/adapters/out/redis"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*redis.HandoffStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewHandoffStore(client), server
}

func handoff() cart.Handoff {
	return cart.Handoff{
		CustomerID: kernel.NewUUID(),
		Cart: cart.ClientCart{
			RestaurantID: kernel.NewUUID(),
			Lines: []cart.Line{
				{MenuItemID: kernel.NewUUID(), Quantity: 2, ClaimedPrice: decimal.RequireFromString("120.00")},
			},
			ClaimedTotal: decimal.RequireFromString("270.00"),
		},
	}
}

func TestHandoffStore_PutThenGet(t *testing.T) {
	store, _ := newStore(t)
	h := handoff()

	id, err := store.Put(t.Context(), h, time.Minute)
	require.NoError(t, err)

	got, err := store.Get(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, h.CustomerID, got.CustomerID)
	assert.Equal(t, h.Cart.RestaurantID, got.Cart.RestaurantID)
	require.Len(t, got.Cart.Lines, 1)
	assert.True(t, h.Cart.Lines[0].ClaimedPrice.Equal(got.Cart.Lines[0].ClaimedPrice))
	assert.True(t, h.Cart.ClaimedTotal.Equal(got.Cart.ClaimedTotal))
}

func TestHandoffStore_GetLeavesHandoffInPlace(t *testing.T) {
	store, _ := newStore(t)
	h := handoff()

	id, err := store.Put(t.Context(), h, time.Minute)
	require.NoError(t, err)

	for range 2 {
		got, getErr := store.Get(t.Context(), id)
		require.NoError(t, getErr)
		assert.Equal(t, h.CustomerID, got.CustomerID)
	}
}

func TestHandoffStore_DeleteRemovesHandoff(t *testing.T) {
	store, _ := newStore(t)

	id, err := store.Put(t.Context(), handoff(), time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Delete(t.Context(), id))
	_, err = store.Get(t.Context(), id)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	assert.NoError(t, store.Delete(t.Context(), id))
}

func TestHandoffStore_ExpiredHandoffIsGone(t *testing.T) {
	store, server := newStore(t)

	id, err := store.Put(t.Context(), handoff(), 15*time.Minute)
	require.NoError(t, err)

	server.FastForward(16 * time.Minute)

	_, err = store.Get(t.Context(), id)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestHandoffStore_RejectsBadInput(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Put(t.Context(), handoff(), 0)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = store.Get(t.Context(), kernel.UUID{})
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	assert.ErrorIs(t, store.Delete(t.Context(), kernel.UUID{}), kernel.ErrUUIDIsNotConstructed)
}

func TestHandoffStore_UnreachableServer(t *testing.T) {
	store, server := newStore(t)
	server.Close()

	_, err := store.Put(t.Context(), handoff(), time.Minute)
	assert.ErrorIs(t, err, errs.ErrPersistence)
}
