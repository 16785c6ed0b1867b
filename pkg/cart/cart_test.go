package cart

import (
	"context"
	"testing"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart() (CartService, Router, store.Repository, *clock.FakeClock) {
	c := clock.Fake(time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC))
	repo := store.NewMemoryRepository()
	r := NewRouter(c)
	return NewCartService(repo, r), r, repo, c
}

func TestAddToShoppingCartNeverMerges(t *testing.T) {
	ctx := context.Background()
	svc, _, _, c := newTestCart()

	req := domain.AddToShoppingCartRequest{Name: "Apples", Quantity: 3, Unit: domain.UnitPiece}
	first, err := svc.AddToShoppingCart(ctx, req)
	require.NoError(t, err)
	c.Advance(time.Second)
	second, err := svc.AddToShoppingCart(ctx, req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.AddedAt.After(first.AddedAt))

	items, err := svc.GetShoppingCartItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
}

func TestRouteDepletedAddsSingleUnit(t *testing.T) {
	ctx := context.Background()
	_, r, repo, _ := newTestCart()

	item, err := r.RouteDepleted(ctx, repo, domain.Event{
		Type:       domain.EventDepleted,
		FoodItemID: 4,
		Name:       "Flour",
		Unit:       domain.UnitKilogram,
	})
	require.NoError(t, err)
	assert.Equal(t, "Flour", item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, domain.UnitKilogram, item.Unit)
}

func TestRemoveFromShoppingCart(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestCart()

	added, err := svc.AddToShoppingCart(ctx, domain.AddToShoppingCartRequest{Name: "Salt", Quantity: 1, Unit: domain.UnitGram})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromShoppingCart(ctx, added.ID))
	assert.ErrorIs(t, svc.RemoveFromShoppingCart(ctx, added.ID), domain.ErrCartItemNotFound)

	items, err := svc.GetShoppingCartItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
