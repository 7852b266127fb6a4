package services

import (
	"context"
	"testing"

	"storefront/internal/models"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistService_AddIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.wishlists.Add(ctx, testSession, 3))
	require.NoError(t, f.wishlists.Add(ctx, testSession, 1))
	require.NoError(t, f.wishlists.Add(ctx, testSession, 3))

	state := f.state(t)
	assert.Equal(t, []string{"3", "1"}, state.Wishlist.IDs())
	assert.Equal(t, "info", state.Flashes[2].Category)
}

func TestWishlistService_AddUnknownProduct(t *testing.T) {
	f := newFixture(t)
	err := f.wishlists.Add(context.Background(), testSession, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistService_MaterializeKeepsOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.wishlists.Add(ctx, testSession, 3))
	require.NoError(t, f.wishlists.Add(ctx, testSession, 1))

	products, err := f.wishlists.Materialize(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, lo.Map(products, func(p models.Product, _ int) int { return p.ID }))
}

func TestMaterializeWishlist_SkipsStaleIDs(t *testing.T) {
	products := MaterializeWishlist(testCatalog(t), models.NewWishlist("2", "77", "x"))
	require.Len(t, products, 1)
	assert.Equal(t, "Pen", products[0].Name)

	assert.Empty(t, MaterializeWishlist(testCatalog(t), nil))
}

func TestWishlistService_RemoveAndMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.wishlists.Add(ctx, testSession, 1))
	require.NoError(t, f.wishlists.Add(ctx, testSession, 2))

	require.NoError(t, f.wishlists.MoveToCart(ctx, testSession, 1))
	state := f.state(t)
	assert.Equal(t, []string{"2"}, state.Wishlist.IDs())
	assert.Equal(t, 1, state.Cart.Quantity("1"))

	require.NoError(t, f.wishlists.Remove(ctx, testSession, 2))
	assert.True(t, f.state(t).Wishlist.IsEmpty())

	assert.ErrorIs(t, f.wishlists.MoveToCart(ctx, testSession, 99), ErrNotFound)
}
