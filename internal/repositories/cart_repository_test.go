package repositories_test

import (
	"context"
	"errors"
	"testing"

	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/query"
	"littlelemon/internal/repositories"
	"littlelemon/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartEntry(user *models.User, item *models.MenuItem, qty int) *models.CartEntry {
	e := &models.CartEntry{UserID: user.ID, MenuItemID: item.ID, Quantity: qty, UnitPrice: item.Price}
	e.Reprice()
	return e
}

func TestCartRepository(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewStore(testutil.NewDB(t))
	mains := testutil.CreateCategory(t, store, "main", "Main")
	pizza := testutil.CreateMenuItem(t, store, mains, "Pizza", "9.99", true)
	soup := testutil.CreateMenuItem(t, store, mains, "Soup", "4.50", false)
	carl := testutil.CreateUser(t, store, "carl")
	eve := testutil.CreateUser(t, store, "eve")

	require.NoError(t, store.Cart().Save(ctx, cartEntry(carl, pizza, 2)))
	require.NoError(t, store.Cart().Save(ctx, cartEntry(carl, soup, 1)))
	require.NoError(t, store.Cart().Save(ctx, cartEntry(eve, soup, 3)))

	// Test one line per (user, menu item)
	err := store.Cart().Save(ctx, cartEntry(carl, pizza, 1))
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	// Test updating an existing line
	entry, err := store.Cart().FindEntry(ctx, carl.ID, pizza.ID)
	require.NoError(t, err)
	entry.Quantity = 3
	entry.Reprice()
	require.NoError(t, store.Cart().Save(ctx, entry))
	entry, err = store.Cart().FindEntry(ctx, carl.ID, pizza.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, entry.Quantity)
	assert.Equal(t, "29.97", entry.Price.StringFixed(2))

	page := query.Page{Number: 1, Size: 10}
	entries, total, err := store.Cart().ListByUser(ctx, carl.ID, repositories.CartFilter{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "carl", entries[0].User.Username)

	_, total, err = store.Cart().ListByUser(ctx, carl.ID, repositories.CartFilter{MenuItemID: soup.ID}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	maxPrice := decimal.RequireFromString("5")
	entries, total, err = store.Cart().ListByUser(ctx, carl.ID, repositories.CartFilter{MaxPrice: &maxPrice}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Soup", entries[0].MenuItem.Title)

	all, err := store.Cart().FindAllByUser(ctx, carl.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	removed, err := store.Cart().ClearByUser(ctx, carl.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	// Test other carts are untouched
	all, err = store.Cart().FindAllByUser(ctx, eve.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = store.Cart().FindEntry(ctx, carl.ID, pizza.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCartRepositoryInsertKeepsExistingLine(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewStore(testutil.NewDB(t))
	mains := testutil.CreateCategory(t, store, "main", "Main")
	pizza := testutil.CreateMenuItem(t, store, mains, "Pizza", "9.99", true)
	carl := testutil.CreateUser(t, store, "carl")

	first := cartEntry(carl, pizza, 2)
	inserted, err := store.Cart().Insert(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEmpty(t, first.ID)

	// A second writer that never saw the first line
	inserted, err = store.Cart().Insert(ctx, cartEntry(carl, pizza, 5))
	require.NoError(t, err)
	assert.False(t, inserted)

	all, err := store.Cart().FindAllByUser(ctx, carl.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, 2, all[0].Quantity)
}
