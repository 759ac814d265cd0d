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

func titles(items []models.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Title)
	}
	return out
}

func seedMenu(t *testing.T) *repositories.Store {
	t.Helper()
	store := repositories.NewStore(testutil.NewDB(t))
	mains := testutil.CreateCategory(t, store, "main", "Main")
	desserts := testutil.CreateCategory(t, store, "desserts", "Desserts")
	testutil.CreateMenuItem(t, store, mains, "Pizza", "9.99", true)
	testutil.CreateMenuItem(t, store, mains, "Lasagna", "12.50", false)
	testutil.CreateMenuItem(t, store, desserts, "Tiramisu", "6.00", true)
	testutil.CreateMenuItem(t, store, desserts, "100%_Cake", "7.25", false)
	return store
}

func TestMenuItemRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	store := seedMenu(t)

	all := query.Page{Number: 1, Size: 10}
	list := func(filter repositories.MenuItemFilter) []string {
		items, total, err := store.MenuItems().List(ctx, filter, all)
		require.NoError(t, err)
		assert.Equal(t, int64(len(items)), total)
		return titles(items)
	}

	assert.Equal(t, []string{"100%_Cake", "Lasagna", "Pizza", "Tiramisu"}, list(repositories.MenuItemFilter{}))
	assert.Equal(t, []string{"Lasagna", "Pizza"}, list(repositories.MenuItemFilter{CategoryTitle: "Main"}))
	assert.Empty(t, list(repositories.MenuItemFilter{CategoryTitle: "Drinks"}))

	maxPrice := decimal.RequireFromString("9.99")
	assert.Equal(t, []string{"100%_Cake", "Pizza", "Tiramisu"}, list(repositories.MenuItemFilter{MaxPrice: &maxPrice}))

	featured := true
	assert.Equal(t, []string{"Pizza", "Tiramisu"}, list(repositories.MenuItemFilter{Featured: &featured}))

	assert.Equal(t, []string{"Tiramisu"}, list(repositories.MenuItemFilter{Search: "RAM"}))
	assert.Equal(t, []string{"100%_Cake"}, list(repositories.MenuItemFilter{Search: "%_"}))

	assert.Equal(t, []string{"Tiramisu", "100%_Cake", "Pizza", "Lasagna"}, list(repositories.MenuItemFilter{Ordering: "price"}))
	assert.Equal(t, []string{"Lasagna", "Pizza", "100%_Cake", "Tiramisu"}, list(repositories.MenuItemFilter{Ordering: "-price"}))

	items, _, err := store.MenuItems().List(ctx, repositories.MenuItemFilter{CategoryTitle: "Main"}, all)
	require.NoError(t, err)
	assert.Equal(t, "main", items[0].Category.Slug)

	_, _, err = store.MenuItems().List(ctx, repositories.MenuItemFilter{Ordering: "inventory"}, all)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestMenuItemRepository_ListPagination(t *testing.T) {
	ctx := context.Background()
	store := seedMenu(t)

	items, total, err := store.MenuItems().List(ctx, repositories.MenuItemFilter{}, query.Page{Number: 2, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, []string{"Pizza", "Tiramisu"}, titles(items))

	items, total, err = store.MenuItems().List(ctx, repositories.MenuItemFilter{}, query.Page{Number: 3, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMenuItemRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewStore(testutil.NewDB(t))
	mains := testutil.CreateCategory(t, store, "main", "Main")
	pizza := testutil.CreateMenuItem(t, store, mains, "Pizza", "9.99", true)
	soup := testutil.CreateMenuItem(t, store, mains, "Soup", "4.50", false)
	carl := testutil.CreateUser(t, store, "carl")

	// Test update writes zero values
	pizza.Featured = false
	pizza.Price = decimal.RequireFromString("10.50")
	require.NoError(t, store.MenuItems().Update(ctx, pizza))
	got, err := store.MenuItems().GetByID(ctx, pizza.ID)
	require.NoError(t, err)
	assert.False(t, got.Featured)
	assert.Equal(t, "10.50", got.Price.StringFixed(2))

	err = store.MenuItems().Update(ctx, &models.MenuItem{ID: "missing", Title: "x", Price: decimal.NewFromInt(1), CategoryID: mains.ID})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	// Test deleting an item drops it from carts
	entry := &models.CartEntry{UserID: carl.ID, MenuItemID: soup.ID, Quantity: 1, UnitPrice: soup.Price}
	entry.Reprice()
	require.NoError(t, store.Cart().Save(ctx, entry))
	require.NoError(t, store.MenuItems().Delete(ctx, soup.ID))
	_, err = store.Cart().FindEntry(ctx, carl.ID, soup.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	// Test items on an order are kept
	order := &models.Order{UserID: carl.ID, Total: pizza.Price}
	require.NoError(t, store.Orders().Create(ctx, order))
	require.NoError(t, store.Orders().CreateItems(ctx, []models.OrderItem{{
		OrderID: order.ID, MenuItemID: pizza.ID, Quantity: 1, UnitPrice: pizza.Price, Price: pizza.Price,
	}}))
	err = store.MenuItems().Delete(ctx, pizza.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	assert.True(t, errors.Is(store.MenuItems().Delete(ctx, "missing"), apperr.ErrNotFound))
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewStore(testutil.NewDB(t))
	testutil.CreateCategory(t, store, "starters", "Starters")
	testutil.CreateCategory(t, store, "desserts", "Desserts")

	all, err := store.Categories().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Desserts", all[0].Title)

	err = store.Categories().Create(ctx, &models.Category{Slug: "starters", Title: "Again"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	_, err = store.Categories().GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
