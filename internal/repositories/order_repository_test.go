package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"littlelemon/internal/access"
	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/query"
	"littlelemon/internal/repositories"
	"littlelemon/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewStore(testutil.NewDB(t))
	mains := testutil.CreateCategory(t, store, "main", "Main")
	pizza := testutil.CreateMenuItem(t, store, mains, "Pizza", "9.99", true)
	carl := testutil.CreateUser(t, store, "carl")
	dora := testutil.CreateUser(t, store, "dora", access.GroupDeliveryCrew)

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	order := &models.Order{UserID: carl.ID, Total: decimal.Zero, Date: day}
	require.NoError(t, store.Orders().Create(ctx, order))
	require.NoError(t, store.Orders().CreateItems(ctx, []models.OrderItem{{
		OrderID: order.ID, MenuItemID: pizza.ID, Quantity: 2,
		UnitPrice: pizza.Price, Price: decimal.RequireFromString("19.98"),
	}}))
	require.NoError(t, store.Orders().UpdateTotal(ctx, order.ID, decimal.RequireFromString("19.98")))

	got, err := store.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "19.98", got.Total.StringFixed(2))
	assert.Equal(t, "carl", got.User.Username)
	assert.Nil(t, got.DeliveryCrew)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Main", got.Items[0].MenuItem.Category.Title)
	assert.Equal(t, "2026-03-14", got.Date.Format(query.DateLayout))

	require.NoError(t, store.Orders().UpdateDelivery(ctx, order.ID, true, &dora.ID))
	got, err = store.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.Status)
	assert.Equal(t, "dora", got.DeliveryCrew.Username)

	page := query.Page{Number: 1, Size: 10}
	_, total, err := store.Orders().List(ctx, repositories.OrderFilter{AssignedTo: dora.ID}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	_, total, err = store.Orders().List(ctx, repositories.OrderFilter{OnOrBefore: &day}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	err = store.Orders().UpdateDelivery(ctx, "missing", true, nil)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	require.NoError(t, store.Orders().Delete(ctx, order.ID))
	_, err = store.Orders().GetByID(ctx, order.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.True(t, errors.Is(store.Orders().Delete(ctx, order.ID), apperr.ErrNotFound))

	// The menu item is free to go once no order references it
	assert.NoError(t, store.MenuItems().Delete(ctx, pizza.ID))
}
