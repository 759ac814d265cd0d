package services_test

import (
	"context"
	"testing"

	"littlelemon/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddIncrementsLineInsertedMeanwhile(t *testing.T) {
	store, mock := newMockStore(t)
	cartColumns := []string{"id", "user_id", "menu_item_id", "quantity", "unit_price", "price"}

	mock.ExpectQuery(`SELECT \* FROM "menu_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "featured", "category_id"}).
			AddRow("item-1", "Pizza", "9.99", true, "cat-1"))
	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title"}).AddRow("cat-1", "main", "Main"))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cart_entries" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(cartColumns))
	// Another request created the line between the read and the insert
	mock.ExpectExec(`INSERT INTO "cart_entries" .* ON CONFLICT .* DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "cart_entries" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(cartColumns).AddRow("entry-1", customer.UserID, "item-1", 2, "9.99", "19.98"))
	mock.ExpectExec(`UPDATE "cart_entries" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry, err := services.NewCartService(store).Add(context.Background(), customer, services.CartInput{MenuItemID: "item-1", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "entry-1", entry.ID)
	assert.Equal(t, 3, entry.Quantity)
	assert.Equal(t, "29.97", entry.Price.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
