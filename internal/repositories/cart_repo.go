package repositories

import (
	"context"

	"littlelemon/internal/models"
	"littlelemon/internal/query"

	"github.com/shopspring/decimal"
)

// CartFilter narrows a cart listing.
type CartFilter struct {
	MenuItemID string
	MaxPrice   *decimal.Decimal
}

// CartRepository defines the interface for cart data access. Every method is
// scoped to a single user.
type CartRepository interface {
	ListByUser(ctx context.Context, userID string, filter CartFilter, page query.Page) ([]models.CartEntry, int64, error)
	FindAllByUser(ctx context.Context, userID string) ([]models.CartEntry, error)
	FindEntry(ctx context.Context, userID, menuItemID string) (*models.CartEntry, error)
	Insert(ctx context.Context, entry *models.CartEntry) (bool, error)
	Save(ctx context.Context, entry *models.CartEntry) error
	ClearByUser(ctx context.Context, userID string) (int64, error)
}
