package repositories

import (
	"context"

	"littlelemon/internal/models"
	"littlelemon/internal/query"

	"github.com/shopspring/decimal"
)

// MenuItemFilter narrows a menu listing. Zero values mean "no filter".
type MenuItemFilter struct {
	CategoryTitle string
	MaxPrice      *decimal.Decimal
	Featured      *bool
	Search        string
	Ordering      string
}

// MenuItemRepository defines the interface for menu item data access.
type MenuItemRepository interface {
	List(ctx context.Context, filter MenuItemFilter, page query.Page) ([]models.MenuItem, int64, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id string) error
}
