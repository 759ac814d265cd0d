package services

import (
	"context"
	"errors"
	"math"

	"littlelemon/internal/access"
	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/query"
	"littlelemon/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// addAttempts bounds how often Add re-reads a line another request inserted first.
const addAttempts = 3

// CartInput is the body of an add-to-cart request.
type CartInput struct {
	MenuItemID string `json:"menuitem_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

// CartService handles the per-user cart.
type CartService struct {
	store    *repositories.Store
	validate *validator.Validate
}

// NewCartService creates a new CartService.
func NewCartService(store *repositories.Store) *CartService {
	return &CartService{
		store:    store,
		validate: NewValidator(),
	}
}

func requireCustomer(p access.Principal, action string) error {
	if !p.IsCustomer() {
		return apperr.RoleDenied("only customers can %s", action)
	}
	return nil
}

// List returns one page of the principal's own cart.
func (s *CartService) List(ctx context.Context, p access.Principal, filter repositories.CartFilter, page query.Page) ([]models.CartEntry, int64, error) {
	if err := requireCustomer(p, "use a cart"); err != nil {
		return nil, 0, err
	}
	return s.store.Cart().ListByUser(ctx, p.UserID, filter, page)
}

// Add puts quantity units of a menu item in the principal's cart at the
// item's current price. If the item is already there its quantity grows and
// the unit price is refreshed. The read and the write share one transaction.
func (s *CartService) Add(ctx context.Context, p access.Principal, in CartInput) (*models.CartEntry, error) {
	if err := requireCustomer(p, "use a cart"); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	item, err := s.store.MenuItems().GetByID(ctx, in.MenuItemID)
	if err != nil {
		return nil, err
	}

	var entry *models.CartEntry
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		for attempt := 1; attempt <= addAttempts; attempt++ {
			current, err := tx.Cart().FindEntry(ctx, p.UserID, item.ID)
			switch {
			case errors.Is(err, apperr.ErrNotFound):
				current = &models.CartEntry{UserID: p.UserID, MenuItemID: item.ID}
			case err != nil:
				return err
			}
			if err := grow(current, item, in.Quantity); err != nil {
				return err
			}

			if current.ID != "" {
				entry = current
				return tx.Cart().Save(ctx, current)
			}
			inserted, err := tx.Cart().Insert(ctx, current)
			if err != nil {
				return err
			}
			if inserted {
				entry = current
				return nil
			}
		}
		return apperr.Conflict("cart entry for menu item %s keeps changing", item.ID)
	})
	if err != nil {
		return nil, err
	}

	entry.MenuItem = *item
	entry.User = models.User{ID: p.UserID, Username: p.Username}
	return entry, nil
}

// grow adds quantity units to entry at item's current price.
func grow(entry *models.CartEntry, item *models.MenuItem, quantity int) error {
	if quantity > math.MaxInt-entry.Quantity {
		return apperr.Validation("quantity %d is too large", quantity)
	}
	entry.Quantity += quantity
	entry.UnitPrice = item.Price
	entry.Reprice()
	if !models.ValidMoney(entry.Price) {
		return apperr.Validation("cart line price %s must be between 0.01 and %s", entry.Price.StringFixed(2), models.MaxMoney.StringFixed(2))
	}
	return nil
}

// Clear empties the principal's cart.
func (s *CartService) Clear(ctx context.Context, p access.Principal) (int64, error) {
	if err := requireCustomer(p, "use a cart"); err != nil {
		return 0, err
	}
	return s.store.Cart().ClearByUser(ctx, p.UserID)
}
