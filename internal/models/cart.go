package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartEntry is one menu item a user has selected but not yet ordered.
// UnitPrice is the menu price at the time the item was added.
type CartEntry struct {
	ID         string          `gorm:"primaryKey;type:varchar(36)"`
	UserID     string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_menuitem"`
	User       User            `gorm:"constraint:OnDelete:CASCADE"`
	MenuItemID string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_menuitem"`
	MenuItem   MenuItem        `gorm:"constraint:OnDelete:CASCADE"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2)"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Reprice sets Price from UnitPrice and Quantity.
func (e *CartEntry) Reprice() {
	e.Price = LinePrice(e.UnitPrice, e.Quantity)
}
