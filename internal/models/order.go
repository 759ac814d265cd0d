package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a committed purchase. Status false means pending, true delivered.
// Total always equals the sum of Items[i].Price.
type Order struct {
	ID             string          `gorm:"primaryKey;type:varchar(36)"`
	UserID         string          `gorm:"type:varchar(36);not null;index"`
	User           User            `gorm:"constraint:OnDelete:CASCADE"`
	DeliveryCrewID *string         `gorm:"type:varchar(36);index"`
	DeliveryCrew   *User           `gorm:"constraint:OnDelete:SET NULL"`
	Status         bool            `gorm:"not null;default:false;index"`
	Total          decimal.Decimal `gorm:"type:decimal(6,2)"`
	Date           time.Time       `gorm:"type:date;index"`
	Items          []OrderItem     `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderItem is the snapshot of a cart entry taken when the order was placed.
type OrderItem struct {
	ID         string          `gorm:"primaryKey;type:varchar(36)"`
	OrderID    string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_order_item_menuitem"`
	MenuItemID string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_order_item_menuitem"`
	MenuItem   MenuItem        `gorm:"constraint:OnDelete:RESTRICT"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2)"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2)"`
}

// Pending reports whether the order has not been delivered yet.
func (o *Order) Pending() bool { return !o.Status }

// AssignedTo reports whether userID is the order's delivery crew.
func (o *Order) AssignedTo(userID string) bool {
	return o.DeliveryCrewID != nil && *o.DeliveryCrewID == userID
}
