package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a dish on the menu. Price is decimal(6,2).
type MenuItem struct {
	ID         string          `gorm:"primaryKey;type:varchar(36)"`
	Title      string          `gorm:"index;type:varchar(255)"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);index"`
	Featured   bool            `gorm:"index"`
	CategoryID string          `gorm:"type:varchar(36);not null"`
	Category   Category        `gorm:"constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
