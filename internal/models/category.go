package models

import "time"

// Category groups menu items, e.g. "main" or "desserts".
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Title     string    `json:"title" gorm:"index;type:varchar(255)" validate:"required,max=255"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
