package models

// Group is a named role group. Only "Manager" and "Delivery Crew" exist.
type Group struct {
	ID   string `gorm:"primaryKey;type:varchar(36)"`
	Name string `gorm:"uniqueIndex;type:varchar(150)"`
}
