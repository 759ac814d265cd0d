package models

import "time"

// User represents an account. The password is a bcrypt hash and is never serialized.
type User struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string  `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Email     string  `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password  string  `json:"-" gorm:"type:varchar(255)"`
	Groups    []Group `json:"-" gorm:"many2many:user_groups;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupNames returns the names of the loaded groups.
func (u *User) GroupNames() []string {
	names := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		names = append(names, g.Name)
	}
	return names
}
