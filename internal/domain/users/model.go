package users

import "time"

// User is an admin console account. The public site has no user accounts.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"not null;uniqueIndex:idx_users_email"`
	Password string `gorm:"not null"`
	Role     string `gorm:"not null;default:'admin'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
