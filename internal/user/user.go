package user

import "time"

// User is the account entity owned by the authentication collaborator. This
// core only reads it: articles and versions reference users by ID, and the
// identity resolver checks that an incoming ID maps to a stored account.
type User struct {
	ID        string `gorm:"size:64;primarykey"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;uniqueIndex:idx_users_email;not null"`
	Image     string `gorm:"size:1024"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName defines the table name for the User model.
func (User) TableName() string {
	return "users"
}
