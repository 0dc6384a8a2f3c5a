package models

import "gorm.io/gorm"

// Role values assignable to a user.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the primary account model. Password is empty for SSO and mock
// users and is never serialised.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255" json:"-"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Role     string `gorm:"size:50;default:customer" json:"role"`
	Picture  string `gorm:"size:512" json:"picture,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
