package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account created on first successful sign-in.
type User struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          *string        `json:"name,omitempty" gorm:"type:varchar(100)"`
	Email         *string        `json:"email,omitempty" gorm:"type:varchar(100);uniqueIndex"`
	EmailVerified *time.Time     `json:"email_verified,omitempty"`
	Image         *string        `json:"image,omitempty" gorm:"type:varchar(255)"`
	Role          Role           `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	Tips      []Tip      `json:"-" gorm:"foreignKey:CreatedByID"`
	Favorites []Favorite `json:"-" gorm:"foreignKey:UserID"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
