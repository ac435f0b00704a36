// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered author on the Inkwell platform.
// The password column only ever holds a bcrypt hash. Username and email
// uniqueness is scoped to live rows; deleting an account releases the pair.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex:idx_users_username,where:deleted_at IS NULL;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex:idx_users_email,where:deleted_at IS NULL;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
