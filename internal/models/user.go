// Package models contains the application's persisted domain types.
package models

import "time"

// User is a registered author. Rows are created at registration and never
// mutated afterwards; the password column only ever holds a bcrypt digest.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	Posts     []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
