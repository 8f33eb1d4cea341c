package models

import "time"

// Post is a text entry owned by exactly one author. CreatedDate is set once
// at insert and is never touched by edits; AuthorID is immutable after
// creation.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedDate time.Time `gorm:"autoCreateTime" json:"created_date"`
	Title       string    `gorm:"not null" json:"title"`
	Body        string    `gorm:"not null" json:"body"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author"`
}
