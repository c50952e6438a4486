package models

import "time"

// Note is a user-owned note. Every read and write is scoped by the
// (id, user_id) pair; a note id alone never authorises access.
type Note struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Category string `gorm:"size:100" json:"category"`

	UserID uint `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
