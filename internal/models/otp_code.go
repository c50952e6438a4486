package models

import "time"

// OtpCode stores one-time email verification codes. A code is valid only while
// IsUsed is false and the expiry lies in the future; once consumed it is never
// revalidated. Expired rows are purged by the maintenance cleaner.
type OtpCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}
