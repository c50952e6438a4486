package models

import "time"

// User describes a registered account. Password is empty for accounts created
// through an external identity provider, and such accounts can never log in
// with credentials.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255" json:"-"`

	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`

	IsEmailVerified bool `gorm:"default:false" json:"is_email_verified"`

	GoogleID        string `gorm:"size:255;index" json:"-"`
	ProfileImageURL string `gorm:"size:500" json:"profile_image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the account view returned to API clients. It never carries the
// password hash.
type PublicUser struct {
	ID              uint   `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	IsEmailVerified bool   `json:"is_email_verified"`
	ProfileImageURL string `json:"profile_image_url"`
}

// Public maps the stored record onto its client-facing view.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		IsEmailVerified: u.IsEmailVerified,
		ProfileImageURL: u.ProfileImageURL,
	}
}
