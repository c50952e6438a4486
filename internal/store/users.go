package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/scribehq/scribe/internal/models"
)

// Users exposes account lookups and mutations.
type Users struct {
	db *gorm.DB
}

// NewUsers constructs the account store.
func NewUsers(db *gorm.DB) (*Users, error) {
	if db == nil {
		return nil, errors.New("user store: db is required")
	}
	return &Users{db: db}, nil
}

// ByID fetches an account by its numeric identifier.
func (s *Users) ByID(ctx context.Context, id uint) (*models.User, error) {
	ctx = ensuredContext(ctx)

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ByEmail fetches an account by its unique email address.
func (s *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx = ensuredContext(ctx)
	email = normalizeEmail(email)

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ByGoogleID fetches an account by its external identity reference.
func (s *Users) ByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	ctx = ensuredContext(ctx)

	googleID = strings.TrimSpace(googleID)
	if googleID == "" {
		return nil, ErrNotFound
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "google_id = ?", googleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create persists a new account record.
func (s *Users) Create(ctx context.Context, user *models.User) error {
	ctx = ensuredContext(ctx)
	user.Email = normalizeEmail(user.Email)
	return s.db.WithContext(ctx).Create(user).Error
}

// Update persists all fields of an existing account record.
func (s *Users) Update(ctx context.Context, user *models.User) error {
	ctx = ensuredContext(ctx)
	if user.ID == 0 {
		return ErrNotFound
	}
	return s.db.WithContext(ctx).Save(user).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
