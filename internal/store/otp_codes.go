package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/scribehq/scribe/internal/models"
)

// OtpCodes exposes one-time code persistence. Multiple valid codes may coexist
// for the same email; issuing a new code never invalidates earlier ones.
type OtpCodes struct {
	db *gorm.DB
}

// NewOtpCodes constructs the one-time code store.
func NewOtpCodes(db *gorm.DB) (*OtpCodes, error) {
	if db == nil {
		return nil, errors.New("otp store: db is required")
	}
	return &OtpCodes{db: db}, nil
}

// Create persists a freshly issued code.
func (s *OtpCodes) Create(ctx context.Context, code *models.OtpCode) error {
	ctx = ensuredContext(ctx)
	code.Email = normalizeEmail(code.Email)
	return s.db.WithContext(ctx).Create(code).Error
}

// Valid fetches the newest code matching (email, code) that is unused and not
// yet expired at the supplied instant.
func (s *OtpCodes) Valid(ctx context.Context, email, code string, now time.Time) (*models.OtpCode, error) {
	ctx = ensuredContext(ctx)

	var record models.OtpCode
	err := s.db.WithContext(ctx).
		Where("email = ? AND code = ? AND is_used = ? AND expires_at > ?",
			normalizeEmail(email), code, false, now).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// MarkUsed consumes a code. A consumed code is never revalidated.
func (s *OtpCodes) MarkUsed(ctx context.Context, id uint) error {
	ctx = ensuredContext(ctx)

	result := s.db.WithContext(ctx).
		Model(&models.OtpCode{}).
		Where("id = ?", id).
		Update("is_used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired purges codes whose expiry has passed, returning the number of
// rows removed.
func (s *OtpCodes) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx = ensuredContext(ctx)

	result := s.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.OtpCode{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteUsedBefore purges consumed codes created before the cutoff, returning
// the number of rows removed. Consumed codes are kept briefly so repeated
// submissions keep reporting an invalid code rather than an unknown one.
func (s *OtpCodes) DeleteUsedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensuredContext(ctx)

	result := s.db.WithContext(ctx).
		Where("is_used = ? AND created_at < ?", true, cutoff).
		Delete(&models.OtpCode{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
