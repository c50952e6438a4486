package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/scribehq/scribe/internal/models"
)

// Notes exposes ownership-scoped note operations. Every lookup and mutation is
// constrained by the (id, ownerID) pair.
type Notes struct {
	db *gorm.DB
}

// NewNotes constructs the note store.
func NewNotes(db *gorm.DB) (*Notes, error) {
	if db == nil {
		return nil, errors.New("note store: db is required")
	}
	return &Notes{db: db}, nil
}

// ListByOwner returns all notes owned by the account, newest first.
func (s *Notes) ListByOwner(ctx context.Context, ownerID uint) ([]models.Note, error) {
	ctx = ensuredContext(ctx)

	notes := make([]models.Note, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Get fetches a single note constrained to its owner.
func (s *Notes) Get(ctx context.Context, id, ownerID uint) (*models.Note, error) {
	ctx = ensuredContext(ctx)

	var note models.Note
	err := s.db.WithContext(ctx).
		First(&note, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// Create persists a new note.
func (s *Notes) Create(ctx context.Context, note *models.Note) error {
	ctx = ensuredContext(ctx)
	return s.db.WithContext(ctx).Create(note).Error
}

// Update persists the supplied note provided it still belongs to its owner.
func (s *Notes) Update(ctx context.Context, note *models.Note) error {
	ctx = ensuredContext(ctx)

	result := s.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ? AND user_id = ?", note.ID, note.UserID).
		Updates(map[string]interface{}{
			"title":    note.Title,
			"content":  note.Content,
			"category": note.Category,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a note constrained to its owner. Deleting a note that does
// not match the (id, ownerID) pair reports ErrNotFound.
func (s *Notes) Delete(ctx context.Context, id, ownerID uint) error {
	ctx = ensuredContext(ctx)

	result := s.db.WithContext(ctx).
		Delete(&models.Note{}, "id = ? AND user_id = ?", id, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
