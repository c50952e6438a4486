package services

import (
	"context"
	"errors"
	"strings"

	"github.com/scribehq/scribe/internal/models"
	"github.com/scribehq/scribe/internal/store"
	apperrors "github.com/scribehq/scribe/pkg/errors"
	"github.com/scribehq/scribe/pkg/metrics"
)

// NoteService manages CRUD operations for notes. Every operation is scoped to
// the owning account; the owner is always taken from the session, never from
// the request payload.
type NoteService struct {
	notes *store.Notes
}

// NewNoteService constructs a note service once a note store is supplied.
func NewNoteService(notes *store.Notes) (*NoteService, error) {
	if notes == nil {
		return nil, errors.New("note service: note store is required")
	}
	return &NoteService{notes: notes}, nil
}

func ensuredContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// NoteInput captures the writable note fields. Title is required; content and
// category may be empty.
type NoteInput struct {
	Title    string
	Content  string
	Category string
}

// List returns the account's notes, newest first. An account with no notes
// gets an empty list, not an error.
func (s *NoteService) List(ctx context.Context, ownerID uint) ([]models.Note, error) {
	ctx = ensuredContext(ctx)

	notes, err := s.notes.ListByOwner(ctx, ownerID)
	if err != nil {
		metrics.NoteOperations.WithLabelValues("list", "error").Inc()
		return nil, apperrors.Wrap(err, "list notes")
	}

	metrics.NoteOperations.WithLabelValues("list", "success").Inc()
	return notes, nil
}

// Create stores a new note owned by the account.
func (s *NoteService) Create(ctx context.Context, ownerID uint, input NoteInput) (*models.Note, error) {
	ctx = ensuredContext(ctx)

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewBadRequest("Title is required")
	}

	note := &models.Note{
		Title:    title,
		Content:  input.Content,
		Category: input.Category,
		UserID:   ownerID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		metrics.NoteOperations.WithLabelValues("create", "error").Inc()
		return nil, apperrors.Wrap(err, "create note")
	}

	metrics.NoteOperations.WithLabelValues("create", "success").Inc()
	return note, nil
}

// Update overwrites a note's writable fields. A note that does not exist or
// belongs to another account reports not found; ids are never disclosed across
// accounts.
func (s *NoteService) Update(ctx context.Context, ownerID, noteID uint, input NoteInput) (*models.Note, error) {
	ctx = ensuredContext(ctx)

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewBadRequest("Title is required")
	}

	note := &models.Note{
		ID:       noteID,
		Title:    title,
		Content:  input.Content,
		Category: input.Category,
		UserID:   ownerID,
	}
	if err := s.notes.Update(ctx, note); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.NoteOperations.WithLabelValues("update", "not_found").Inc()
			return nil, apperrors.ErrNotFound
		}
		metrics.NoteOperations.WithLabelValues("update", "error").Inc()
		return nil, apperrors.Wrap(err, "update note")
	}

	updated, err := s.notes.Get(ctx, noteID, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "reload note")
	}

	metrics.NoteOperations.WithLabelValues("update", "success").Inc()
	return updated, nil
}

// Delete removes a note owned by the account.
func (s *NoteService) Delete(ctx context.Context, ownerID, noteID uint) error {
	ctx = ensuredContext(ctx)

	if err := s.notes.Delete(ctx, noteID, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.NoteOperations.WithLabelValues("delete", "not_found").Inc()
			return apperrors.ErrNotFound
		}
		metrics.NoteOperations.WithLabelValues("delete", "error").Inc()
		return apperrors.Wrap(err, "delete note")
	}

	metrics.NoteOperations.WithLabelValues("delete", "success").Inc()
	return nil
}
