package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/scribehq/scribe/internal/database/testutil"
	"github.com/scribehq/scribe/internal/models"
	"github.com/scribehq/scribe/internal/store"
	apperrors "github.com/scribehq/scribe/pkg/errors"
)

func newNoteService(t *testing.T) (*NoteService, *gorm.DB) {
	t.Helper()

	db := testutil.MustOpenTestDB(t)
	notes, err := store.NewNotes(db)
	require.NoError(t, err)

	service, err := NewNoteService(notes)
	require.NoError(t, err)
	return service, db
}

func seedOwner(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()

	user := &models.User{Email: email, IsEmailVerified: true}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func TestNoteCRUDRoundTrip(t *testing.T) {
	service, db := newNoteService(t)
	owner := seedOwner(t, db, "ada@example.com")
	ctx := context.Background()

	list, err := service.List(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	created, err := service.Create(ctx, owner, NoteInput{
		Title:    "groceries",
		Content:  "milk, eggs",
		Category: "home",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, owner, created.UserID)

	updated, err := service.Update(ctx, owner, created.ID, NoteInput{
		Title:   "groceries (done)",
		Content: "",
	})
	require.NoError(t, err)
	require.Equal(t, "groceries (done)", updated.Title)
	require.Empty(t, updated.Content)

	require.NoError(t, service.Delete(ctx, owner, created.ID))

	list, err = service.List(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestNoteTitleRequired(t *testing.T) {
	service, db := newNoteService(t)
	owner := seedOwner(t, db, "ada@example.com")
	ctx := context.Background()

	_, err := service.Create(ctx, owner, NoteInput{Title: "   "})
	appErr := apperrors.FromError(err)
	require.Equal(t, apperrors.ErrBadRequest.Code, appErr.Code)

	created, err := service.Create(ctx, owner, NoteInput{Title: "draft"})
	require.NoError(t, err)

	_, err = service.Update(ctx, owner, created.ID, NoteInput{Title: ""})
	appErr = apperrors.FromError(err)
	require.Equal(t, apperrors.ErrBadRequest.Code, appErr.Code)
}

func TestNotesAreIsolatedPerOwner(t *testing.T) {
	service, db := newNoteService(t)
	alice := seedOwner(t, db, "alice@example.com")
	bob := seedOwner(t, db, "bob@example.com")
	ctx := context.Background()

	note, err := service.Create(ctx, alice, NoteInput{Title: "alice note"})
	require.NoError(t, err)

	// Another account touching the note sees not-found, never forbidden.
	_, err = service.Update(ctx, bob, note.ID, NoteInput{Title: "stolen"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.ErrorIs(t, service.Delete(ctx, bob, note.ID), apperrors.ErrNotFound)

	bobList, err := service.List(ctx, bob)
	require.NoError(t, err)
	require.Empty(t, bobList)

	aliceList, err := service.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceList, 1)
	require.Equal(t, "alice note", aliceList[0].Title)
}

func TestNoteListNewestFirst(t *testing.T) {
	service, db := newNoteService(t)
	owner := seedOwner(t, db, "ada@example.com")
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := service.Create(ctx, owner, NoteInput{Title: title})
		require.NoError(t, err)
	}

	list, err := service.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.GreaterOrEqual(t, list[0].CreatedAt.UnixNano(), list[2].CreatedAt.UnixNano())
}
