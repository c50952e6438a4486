package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scribehq/scribe/internal/database/testutil"
	"github.com/scribehq/scribe/internal/models"
)

func TestUsersCreateAndLookups(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	users, err := NewUsers(db)
	require.NoError(t, err)

	ctx := context.Background()

	user := &models.User{Email: "  Ada@X.com ", FirstName: "Ada", GoogleID: "g-123"}
	require.NoError(t, users.Create(ctx, user))
	require.NotZero(t, user.ID)
	require.Equal(t, "ada@x.com", user.Email)

	byID, err := users.ByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, byID.Email)

	byEmail, err := users.ByEmail(ctx, "ADA@x.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	byGoogle, err := users.ByGoogleID(ctx, "g-123")
	require.NoError(t, err)
	require.Equal(t, user.ID, byGoogle.ID)
}

func TestUsersLookupMisses(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	users, err := NewUsers(db)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = users.ByID(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = users.ByEmail(ctx, "ghost@x.com")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = users.ByGoogleID(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUsersUpdate(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	users, err := NewUsers(db)
	require.NoError(t, err)

	ctx := context.Background()

	user := &models.User{Email: "ada@x.com"}
	require.NoError(t, users.Create(ctx, user))

	user.IsEmailVerified = true
	user.FirstName = "Ada"
	require.NoError(t, users.Update(ctx, user))

	got, err := users.ByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, got.IsEmailVerified)
	require.Equal(t, "Ada", got.FirstName)

	require.ErrorIs(t, users.Update(ctx, &models.User{}), ErrNotFound)
}
