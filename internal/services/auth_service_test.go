package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/scribehq/scribe/internal/auth"
	"github.com/scribehq/scribe/internal/database/testutil"
	"github.com/scribehq/scribe/internal/store"
	apperrors "github.com/scribehq/scribe/pkg/errors"
	"github.com/scribehq/scribe/pkg/mail"
)

type recordingMailer struct {
	messages []mail.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

var codePattern = regexp.MustCompile(`\d{6}`)

func (m *recordingMailer) lastCode(t *testing.T) string {
	t.Helper()

	require.NotEmpty(t, m.messages)
	code := codePattern.FindString(m.messages[len(m.messages)-1].Body)
	require.Len(t, code, auth.OTPLength)
	return code
}

type authHarness struct {
	service *AuthService
	mailer  *recordingMailer
	now     *time.Time
}

func newAuthHarness(t *testing.T) *authHarness {
	t.Helper()

	db := testutil.MustOpenTestDB(t)

	users, err := store.NewUsers(db)
	require.NoError(t, err)
	codes, err := store.NewOtpCodes(db)
	require.NoError(t, err)

	current := time.Now()
	clock := func() time.Time { return current }

	tokens, err := auth.NewJWTService(auth.JWTConfig{
		Secret: "test-secret",
		Issuer: "scribe-test",
		Clock:  clock,
	})
	require.NoError(t, err)

	mailer := &recordingMailer{}

	service, err := NewAuthService(AuthServiceConfig{
		Users:  users,
		Codes:  codes,
		Tokens: tokens,
		Mailer: mailer,
		Clock:  clock,
	})
	require.NoError(t, err)

	return &authHarness{service: service, mailer: mailer, now: &current}
}

func signup(t *testing.T, h *authHarness, email string) {
	t.Helper()

	_, err := h.service.Signup(context.Background(), SignupInput{
		Email:     email,
		Password:  "hunter2hunter2",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
}

func TestSignupIssuesCodeAndRejectsDuplicates(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	user, err := h.service.Signup(ctx, SignupInput{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.False(t, user.IsEmailVerified)
	require.Len(t, h.mailer.messages, 1)
	require.Equal(t, "ada@example.com", h.mailer.messages[0].To)
	h.mailer.lastCode(t)

	_, err = h.service.Signup(ctx, SignupInput{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.ErrorIs(t, err, apperrors.ErrUserExists)
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()
	signup(t, h, "ada@example.com")

	_, err := h.service.Login(ctx, "ada@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, apperrors.ErrEmailNotVerified)
	// Only the signup code exists; a rejected login never issues another.
	require.Len(t, h.mailer.messages, 1)
}

func TestVerifyOTPOpensSession(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()
	signup(t, h, "ada@example.com")

	_, err := h.service.VerifyOTP(ctx, "ada@example.com", "000000")
	require.ErrorIs(t, err, apperrors.ErrOTPInvalid)

	code := h.mailer.lastCode(t)
	session, err := h.service.VerifyOTP(ctx, "ada@example.com", code)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.True(t, session.User.IsEmailVerified)

	// Verified accounts log in with their password.
	loginSession, err := h.service.Login(ctx, "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, session.User.ID, loginSession.User.ID)
}

func TestVerifyOTPIsSingleUse(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()
	signup(t, h, "ada@example.com")

	code := h.mailer.lastCode(t)

	_, err := h.service.VerifyOTP(ctx, "ada@example.com", code)
	require.NoError(t, err)

	_, err = h.service.VerifyOTP(ctx, "ada@example.com", code)
	require.ErrorIs(t, err, apperrors.ErrOTPInvalid)
}

func TestVerifyOTPRejectsExpiredCode(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()
	signup(t, h, "ada@example.com")

	code := h.mailer.lastCode(t)
	*h.now = h.now.Add(auth.DefaultOTPTTL + time.Minute)

	_, err := h.service.VerifyOTP(ctx, "ada@example.com", code)
	require.ErrorIs(t, err, apperrors.ErrOTPInvalid)
}

func TestOlderCodesStayValidUntilExpiry(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()
	signup(t, h, "ada@example.com")

	firstCode := h.mailer.lastCode(t)

	require.NoError(t, h.service.ResendOTP(ctx, "ada@example.com"))
	secondCode := h.mailer.lastCode(t)

	// Requesting a new code does not invalidate the earlier one.
	_, err := h.service.VerifyOTP(ctx, "ada@example.com", firstCode)
	require.NoError(t, err)

	if secondCode != firstCode {
		_, err = h.service.VerifyOTP(ctx, "ada@example.com", secondCode)
		require.NoError(t, err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()
	signup(t, h, "ada@example.com")

	code := h.mailer.lastCode(t)
	_, err := h.service.VerifyOTP(ctx, "ada@example.com", code)
	require.NoError(t, err)

	_, err = h.service.Login(ctx, "ada@example.com", "wrong-password")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = h.service.Login(ctx, "ghost@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestResendOTP(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	require.ErrorIs(t, h.service.ResendOTP(ctx, "ghost@example.com"), apperrors.ErrNotFound)

	signup(t, h, "ada@example.com")
	require.NoError(t, h.service.ResendOTP(ctx, "ada@example.com"))

	code := h.mailer.lastCode(t)
	_, err := h.service.VerifyOTP(ctx, "ada@example.com", code)
	require.NoError(t, err)

	require.ErrorIs(t, h.service.ResendOTP(ctx, "ada@example.com"), apperrors.ErrEmailAlreadyVerified)
}

func TestCurrentUserAndProfile(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()
	signup(t, h, "ada@example.com")

	code := h.mailer.lastCode(t)
	session, err := h.service.VerifyOTP(ctx, "ada@example.com", code)
	require.NoError(t, err)

	current, err := h.service.CurrentUser(ctx, session.User.ID)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", current.Email)

	updated, err := h.service.UpdateProfile(ctx, session.User.ID, ProfileInput{
		FirstName:       "Grace",
		LastName:        "Hopper",
		ProfileImageURL: "https://img.example.com/grace.png",
	})
	require.NoError(t, err)
	require.Equal(t, "Grace", updated.FirstName)
	require.Equal(t, "Hopper", updated.LastName)

	_, err = h.service.CurrentUser(ctx, 9999)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
