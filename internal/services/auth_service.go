package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scribehq/scribe/internal/auth"
	"github.com/scribehq/scribe/internal/models"
	"github.com/scribehq/scribe/internal/store"
	"github.com/scribehq/scribe/pkg/crypto"
	apperrors "github.com/scribehq/scribe/pkg/errors"
	"github.com/scribehq/scribe/pkg/mail"
	"github.com/scribehq/scribe/pkg/metrics"
)

// AuthService orchestrates account lifecycle flows: signup, email verification
// via one-time codes, password login and profile management.
type AuthService struct {
	users  *store.Users
	codes  *store.OtpCodes
	tokens *auth.JWTService
	mailer mail.Mailer
	otpTTL time.Duration
	now    func() time.Time
	log    *zap.Logger
}

// AuthServiceConfig bundles the collaborators an AuthService requires.
type AuthServiceConfig struct {
	Users  *store.Users
	Codes  *store.OtpCodes
	Tokens *auth.JWTService
	Mailer mail.Mailer
	OTPTTL time.Duration
	Clock  func() time.Time
	Logger *zap.Logger
}

// NewAuthService constructs an auth service once its collaborators are supplied.
func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	if cfg.Users == nil {
		return nil, errors.New("auth service: user store is required")
	}
	if cfg.Codes == nil {
		return nil, errors.New("auth service: otp store is required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("auth service: token service is required")
	}
	if cfg.Mailer == nil {
		return nil, errors.New("auth service: mailer is required")
	}

	ttl := cfg.OTPTTL
	if ttl <= 0 {
		ttl = auth.DefaultOTPTTL
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &AuthService{
		users:  cfg.Users,
		codes:  cfg.Codes,
		tokens: cfg.Tokens,
		mailer: cfg.Mailer,
		otpTTL: ttl,
		now:    now,
		log:    log,
	}, nil
}

// SignupInput captures the fields required to register an account.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Session pairs a signed token with the account it represents.
type Session struct {
	Token string
	User  models.PublicUser
}

// Signup registers a new unverified account, hashes the supplied password and
// emails a one-time code. Duplicate emails are rejected.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (models.PublicUser, error) {
	ctx = ensuredContext(ctx)

	if _, err := s.users.ByEmail(ctx, input.Email); err == nil {
		metrics.AuthAttempts.WithLabelValues("signup", "duplicate").Inc()
		return models.PublicUser{}, apperrors.ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.PublicUser{}, apperrors.Wrap(err, "look up account")
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return models.PublicUser{}, apperrors.Wrap(err, "hash password")
	}

	user := &models.User{
		Email:     input.Email,
		Password:  hash,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.PublicUser{}, apperrors.Wrap(err, "create account")
	}

	if err := s.issueOTP(ctx, user.Email, "signup"); err != nil {
		return models.PublicUser{}, err
	}

	metrics.AuthAttempts.WithLabelValues("signup", "success").Inc()
	return user.Public(), nil
}

// VerifyOTP consumes a one-time code, marks the account verified and opens a
// session. The code must be unused and unexpired; consuming it never
// invalidates other codes issued for the same email.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*Session, error) {
	ctx = ensuredContext(ctx)

	record, err := s.codes.Valid(ctx, email, code, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.AuthAttempts.WithLabelValues("verify_otp", "invalid_code").Inc()
			return nil, apperrors.ErrOTPInvalid
		}
		return nil, apperrors.Wrap(err, "look up one-time code")
	}

	if err := s.codes.MarkUsed(ctx, record.ID); err != nil {
		return nil, apperrors.Wrap(err, "consume one-time code")
	}

	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "look up account")
	}

	if !user.IsEmailVerified {
		user.IsEmailVerified = true
		if err := s.users.Update(ctx, user); err != nil {
			return nil, apperrors.Wrap(err, "mark account verified")
		}
	}

	session, err := s.openSession(user)
	if err != nil {
		return nil, err
	}

	metrics.AuthAttempts.WithLabelValues("verify_otp", "success").Inc()
	return session, nil
}

// Login authenticates an email/password pair. Unknown emails, external-identity
// accounts without a password and wrong passwords all collapse into the same
// invalid-credentials error. Unverified accounts are rejected without a session;
// ResendOTP is the only path that issues a new code after signup.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	ctx = ensuredContext(ctx)

	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.AuthAttempts.WithLabelValues("login", "unknown_email").Inc()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "look up account")
	}

	if user.Password == "" || !crypto.VerifyPassword(user.Password, password) {
		metrics.AuthAttempts.WithLabelValues("login", "bad_password").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		metrics.AuthAttempts.WithLabelValues("login", "unverified").Inc()
		return nil, apperrors.ErrEmailNotVerified
	}

	session, err := s.openSession(user)
	if err != nil {
		return nil, err
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	return session, nil
}

// ResendOTP issues a fresh one-time code for an unverified account.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	ctx = ensuredContext(ctx)

	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.Wrap(err, "look up account")
	}

	if user.IsEmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	return s.issueOTP(ctx, user.Email, "resend")
}

// CurrentUser resolves the account behind an authenticated session.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (models.PublicUser, error) {
	ctx = ensuredContext(ctx)

	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PublicUser{}, apperrors.ErrNotFound
		}
		return models.PublicUser{}, apperrors.Wrap(err, "look up account")
	}
	return user.Public(), nil
}

// ProfileInput describes the mutable profile fields.
type ProfileInput struct {
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// UpdateProfile overwrites the account's display fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, input ProfileInput) (models.PublicUser, error) {
	ctx = ensuredContext(ctx)

	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PublicUser{}, apperrors.ErrNotFound
		}
		return models.PublicUser{}, apperrors.Wrap(err, "look up account")
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.ProfileImageURL = input.ProfileImageURL
	if err := s.users.Update(ctx, user); err != nil {
		return models.PublicUser{}, apperrors.Wrap(err, "update profile")
	}

	return user.Public(), nil
}

func (s *AuthService) issueOTP(ctx context.Context, email, trigger string) error {
	code, err := auth.GenerateOTP()
	if err != nil {
		return apperrors.Wrap(err, "generate one-time code")
	}

	record := &models.OtpCode{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(s.otpTTL),
	}
	if err := s.codes.Create(ctx, record); err != nil {
		return apperrors.Wrap(err, "store one-time code")
	}

	msg := mail.Message{
		To:      email,
		Subject: "Your verification code",
		Body:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(s.otpTTL.Minutes())),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return apperrors.Wrap(err, "send verification email")
	}

	metrics.OTPIssued.WithLabelValues(trigger).Inc()
	s.log.Info("one-time code issued",
		zap.String("email", email),
		zap.String("trigger", trigger),
	)
	return nil
}

func (s *AuthService) openSession(user *models.User) (*Session, error) {
	token, err := s.tokens.GenerateAccessToken(auth.AccessTokenInput{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "issue session token")
	}

	return &Session{Token: token, User: user.Public()}, nil
}
