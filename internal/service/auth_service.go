package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
	"github.com/wanderhq/wanderlust/internal/util"
)

// PasswordResetMailer delivers one-time reset codes. Implemented by the SMTP
// mailer in transport/mail.
type PasswordResetMailer interface {
	SendPasswordReset(ctx context.Context, email, otp string) error
}

type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionRepository
	resets    ports.PasswordResetRepository
	mailer    PasswordResetMailer
	googleAud string

	sessionTTL time.Duration
	resetTTL   time.Duration
	otpLength  int
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	resets ports.PasswordResetRepository,
	mailer PasswordResetMailer,
	googleAud string,
	sessionTTL, resetTTL time.Duration,
	otpLength int,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = 15 * time.Minute
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		resets:     resets,
		mailer:     mailer,
		googleAud:  googleAud,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
		otpLength:  otpLength,
	}
}

// Register creates an account and returns the stored user. Duplicate
// username or email surfaces as ErrDuplicateUser.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required")
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, username, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username and password pair. Unknown user and wrong
// password collapse into the same ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// StartSession opens a server-side session for the user and returns it. The
// transport layer wraps the token into a signed cookie.
func (s *AuthService) StartSession(ctx context.Context, userID uuid.UUID) (*domain.Session, error) {
	token, err := util.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	return s.sessions.Create(ctx, userID, token, time.Now().Add(s.sessionTTL))
}

// ResolveSession maps an opaque session token to its user.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.FindActive(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return user, nil
}

// EndSession deactivates the session behind the token. A token that is
// already gone is not an error; logout is idempotent.
func (s *AuthService) EndSession(ctx context.Context, token string) error {
	if err := s.sessions.Deactivate(ctx, token); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// LoginWithGoogle validates a Google ID token, upserts the account by email
// and opens a session for it.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idTok string) (*domain.User, *domain.Session, error) {
	payload, err := idtoken.Validate(ctx, idTok, s.googleAud)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, nil, ErrInvalidCredentials
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user, err := s.upsertFederatedUser(ctx, email, name)
	if err != nil {
		return nil, nil, err
	}
	session, err := s.StartSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// upsertFederatedUser stores the account behind a federated identity. The
// upsert conflicts on email, so a unique violation here means the display
// name collides with an existing username; retry with a suffixed name.
func (s *AuthService) upsertFederatedUser(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := s.users.UpsertByEmail(ctx, email, name)
	for attempt := 0; err != nil && isUniqueViolation(err) && attempt < 3; attempt++ {
		candidate := fmt.Sprintf("%s-%s", name, uuid.NewString()[:8])
		user, err = s.users.UpsertByEmail(ctx, email, candidate)
	}
	return user, err
}

// RequestPasswordReset issues a fresh OTP for the account behind the email
// and mails it. An unknown email returns nil so the endpoint cannot be used
// to probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	if err := s.resets.ConsumeByUser(ctx, user.ID); err != nil {
		return err
	}

	otp, err := util.GenerateNumericOTP(s.otpLength)
	if err != nil {
		return err
	}
	salt, err := util.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := util.HashPassword(otp, salt)
	if err != nil {
		return err
	}

	if _, err := s.resets.Create(ctx, user.ID, hash, salt, time.Now().Add(s.resetTTL)); err != nil {
		return err
	}
	if s.mailer == nil {
		return fmt.Errorf("password reset mailer not configured")
	}
	return s.mailer.SendPasswordReset(ctx, user.Email, otp)
}

// ResetPassword redeems an OTP and stores the new password. Consuming the
// code also kills every open session indirectly, because the handler clears
// the cookie and the user logs in again.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if isNotFound(err) {
			return ErrInvalidOTP
		}
		return err
	}

	reset, err := s.resets.FindActiveByUser(ctx, user.ID, time.Now())
	if err != nil {
		if isNotFound(err) {
			return ErrInvalidOTP
		}
		return err
	}
	if !util.VerifyPassword(otp, reset.OTPSalt, reset.OTPHash) {
		return ErrInvalidOTP
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash, salt); err != nil {
		return err
	}
	return s.resets.MarkConsumed(ctx, reset.ID)
}
