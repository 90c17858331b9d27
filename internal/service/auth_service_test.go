package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newAuthFixture() (*AuthService, *memoryUserRepo, *memorySessionRepo, *memoryResetRepo, *fakeMailer) {
	users := newMemoryUserRepo()
	sessions := newMemorySessionRepo()
	resets := &memoryResetRepo{}
	mailer := &fakeMailer{}
	svc := NewAuthService(users, sessions, resets, mailer, "", time.Hour, 15*time.Minute, 6)
	return svc, users, sessions, resets, mailer
}

func TestAuthService_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newAuthFixture()

	user, err := svc.Register(ctx, "frida", "frida@example.com", "wander-far-and-wide")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Username != "frida" {
		t.Fatalf("expected username frida, got %q", user.Username)
	}

	authed, err := svc.Authenticate(ctx, "frida", "wander-far-and-wide")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected same user back")
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newAuthFixture()

	if _, err := svc.Register(ctx, "frida", "frida@example.com", "wander-far-and-wide"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register(ctx, "frida", "other@example.com", "wander-far-and-wide"); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestAuthService_FederatedUpsertDeduplicatesUsername(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newAuthFixture()

	if _, err := svc.Register(ctx, "traveler", "frida@example.com", "wander-far-and-wide"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user, err := svc.upsertFederatedUser(ctx, "new@example.com", "traveler")
	if err != nil {
		t.Fatalf("expected colliding display name to be suffixed, got %v", err)
	}
	if user.Username == "traveler" {
		t.Fatalf("expected a de-duplicated username, got %q", user.Username)
	}
	if !strings.HasPrefix(user.Username, "traveler-") {
		t.Fatalf("expected suffixed display name, got %q", user.Username)
	}
}

func TestAuthService_FederatedUpsertReturnsExistingAccount(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newAuthFixture()

	first, err := svc.upsertFederatedUser(ctx, "frida@example.com", "frida")
	if err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}
	again, err := svc.upsertFederatedUser(ctx, "frida@example.com", "frida")
	if err != nil {
		t.Fatalf("second upsert returned error: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("expected the same account back for the same email")
	}
}

func TestAuthService_AuthenticateWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newAuthFixture()

	if _, err := svc.Register(ctx, "frida", "frida@example.com", "wander-far-and-wide"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "frida", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "wander-far-and-wide"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newAuthFixture()

	user, err := svc.Register(ctx, "frida", "frida@example.com", "wander-far-and-wide")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	session, err := svc.StartSession(ctx, user.ID)
	if err != nil {
		t.Fatalf("StartSession returned error: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected session token")
	}

	resolved, err := svc.ResolveSession(ctx, session.Token)
	if err != nil {
		t.Fatalf("ResolveSession returned error: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("expected session to resolve to its user")
	}

	if err := svc.EndSession(ctx, session.Token); err != nil {
		t.Fatalf("EndSession returned error: %v", err)
	}
	if _, err := svc.ResolveSession(ctx, session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}

	// Logout is idempotent.
	if err := svc.EndSession(ctx, "unknown-token"); err != nil {
		t.Fatalf("EndSession for unknown token returned error: %v", err)
	}
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, mailer := newAuthFixture()

	if _, err := svc.Register(ctx, "frida", "frida@example.com", "wander-far-and-wide"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "frida@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset returned error: %v", err)
	}
	if len(mailer.otps) != 1 {
		t.Fatalf("expected one mailed code, got %d", len(mailer.otps))
	}
	otp := mailer.otps[0]

	wrong := "000000"
	if wrong == otp {
		wrong = "111111"
	}
	if err := svc.ResetPassword(ctx, "frida@example.com", wrong, "a-brand-new-password"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP for wrong code, got %v", err)
	}
	if err := svc.ResetPassword(ctx, "frida@example.com", otp, "a-brand-new-password"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "frida", "wander-far-and-wide"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to stop working")
	}
	if _, err := svc.Authenticate(ctx, "frida", "a-brand-new-password"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}

	// The code is single use.
	if err := svc.ResetPassword(ctx, "frida@example.com", otp, "yet-another-password"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected consumed code to be rejected, got %v", err)
	}
}

func TestAuthService_RequestResetUnknownEmailIsSilent(t *testing.T) {
	svc, _, _, _, mailer := newAuthFixture()
	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("expected nil for unknown email, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no mail for unknown email")
	}
}
