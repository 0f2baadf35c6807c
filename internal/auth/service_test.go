package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/evoapps/evodo/internal/auth"
	"github.com/evoapps/evodo/tests/testutil"
)

type memorySecrets map[string]string

func (m memorySecrets) Get(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (m memorySecrets) Set(key, value string) error {
	m[key] = value
	return nil
}

func newTestService(t *testing.T) *auth.Service {
	t.Helper()
	return auth.NewService(testutil.NewTestStore(t), memorySecrets{})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "dev@example.com", "Dev", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Error("registered user has no ID")
	}
	if user.Email != "dev@example.com" {
		t.Errorf("email = %q, want dev@example.com", user.Email)
	}

	got, err := svc.Login(ctx, "dev@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("login returned user %q, want %q", got.ID, user.ID)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Dev@Example.COM ", "", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "dev@example.com" {
		t.Errorf("email = %q, want lowercased trimmed form", user.Email)
	}
	if user.DisplayName != "dev" {
		t.Errorf("display name = %q, want local part fallback", user.DisplayName)
	}

	if _, err := svc.Login(ctx, "DEV@example.com", "hunter22"); err != nil {
		t.Errorf("Login with differently-cased email: %v", err)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "not-an-email", "Dev", "hunter22"); !errors.Is(err, auth.ErrInvalidEmail) {
		t.Errorf("bad email: got %v, want ErrInvalidEmail", err)
	}
	if _, err := svc.Register(ctx, "dev@example.com", "Dev", "short"); !errors.Is(err, auth.ErrPasswordTooShort) {
		t.Errorf("short password: got %v, want ErrPasswordTooShort", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dev@example.com", "Dev", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "dev@example.com", "Dev2", "hunter23"); !errors.Is(err, auth.ErrEmailTaken) {
		t.Errorf("duplicate email: got %v, want ErrEmailTaken", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dev@example.com", "Dev", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Login(ctx, "dev@example.com", "wrong-password"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("unknown account: got %v, want ErrInvalidCredentials", err)
	}
}
