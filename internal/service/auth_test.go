package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qrkeep/qrkeep/internal/auth"
)

func newAuthService() (*AuthService, *fakeUserStore) {
	users := newFakeUserStore()
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	return NewAuthService(users, tokens), users
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newAuthService()

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if user.ID == "" {
		t.Error("expected server-assigned id")
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email mismatch: %q", user.Email)
	}
	if user.PasswordHash == "hunter2" || user.PasswordHash == "" {
		t.Error("password not hashed")
	}

	claims, err := svc.Tokens().Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token carries wrong user id: %q", claims.UserID)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newAuthService()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"no_name", RegisterInput{Email: "a@b.c", Password: "x"}},
		{"no_email", RegisterInput{Name: "A", Password: "x"}},
		{"no_password", RegisterInput{Name: "A", Email: "a@b.c"}},
		{"blank_name", RegisterInput{Name: "   ", Email: "a@b.c", Password: "x"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), test.input)
			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users := newAuthService()

	input := RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "hunter2"}

	if _, _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register error: %v", err)
	}

	_, _, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if len(users.byID) != 1 {
		t.Errorf("expected exactly one user row, got %d", len(users.byID))
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuthService()

	registered, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	if user.ID != registered.ID {
		t.Errorf("login returned different user id: %q vs %q", user.ID, registered.ID)
	}
	if token == "" {
		t.Error("expected a token")
	}
}

func TestLogin_InformationSymmetry(t *testing.T) {
	svc, _ := newAuthService()

	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2",
	}); err != nil {
		t.Fatalf("register error: %v", err)
	}

	// Unknown email and wrong password yield the identical error
	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "hunter2")
	_, _, errWrongPw := svc.Login(context.Background(), "ada@example.com", "wrong")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newAuthService()

	if _, _, err := svc.Login(context.Background(), "", "x"); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields for empty email, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.c", ""); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields for empty password, got %v", err)
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newAuthService()

	user, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	got, err := svc.CurrentUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("CurrentUser error: %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("unexpected user: %+v", got)
	}

	// Account gone
	_, err = svc.CurrentUser(context.Background(), "missing-id")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
