package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/config"
	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/security"
)

func newAuthService(users UserStore) *AuthService {
	return NewAuthService(users, config.SecurityConfig{
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
		AdminEmails: []string{"Admin@Family.test"},
	}, zerolog.Nop())
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newFakeUsers())

	registered, err := svc.Register(ctx, RegisterInput{
		Email:    "  Ann@Family.test ",
		Password: "secret1",
		Name:     "Ann",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.User.Email != "ann@family.test" {
		t.Fatalf("expected normalised email, got %q", registered.User.Email)
	}
	if registered.User.Role != models.UserRoleMember {
		t.Fatalf("expected member role, got %q", registered.User.Role)
	}

	claims, err := security.ParseAccessToken(registered.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != registered.User.ID {
		t.Fatalf("expected token for %s, got %s", registered.User.ID, claims.UserID)
	}

	logged, err := svc.Login(ctx, LoginInput{Email: "ANN@family.test", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.User.ID != registered.User.ID {
		t.Fatalf("expected same user, got %s", logged.User.ID)
	}

	me, err := svc.Authenticate(ctx, logged.AccessToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if me.Name != "Ann" {
		t.Fatalf("expected Ann, got %q", me.Name)
	}
}

func TestRegisterRejects(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newFakeUsers())
	if _, err := svc.Register(ctx, RegisterInput{Email: "taken@family.test", Password: "secret1", Name: "T"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"bad email", RegisterInput{Email: "nope", Password: "secret1", Name: "N"}, ErrValidation},
		{"short password", RegisterInput{Email: "a@family.test", Password: "12345", Name: "N"}, ErrValidation},
		{"blank name", RegisterInput{Email: "a@family.test", Password: "secret1", Name: "  "}, ErrValidation},
		{"duplicate", RegisterInput{Email: "TAKEN@family.test", Password: "secret1", Name: "N"}, ErrEmailTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegisterGrantsAdminFromList(t *testing.T) {
	svc := newAuthService(newFakeUsers())
	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "admin@family.test",
		Password: "secret1",
		Name:     "Admin",
		PhotoURL: strPtr(" "),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !result.User.IsAdmin() {
		t.Fatalf("expected admin role, got %q", result.User.Role)
	}
	if result.User.PhotoURL != nil {
		t.Fatalf("expected blank photo url to be dropped, got %q", *result.User.PhotoURL)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newFakeUsers())
	if _, err := svc.Register(ctx, RegisterInput{Email: "ann@family.test", Password: "secret1", Name: "Ann"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	for _, input := range []LoginInput{
		{Email: "ann@family.test", Password: "wrong-password"},
		{Email: "nobody@family.test", Password: "secret1"},
	} {
		if _, err := svc.Login(ctx, input); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials for %s, got %v", input.Email, err)
		}
	}
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	svc := newAuthService(newFakeUsers())
	if _, err := svc.Authenticate(context.Background(), "garbage"); !errors.Is(err, security.ErrTokenInvalid) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
