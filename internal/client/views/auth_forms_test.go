package views

import (
	"net/http"
	"strings"
	"testing"
)

func TestLoginForm(t *testing.T) {
	h := newHarness(t)
	h.srv.SeedUser("ann@example.com", "secret1", "Ann", "member")

	form := NewLoginForm(h.env, h.session)
	form.Email = "ann@example.com"
	if err := form.Submit(ctx); err == nil || h.notes.lastError() != "Password is required" {
		t.Fatalf("expected password validation, got %v", err)
	}
	if h.srv.Hits(http.MethodPost, "/api/auth/login") != 0 {
		t.Fatal("validation failure must not reach the server")
	}

	form.Password = "wrong-password"
	if err := form.Submit(ctx); err == nil {
		t.Fatal("expected invalid credentials")
	}
	if h.session.State().Authenticated || h.creds.Token() != "" {
		t.Fatal("failed login must not sign in")
	}
	if h.notes.lastError() != "Invalid credentials" {
		t.Fatalf("unexpected notification %q", h.notes.lastError())
	}

	form.Password = "secret1"
	if err := form.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	if !h.session.State().Authenticated || h.nav.last() != DashboardRoute {
		t.Fatalf("expected signed in and on the dashboard, got %v", h.nav.routes)
	}
}

func TestRegisterFormValidation(t *testing.T) {
	tests := []struct {
		name string
		form RegisterForm
		want string
	}{
		{"missing name", RegisterForm{Email: "a@example.com", Password: "secret1", ConfirmPassword: "secret1"}, "Name is required"},
		{"missing confirmation", RegisterForm{Name: "A", Email: "a@example.com", Password: "secret1"}, "Password confirmation is required"},
		{"mismatch", RegisterForm{Name: "A", Email: "a@example.com", Password: "secret1", ConfirmPassword: "secret2"}, "Passwords do not match"},
		{"too short", RegisterForm{Name: "A", Email: "a@example.com", Password: "abc", ConfirmPassword: "abc"}, "Password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			form := NewRegisterForm(h.env, h.session)
			form.Name, form.Email = tt.form.Name, tt.form.Email
			form.Password, form.ConfirmPassword = tt.form.Password, tt.form.ConfirmPassword

			if err := form.Submit(ctx); err == nil || Message(err) != tt.want {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
			if h.srv.Hits(http.MethodPost, "/api/auth/register") != 0 {
				t.Fatal("validation failure must not reach the server")
			}
		})
	}
}

func TestRegisterWithPublicPhotoUpload(t *testing.T) {
	h := newHarness(t)

	form := NewRegisterForm(h.env, h.session)
	form.Name = "Cara"
	form.Email = "cara@example.com"
	form.Password = "secret1"
	form.ConfirmPassword = "secret1"
	if err := form.UploadPhoto(ctx, imageFile(t, "me.png")); err != nil {
		t.Fatal(err)
	}
	if h.srv.Hits(http.MethodPost, "/api/upload/public") != 1 {
		t.Fatal("expected the public upload endpoint")
	}

	if err := form.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	state := h.session.State()
	if !state.Authenticated || state.User.Name != "Cara" || state.User.PhotoURL == nil ||
		!strings.HasSuffix(*state.User.PhotoURL, "/me.png") {
		t.Fatalf("unexpected state %+v", state)
	}
	if h.nav.last() != DashboardRoute {
		t.Fatal("expected dashboard navigation")
	}

	again := NewRegisterForm(h.env, h.session)
	again.Name, again.Email, again.Password, again.ConfirmPassword = "Cara", "cara@example.com", "secret1", "secret1"
	if err := again.Submit(ctx); err == nil || h.notes.lastError() != "Email already registered" {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}
