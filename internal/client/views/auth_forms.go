package views

import (
	"context"
	"fmt"
	"strings"
)

const MinPasswordLength = 6

type SessionActions interface {
	SessionReader
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password, name string, photoURL *string) error
}

type LoginForm struct {
	Email    string
	Password string

	env     Env
	session SessionActions
}

func NewLoginForm(env Env, session SessionActions) *LoginForm {
	return &LoginForm{env: env, session: session}
}

func (f *LoginForm) validate() error {
	return firstError(
		required("email", "Email", f.Email),
		required("password", "Password", f.Password),
	)
}

// Submit signs in and opens the dashboard. On failure the form keeps its
// values and the session is untouched.
func (f *LoginForm) Submit(ctx context.Context) error {
	if err := f.validate(); err != nil {
		return f.env.fail(err)
	}
	if err := f.session.Login(ctx, strings.TrimSpace(f.Email), f.Password); err != nil {
		return f.env.fail(err)
	}
	f.env.Notify.Success("Welcome back!")
	f.env.navigate(DashboardRoute)
	return nil
}

type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	PhotoURL        string

	env     Env
	session SessionActions
}

func NewRegisterForm(env Env, session SessionActions) *RegisterForm {
	return &RegisterForm{env: env, session: session}
}

func (f *RegisterForm) validate() error {
	if err := firstError(
		required("name", "Name", f.Name),
		required("email", "Email", f.Email),
		required("password", "Password", f.Password),
		required("confirm_password", "Password confirmation", f.ConfirmPassword),
	); err != nil {
		return err
	}
	if f.Password != f.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}
	if len(f.Password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)}
	}
	return nil
}

// UploadPhoto sets the optional profile photo before an account exists.
func (f *RegisterForm) UploadPhoto(ctx context.Context, path string) error {
	return uploadInto(ctx, f.env, path, true, &f.PhotoURL)
}

func (f *RegisterForm) Submit(ctx context.Context) error {
	if err := f.validate(); err != nil {
		return f.env.fail(err)
	}
	err := f.session.Register(ctx, strings.TrimSpace(f.Email), f.Password, strings.TrimSpace(f.Name), optional(f.PhotoURL))
	if err != nil {
		return f.env.fail(err)
	}
	f.env.Notify.Success("Welcome to the family!")
	f.env.navigate(DashboardRoute)
	return nil
}
