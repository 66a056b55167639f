// Package views holds the controllers behind each screen of the client.
// Controllers are owned by one goroutine; they fetch whole collections,
// derive sub-views from the held list and refetch after every mutation.
package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/gateway"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/session"
)

const (
	DashboardRoute = "/dashboard"
	MembersRoute   = "/members"
	LandingRoute   = "/"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("cancelled")

// Notifier shows user-visible messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks the user before destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

type SessionReader interface {
	State() session.State
}

// Uploader turns a local file into a hosted URL.
type Uploader interface {
	File(ctx context.Context, path string) (string, error)
	PublicFile(ctx context.Context, path string) (string, error)
}

// Env carries what every controller needs.
type Env struct {
	API      *api.Client
	Session  SessionReader
	Notify   Notifier
	Confirm  Confirmer
	Navigate session.Navigator
	Uploads  Uploader
}

func (e Env) navigate(route string) {
	if e.Navigate != nil {
		e.Navigate.Navigate(route)
	}
}

func (e Env) confirm(prompt string) bool {
	return e.Confirm == nil || e.Confirm.Confirm(prompt)
}

// fail reports err and returns it.
func (e Env) fail(err error) error {
	e.Notify.Error(Message(err))
	return err
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func required(field, label, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: label + " is required"}
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Message is the text shown to the user for err.
func Message(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return gateway.Detail(err)
}

// CanModify reports whether edit and delete controls are shown for an
// entity authored by authorID. The server enforces the same rule.
func CanModify(state session.State, authorID string) bool {
	if state.User == nil {
		return false
	}
	return state.User.ID == authorID || state.IsAdmin()
}

// optional maps a blank form value to an absent field.
func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// field sends the value as-is so that a blank value clears the field.
func field(value string) *string {
	value = strings.TrimSpace(value)
	return &value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func notFound(what string) error {
	return fmt.Errorf("%s not found", what)
}
