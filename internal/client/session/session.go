// Package session owns the signed-in identity of the client process. It is
// the only writer of the persisted credential.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/client/api"
	"github.com/derrickgr2-cpu/familyconnest/internal/client/credentials"
)

const LoginRoute = "/login"

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)
	Register(ctx context.Context, email, password, name string, photoURL *string) (api.AuthResponse, error)
	Me(ctx context.Context) (api.User, error)
}

type Navigator interface {
	Navigate(route string)
}

type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// State is a read-only snapshot of the session.
type State struct {
	User          *api.User
	Authenticated bool
	Loading       bool
}

func (s State) IsAdmin() bool {
	return s.User != nil && s.User.IsAdmin()
}

func (s State) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}

type Store struct {
	auth  AuthAPI
	creds credentials.Store
	nav   Navigator
	log   zerolog.Logger

	once sync.Once

	mu      sync.RWMutex
	user    *api.User
	loading bool
}

// New returns a store in the loading state; call Initialize once.
func New(auth AuthAPI, creds credentials.Store, nav Navigator, log zerolog.Logger) *Store {
	return &Store{
		auth:    auth,
		creds:   creds,
		nav:     nav,
		log:     log,
		loading: true,
	}
}

// Initialize validates a persisted credential against the server. Any
// failure clears the credential. Only the first call does work.
func (s *Store) Initialize(ctx context.Context) {
	s.once.Do(func() {
		user := s.restore(ctx)

		s.mu.Lock()
		s.user = user
		s.loading = false
		s.mu.Unlock()
	})
}

func (s *Store) restore(ctx context.Context) *api.User {
	cred, ok, err := s.creds.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("unreadable credential discarded")
		s.clearCredential()
		return nil
	}
	if !ok || cred.Token == "" {
		return nil
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.log.Info().Err(err).Msg("stored session rejected")
		s.clearCredential()
		return nil
	}

	cred.User = user
	if err := s.creds.Save(cred); err != nil {
		s.log.Warn().Err(err).Msg("refresh stored user failed")
	}
	return &user
}

// Login leaves the session untouched on failure.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(resp)
}

func (s *Store) Register(ctx context.Context, email, password, name string, photoURL *string) error {
	resp, err := s.auth.Register(ctx, email, password, name, photoURL)
	if err != nil {
		return err
	}
	return s.establish(resp)
}

func (s *Store) establish(resp api.AuthResponse) error {
	if err := s.creds.Save(credentials.Credential{Token: resp.AccessToken, User: resp.User}); err != nil {
		return err
	}
	user := resp.User

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Logout always succeeds; a failing credential removal is only logged.
func (s *Store) Logout() {
	s.clearCredential()

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// ForceLogout is the unauthorized-response handler: sign out, then go to
// the login view.
func (s *Store) ForceLogout() {
	s.Logout()
	if s.nav != nil {
		s.nav.Navigate(LoginRoute)
	}
}

func (s *Store) clearCredential() {
	if err := s.creds.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("clear credential failed")
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := State{Loading: s.loading, Authenticated: s.user != nil}
	if s.user != nil {
		user := *s.user
		state.User = &user
	}
	return state
}

func (s *Store) IsAdmin() bool {
	return s.State().IsAdmin()
}
