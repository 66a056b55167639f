package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/config"
	"github.com/derrickgr2-cpu/familyconnest/internal/ids"
	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/repository"
	"github.com/derrickgr2-cpu/familyconnest/internal/security"
)

const MinPasswordLength = 6

type AuthService struct {
	users  UserStore
	cfg    config.SecurityConfig
	admins map[string]struct{}
	log    zerolog.Logger
}

func NewAuthService(users UserStore, cfg config.SecurityConfig, log zerolog.Logger) *AuthService {
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins[normalizeEmail(email)] = struct{}{}
	}
	return &AuthService{
		users:  users,
		cfg:    cfg,
		admins: admins,
		log:    log,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	PhotoURL *string
}

type AuthResult struct {
	AccessToken string
	User        models.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	email := normalizeEmail(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return AuthResult{}, validationError("a valid email is required")
	}
	if len(input.Password) < MinPasswordLength {
		return AuthResult{}, validationError("password must be at least %d characters", MinPasswordLength)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return AuthResult{}, validationError("name is required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	role := models.UserRoleMember
	if _, ok := s.admins[email]; ok {
		role = models.UserRoleAdmin
	}

	user := models.User{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		PhotoURL:     optional(input.PhotoURL),
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return s.issue(user)
}

type LoginInput struct {
	Email    string
	Password string
}

// Login answers ErrInvalidCredentials for both unknown e-mail and wrong
// password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	claims, err := security.ParseAccessToken(token, s.cfg.JWTSecret)
	if err != nil {
		return models.User{}, err
	}
	return s.users.GetByID(ctx, claims.UserID)
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	token, err := security.GenerateAccessToken(s.cfg.JWTSecret, user.ID, user.Email, string(user.Role), s.cfg.JWTTTL)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{AccessToken: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
