package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/derrickgr2-cpu/familyconnest/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrForbidden          = errors.New("not allowed to modify this resource")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrParentNotFound     = errors.New("parent member not found")
	ErrParentCycle        = errors.New("parent would create a cycle")
	ErrValidation         = errors.New("validation failed")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

type MemberStore interface {
	Create(ctx context.Context, member models.Member) (models.Member, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Member, error)
	ListAll(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, id string) (models.Member, error)
	GetOwned(ctx context.Context, id string, ownerID string) (models.Member, error)
	ParentIndex(ctx context.Context, ownerID string) (map[string]string, error)
	Update(ctx context.Context, id string, ownerID string, patch models.MemberPatch) (models.Member, error)
	Delete(ctx context.Context, id string, ownerID string) error
}

type PhotoStore interface {
	Create(ctx context.Context, photo models.Photo) (models.Photo, error)
	ListByMember(ctx context.Context, memberID string) ([]models.Photo, error)
	ListByUser(ctx context.Context, userID string) ([]models.Photo, error)
	DeleteFromMember(ctx context.Context, memberID string, photoID string) error
	DeleteFromUser(ctx context.Context, userID string, photoID string) error
}

type EventStore interface {
	Create(ctx context.Context, event models.Event) (models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (models.Event, error)
	Update(ctx context.Context, id string, patch models.EventPatch) (models.Event, error)
	Delete(ctx context.Context, id string) error
}

type ForumStore interface {
	CreatePost(ctx context.Context, post models.ForumPost) (models.ForumPost, error)
	ListPosts(ctx context.Context) ([]models.ForumPost, error)
	GetPost(ctx context.Context, id string) (models.ForumPost, error)
	UpdatePost(ctx context.Context, id string, title string, content string) (models.ForumPost, error)
	DeletePost(ctx context.Context, id string) error
	CreateReply(ctx context.Context, reply models.Reply) (models.Reply, error)
	GetReply(ctx context.Context, postID string, replyID string) (models.Reply, error)
	DeleteReply(ctx context.Context, postID string, replyID string) error
}

type UploadStore interface {
	Create(ctx context.Context, upload models.Upload) error
	List(ctx context.Context, limit, offset int) ([]models.Upload, error)
}

// CacheInvalidator drops derived public data after member mutations.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// trimmed returns nil for nil input and a pointer to the trimmed value otherwise.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// optional returns nil for nil or blank input.
func optional(s *string) *string {
	v := trimmed(s)
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func validDate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}
