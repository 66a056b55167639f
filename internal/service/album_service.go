package service

import (
	"context"

	"github.com/derrickgr2-cpu/familyconnest/internal/ids"
	"github.com/derrickgr2-cpu/familyconnest/internal/models"
)

type AlbumService struct {
	photos  PhotoStore
	members MemberStore
	users   UserStore
	cache   CacheInvalidator
}

func NewAlbumService(photos PhotoStore, members MemberStore, users UserStore, cache CacheInvalidator) *AlbumService {
	return &AlbumService{
		photos:  photos,
		members: members,
		users:   users,
		cache:   cache,
	}
}

type PhotoInput struct {
	PhotoURL string
	Caption  *string
}

// PublicProfile is the unauthenticated view of a user's personal album.
type PublicProfile struct {
	ID       string
	Name     string
	PhotoURL *string
	Photos   []models.Photo
}

func (s *AlbumService) MemberPhotos(ctx context.Context, owner models.User, memberID string) ([]models.Photo, error) {
	if _, err := s.members.GetOwned(ctx, memberID, owner.ID); err != nil {
		return nil, err
	}
	return s.photos.ListByMember(ctx, memberID)
}

func (s *AlbumService) AddMemberPhoto(ctx context.Context, owner models.User, memberID string, input PhotoInput) (models.Photo, error) {
	photo, err := newPhoto(input)
	if err != nil {
		return models.Photo{}, err
	}
	if _, err := s.members.GetOwned(ctx, memberID, owner.ID); err != nil {
		return models.Photo{}, err
	}
	photo.MemberID = &memberID

	created, err := s.photos.Create(ctx, photo)
	if err != nil {
		return models.Photo{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *AlbumService) DeleteMemberPhoto(ctx context.Context, owner models.User, memberID, photoID string) error {
	if _, err := s.members.GetOwned(ctx, memberID, owner.ID); err != nil {
		return err
	}
	if err := s.photos.DeleteFromMember(ctx, memberID, photoID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *AlbumService) UserPhotos(ctx context.Context, user models.User) ([]models.Photo, error) {
	return s.photos.ListByUser(ctx, user.ID)
}

func (s *AlbumService) AddUserPhoto(ctx context.Context, user models.User, input PhotoInput) (models.Photo, error) {
	photo, err := newPhoto(input)
	if err != nil {
		return models.Photo{}, err
	}
	photo.UserID = &user.ID
	return s.photos.Create(ctx, photo)
}

func (s *AlbumService) DeleteUserPhoto(ctx context.Context, user models.User, photoID string) error {
	return s.photos.DeleteFromUser(ctx, user.ID, photoID)
}

func (s *AlbumService) PublicProfile(ctx context.Context, userID string) (PublicProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return PublicProfile{}, err
	}
	photos, err := s.photos.ListByUser(ctx, userID)
	if err != nil {
		return PublicProfile{}, err
	}
	return PublicProfile{
		ID:       user.ID,
		Name:     user.Name,
		PhotoURL: user.PhotoURL,
		Photos:   photos,
	}, nil
}

func (s *AlbumService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

func newPhoto(input PhotoInput) (models.Photo, error) {
	url := trimmedValue(input.PhotoURL)
	if url == "" {
		return models.Photo{}, validationError("photo_url is required")
	}
	return models.Photo{
		ID:       ids.New(),
		PhotoURL: url,
		Caption:  optional(input.Caption),
	}, nil
}
