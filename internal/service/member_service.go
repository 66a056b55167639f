package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/ids"
	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/repository"
)

type MemberService struct {
	members MemberStore
	cache   CacheInvalidator
	log     zerolog.Logger
}

func NewMemberService(members MemberStore, cache CacheInvalidator, log zerolog.Logger) *MemberService {
	return &MemberService{
		members: members,
		cache:   cache,
		log:     log,
	}
}

type MemberInput struct {
	Name         string
	Relationship string
	BirthDate    *string
	Bio          *string
	PhotoURL     *string
	ParentID     *string
}

func (s *MemberService) Create(ctx context.Context, owner models.User, input MemberInput) (models.Member, error) {
	member := models.Member{
		ID:           ids.New(),
		Name:         trimmedValue(input.Name),
		Relationship: trimmedValue(input.Relationship),
		BirthDate:    optional(input.BirthDate),
		Bio:          optional(input.Bio),
		PhotoURL:     optional(input.PhotoURL),
		ParentID:     optional(input.ParentID),
		CreatedBy:    owner.ID,
	}
	if member.Name == "" {
		return models.Member{}, validationError("name is required")
	}
	if !models.ValidRelationship(member.Relationship) {
		return models.Member{}, validationError("unknown relationship %q", member.Relationship)
	}
	if member.BirthDate != nil && !validDate(*member.BirthDate) {
		return models.Member{}, validationError("birth_date must be YYYY-MM-DD")
	}

	if member.ParentID != nil {
		index, err := s.members.ParentIndex(ctx, owner.ID)
		if err != nil {
			return models.Member{}, err
		}
		if err := validateParent(index, member.ID, *member.ParentID); err != nil {
			return models.Member{}, err
		}
	}

	created, err := s.members.Create(ctx, member)
	if err != nil {
		return models.Member{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *MemberService) List(ctx context.Context, owner models.User) ([]models.Member, error) {
	return s.members.ListByOwner(ctx, owner.ID)
}

func (s *MemberService) Get(ctx context.Context, owner models.User, id string) (models.Member, error) {
	return s.members.GetOwned(ctx, id, owner.ID)
}

func (s *MemberService) ListPublic(ctx context.Context) ([]models.Member, error) {
	return s.members.ListAll(ctx)
}

func (s *MemberService) GetPublic(ctx context.Context, id string) (models.Member, error) {
	return s.members.GetByID(ctx, id)
}

// Update applies the non-nil fields of patch. An empty optional field clears
// the stored value.
func (s *MemberService) Update(ctx context.Context, owner models.User, id string, patch models.MemberPatch) (models.Member, error) {
	if patch.Empty() {
		return models.Member{}, ErrNoFieldsToUpdate
	}

	patch.Name = trimmed(patch.Name)
	patch.Relationship = trimmed(patch.Relationship)
	patch.BirthDate = trimmed(patch.BirthDate)
	patch.ParentID = trimmed(patch.ParentID)

	if patch.Name != nil && *patch.Name == "" {
		return models.Member{}, validationError("name cannot be empty")
	}
	if patch.Relationship != nil && !models.ValidRelationship(*patch.Relationship) {
		return models.Member{}, validationError("unknown relationship %q", *patch.Relationship)
	}
	if patch.BirthDate != nil && *patch.BirthDate != "" && !validDate(*patch.BirthDate) {
		return models.Member{}, validationError("birth_date must be YYYY-MM-DD")
	}

	if patch.ParentID != nil && *patch.ParentID != "" {
		index, err := s.members.ParentIndex(ctx, owner.ID)
		if err != nil {
			return models.Member{}, err
		}
		if _, ok := index[id]; !ok {
			return models.Member{}, repository.ErrMemberNotFound
		}
		if err := validateParent(index, id, *patch.ParentID); err != nil {
			return models.Member{}, err
		}
	}

	updated, err := s.members.Update(ctx, id, owner.ID, patch)
	if err != nil {
		return models.Member{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *MemberService) Delete(ctx context.Context, owner models.User, id string) error {
	if err := s.members.Delete(ctx, id, owner.ID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MemberService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("invalidate public members cache failed")
	}
}

// validateParent checks parentID against an owner's member index (member id
// to parent id, "" for roots). The parent must be one of the owner's members,
// must differ from memberID and must not have memberID among its ancestors.
func validateParent(index map[string]string, memberID, parentID string) error {
	if parentID == memberID {
		return ErrParentCycle
	}
	if _, ok := index[parentID]; !ok {
		return ErrParentNotFound
	}

	seen := make(map[string]struct{}, len(index))
	for cur := parentID; cur != ""; cur = index[cur] {
		if cur == memberID {
			return ErrParentCycle
		}
		if _, ok := seen[cur]; ok {
			return ErrParentCycle
		}
		seen[cur] = struct{}{}
	}
	return nil
}

func trimmedValue(s string) string {
	return *trimmed(&s)
}

// IsNotFound reports whether err is any of the repository not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrUserNotFound) ||
		errors.Is(err, repository.ErrMemberNotFound) ||
		errors.Is(err, repository.ErrPhotoNotFound) ||
		errors.Is(err, repository.ErrEventNotFound) ||
		errors.Is(err, repository.ErrPostNotFound) ||
		errors.Is(err, repository.ErrReplyNotFound) ||
		errors.Is(err, repository.ErrUploadNotFound)
}
