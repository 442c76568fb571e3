package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/avatar"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/sanitize"
)

// ProfileService manages the per-user profile record, creating it lazily
// with defaults on first access.
type ProfileService interface {
	// Get returns the owner's profile. When none exists yet one is created
	// with a generated avatar and defaultName as display name.
	Get(ctx context.Context, ownerID, defaultName string) (*domain.Profile, error)
	Update(ctx context.Context, ownerID string, patch domain.ProfilePatch) (*domain.Profile, error)
}

type profileService struct {
	repo domain.ProfileRepository
}

func NewProfileService(repo domain.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func defaultProfile(ownerID, defaultName string) *domain.Profile {
	name := sanitize.Clean(defaultName)
	if len(name) > sanitize.MaxDisplayNameLen {
		name = name[:sanitize.MaxDisplayNameLen]
	}
	now := time.Now().UTC()
	return &domain.Profile{
		OwnerID:     ownerID,
		DisplayName: name,
		Avatar:      avatar.URL(ownerID),
		Preferences: domain.DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *profileService) Get(ctx context.Context, ownerID, defaultName string) (*domain.Profile, error) {
	profile, err := s.repo.FindByOwner(ctx, ownerID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	profile = defaultProfile(ownerID, defaultName)
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, ownerID string, patch domain.ProfilePatch) (*domain.Profile, error) {
	profile, err := s.repo.FindByOwner(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		profile = defaultProfile(ownerID, "")
	} else if err != nil {
		return nil, err
	}

	// Validate every present field before touching the stored record, so a
	// rejected patch leaves no partial write behind.
	if patch.DisplayName != nil {
		name := sanitize.Clean(*patch.DisplayName)
		if !sanitize.ValidDisplayName(name) {
			return nil, domain.NewValidationError("displayName",
				fmt.Sprintf("display name must be between 1 and %d characters", sanitize.MaxDisplayNameLen))
		}
		patch.DisplayName = &name
	}
	if patch.Bio != nil {
		bio := sanitize.Clean(*patch.Bio)
		if !sanitize.ValidBio(bio) {
			return nil, domain.NewValidationError("bio",
				fmt.Sprintf("bio must be at most %d characters", sanitize.MaxBioLen))
		}
		patch.Bio = &bio
	}
	if patch.Avatar != nil && !sanitize.ValidAvatarURL(*patch.Avatar) {
		return nil, domain.NewValidationError("avatar",
			fmt.Sprintf("avatar must be a valid URL of at most %d characters", sanitize.MaxAvatarURLLen))
	}

	if patch.DisplayName != nil {
		profile.DisplayName = *patch.DisplayName
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		profile.Avatar = *patch.Avatar
	}
	if patch.Preferences != nil {
		profile.Preferences = *patch.Preferences
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
