package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/datastore"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// ProfileStore implements domain.ProfileRepository on Datastore. The profile
// key is named by the owner id, which makes "one profile per user" a property
// of the keyspace rather than something to enforce in code.
type ProfileStore struct {
	ds *datastore.Client
}

func profileKey(ownerID string) *datastore.Key {
	return datastore.NameKey(KindProfile, ownerID, ownerKey(ownerID))
}

// FindByOwner returns the owner's profile, or domain.ErrNotFound when none
// has been created yet.
func (s *ProfileStore) FindByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := s.ds.Get(ctx, profileKey(ownerID), &profile); err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	profile.OwnerID = ownerID
	return &profile, nil
}

// Upsert writes the profile under its owner's key.
func (s *ProfileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.OwnerID == "" {
		return errors.New("profile owner cannot be empty")
	}
	if _, err := s.ds.Put(ctx, profileKey(profile.OwnerID), profile); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
