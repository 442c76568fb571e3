package domain

import (
	"context"
	"time"
)

// Preferences holds per-user presentation settings.
type Preferences struct {
	Theme         string `datastore:"theme,noindex" json:"theme"`
	Notifications bool   `datastore:"notifications,noindex" json:"notifications"`
}

// DefaultPreferences returns the preferences assigned at lazy profile creation.
func DefaultPreferences() Preferences {
	return Preferences{Theme: "light", Notifications: true}
}

// Profile is the per-user presentation record. Exactly one exists per owner;
// it is created lazily on first fetch and never deleted.
type Profile struct {
	OwnerID     string      `datastore:"-" json:"ownerId"`
	DisplayName string      `datastore:"display_name,noindex" json:"displayName"`
	Avatar      string      `datastore:"avatar,noindex" json:"avatar"`
	Bio         string      `datastore:"bio,noindex" json:"bio"`
	Preferences Preferences `datastore:"preferences,flatten" json:"preferences"`
	CreatedAt   time.Time   `datastore:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `datastore:"updated_at" json:"updatedAt"`
}

// ProfilePatch has one optional slot per mutable profile field. A nil slot
// leaves the stored value untouched; fields are validated individually before
// any merge happens.
type ProfilePatch struct {
	DisplayName *string      `json:"displayName"`
	Avatar      *string      `json:"avatar"`
	Bio         *string      `json:"bio"`
	Preferences *Preferences `json:"preferences"`
}

// ProfileRepository is the owner-scoped persistence contract for profiles.
type ProfileRepository interface {
	FindByOwner(ctx context.Context, ownerID string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}
