// Package store persists tasks and profiles in Google Cloud Datastore.
//
// Records are keyed under their owner: task keys are children of an owner
// ancestor key and profile keys are named by the owner id. A caller therefore
// cannot address another user's record at all; a lookup with the wrong owner
// resolves to a key that simply does not exist.
package store

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/datastore"
	"github.com/taskdeck/taskdeck/internal/logger"
)

const (
	KindOwner   = "Owner"
	KindTask    = "Task"
	KindProfile = "Profile"
)

// Client wraps the Datastore client with domain-specific collections.
type Client struct {
	ds *datastore.Client
}

// NewClient connects to Datastore for the given project.
// The official client picks up DATASTORE_EMULATOR_HOST automatically; it is
// logged here for visibility during development.
func NewClient(ctx context.Context, projectID string) (*Client, error) {
	if emulatorHost := os.Getenv("DATASTORE_EMULATOR_HOST"); emulatorHost != "" {
		logger.InfoLog(ctx, "Initializing Datastore client against emulator at %s", emulatorHost)
	}

	ds, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}
	return &Client{ds: ds}, nil
}

// Close closes the underlying datastore client.
func (c *Client) Close() error {
	return c.ds.Close()
}

// Tasks returns the owner-scoped task repository.
func (c *Client) Tasks() *TaskStore {
	return &TaskStore{ds: c.ds}
}

// Profiles returns the owner-scoped profile repository.
func (c *Client) Profiles() *ProfileStore {
	return &ProfileStore{ds: c.ds}
}

func ownerKey(ownerID string) *datastore.Key {
	return datastore.NameKey(KindOwner, ownerID, nil)
}
