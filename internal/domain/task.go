package domain

import (
	"context"
	"time"
)

// Task is a single to-do item. Tasks are keyed under their owner in the
// datastore, so the owner is part of the key rather than a stored property.
type Task struct {
	ID          string     `datastore:"-" json:"id"`
	OwnerID     string     `datastore:"-" json:"-"`
	Title       string     `datastore:"title,noindex" json:"title"`
	Completed   bool       `datastore:"completed" json:"completed"`
	CompletedAt *time.Time `datastore:"completed_at" json:"completedAt"`
	CreatedAt   time.Time  `datastore:"created_at" json:"createdAt"`
}

// TaskPatch carries the mutable task fields of an update request.
type TaskPatch struct {
	Title     string
	Completed bool
}

// TaskRepository is the owner-scoped persistence contract for tasks.
// Every method takes the owner identifier; there is no way to reach a
// task without naming its owner.
type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
	Create(ctx context.Context, task *Task) error
	FindOwned(ctx context.Context, id, ownerID string) (*Task, error)
	Update(ctx context.Context, id, ownerID string, patch TaskPatch) (*Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}
