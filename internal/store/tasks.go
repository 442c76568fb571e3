package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// TaskStore implements domain.TaskRepository on Datastore. Task keys are
// children of the owner's ancestor key.
type TaskStore struct {
	ds *datastore.Client
}

func taskKey(id, ownerID string) *datastore.Key {
	return datastore.NameKey(KindTask, id, ownerKey(ownerID))
}

// ListByOwner returns the owner's tasks ordered by completion state, then by
// completion time. Active tasks carry a null completed_at, which Datastore
// sorts first, so the secondary order only shuffles completed tasks.
// Requires the composite index declared in index.yaml.
func (s *TaskStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	query := datastore.NewQuery(KindTask).
		Ancestor(ownerKey(ownerID)).
		Order("completed").
		Order("completed_at")

	var tasks []domain.Task
	keys, err := s.ds.GetAll(ctx, query, &tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	for i, key := range keys {
		tasks[i].ID = key.Name
		tasks[i].OwnerID = ownerID
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Create stores a new task and assigns its id.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if task.OwnerID == "" {
		return errors.New("task owner cannot be empty")
	}
	task.ID = uuid.NewString()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	if _, err := s.ds.Put(ctx, taskKey(task.ID, task.OwnerID), task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindOwned fetches a task by id under the given owner. A task belonging to
// someone else lives under a different ancestor, so the lookup misses and the
// caller sees the same ErrNotFound a nonexistent id would produce.
func (s *TaskStore) FindOwned(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	var task domain.Task
	if err := s.ds.Get(ctx, taskKey(id, ownerID), &task); err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	task.ID = id
	task.OwnerID = ownerID
	return &task, nil
}

// Update applies a patch to an owned task inside a transaction, setting
// completed_at when the task transitions to completed and clearing it
// otherwise.
func (s *TaskStore) Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error) {
	key := taskKey(id, ownerID)
	var task domain.Task

	_, err := s.ds.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		if err := tx.Get(key, &task); err != nil {
			return err
		}
		task.Title = patch.Title
		task.Completed = patch.Completed
		if patch.Completed {
			now := time.Now().UTC()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
		_, err := tx.Put(key, &task)
		return err
	})
	if err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	task.ID = id
	task.OwnerID = ownerID
	return &task, nil
}

// Delete removes an owned task, confirming ownership first.
func (s *TaskStore) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.FindOwned(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.ds.Delete(ctx, taskKey(id, ownerID)); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
