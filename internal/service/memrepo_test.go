package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// memTaskRepo is an in-memory TaskRepository with the same ordering and
// ownership behavior as the datastore implementation.
type memTaskRepo struct {
	tasks map[string]*domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[string]*domain.Task{}}
}

func (r *memTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	out := []domain.Task{}
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		if out[i].CompletedAt == nil || out[j].CompletedAt == nil {
			return out[j].CompletedAt != nil
		}
		return out[i].CompletedAt.Before(*out[j].CompletedAt)
	})
	return out, nil
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) error {
	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memTaskRepo) FindOwned(_ context.Context, id, ownerID string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTaskRepo) Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error) {
	if _, err := r.FindOwned(ctx, id, ownerID); err != nil {
		return nil, err
	}
	t := r.tasks[id]
	t.Title = patch.Title
	t.Completed = patch.Completed
	if patch.Completed {
		now := time.Now().UTC()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	clone := *t
	return &clone, nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := r.FindOwned(ctx, id, ownerID); err != nil {
		return err
	}
	delete(r.tasks, id)
	return nil
}

// memProfileRepo is an in-memory ProfileRepository.
type memProfileRepo struct {
	profiles map[string]*domain.Profile
	upserts  int
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (r *memProfileRepo) FindByOwner(_ context.Context, ownerID string) (*domain.Profile, error) {
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	r.upserts++
	clone := *profile
	r.profiles[profile.OwnerID] = &clone
	return nil
}
