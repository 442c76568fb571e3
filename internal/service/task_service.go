package service

import (
	"context"
	"fmt"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/sanitize"
)

// TaskService validates and sanitizes task input before it reaches the
// repository. All operations are scoped to the calling owner.
type TaskService interface {
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, ownerID, title string) (*domain.Task, error)
	Update(ctx context.Context, id, ownerID, title string, completed bool) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type taskService struct {
	repo domain.TaskRepository
}

func NewTaskService(repo domain.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func cleanTitle(title string) (string, error) {
	title = sanitize.Clean(title)
	if !sanitize.ValidTitle(title) {
		return "", domain.NewValidationError("title",
			fmt.Sprintf("title must be between 1 and %d characters", sanitize.MaxTitleLen))
	}
	return title, nil
}

func (s *taskService) Create(ctx context.Context, ownerID, title string) (*domain.Task, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		OwnerID:   ownerID,
		Title:     title,
		Completed: false,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id, ownerID, title string, completed bool) (*domain.Task, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, ownerID, domain.TaskPatch{Title: title, Completed: completed})
}

func (s *taskService) Delete(ctx context.Context, id, ownerID string) error {
	return s.repo.Delete(ctx, id, ownerID)
}
