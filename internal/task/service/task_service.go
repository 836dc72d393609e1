package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	taskerror "github.com/taskflow-app/taskflow/internal/errors"
	"github.com/taskflow-app/taskflow/internal/task/domain"
	"github.com/taskflow-app/taskflow/internal/task/dto"
)

// TaskService owns the task CRUD rules. The userID argument on every method
// is the identity resolved from the verified token, never a client-supplied
// field.
type TaskService struct {
	repo domain.TaskRepository
}

func NewTaskService(repo domain.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func validateInput(input dto.TaskInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", taskerror.ErrValidation)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", taskerror.ErrValidation)
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, userID string, input dto.TaskInput) (*dto.TaskOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()

	task := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	out := dto.NewTaskOutput(task)

	return &out, nil
}

// List returns the caller's tasks in creation order. It returns an empty
// slice, never nil, when there are none.
func (s *TaskService) List(ctx context.Context, userID string) ([]dto.TaskOutput, error) {
	tasks, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TaskOutput, 0, len(tasks))
	for i := range tasks {
		out = append(out, dto.NewTaskOutput(&tasks[i]))
	}

	return out, nil
}

func (s *TaskService) Update(ctx context.Context, userID, id string, input dto.TaskInput) (*dto.TaskOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          id,
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		UpdatedAt:   time.Now(),
	}

	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	out := dto.NewTaskOutput(updated)

	return &out, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, id, userID)
}
