package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_task_repository.go -package=mocks github.com/taskflow-app/taskflow/internal/task/domain TaskRepository

// TaskRepository scopes every lookup and mutation to an owner. Update and
// Delete combine the existence and ownership checks into one store
// operation, so a task owned by someone else reads as absent.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	ListByUserID(ctx context.Context, userID string) ([]Task, error)
	Update(ctx context.Context, task *Task) (*Task, error)
	Delete(ctx context.Context, id, userID string) error
}
