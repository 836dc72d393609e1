package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskerror "github.com/taskflow-app/taskflow/internal/errors"
	"github.com/taskflow-app/taskflow/internal/task/domain"
	repo "github.com/taskflow-app/taskflow/internal/task/repository/postgres"
)

var taskColumns = []string{"id", "user_id", "title", "description", "completed", "created_at", "updated_at"}

func TestCreateTask(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresTaskRepository(mock)
	ctx := context.Background()

	task := &domain.Task{
		ID:          "task-1",
		UserID:      "user-1",
		Title:       "A",
		Description: "B",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO tasks").
			WithArgs(task.ID, task.UserID, task.Title, task.Description, task.Completed,
				task.CreatedAt, task.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, r.Create(ctx, task))
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO tasks").
			WithArgs(task.ID, task.UserID, task.Title, task.Description, task.Completed,
				task.CreatedAt, task.UpdatedAt).
			WillReturnError(fmt.Errorf("db error"))

		assert.Error(t, r.Create(ctx, task))
	})
}

func TestListByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresTaskRepository(mock)
	ctx := context.Background()

	t.Run("returns tasks in creation order", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("user-1").
			WillReturnRows(pgxmock.NewRows(taskColumns).
				AddRow("t1", "user-1", "first", "d1", false, now.Add(-time.Hour), now).
				AddRow("t2", "user-1", "second", "d2", true, now, now))

		tasks, err := r.ListByUserID(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "t1", tasks[0].ID)
		assert.Equal(t, "t2", tasks[1].ID)
	})

	t.Run("no rows yields empty result", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("user-1").
			WillReturnRows(pgxmock.NewRows(taskColumns))

		tasks, err := r.ListByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs("user-1").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.ListByUserID(ctx, "user-1")
		assert.Error(t, err)
	})
}

func TestUpdateTask(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresTaskRepository(mock)
	ctx := context.Background()

	task := &domain.Task{
		ID:          "t1",
		UserID:      "user-1",
		Title:       "A",
		Description: "B",
		Completed:   true,
		UpdatedAt:   time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("UPDATE tasks").
			WithArgs(task.Title, task.Description, task.Completed, task.UpdatedAt, task.ID, task.UserID).
			WillReturnRows(pgxmock.NewRows(taskColumns).
				AddRow("t1", "user-1", "A", "B", true, now.Add(-time.Hour), now))

		updated, err := r.Update(ctx, task)
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, "A", updated.Title)
	})

	t.Run("zero rows means not found", func(t *testing.T) {
		// Covers both a missing id and an id owned by another user; the
		// store cannot tell them apart and neither may the caller.
		mock.ExpectQuery("UPDATE tasks").
			WithArgs(task.Title, task.Description, task.Completed, task.UpdatedAt, task.ID, task.UserID).
			WillReturnError(pgx.ErrNoRows)

		_, err := r.Update(ctx, task)
		assert.ErrorIs(t, err, taskerror.ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresTaskRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks").
			WithArgs("t1", "user-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, r.Delete(ctx, "t1", "user-1"))
	})

	t.Run("zero rows means not found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks").
			WithArgs("gone", "user-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, r.Delete(ctx, "gone", "user-1"), taskerror.ErrTaskNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks").
			WithArgs("t1", "user-1").
			WillReturnError(fmt.Errorf("db error"))

		assert.Error(t, r.Delete(ctx, "t1", "user-1"))
	})
}
