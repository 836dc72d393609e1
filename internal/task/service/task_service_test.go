package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskerror "github.com/taskflow-app/taskflow/internal/errors"
	"github.com/taskflow-app/taskflow/internal/mocks"
	"github.com/taskflow-app/taskflow/internal/task/domain"
	"github.com/taskflow-app/taskflow/internal/task/dto"
	"github.com/taskflow-app/taskflow/internal/task/service"
)

func TestTaskService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	s := service.NewTaskService(mockRepo)

	input := dto.TaskInput{Title: "A", Description: "B"}

	var stored *domain.Task
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, task *domain.Task) error {
			stored = task
			return nil
		})

	task, err := s.Create(context.Background(), "user-1", input)

	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "user-1", task.UserID)
	assert.Equal(t, "A", task.Title)
	assert.Equal(t, "B", task.Description)
	assert.False(t, task.Completed)
	assert.NotZero(t, task.CreatedAt)

	// Ownership comes from the resolved identity, not the input.
	assert.Equal(t, "user-1", stored.UserID)
}

func TestTaskService_Create_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	s := service.NewTaskService(mockRepo)

	tests := []struct {
		name  string
		input dto.TaskInput
	}{
		{"blank title", dto.TaskInput{Description: "B"}},
		{"blank description", dto.TaskInput{Title: "A"}},
		{"whitespace title", dto.TaskInput{Title: "   ", Description: "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No repo expectations: validation happens before any store access.
			task, err := s.Create(context.Background(), "user-1", tt.input)

			assert.ErrorIs(t, err, taskerror.ErrValidation)
			assert.Nil(t, task)
		})
	}
}

func TestTaskService_List_ReturnsEmptySliceNotNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	s := service.NewTaskService(mockRepo)

	mockRepo.EXPECT().ListByUserID(gomock.Any(), "user-1").Return(nil, nil)

	tasks, err := s.List(context.Background(), "user-1")

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskService_List_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	s := service.NewTaskService(mockRepo)

	stored := []domain.Task{
		{ID: "t1", UserID: "user-1", Title: "first", Description: "d1"},
		{ID: "t2", UserID: "user-1", Title: "second", Description: "d2", Completed: true},
	}
	mockRepo.EXPECT().ListByUserID(gomock.Any(), "user-1").Return(stored, nil)

	tasks, err := s.List(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t1", tasks[0].ID)
	assert.Equal(t, "t2", tasks[1].ID)
	assert.True(t, tasks[1].Completed)
}

func TestTaskService_Update_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	s := service.NewTaskService(mockRepo)

	mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, task *domain.Task) (*domain.Task, error) {
			updated := *task
			return &updated, nil
		})

	task, err := s.Update(context.Background(), "user-1", "t1", dto.TaskInput{
		Title:       "A",
		Description: "B",
		Completed:   true,
	})

	require.NoError(t, err)
	assert.Equal(t, "A", task.Title)
	assert.Equal(t, "B", task.Description)
	assert.True(t, task.Completed)
}

func TestTaskService_Update_NotOwned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	s := service.NewTaskService(mockRepo)

	// The repository reports someone else's task the same way as a missing
	// one.
	mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, taskerror.ErrTaskNotFound)

	task, err := s.Update(context.Background(), "user-2", "owned-by-user-1", dto.TaskInput{
		Title:       "A",
		Description: "B",
	})

	assert.ErrorIs(t, err, taskerror.ErrTaskNotFound)
	assert.Nil(t, task)
}

func TestTaskService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTaskRepository(ctrl)
	s := service.NewTaskService(mockRepo)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), "t1", "user-1").Return(nil)
		assert.NoError(t, s.Delete(context.Background(), "user-1", "t1"))
	})

	t.Run("missing or already deleted", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), "gone", "user-1").Return(taskerror.ErrTaskNotFound)
		assert.ErrorIs(t, s.Delete(context.Background(), "user-1", "gone"), taskerror.ErrTaskNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		expectedError := errors.New("db down")
		mockRepo.EXPECT().Delete(gomock.Any(), "t1", "user-1").Return(expectedError)
		assert.Equal(t, expectedError, s.Delete(context.Background(), "user-1", "t1"))
	})
}
