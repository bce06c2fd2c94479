package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"worktrack/internal/adapter/clock"
	"worktrack/internal/app/service"
	"worktrack/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var taskNow = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func newTaskService() (*service.TaskService, *taskRepositoryMock, *directoryMock, *notifierMock) {
	tasks := new(taskRepositoryMock)
	directory := new(directoryMock)
	notifier := new(notifierMock)
	return service.NewTaskService(tasks, directory, notifier, &clock.Fixed{At: taskNow}), tasks, directory, notifier
}

func TestCreateTask_DefaultsAndWorkspace(t *testing.T) {
	svc, tasks, directory, _ := newTaskService()
	due := taskNow.Add(72 * time.Hour)

	directory.On("GetUser", mock.Anything, uint64(4)).Return(domain.User{ID: 4, WorkspaceID: 1}, nil).Once()
	directory.On("GetUser", mock.Anything, uint64(2)).Return(domain.User{ID: 2, Role: domain.RoleManager, WorkspaceID: 1}, nil).Once()
	tasks.On("Create", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return task.Title == "Prepare payroll export" &&
			task.Status == domain.TaskStatusOpen &&
			task.Priority == domain.TaskPriorityMedium &&
			task.StartDate.Equal(taskNow) &&
			task.CreatedBy == 2 &&
			task.AssignedTo == 4 &&
			task.WorkspaceID == 1
	})).Return(domain.Task{ID: 11, Status: domain.TaskStatusOpen}, nil).Once()

	task, err := svc.CreateTask(context.Background(), manager, domain.CreateTaskInput{
		Title:      "  Prepare payroll export ",
		DueAt:      &due,
		AssignedTo: 4,
	})

	require.NoError(t, err)
	require.Equal(t, uint64(11), task.ID)
	tasks.AssertExpectations(t)
	directory.AssertExpectations(t)
}

func TestCreateTask_EmployeeCannotAssign(t *testing.T) {
	svc, tasks, _, _ := newTaskService()

	_, err := svc.CreateTask(context.Background(), domain.Actor{UserID: 4, Role: domain.RoleEmployee}, domain.CreateTaskInput{Title: "x", AssignedTo: 5})

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTask_DueBeforeStart(t *testing.T) {
	svc, _, _, _ := newTaskService()
	due := taskNow.Add(-time.Hour)

	_, err := svc.CreateTask(context.Background(), manager, domain.CreateTaskInput{Title: "x", AssignedTo: 4, DueAt: &due})

	require.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestCreateTask_UnknownAssignee(t *testing.T) {
	svc, _, directory, _ := newTaskService()
	directory.On("GetUser", mock.Anything, uint64(40)).Return(domain.User{}, domain.ErrUserNotFound).Once()

	_, err := svc.CreateTask(context.Background(), manager, domain.CreateTaskInput{Title: "x", AssignedTo: 40})

	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTransition_Legal(t *testing.T) {
	svc, tasks, _, notifier := newTaskService()
	tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, Status: domain.TaskStatusOpen, AssignedTo: 4, CreatedBy: 2}, nil).Once()
	tasks.On("UpdateStatus", mock.Anything, uint64(1), domain.TaskStatusOpen, domain.TaskStatusInProgress, taskNow).Return(nil).Once()
	notifier.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventTaskStatusChanged && e.Data["from"] == "OPEN" && e.Data["to"] == "IN_PROGRESS"
	})).Return(nil).Once()

	task, err := svc.Transition(context.Background(), manager, 1, domain.TaskStatusInProgress)

	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusInProgress, task.Status)
	require.Equal(t, taskNow, task.UpdatedAt)
	tasks.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransition_TerminalStatesRejectEverything(t *testing.T) {
	targets := []domain.TaskStatus{
		domain.TaskStatusOpen, domain.TaskStatusInProgress, domain.TaskStatusBlocked,
		domain.TaskStatusDone, domain.TaskStatusCancelled,
	}
	for _, terminal := range []domain.TaskStatus{domain.TaskStatusDone, domain.TaskStatusCancelled} {
		for _, next := range targets {
			svc, tasks, _, _ := newTaskService()
			tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, Status: terminal, CreatedBy: 2}, nil).Once()

			_, err := svc.Transition(context.Background(), manager, 1, next)

			require.ErrorIsf(t, err, domain.ErrInvalidTransition, "%s -> %s", terminal, next)
			tasks.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	svc, _, _, _ := newTaskService()

	_, err := svc.Transition(context.Background(), manager, 1, domain.TaskStatus("overdue"))

	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestTransition_NotifierFailureIgnored(t *testing.T) {
	svc, tasks, _, notifier := newTaskService()
	tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, Status: domain.TaskStatusBlocked, AssignedTo: 4}, nil).Once()
	tasks.On("UpdateStatus", mock.Anything, uint64(1), domain.TaskStatusBlocked, domain.TaskStatusInProgress, taskNow).Return(nil).Once()
	notifier.On("Publish", mock.Anything, mock.Anything).Return(errors.New("down")).Once()

	_, err := svc.Transition(context.Background(), assignee, 1, domain.TaskStatusInProgress)

	require.NoError(t, err)
}

func TestTransition_AnyActorWithoutPolicy(t *testing.T) {
	svc, tasks, _, notifier := newTaskService()
	tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, Status: domain.TaskStatusOpen, AssignedTo: 4, CreatedBy: 2}, nil).Once()
	tasks.On("UpdateStatus", mock.Anything, uint64(1), domain.TaskStatusOpen, domain.TaskStatusInProgress, taskNow).Return(nil).Once()
	notifier.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	task, err := svc.Transition(context.Background(), domain.Actor{UserID: 9, Role: domain.RoleManager}, 1, domain.TaskStatusInProgress)

	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusInProgress, task.Status)
	tasks.AssertExpectations(t)
}

func TestTransition_PolicyRejectsStranger(t *testing.T) {
	svc, tasks, _, _ := newTaskService()
	svc.WithTransitionPolicy(service.ParticipantPolicy{})
	tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, Status: domain.TaskStatusOpen, AssignedTo: 4, CreatedBy: 2}, nil).Once()

	_, err := svc.Transition(context.Background(), domain.Actor{UserID: 9, Role: domain.RoleManager}, 1, domain.TaskStatusInProgress)

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	tasks.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransition_TerminalBeatsPolicy(t *testing.T) {
	svc, tasks, _, _ := newTaskService()
	svc.WithTransitionPolicy(service.ParticipantPolicy{})
	tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, Status: domain.TaskStatusDone, AssignedTo: 4, CreatedBy: 2}, nil).Once()

	_, err := svc.Transition(context.Background(), domain.Actor{UserID: 9, Role: domain.RoleManager}, 1, domain.TaskStatusCancelled)

	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	require.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParticipantPolicy(t *testing.T) {
	task := domain.Task{ID: 1, AssignedTo: 4, CreatedBy: 2}
	for _, tc := range []struct {
		actor domain.Actor
		want  bool
	}{
		{domain.Actor{UserID: 2, Role: domain.RoleManager}, true},
		{domain.Actor{UserID: 4, Role: domain.RoleEmployee}, true},
		{domain.Actor{UserID: 1, Role: domain.RoleAdmin}, true},
		{domain.Actor{UserID: 9, Role: domain.RoleManager}, false},
	} {
		got, err := service.ParticipantPolicy{}.CanTransition(context.Background(), tc.actor, task)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, tc.actor)
	}
}

func TestUpdateTask(t *testing.T) {
	svc, tasks, _, _ := newTaskService()
	start := taskNow
	tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, Title: "Old", StartDate: start, Status: domain.TaskStatusOpen, Priority: domain.TaskPriorityLow, CreatedBy: 2}, nil).Once()
	tasks.On("Update", mock.Anything, mock.MatchedBy(func(task domain.Task) bool {
		return task.Title == "New" && task.UpdatedAt.Equal(taskNow)
	})).Return(nil).Once()

	title := "New"
	task, err := svc.UpdateTask(context.Background(), manager, 1, domain.UpdateTaskInput{Title: &title})

	require.NoError(t, err)
	require.Equal(t, "New", task.Title)
	tasks.AssertExpectations(t)
}

func TestUpdateTask_Guards(t *testing.T) {
	before := taskNow.Add(-time.Hour)

	svc, tasks, _, _ := newTaskService()
	tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, Status: domain.TaskStatusDone, Priority: domain.TaskPriorityLow, CreatedBy: 2, Title: "t"}, nil).Once()
	_, err := svc.UpdateTask(context.Background(), manager, 1, domain.UpdateTaskInput{})
	require.ErrorIs(t, err, domain.ErrTaskClosed)

	svc, tasks, _, _ = newTaskService()
	tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, Status: domain.TaskStatusOpen, CreatedBy: 3}, nil).Once()
	_, err = svc.UpdateTask(context.Background(), manager, 1, domain.UpdateTaskInput{})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	svc, tasks, _, _ = newTaskService()
	tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, Title: "t", StartDate: taskNow, Status: domain.TaskStatusOpen, Priority: domain.TaskPriorityLow, CreatedBy: 2}, nil).Once()
	_, err = svc.UpdateTask(context.Background(), manager, 1, domain.UpdateTaskInput{DueAt: &before, DueAtSet: true})
	require.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestDeleteTask(t *testing.T) {
	svc, tasks, _, _ := newTaskService()
	tasks.On("GetByID", mock.Anything, uint64(1)).Return(domain.Task{ID: 1, CreatedBy: 2}, nil).Twice()
	tasks.On("Delete", mock.Anything, uint64(1)).Return(nil).Once()

	require.ErrorIs(t, svc.DeleteTask(context.Background(), domain.Actor{UserID: 5, Role: domain.RoleManager}, 1), domain.ErrUnauthorized)
	require.NoError(t, svc.DeleteTask(context.Background(), manager, 1))
	tasks.AssertExpectations(t)
}
