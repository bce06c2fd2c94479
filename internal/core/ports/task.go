package ports

import (
	"context"
	"time"

	"worktrack/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	GetByID(ctx context.Context, id uint64) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) error
	UpdateStatus(ctx context.Context, id uint64, from, to domain.TaskStatus, updatedAt time.Time) error
	// Delete removes the task and its submission in one transaction.
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, actor domain.Actor, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	UpdateTask(ctx context.Context, actor domain.Actor, id uint64, input domain.UpdateTaskInput) (domain.Task, error)
	Transition(ctx context.Context, actor domain.Actor, id uint64, next domain.TaskStatus) (domain.Task, error)
	DeleteTask(ctx context.Context, actor domain.Actor, id uint64) error
}

// TransitionPolicy decides who may move a task. It is consulted only for legal edges.
type TransitionPolicy interface {
	CanTransition(ctx context.Context, actor domain.Actor, task domain.Task) (bool, error)
}
