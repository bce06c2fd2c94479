package service

import (
	"context"
	"fmt"
	"strings"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
	"worktrack/internal/otel"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	directory      ports.Directory
	notifier       ports.Notifier
	clock          ports.Clock
	transitions    ports.TransitionPolicy
}

func NewTaskService(taskRepository ports.TaskRepository, directory ports.Directory, notifier ports.Notifier, clock ports.Clock) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		directory:      directory,
		notifier:       notifier,
		clock:          clock,
	}
}

var _ ports.TaskService = (*TaskService)(nil)

// WithTransitionPolicy restricts who may move tasks. Without one, any actor may take a legal edge.
func (s *TaskService) WithTransitionPolicy(policy ports.TransitionPolicy) *TaskService {
	s.transitions = policy
	return s
}

func (s *TaskService) CreateTask(ctx context.Context, actor domain.Actor, input domain.CreateTaskInput) (domain.Task, error) {
	if !actor.CanAssignTasks() {
		return domain.Task{}, domain.ErrUnauthorized
	}

	now := s.clock.Now()
	if input.StartDate.IsZero() {
		input.StartDate = now
	}
	if input.Priority == "" {
		input.Priority = domain.TaskPriorityMedium
	}
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}

	if _, err := s.directory.GetUser(ctx, input.AssignedTo); err != nil {
		return domain.Task{}, fmt.Errorf("resolve assignee %d: %w", input.AssignedTo, err)
	}
	creator, err := s.directory.GetUser(ctx, actor.UserID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("resolve creator %d: %w", actor.UserID, err)
	}

	return s.taskRepository.Create(ctx, domain.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Objectives:  input.Objectives,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		DueAt:       input.DueAt,
		Priority:    input.Priority,
		Status:      domain.TaskStatusOpen,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   actor.UserID,
		WorkspaceID: creator.WorkspaceID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *TaskService) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	return s.taskRepository.GetByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	return s.taskRepository.List(ctx, filter)
}

func (s *TaskService) UpdateTask(ctx context.Context, actor domain.Actor, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if !canManage(actor, task) {
		return domain.Task{}, domain.ErrUnauthorized
	}
	if task.Status.IsTerminal() {
		return domain.Task{}, domain.ErrTaskClosed
	}

	updated := input.Apply(task)
	updated.Title = strings.TrimSpace(updated.Title)
	if updated.Title == "" {
		return domain.Task{}, domain.ErrInvalidTaskInput
	}
	if !updated.Priority.Valid() {
		return domain.Task{}, domain.ErrInvalidPriority
	}
	if err := updated.ValidateSchedule(); err != nil {
		return domain.Task{}, err
	}
	updated.UpdatedAt = s.clock.Now()

	if err := s.taskRepository.Update(ctx, updated); err != nil {
		return domain.Task{}, err
	}
	return updated, nil
}

// Transition moves a task along the state machine. Legality is checked before the optional
// transition policy, so a terminal task always reports ErrInvalidTransition.
func (s *TaskService) Transition(ctx context.Context, actor domain.Actor, id uint64, next domain.TaskStatus) (domain.Task, error) {
	if !next.Valid() {
		return domain.Task{}, domain.ErrInvalidStatus
	}

	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if !task.Status.CanTransitionTo(next) {
		return domain.Task{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, task.Status, next)
	}
	if s.transitions != nil {
		allowed, err := s.transitions.CanTransition(ctx, actor, task)
		if err != nil {
			return domain.Task{}, err
		}
		if !allowed {
			return domain.Task{}, domain.ErrUnauthorized
		}
	}

	now := s.clock.Now()
	if err := s.taskRepository.UpdateStatus(ctx, id, task.Status, next, now); err != nil {
		return domain.Task{}, err
	}
	otel.RecordTransition(ctx, string(task.Status), string(next))

	previous := task.Status
	task.Status = next
	task.UpdatedAt = now

	publish(ctx, s.notifier, domain.Event{
		Type:        domain.EventTaskStatusChanged,
		TaskID:      task.ID,
		ActorID:     actor.UserID,
		RecipientID: task.AssignedTo,
		OccurredAt:  now,
		Data: map[string]string{
			"from": string(previous),
			"to":   string(next),
		},
	})
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actor domain.Actor, id uint64) error {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, task) {
		return domain.ErrUnauthorized
	}
	return s.taskRepository.Delete(ctx, id)
}

func canManage(actor domain.Actor, task domain.Task) bool {
	return actor.IsAdmin() || actor.UserID == task.CreatedBy
}
