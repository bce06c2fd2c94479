package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// taskTransitions lists the legal targets for every non-terminal status.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusOpen:       {TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone, TaskStatusCancelled},
	TaskStatusInProgress: {TaskStatusBlocked, TaskStatusDone, TaskStatusCancelled},
	TaskStatusBlocked:    {TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled},
}

// legacyTaskStatuses maps the lower-case vocabulary used by older screens onto the canonical states.
var legacyTaskStatuses = map[string]TaskStatus{
	"pending":     TaskStatusOpen,
	"open":        TaskStatusOpen,
	"in_progress": TaskStatusInProgress,
	"blocked":     TaskStatusBlocked,
	"completed":   TaskStatusDone,
	"done":        TaskStatusDone,
	"cancelled":   TaskStatusCancelled,
	"canceled":    TaskStatusCancelled,
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone, TaskStatusCancelled:
		return true
	}
	return false
}

func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusDone || s == TaskStatusCancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, candidate := range taskTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseTaskStatus accepts the canonical names case-insensitively and the legacy
// lower-case vocabulary. "overdue" is derived from the due date and is never a status.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	value := strings.TrimSpace(raw)
	if status := TaskStatus(strings.ToUpper(value)); status.Valid() {
		return status, nil
	}
	if status, ok := legacyTaskStatuses[strings.ToLower(value)]; ok {
		return status, nil
	}
	return "", ErrInvalidStatus
}

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

func ParseTaskPriority(raw string) (TaskPriority, error) {
	priority := TaskPriority(strings.ToUpper(strings.TrimSpace(raw)))
	if !priority.Valid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

type Task struct {
	ID          uint64
	Title       string
	Description *string
	Objectives  *string
	StartDate   time.Time
	EndDate     *time.Time
	DueAt       *time.Time
	Priority    TaskPriority
	Status      TaskStatus
	AssignedTo  uint64
	CreatedBy   uint64
	WorkspaceID uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue is recomputed on every read so the flag can never go stale.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueAt != nil && t.DueAt.Before(now) && t.Status != TaskStatusDone
}

// ValidateSchedule checks the date ordering invariants.
func (t Task) ValidateSchedule() error {
	return validateSchedule(t.StartDate, t.EndDate, t.DueAt)
}

func validateSchedule(start time.Time, end, due *time.Time) error {
	if end != nil && end.Before(start) {
		return ErrInvalidSchedule
	}
	if due != nil && due.Before(start) {
		return ErrInvalidSchedule
	}
	return nil
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Objectives  *string
	StartDate   time.Time
	EndDate     *time.Time
	DueAt       *time.Time
	Priority    TaskPriority
	AssignedTo  uint64
}

func (in CreateTaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrInvalidTaskInput
	}
	if in.AssignedTo == 0 {
		return ErrInvalidTaskInput
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return ErrInvalidPriority
	}
	return validateSchedule(in.StartDate, in.EndDate, in.DueAt)
}

// UpdateTaskInput carries a partial edit; the *Set flags distinguish "clear" from "leave as is".
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Objectives     *string
	ObjectivesSet  bool
	StartDate      *time.Time
	EndDate        *time.Time
	EndDateSet     bool
	DueAt          *time.Time
	DueAtSet       bool
	Priority       *TaskPriority
}

// Apply returns a copy of task with the edit applied.
func (in UpdateTaskInput) Apply(task Task) Task {
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.DescriptionSet {
		task.Description = in.Description
	}
	if in.ObjectivesSet {
		task.Objectives = in.Objectives
	}
	if in.StartDate != nil {
		task.StartDate = *in.StartDate
	}
	if in.EndDateSet {
		task.EndDate = in.EndDate
	}
	if in.DueAtSet {
		task.DueAt = in.DueAt
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	return task
}

// TaskFilter narrows task listings; zero values mean "any".
type TaskFilter struct {
	AssignedTo  uint64
	CreatedBy   uint64
	WorkspaceID uint64
	Status      TaskStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
