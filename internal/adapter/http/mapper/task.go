package mapper

import (
	"time"

	"worktrack/internal/adapter/http/dto"
	"worktrack/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task, now time.Time) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task, now))
	}
	return items
}

// ToTaskItem derives is_overdue against now on every call.
func ToTaskItem(task domain.Task, now time.Time) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		Title:       task.Title,
		StartDate:   task.StartDate.Format(time.RFC3339),
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		IsOverdue:   task.IsOverdue(now),
		AssignedTo:  task.AssignedTo,
		CreatedBy:   task.CreatedBy,
		WorkspaceID: task.WorkspaceID,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.Objectives != nil {
		value := *task.Objectives
		item.Objectives = &value
	}

	item.EndDate = formatTime(task.EndDate)
	item.DueAt = formatTime(task.DueAt)

	return item
}

func formatTime(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(time.RFC3339)
	return &formatted
}
