package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"worktrack/internal/adapter/http/dto"
	"worktrack/internal/core/domain"
)

var (
	ErrInvalidTaskPayload   = errors.New("invalid task payload")
	ErrInvalidStatusPayload = errors.New("invalid status payload")
	ErrInvalidDate          = errors.New("invalid date")
)

const dayLayout = "2006-01-02"

func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		Objectives:  req.Objectives,
		AssignedTo:  req.AssignedTo,
	}

	if req.Priority != nil {
		priority, err := domain.ParseTaskPriority(*req.Priority)
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Priority = priority
	}

	if req.StartDate != nil {
		start, err := ParseDate(*req.StartDate)
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		input.StartDate = start
	}

	var err error
	if input.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	if input.DueAt, err = parseOptionalDate(req.DueAt); err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	return input, nil
}

// BuildUpdateTaskInput uses the raw body to tell an explicit null (clear the field) from an
// absent key (keep it). Title, start date and priority cannot be cleared.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var input domain.UpdateTaskInput

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Title = &value
	}

	if hasJSONField(raw, "priority") {
		if req.Priority == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		priority, err := domain.ParseTaskPriority(*req.Priority)
		if err != nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Priority = &priority
	}

	if hasJSONField(raw, "start_date") {
		if req.StartDate == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		start, err := ParseDate(*req.StartDate)
		if err != nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.StartDate = &start
	}

	input.DescriptionSet = hasJSONField(raw, "description")
	if input.DescriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	input.Description = req.Description

	input.ObjectivesSet = hasJSONField(raw, "objectives")
	if input.ObjectivesSet && !isJSONNull(raw["objectives"]) && req.Objectives == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	input.Objectives = req.Objectives

	var err error
	input.EndDateSet = hasJSONField(raw, "end_date")
	if input.EndDate, err = nullableDate(raw, "end_date", req.EndDate); err != nil {
		return domain.UpdateTaskInput{}, err
	}

	input.DueAtSet = hasJSONField(raw, "due_at")
	if input.DueAt, err = nullableDate(raw, "due_at", req.DueAt); err != nil {
		return domain.UpdateTaskInput{}, err
	}

	return input, nil
}

func BuildTaskStatus(req dto.UpdateTaskStatusRequest) (domain.TaskStatus, error) {
	status, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		return "", ErrInvalidStatusPayload
	}
	return status, nil
}

// ParseDate accepts RFC 3339 or a bare day and returns UTC truncated to the second.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC().Truncate(time.Second), nil
	}
	if parsed, err := time.Parse(dayLayout, value); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func nullableDate(raw map[string]json.RawMessage, field string, value *string) (*time.Time, error) {
	if !hasJSONField(raw, field) || isJSONNull(raw[field]) {
		return nil, nil
	}
	if value == nil {
		return nil, ErrInvalidTaskPayload
	}
	parsed, err := parseOptionalDate(value)
	if err != nil {
		return nil, ErrInvalidTaskPayload
	}
	return parsed, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	for _, field := range []string{"title", "description", "objectives", "start_date", "end_date", "due_at", "priority"} {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
