package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNotAssignee         = errors.New("submitter is not the task assignee")
	ErrDuplicateSubmission = errors.New("task already has a submission")
	ErrEmptyReport         = errors.New("submission report is empty")
	ErrAlreadyReviewed     = errors.New("submission already reviewed")
	ErrUnauthorized        = errors.New("actor is not allowed to perform this action")
	ErrInvalidPoints       = errors.New("points out of range")

	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrInvalidSchedule  = errors.New("task dates are out of order")
	ErrInvalidTaskInput = errors.New("invalid task input")
	ErrInvalidDecision  = errors.New("review decision must be approved or rejected")
	ErrTaskClosed       = errors.New("task is closed")
	ErrInvalidScope     = errors.New("performance scope needs a user or a workspace")

	// ErrStoreUnavailable marks transient persistence faults that may be retried.
	ErrStoreUnavailable = errors.New("store temporarily unavailable")
)

var (
	ErrTaskNotFound       = fmt.Errorf("task %w", ErrNotFound)
	ErrSubmissionNotFound = fmt.Errorf("submission %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
)
