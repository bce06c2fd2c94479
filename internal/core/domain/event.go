package domain

import "time"

type EventType string

const (
	EventTaskSubmitted       EventType = "task.submitted"
	EventSubmissionReviewed  EventType = "submission.reviewed"
	EventSubmissionEscalated EventType = "submission.escalated"
	EventTaskStatusChanged   EventType = "task.status_changed"
)

// Event is a fire-and-forget notification emitted after a committed state change.
type Event struct {
	ID           string            `json:"id"`
	Type         EventType         `json:"type"`
	TaskID       uint64            `json:"task_id"`
	SubmissionID uint64            `json:"submission_id,omitempty"`
	ActorID      uint64            `json:"actor_id,omitempty"`
	RecipientID  uint64            `json:"recipient_id,omitempty"`
	OccurredAt   time.Time         `json:"occurred_at"`
	Data         map[string]string `json:"data,omitempty"`
}
