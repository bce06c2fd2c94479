package ports

import (
	"context"

	"worktrack/internal/core/domain"
)

type SubmissionRepository interface {
	// Create fails with domain.ErrDuplicateSubmission when the task already has one.
	Create(ctx context.Context, sub domain.Submission) (domain.Submission, error)
	GetByID(ctx context.Context, id uint64) (domain.Submission, error)
	GetByTaskID(ctx context.Context, taskID uint64) (domain.Submission, error)
	ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]domain.Submission, error)
	ListByTaskIDs(ctx context.Context, taskIDs []uint64) ([]domain.Submission, error)
	// FinalizeReview applies the outcome only while the submission is still pending,
	// returning domain.ErrAlreadyReviewed otherwise.
	FinalizeReview(ctx context.Context, outcome domain.ReviewOutcome) error
}

type SubmissionService interface {
	Submit(ctx context.Context, actor domain.Actor, taskID uint64, report string, attachment *string) (domain.Submission, error)
	GetSubmission(ctx context.Context, id uint64) (domain.Submission, error)
	GetTaskSubmission(ctx context.Context, taskID uint64) (domain.Submission, error)
	ListPending(ctx context.Context) ([]domain.PendingSubmission, error)
}

type ReviewService interface {
	Review(ctx context.Context, submissionID uint64, decision domain.ReviewDecision) (domain.Submission, error)
}

// ReviewPolicy decides whether a reviewer may judge work done by the assignee.
type ReviewPolicy interface {
	CanReview(ctx context.Context, reviewer domain.Actor, task domain.Task) (bool, error)
}
