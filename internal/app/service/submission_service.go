package service

import (
	"context"
	"errors"
	"strings"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
	"worktrack/internal/core/scoring"
	"worktrack/internal/otel"
)

type SubmissionService struct {
	taskRepository       ports.TaskRepository
	submissionRepository ports.SubmissionRepository
	notifier             ports.Notifier
	clock                ports.Clock
	rules                scoring.Rules
}

func NewSubmissionService(
	taskRepository ports.TaskRepository,
	submissionRepository ports.SubmissionRepository,
	notifier ports.Notifier,
	clock ports.Clock,
	rules scoring.Rules,
) *SubmissionService {
	return &SubmissionService{
		taskRepository:       taskRepository,
		submissionRepository: submissionRepository,
		notifier:             notifier,
		clock:                clock,
		rules:                rules,
	}
}

var _ ports.SubmissionService = (*SubmissionService)(nil)

// Submit records the assignee's one-time delivery for a task. The task status is left alone.
func (s *SubmissionService) Submit(ctx context.Context, actor domain.Actor, taskID uint64, report string, attachment *string) (domain.Submission, error) {
	task, err := s.taskRepository.GetByID(ctx, taskID)
	if err != nil {
		return domain.Submission{}, err
	}
	if actor.UserID != task.AssignedTo {
		return domain.Submission{}, domain.ErrNotAssignee
	}

	report = strings.TrimSpace(report)
	if report == "" {
		return domain.Submission{}, domain.ErrEmptyReport
	}

	_, err = s.submissionRepository.GetByTaskID(ctx, taskID)
	switch {
	case err == nil:
		return domain.Submission{}, domain.ErrDuplicateSubmission
	case !errors.Is(err, domain.ErrSubmissionNotFound):
		return domain.Submission{}, err
	}

	if task.Status.IsTerminal() {
		return domain.Submission{}, domain.ErrTaskClosed
	}

	// The unique task_id constraint settles concurrent submits that passed the check above.
	sub, err := s.submissionRepository.Create(ctx, domain.Submission{
		TaskID:      taskID,
		SubmittedBy: actor.UserID,
		Report:      report,
		Attachment:  attachment,
		SubmittedAt: s.clock.Now(),
		Status:      domain.SubmissionStatusPendingReview,
	})
	if err != nil {
		return domain.Submission{}, err
	}
	otel.RecordSubmission(ctx)

	publish(ctx, s.notifier, domain.Event{
		Type:         domain.EventTaskSubmitted,
		TaskID:       taskID,
		SubmissionID: sub.ID,
		ActorID:      actor.UserID,
		RecipientID:  task.CreatedBy,
		OccurredAt:   sub.SubmittedAt,
	})
	return sub, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id uint64) (domain.Submission, error) {
	return s.submissionRepository.GetByID(ctx, id)
}

func (s *SubmissionService) GetTaskSubmission(ctx context.Context, taskID uint64) (domain.Submission, error) {
	if _, err := s.taskRepository.GetByID(ctx, taskID); err != nil {
		return domain.Submission{}, err
	}
	return s.submissionRepository.GetByTaskID(ctx, taskID)
}

// ListPending returns every submission awaiting review with its escalation flag computed now.
func (s *SubmissionService) ListPending(ctx context.Context) ([]domain.PendingSubmission, error) {
	subs, err := s.submissionRepository.ListByStatus(ctx, domain.SubmissionStatusPendingReview)
	if err != nil {
		return nil, err
	}
	return s.rules.AnnotatePending(subs, s.clock.Now()), nil
}
