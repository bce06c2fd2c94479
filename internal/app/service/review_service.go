package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
	"worktrack/internal/core/scoring"
	"worktrack/internal/otel"
)

const (
	DefaultReviewAttempts = 3
	reviewRetryInitial    = 50 * time.Millisecond
	reviewRetryMax        = time.Second
)

// ReviewService coordinates a reviewer's verdict: authority check, scoring, the atomic
// write and the follow-up notification.
type ReviewService struct {
	taskRepository       ports.TaskRepository
	submissionRepository ports.SubmissionRepository
	policy               ports.ReviewPolicy
	notifier             ports.Notifier
	clock                ports.Clock
	rules                scoring.Rules
	maxAttempts          uint
}

func NewReviewService(
	taskRepository ports.TaskRepository,
	submissionRepository ports.SubmissionRepository,
	policy ports.ReviewPolicy,
	notifier ports.Notifier,
	clock ports.Clock,
	rules scoring.Rules,
	maxAttempts int,
) *ReviewService {
	if maxAttempts < 1 {
		maxAttempts = DefaultReviewAttempts
	}
	return &ReviewService{
		taskRepository:       taskRepository,
		submissionRepository: submissionRepository,
		policy:               policy,
		notifier:             notifier,
		clock:                clock,
		rules:                rules,
		maxAttempts:          uint(maxAttempts),
	}
}

var _ ports.ReviewService = (*ReviewService)(nil)

// Review finalizes a pending submission exactly once. Only transient store faults are retried,
// and every attempt re-reads the submission so a concurrent winner surfaces as ErrAlreadyReviewed.
func (s *ReviewService) Review(ctx context.Context, submissionID uint64, decision domain.ReviewDecision) (domain.Submission, error) {
	attempt := 0
	operation := func() (domain.Submission, error) {
		attempt++
		sub, err := s.reviewOnce(ctx, submissionID, decision)
		if err != nil && !errors.Is(err, domain.ErrStoreUnavailable) {
			return sub, backoff.Permanent(err)
		}
		return sub, err
	}

	sub, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(newReviewBackOff()),
		backoff.WithMaxTries(s.maxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			otel.RecordReviewRetry(ctx)
			zap.L().Warn("retrying review after transient store fault",
				zap.Uint64("submission_id", submissionID),
				zap.Int("attempt", attempt),
				zap.Duration("next", next),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return domain.Submission{}, err
	}

	otel.RecordReview(ctx, string(sub.Status), sub.BasePoints > 0, sub.TotalPoints())
	publish(ctx, s.notifier, domain.Event{
		Type:         domain.EventSubmissionReviewed,
		TaskID:       sub.TaskID,
		SubmissionID: sub.ID,
		ActorID:      decision.Reviewer.UserID,
		RecipientID:  sub.SubmittedBy,
		OccurredAt:   *sub.ReviewedAt,
		Data:         reviewEventData(sub),
	})
	return sub, nil
}

func (s *ReviewService) reviewOnce(ctx context.Context, submissionID uint64, decision domain.ReviewDecision) (domain.Submission, error) {
	sub, err := s.submissionRepository.GetByID(ctx, submissionID)
	if err != nil {
		return domain.Submission{}, err
	}
	if sub.Status != domain.SubmissionStatusPendingReview {
		return domain.Submission{}, domain.ErrAlreadyReviewed
	}

	task, err := s.taskRepository.GetByID(ctx, sub.TaskID)
	if err != nil {
		return domain.Submission{}, err
	}
	allowed, err := s.policy.CanReview(ctx, decision.Reviewer, task)
	if err != nil {
		return domain.Submission{}, err
	}
	if !allowed {
		return domain.Submission{}, domain.ErrUnauthorized
	}
	if err := s.rules.ValidateDecision(decision); err != nil {
		return domain.Submission{}, err
	}

	outcome := s.rules.Score(task, sub, decision)
	outcome.ReviewedAt = s.clock.Now()
	if outcome.Status == domain.SubmissionStatusApproved && !task.Status.IsTerminal() {
		done := domain.TaskStatusDone
		outcome.TaskStatus = &done
	}

	if err := s.submissionRepository.FinalizeReview(ctx, outcome); err != nil {
		return domain.Submission{}, err
	}
	if outcome.TaskStatus != nil {
		otel.RecordTransition(ctx, string(task.Status), string(*outcome.TaskStatus))
	}
	return outcome.Apply(sub), nil
}

func newReviewBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = reviewRetryInitial
	b.MaxInterval = reviewRetryMax
	return b
}

func reviewEventData(sub domain.Submission) map[string]string {
	data := map[string]string{
		"status":         string(sub.Status),
		"base_points":    strconv.Itoa(sub.BasePoints),
		"quality_points": strconv.Itoa(sub.QualityPoints),
		"bonus_points":   strconv.Itoa(sub.BonusPoints),
		"total_points":   strconv.Itoa(sub.TotalPoints()),
	}
	if sub.Remarks != nil {
		data["remarks"] = *sub.Remarks
	}
	return data
}
