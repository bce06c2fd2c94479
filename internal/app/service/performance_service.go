package service

import (
	"context"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
	"worktrack/internal/core/scoring"
)

// PerformanceService recomputes snapshots from stored history on every call.
type PerformanceService struct {
	taskRepository       ports.TaskRepository
	submissionRepository ports.SubmissionRepository
	clock                ports.Clock
	rules                scoring.Rules
}

func NewPerformanceService(
	taskRepository ports.TaskRepository,
	submissionRepository ports.SubmissionRepository,
	clock ports.Clock,
	rules scoring.Rules,
) *PerformanceService {
	return &PerformanceService{
		taskRepository:       taskRepository,
		submissionRepository: submissionRepository,
		clock:                clock,
		rules:                rules,
	}
}

var _ ports.PerformanceService = (*PerformanceService)(nil)

func (s *PerformanceService) Snapshot(ctx context.Context, scope domain.PerformanceScope) (domain.PerformanceSnapshot, error) {
	if scope.UserID == 0 && scope.WorkspaceID == 0 {
		return domain.PerformanceSnapshot{}, domain.ErrInvalidScope
	}
	if scope.From != nil && scope.To != nil && !scope.From.Before(*scope.To) {
		return domain.PerformanceSnapshot{}, domain.ErrInvalidScope
	}

	tasks, err := s.taskRepository.List(ctx, scope.TaskFilter())
	if err != nil {
		return domain.PerformanceSnapshot{}, err
	}

	submissions := make(map[uint64]domain.Submission, len(tasks))
	if len(tasks) > 0 {
		ids := make([]uint64, 0, len(tasks))
		for _, task := range tasks {
			ids = append(ids, task.ID)
		}
		subs, err := s.submissionRepository.ListByTaskIDs(ctx, ids)
		if err != nil {
			return domain.PerformanceSnapshot{}, err
		}
		for _, sub := range subs {
			submissions[sub.TaskID] = sub
		}
	}

	return s.rules.Aggregate(tasks, submissions, s.clock.Now()), nil
}
