// Package escalation periodically announces submissions left unreviewed past the threshold.
// The flag itself is never stored; every sweep recomputes it from the pending list.
package escalation

import (
	"context"
	"strconv"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
)

type Sweeper struct {
	submissions ports.SubmissionService
	notifier    ports.Notifier
	clock       ports.Clock
	cron        *cron.Cron
}

func NewSweeper(submissions ports.SubmissionService, notifier ports.Notifier, clock ports.Clock) *Sweeper {
	return &Sweeper{
		submissions: submissions,
		notifier:    notifier,
		clock:       clock,
		cron:        cron.New(),
	}
}

// Start schedules the sweep with a standard cron spec or descriptor such as "@hourly".
func (s *Sweeper) Start(ctx context.Context, schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.Sweep(ctx); err != nil {
			zap.L().Error("escalation sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	zap.L().Info("escalation sweeper started", zap.String("schedule", schedule))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep publishes one escalation event per overdue pending submission and returns how many.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	pending, err := s.submissions.ListPending(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	escalated := 0
	for _, p := range pending {
		if !p.NeedsEscalation {
			continue
		}
		escalated++
		err := s.notifier.Publish(ctx, domain.Event{
			Type:         domain.EventSubmissionEscalated,
			TaskID:       p.TaskID,
			SubmissionID: p.ID,
			ActorID:      p.SubmittedBy,
			OccurredAt:   now,
			Data: map[string]string{
				"hours_since_submission": strconv.Itoa(p.HoursSinceSubmission),
			},
		})
		if err != nil {
			zap.L().Warn("failed to publish escalation",
				zap.Uint64("submission_id", p.ID),
				zap.Error(err),
			)
		}
	}
	if escalated > 0 {
		zap.L().Info("escalation sweep finished", zap.Int("escalated", escalated), zap.Int("pending", len(pending)))
	}
	return escalated, nil
}
