package service

import (
	"context"

	"go.uber.org/zap"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
)

// publish runs after the state change is committed; delivery failures are only logged.
func publish(ctx context.Context, notifier ports.Notifier, event domain.Event) {
	if notifier == nil {
		return
	}
	if err := notifier.Publish(ctx, event); err != nil {
		zap.L().Warn("failed to publish event",
			zap.String("type", string(event.Type)),
			zap.Uint64("task_id", event.TaskID),
			zap.Uint64("submission_id", event.SubmissionID),
			zap.Error(err),
		)
	}
}
