package notify

import (
	"context"

	"go.uber.org/zap"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
)

// LogNotifier writes every event to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(_ context.Context, event domain.Event) error {
	n.logger.Info("event published",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.Uint64("task_id", event.TaskID),
		zap.Uint64("submission_id", event.SubmissionID),
		zap.Uint64("recipient_id", event.RecipientID),
	)
	return nil
}
