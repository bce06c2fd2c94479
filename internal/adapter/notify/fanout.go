package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
	"worktrack/internal/otel"
)

// Fanout delivers to every sink and joins their errors. Events without an id get one.
type Fanout struct {
	sinks []ports.Notifier
}

var _ ports.Notifier = (*Fanout)(nil)

func NewFanout(sinks ...ports.Notifier) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Publish(ctx context.Context, event domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	otel.RecordEvent(ctx, string(event.Type))

	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
