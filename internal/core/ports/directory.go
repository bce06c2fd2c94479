package ports

import (
	"context"
	"time"

	"worktrack/internal/core/domain"
)

type Directory interface {
	GetUser(ctx context.Context, id uint64) (domain.User, error)
}

type Clock interface {
	Now() time.Time
}

// Notifier delivers events best-effort; callers never roll back on its failure.
type Notifier interface {
	Publish(ctx context.Context, event domain.Event) error
}
