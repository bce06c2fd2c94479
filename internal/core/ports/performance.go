package ports

import (
	"context"

	"worktrack/internal/core/domain"
)

type PerformanceService interface {
	Snapshot(ctx context.Context, scope domain.PerformanceScope) (domain.PerformanceSnapshot, error)
}
