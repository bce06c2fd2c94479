package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/metric"
)

var (
	initMetricsOnce      sync.Once
	transitionsCounter   metric.Int64Counter
	submissionsCounter   metric.Int64Counter
	reviewsCounter       metric.Int64Counter
	reviewPointsHist     metric.Int64Histogram
	reviewRetriesCounter metric.Int64Counter
	eventsCounter        metric.Int64Counter
	sseConnectionsGauge  metric.Int64ObservableGauge
	sseConnections       int64
	sseConnectionsMu     sync.Mutex
)

// InitMetrics creates the instruments once. Call after InitMeterProvider; until then every
// Record* helper is a no-op.
func InitMetrics(ctx context.Context) error {
	var err error
	initMetricsOnce.Do(func() {
		m := Meter()
		transitionsCounter, err = m.Int64Counter("worktrack_task_transitions_total", metric.WithDescription("Task status transitions"))
		if err != nil {
			return
		}
		submissionsCounter, err = m.Int64Counter("worktrack_submissions_total", metric.WithDescription("Accepted task submissions"))
		if err != nil {
			return
		}
		reviewsCounter, err = m.Int64Counter("worktrack_reviews_total", metric.WithDescription("Finalized submission reviews"))
		if err != nil {
			return
		}
		reviewPointsHist, err = m.Int64Histogram("worktrack_review_total_points", metric.WithDescription("Total points awarded per review"))
		if err != nil {
			return
		}
		reviewRetriesCounter, err = m.Int64Counter("worktrack_review_retries_total", metric.WithDescription("Review attempts retried after a transient store fault"))
		if err != nil {
			return
		}
		eventsCounter, err = m.Int64Counter("worktrack_events_published_total", metric.WithDescription("Notification events published"))
		if err != nil {
			return
		}
		sseConnectionsGauge, err = m.Int64ObservableGauge("worktrack_sse_connections", metric.WithDescription("Current SSE subscriber count"))
		if err != nil {
			return
		}
		_, err = m.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
			sseConnectionsMu.Lock()
			n := sseConnections
			sseConnectionsMu.Unlock()
			o.ObserveInt64(sseConnectionsGauge, n)
			return nil
		}, sseConnectionsGauge)
	})
	return err
}

func RecordTransition(ctx context.Context, from, to string) {
	if transitionsCounter == nil {
		return
	}
	transitionsCounter.Add(ctx, 1, metric.WithAttributes(AttrFrom.String(from), AttrTo.String(to)))
}

func RecordSubmission(ctx context.Context) {
	if submissionsCounter == nil {
		return
	}
	submissionsCounter.Add(ctx, 1)
}

func RecordReview(ctx context.Context, outcome string, onTime bool, totalPoints int) {
	attrs := metric.WithAttributes(AttrOutcome.String(outcome), AttrOnTime.Bool(onTime))
	if reviewsCounter != nil {
		reviewsCounter.Add(ctx, 1, attrs)
	}
	if reviewPointsHist != nil {
		reviewPointsHist.Record(ctx, int64(totalPoints), attrs)
	}
}

func RecordReviewRetry(ctx context.Context) {
	if reviewRetriesCounter == nil {
		return
	}
	reviewRetriesCounter.Add(ctx, 1)
}

func RecordEvent(ctx context.Context, eventType string) {
	if eventsCounter == nil {
		return
	}
	eventsCounter.Add(ctx, 1, metric.WithAttributes(AttrEvent.String(eventType)))
}

func AddSSEConnection() {
	sseConnectionsMu.Lock()
	sseConnections++
	sseConnectionsMu.Unlock()
}

func RemoveSSEConnection() {
	sseConnectionsMu.Lock()
	sseConnections--
	if sseConnections < 0 {
		sseConnections = 0
	}
	sseConnectionsMu.Unlock()
}
