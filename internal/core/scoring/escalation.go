package scoring

import (
	"time"

	"worktrack/internal/core/domain"
)

// HoursSinceSubmission returns whole elapsed hours, truncated.
func HoursSinceSubmission(sub domain.Submission, now time.Time) int {
	elapsed := now.Sub(sub.SubmittedAt)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Hour)
}

// NeedsEscalation is true only strictly past the threshold: exactly 48h does not escalate.
func (r Rules) NeedsEscalation(sub domain.Submission, now time.Time) bool {
	return sub.Status == domain.SubmissionStatusPendingReview &&
		HoursSinceSubmission(sub, now) > r.EscalationThresholdHours
}

// AnnotatePending attaches the read-time escalation fields.
func (r Rules) AnnotatePending(subs []domain.Submission, now time.Time) []domain.PendingSubmission {
	out := make([]domain.PendingSubmission, 0, len(subs))
	for _, sub := range subs {
		out = append(out, domain.PendingSubmission{
			Submission:           sub,
			HoursSinceSubmission: HoursSinceSubmission(sub, now),
			NeedsEscalation:      r.NeedsEscalation(sub, now),
		})
	}
	return out
}
