// Package scoring holds the pure point, escalation and performance computations.
// Nothing in here touches storage or the wall clock; callers pass "now" explicitly.
package scoring

import (
	"worktrack/internal/core/domain"
)

const (
	DefaultOnTimeBasePoints         = 5
	DefaultQualityPointsMax         = 10
	DefaultBonusPointsMax           = 5
	DefaultEscalationThresholdHours = 48
)

// Rules holds the deployment-tunable point scale.
type Rules struct {
	OnTimeBasePoints         int
	QualityPointsMax         int
	BonusPointsMax           int
	EscalationThresholdHours int
}

func DefaultRules() Rules {
	return Rules{
		OnTimeBasePoints:         DefaultOnTimeBasePoints,
		QualityPointsMax:         DefaultQualityPointsMax,
		BonusPointsMax:           DefaultBonusPointsMax,
		EscalationThresholdHours: DefaultEscalationThresholdHours,
	}
}

// MaxPointsPerTask is the best possible total for a single submission.
func (r Rules) MaxPointsPerTask() int {
	return r.OnTimeBasePoints + r.QualityPointsMax + r.BonusPointsMax
}

// ValidateDecision rejects out-of-range points instead of clamping them.
func (r Rules) ValidateDecision(decision domain.ReviewDecision) error {
	if decision.Status != domain.SubmissionStatusApproved && decision.Status != domain.SubmissionStatusRejected {
		return domain.ErrInvalidDecision
	}
	if decision.QualityPoints < 0 || decision.QualityPoints > r.QualityPointsMax {
		return domain.ErrInvalidPoints
	}
	if decision.BonusPoints < 0 || decision.BonusPoints > r.BonusPointsMax {
		return domain.ErrInvalidPoints
	}
	return nil
}

// BasePoints awards the on-time credit when the submission landed at or before the due time.
// Tasks without a due time always earn it.
func (r Rules) BasePoints(task domain.Task, sub domain.Submission) int {
	if task.DueAt == nil || !sub.SubmittedAt.After(*task.DueAt) {
		return r.OnTimeBasePoints
	}
	return 0
}

// Score turns a validated decision into the outcome persisted on the submission.
func (r Rules) Score(task domain.Task, sub domain.Submission, decision domain.ReviewDecision) domain.ReviewOutcome {
	return domain.ReviewOutcome{
		SubmissionID:  sub.ID,
		TaskID:        sub.TaskID,
		Status:        decision.Status,
		BasePoints:    r.BasePoints(task, sub),
		QualityPoints: decision.QualityPoints,
		BonusPoints:   decision.BonusPoints,
		ReviewedBy:    decision.Reviewer.UserID,
		Remarks:       decision.Remarks,
	}
}
