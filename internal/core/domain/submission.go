package domain

import "time"

type SubmissionStatus string

const (
	SubmissionStatusPendingReview SubmissionStatus = "pending_review"
	SubmissionStatusApproved      SubmissionStatus = "approved"
	SubmissionStatusRejected      SubmissionStatus = "rejected"
)

func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

type Submission struct {
	ID            uint64
	TaskID        uint64
	SubmittedBy   uint64
	Report        string
	Attachment    *string
	SubmittedAt   time.Time
	Status        SubmissionStatus
	BasePoints    int
	QualityPoints int
	BonusPoints   int
	ReviewedBy    *uint64
	ReviewedAt    *time.Time
	Remarks       *string
}

// TotalPoints is always derived from the three components.
func (s Submission) TotalPoints() int {
	return s.BasePoints + s.QualityPoints + s.BonusPoints
}

// PendingSubmission is a pending submission annotated with the read-time escalation flag.
type PendingSubmission struct {
	Submission
	HoursSinceSubmission int
	NeedsEscalation      bool
}

type ReviewDecision struct {
	Status        SubmissionStatus
	QualityPoints int
	BonusPoints   int
	Remarks       *string
	Reviewer      Actor
}

// ReviewOutcome is the scored result written back by the store in a single transaction.
type ReviewOutcome struct {
	SubmissionID  uint64
	TaskID        uint64
	Status        SubmissionStatus
	BasePoints    int
	QualityPoints int
	BonusPoints   int
	ReviewedBy    uint64
	ReviewedAt    time.Time
	Remarks       *string
	// TaskStatus, when set, is applied to the owning task in the same transaction.
	TaskStatus *TaskStatus
}

// Apply copies the scored fields onto sub.
func (o ReviewOutcome) Apply(sub Submission) Submission {
	sub.Status = o.Status
	sub.BasePoints = o.BasePoints
	sub.QualityPoints = o.QualityPoints
	sub.BonusPoints = o.BonusPoints
	reviewer := o.ReviewedBy
	sub.ReviewedBy = &reviewer
	reviewedAt := o.ReviewedAt
	sub.ReviewedAt = &reviewedAt
	sub.Remarks = o.Remarks
	return sub
}
