package dto

type SubmissionItem struct {
	ID            uint64  `json:"id"`
	TaskID        uint64  `json:"task_id"`
	SubmittedBy   uint64  `json:"submitted_by"`
	Report        string  `json:"report"`
	Attachment    *string `json:"attachment,omitempty"`
	SubmittedAt   string  `json:"submitted_at"`
	Status        string  `json:"status"`
	BasePoints    int     `json:"base_points"`
	QualityPoints int     `json:"quality_points"`
	BonusPoints   int     `json:"bonus_points"`
	TotalPoints   int     `json:"total_points"`
	ReviewedBy    *uint64 `json:"reviewed_by,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
}

type PendingSubmissionItem struct {
	SubmissionItem
	HoursSinceSubmission int  `json:"hours_since_submission"`
	NeedsEscalation      bool `json:"needs_escalation"`
}

// Report is checked by the service so blank reports get their own error.
type SubmitWorkRequest struct {
	Report     string  `json:"report"`
	Attachment *string `json:"attachment" binding:"omitempty,max=1024"`
}

type ReviewRequest struct {
	Status        string  `json:"status" binding:"required"`
	QualityPoints *int    `json:"quality_points"`
	BonusPoints   *int    `json:"bonus_points"`
	Remarks       *string `json:"remarks" binding:"omitempty,max=65535"`
}
