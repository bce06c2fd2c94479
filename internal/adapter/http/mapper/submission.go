package mapper

import (
	"math"
	"time"

	"worktrack/internal/adapter/http/dto"
	"worktrack/internal/core/domain"
)

func ToSubmissionItem(sub domain.Submission) dto.SubmissionItem {
	item := dto.SubmissionItem{
		ID:            sub.ID,
		TaskID:        sub.TaskID,
		SubmittedBy:   sub.SubmittedBy,
		Report:        sub.Report,
		SubmittedAt:   sub.SubmittedAt.Format(time.RFC3339),
		Status:        string(sub.Status),
		BasePoints:    sub.BasePoints,
		QualityPoints: sub.QualityPoints,
		BonusPoints:   sub.BonusPoints,
		TotalPoints:   sub.TotalPoints(),
		ReviewedAt:    formatTime(sub.ReviewedAt),
	}

	if sub.Attachment != nil {
		value := *sub.Attachment
		item.Attachment = &value
	}

	if sub.ReviewedBy != nil {
		value := *sub.ReviewedBy
		item.ReviewedBy = &value
	}

	if sub.Remarks != nil {
		value := *sub.Remarks
		item.Remarks = &value
	}

	return item
}

func ToPendingSubmissionItems(pending []domain.PendingSubmission) []dto.PendingSubmissionItem {
	items := make([]dto.PendingSubmissionItem, 0, len(pending))
	for _, p := range pending {
		items = append(items, dto.PendingSubmissionItem{
			SubmissionItem:       ToSubmissionItem(p.Submission),
			HoursSinceSubmission: p.HoursSinceSubmission,
			NeedsEscalation:      p.NeedsEscalation,
		})
	}
	return items
}

func ToPerformanceItem(scope domain.PerformanceScope, snap domain.PerformanceSnapshot) dto.PerformanceItem {
	item := dto.PerformanceItem{
		From:                formatTime(scope.From),
		To:                  formatTime(scope.To),
		TotalTasks:          snap.TotalTasks,
		CompletedTasks:      snap.CompletedTasks,
		PendingTasks:        snap.PendingTasks,
		OverdueTasks:        snap.OverdueTasks,
		TotalPointsEarned:   snap.TotalPointsEarned,
		TotalPossiblePoints: snap.TotalPossiblePoints,
		OnTimeSubmissions:   snap.OnTimeSubmissions,
		LateSubmissions:     snap.LateSubmissions,
		AverageQualityScore: round2(snap.AverageQualityScore),
		TotalBonusPoints:    snap.TotalBonusPoints,
		CompletionRate:      round2(snap.CompletionRate),
		PointsEfficiency:    round2(snap.PointsEfficiency),
		OnTimeRate:          round2(snap.OnTimeRate),
	}

	if scope.UserID != 0 {
		value := scope.UserID
		item.UserID = &value
	}

	if scope.WorkspaceID != 0 {
		value := scope.WorkspaceID
		item.WorkspaceID = &value
	}

	return item
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
