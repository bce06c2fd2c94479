package scoring

import (
	"time"

	"worktrack/internal/core/domain"
)

// Aggregate folds task and submission history into a snapshot. submissions is keyed by task id;
// tasks without a submission are simply absent from the map.
func (r Rules) Aggregate(tasks []domain.Task, submissions map[uint64]domain.Submission, now time.Time) domain.PerformanceSnapshot {
	var snap domain.PerformanceSnapshot
	qualitySum := 0
	approved := 0

	for _, task := range tasks {
		snap.TotalTasks++
		switch {
		case task.Status == domain.TaskStatusDone:
			snap.CompletedTasks++
		case !task.Status.IsTerminal():
			snap.PendingTasks++
		}
		if task.IsOverdue(now) {
			snap.OverdueTasks++
		}

		sub, ok := submissions[task.ID]
		if !ok || sub.Status != domain.SubmissionStatusApproved {
			continue
		}
		approved++
		snap.TotalPointsEarned += sub.TotalPoints()
		snap.TotalBonusPoints += sub.BonusPoints
		qualitySum += sub.QualityPoints
		if sub.BasePoints > 0 {
			snap.OnTimeSubmissions++
		} else {
			snap.LateSubmissions++
		}
	}

	snap.TotalPossiblePoints = snap.CompletedTasks * r.MaxPointsPerTask()
	snap.AverageQualityScore = ratio(float64(qualitySum), float64(approved))
	snap.CompletionRate = percent(snap.CompletedTasks, snap.TotalTasks)
	snap.PointsEfficiency = percent(snap.TotalPointsEarned, snap.TotalPossiblePoints)
	snap.OnTimeRate = percent(snap.OnTimeSubmissions, snap.OnTimeSubmissions+snap.LateSubmissions)
	return snap
}

func percent(part, whole int) float64 {
	return ratio(float64(part), float64(whole)) * 100
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
