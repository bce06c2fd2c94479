package domain

import "time"

// PerformanceScope selects either one user or one workspace, optionally inside [From, To).
type PerformanceScope struct {
	UserID      uint64
	WorkspaceID uint64
	From        *time.Time
	To          *time.Time
}

func (s PerformanceScope) TaskFilter() TaskFilter {
	return TaskFilter{
		AssignedTo:  s.UserID,
		WorkspaceID: s.WorkspaceID,
		CreatedFrom: s.From,
		CreatedTo:   s.To,
	}
}

type PerformanceSnapshot struct {
	TotalTasks          int
	CompletedTasks      int
	PendingTasks        int
	OverdueTasks        int
	TotalPointsEarned   int
	TotalPossiblePoints int
	OnTimeSubmissions   int
	LateSubmissions     int
	AverageQualityScore float64
	TotalBonusPoints    int
	CompletionRate      float64
	PointsEfficiency    float64
	OnTimeRate          float64
}
