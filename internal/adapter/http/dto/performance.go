package dto

type PerformanceItem struct {
	UserID              *uint64 `json:"user_id,omitempty"`
	WorkspaceID         *uint64 `json:"workspace_id,omitempty"`
	From                *string `json:"from,omitempty"`
	To                  *string `json:"to,omitempty"`
	TotalTasks          int     `json:"total_tasks"`
	CompletedTasks      int     `json:"completed_tasks"`
	PendingTasks        int     `json:"pending_tasks"`
	OverdueTasks        int     `json:"overdue_tasks"`
	TotalPointsEarned   int     `json:"total_points_earned"`
	TotalPossiblePoints int     `json:"total_possible_points"`
	OnTimeSubmissions   int     `json:"on_time_submissions"`
	LateSubmissions     int     `json:"late_submissions"`
	AverageQualityScore float64 `json:"average_quality_score"`
	TotalBonusPoints    int     `json:"total_bonus_points"`
	CompletionRate      float64 `json:"completion_rate"`
	PointsEfficiency    float64 `json:"points_efficiency"`
	OnTimeRate          float64 `json:"on_time_rate"`
}
