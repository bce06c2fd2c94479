package dto

type TaskItem struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Objectives  *string `json:"objectives,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	DueAt       *string `json:"due_at,omitempty"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	IsOverdue   bool    `json:"is_overdue"`
	AssignedTo  uint64  `json:"assigned_to"`
	CreatedBy   uint64  `json:"created_by"`
	WorkspaceID uint64  `json:"workspace_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Dates accept RFC 3339 or a bare 2006-01-02 day.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Objectives  *string `json:"objectives" binding:"omitempty,max=65535"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	DueAt       *string `json:"due_at"`
	Priority    *string `json:"priority"`
	AssignedTo  uint64  `json:"assigned_to" binding:"required,gt=0"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Objectives  *string `json:"objectives" binding:"omitempty,max=65535"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	DueAt       *string `json:"due_at"`
	Priority    *string `json:"priority"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
