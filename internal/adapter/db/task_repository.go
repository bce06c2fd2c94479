package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
)

const taskColumns = `id, title, description, objectives, start_date, end_date, due_at, priority, status,
  assigned_to, created_by, workspace_id, created_at, updated_at`

const insertTaskQuery = `
INSERT INTO tasks (title, description, objectives, start_date, end_date, due_at, priority, status,
  assigned_to, created_by, workspace_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateTaskQuery = `
UPDATE tasks
SET title = ?, description = ?, objectives = ?, start_date = ?, end_date = ?, due_at = ?, priority = ?, updated_at = ?
WHERE id = ?
`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          uint64         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Objectives  sql.NullString `db:"objectives"`
	StartDate   time.Time      `db:"start_date"`
	EndDate     sql.NullTime   `db:"end_date"`
	DueAt       sql.NullTime   `db:"due_at"`
	Priority    string         `db:"priority"`
	Status      string         `db:"status"`
	AssignedTo  uint64         `db:"assigned_to"`
	CreatedBy   uint64         `db:"created_by"`
	WorkspaceID uint64         `db:"workspace_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	res, err := r.db.ExecContext(ctx, insertTaskQuery,
		task.Title,
		nullString(task.Description),
		nullString(task.Objectives),
		task.StartDate.UTC(),
		nullTime(task.EndDate),
		nullTime(task.DueAt),
		string(task.Priority),
		string(task.Status),
		task.AssignedTo,
		task.CreatedBy,
		task.WorkspaceID,
		task.CreatedAt.UTC(),
		task.UpdatedAt.UTC(),
	)
	if err != nil {
		return domain.Task{}, mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Task{}, err
	}
	task.ID = uint64(id)
	return task, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, mapError(err)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	res, err := r.db.ExecContext(ctx, updateTaskQuery,
		task.Title,
		nullString(task.Description),
		nullString(task.Objectives),
		task.StartDate.UTC(),
		nullTime(task.EndDate),
		nullTime(task.DueAt),
		string(task.Priority),
		task.UpdatedAt.UTC(),
		task.ID,
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// MySQL reports changed rows, so an identical edit also lands here.
		_, err = r.GetByID(ctx, task.ID)
		return err
	}
	return nil
}

// UpdateStatus only moves the task if it is still in from; a concurrent move surfaces
// as domain.ErrInvalidTransition.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uint64, from, to domain.TaskStatus, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(to), updatedAt.UTC(), id, string(from),
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrInvalidTransition
}

func (r *TaskRepository) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM submissions WHERE task_id = ?`, id); err != nil {
		return mapError(err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	if err := requireAffected(res, domain.ErrTaskNotFound); err != nil {
		return err
	}
	return mapError(tx.Commit())
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.AssignedTo != 0 {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, filter.AssignedTo)
	}
	if filter.CreatedBy != 0 {
		conditions = append(conditions, "created_by = ?")
		args = append(args, filter.CreatedBy)
	}
	if filter.WorkspaceID != 0 {
		conditions = append(conditions, "workspace_id = ?")
		args = append(args, filter.WorkspaceID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.CreatedFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, "created_at < ?")
		args = append(args, filter.CreatedTo.UTC())
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, mapError(err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		StartDate:   row.StartDate.UTC(),
		Priority:    domain.TaskPriority(row.Priority),
		Status:      domain.TaskStatus(row.Status),
		AssignedTo:  row.AssignedTo,
		CreatedBy:   row.CreatedBy,
		WorkspaceID: row.WorkspaceID,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.Objectives.Valid {
		value := row.Objectives.String
		task.Objectives = &value
	}

	if row.EndDate.Valid {
		value := row.EndDate.Time.UTC()
		task.EndDate = &value
	}

	if row.DueAt.Valid {
		value := row.DueAt.Time.UTC()
		task.DueAt = &value
	}

	return task
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: value.UTC(), Valid: true}
}

func nullUint64(value *uint64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}
