package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
)

const submissionColumns = `id, task_id, submitted_by, report, attachment, submitted_at, status,
  base_points, quality_points, bonus_points, reviewed_by, reviewed_at, remarks`

const insertSubmissionQuery = `
INSERT INTO submissions (task_id, submitted_by, report, attachment, submitted_at, status,
  base_points, quality_points, bonus_points)
VALUES (?, ?, ?, ?, ?, ?, 0, 0, 0)
`

// finalizeReviewQuery is the single-writer gate: only a still-pending row is updated.
const finalizeReviewQuery = `
UPDATE submissions
SET status = ?, base_points = ?, quality_points = ?, bonus_points = ?, reviewed_by = ?, reviewed_at = ?, remarks = ?
WHERE id = ? AND status = ?
`

const nudgeTaskQuery = `
UPDATE tasks SET status = ?, updated_at = ?
WHERE id = ? AND status NOT IN (?, ?)
`

type SubmissionRepository struct {
	db *sqlx.DB
}

type submissionRow struct {
	ID            uint64         `db:"id"`
	TaskID        uint64         `db:"task_id"`
	SubmittedBy   uint64         `db:"submitted_by"`
	Report        string         `db:"report"`
	Attachment    sql.NullString `db:"attachment"`
	SubmittedAt   time.Time      `db:"submitted_at"`
	Status        string         `db:"status"`
	BasePoints    int            `db:"base_points"`
	QualityPoints int            `db:"quality_points"`
	BonusPoints   int            `db:"bonus_points"`
	ReviewedBy    sql.NullInt64  `db:"reviewed_by"`
	ReviewedAt    sql.NullTime   `db:"reviewed_at"`
	Remarks       sql.NullString `db:"remarks"`
}

var _ ports.SubmissionRepository = (*SubmissionRepository)(nil)

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	res, err := r.db.ExecContext(ctx, insertSubmissionQuery,
		sub.TaskID,
		sub.SubmittedBy,
		sub.Report,
		nullString(sub.Attachment),
		sub.SubmittedAt.UTC(),
		string(domain.SubmissionStatusPendingReview),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Submission{}, domain.ErrDuplicateSubmission
		}
		return domain.Submission{}, mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Submission{}, err
	}
	sub.ID = uint64(id)
	sub.Status = domain.SubmissionStatusPendingReview
	sub.BasePoints, sub.QualityPoints, sub.BonusPoints = 0, 0, 0
	return sub, nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uint64) (domain.Submission, error) {
	return r.getOne(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)
}

func (r *SubmissionRepository) GetByTaskID(ctx context.Context, taskID uint64) (domain.Submission, error) {
	return r.getOne(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE task_id = ?`, taskID)
}

func (r *SubmissionRepository) getOne(ctx context.Context, query string, arg uint64) (domain.Submission, error) {
	var row submissionRow
	err := r.db.GetContext(ctx, &row, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Submission{}, domain.ErrSubmissionNotFound
	}
	if err != nil {
		return domain.Submission{}, mapError(err)
	}
	return mapSubmissionRowToDomain(row), nil
}

func (r *SubmissionRepository) ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]domain.Submission, error) {
	var rows []submissionRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+submissionColumns+` FROM submissions WHERE status = ? ORDER BY submitted_at, id`,
		string(status),
	)
	if err != nil {
		return nil, mapError(err)
	}
	return mapSubmissionRows(rows), nil
}

func (r *SubmissionRepository) ListByTaskIDs(ctx context.Context, taskIDs []uint64) ([]domain.Submission, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT `+submissionColumns+` FROM submissions WHERE task_id IN (?) ORDER BY id`, taskIDs)
	if err != nil {
		return nil, err
	}

	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, mapError(err)
	}
	return mapSubmissionRows(rows), nil
}

// FinalizeReview writes the scored outcome and, when requested, moves the owning task in
// the same transaction. Zero affected rows means another reviewer got there first.
func (r *SubmissionRepository) FinalizeReview(ctx context.Context, outcome domain.ReviewOutcome) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, finalizeReviewQuery,
		string(outcome.Status),
		outcome.BasePoints,
		outcome.QualityPoints,
		outcome.BonusPoints,
		outcome.ReviewedBy,
		outcome.ReviewedAt.UTC(),
		nullString(outcome.Remarks),
		outcome.SubmissionID,
		string(domain.SubmissionStatusPendingReview),
	)
	if err != nil {
		return mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var count int
		if err := tx.GetContext(ctx, &count, `SELECT COUNT(1) FROM submissions WHERE id = ?`, outcome.SubmissionID); err != nil {
			return mapError(err)
		}
		if count == 0 {
			return domain.ErrSubmissionNotFound
		}
		return domain.ErrAlreadyReviewed
	}

	if outcome.TaskStatus != nil {
		if _, err := tx.ExecContext(ctx, nudgeTaskQuery,
			string(*outcome.TaskStatus),
			outcome.ReviewedAt.UTC(),
			outcome.TaskID,
			string(domain.TaskStatusDone),
			string(domain.TaskStatusCancelled),
		); err != nil {
			return mapError(err)
		}
	}

	return mapError(tx.Commit())
}

func mapSubmissionRows(rows []submissionRow) []domain.Submission {
	subs := make([]domain.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, mapSubmissionRowToDomain(row))
	}
	return subs
}

func mapSubmissionRowToDomain(row submissionRow) domain.Submission {
	sub := domain.Submission{
		ID:            row.ID,
		TaskID:        row.TaskID,
		SubmittedBy:   row.SubmittedBy,
		Report:        row.Report,
		SubmittedAt:   row.SubmittedAt.UTC(),
		Status:        domain.SubmissionStatus(row.Status),
		BasePoints:    row.BasePoints,
		QualityPoints: row.QualityPoints,
		BonusPoints:   row.BonusPoints,
	}

	if row.Attachment.Valid {
		value := row.Attachment.String
		sub.Attachment = &value
	}

	if row.ReviewedBy.Valid {
		value := uint64(row.ReviewedBy.Int64)
		sub.ReviewedBy = &value
	}

	if row.ReviewedAt.Valid {
		value := row.ReviewedAt.Time.UTC()
		sub.ReviewedAt = &value
	}

	if row.Remarks.Valid {
		value := row.Remarks.String
		sub.Remarks = &value
	}

	return sub
}
