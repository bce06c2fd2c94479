package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
)

// UserRepository is the read side of the user directory, plus the insert used to seed it.
type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID           uint64        `db:"id"`
	Name         string        `db:"name"`
	Role         string        `db:"role"`
	ManagerID    sql.NullInt64 `db:"manager_id"`
	DepartmentID sql.NullInt64 `db:"department_id"`
	WorkspaceID  uint64        `db:"workspace_id"`
}

var _ ports.Directory = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetUser(ctx context.Context, id uint64) (domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, name, role, manager_id, department_id, workspace_id FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, mapError(err)
	}

	user := domain.User{
		ID:          row.ID,
		Name:        row.Name,
		Role:        domain.Role(row.Role),
		WorkspaceID: row.WorkspaceID,
	}
	if row.ManagerID.Valid {
		value := uint64(row.ManagerID.Int64)
		user.ManagerID = &value
	}
	if row.DepartmentID.Valid {
		value := uint64(row.DepartmentID.Int64)
		user.DepartmentID = &value
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, role, manager_id, department_id, workspace_id) VALUES (?, ?, ?, ?, ?)`,
		user.Name,
		string(user.Role),
		nullUint64(user.ManagerID),
		nullUint64(user.DepartmentID),
		user.WorkspaceID,
	)
	if err != nil {
		return domain.User{}, mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	user.ID = uint64(id)
	return user, nil
}
