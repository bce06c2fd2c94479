package db_test

import (
	"context"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	dbadapter "worktrack/internal/adapter/db"
	"worktrack/internal/core/domain"
)

var baseTime = time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)

// SQLiteSuite gives every test a freshly migrated database file with a small org chart:
// an admin, a manager and two employees reporting to that manager.
type SQLiteSuite struct {
	suite.Suite

	DB          *sqlx.DB
	Users       *dbadapter.UserRepository
	Tasks       *dbadapter.TaskRepository
	Submissions *dbadapter.SubmissionRepository

	Admin    domain.User
	Manager  domain.User
	Employee domain.User
	Peer     domain.User
}

func (s *SQLiteSuite) SetupTest() {
	db, err := dbadapter.ConnectSQLite(filepath.Join(s.T().TempDir(), "worktrack.db"))
	s.Require().NoError(err)
	s.Require().NoError(dbadapter.Migrate(context.Background(), db))

	s.DB = db
	s.Users = dbadapter.NewUserRepository(db)
	s.Tasks = dbadapter.NewTaskRepository(db)
	s.Submissions = dbadapter.NewSubmissionRepository(db)

	s.Admin = s.createUser("Ada", domain.RoleAdmin, nil)
	s.Manager = s.createUser("Malik", domain.RoleManager, nil)
	s.Employee = s.createUser("Erin", domain.RoleEmployee, &s.Manager.ID)
	s.Peer = s.createUser("Pat", domain.RoleEmployee, &s.Manager.ID)
}

func (s *SQLiteSuite) TearDownTest() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
}

func (s *SQLiteSuite) createUser(name string, role domain.Role, managerID *uint64) domain.User {
	user, err := s.Users.Create(context.Background(), domain.User{
		Name:        name,
		Role:        role,
		ManagerID:   managerID,
		WorkspaceID: 1,
	})
	s.Require().NoError(err)
	return user
}

func (s *SQLiteSuite) createTask(title string, status domain.TaskStatus, due *time.Time) domain.Task {
	task, err := s.Tasks.Create(context.Background(), domain.Task{
		Title:       title,
		StartDate:   baseTime,
		DueAt:       due,
		Priority:    domain.TaskPriorityMedium,
		Status:      status,
		AssignedTo:  s.Employee.ID,
		CreatedBy:   s.Manager.ID,
		WorkspaceID: 1,
		CreatedAt:   baseTime,
		UpdatedAt:   baseTime,
	})
	s.Require().NoError(err)
	return task
}

func (s *SQLiteSuite) createSubmission(taskID uint64, at time.Time) domain.Submission {
	sub, err := s.Submissions.Create(context.Background(), domain.Submission{
		TaskID:      taskID,
		SubmittedBy: s.Employee.ID,
		Report:      "done",
		SubmittedAt: at,
	})
	s.Require().NoError(err)
	return sub
}
