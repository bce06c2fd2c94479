package service_test

import (
	"context"
	"time"

	"worktrack/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) GetByID(ctx context.Context, id uint64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) Update(ctx context.Context, task domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *taskRepositoryMock) UpdateStatus(ctx context.Context, id uint64, from, to domain.TaskStatus, updatedAt time.Time) error {
	return m.Called(ctx, id, from, to, updatedAt).Error(0)
}

func (m *taskRepositoryMock) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskRepositoryMock) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

type submissionRepositoryMock struct {
	mock.Mock
}

func (m *submissionRepositoryMock) Create(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func (m *submissionRepositoryMock) GetByID(ctx context.Context, id uint64) (domain.Submission, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func (m *submissionRepositoryMock) GetByTaskID(ctx context.Context, taskID uint64) (domain.Submission, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func (m *submissionRepositoryMock) ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]domain.Submission, error) {
	args := m.Called(ctx, status)
	var subs []domain.Submission
	if value := args.Get(0); value != nil {
		subs = value.([]domain.Submission)
	}
	return subs, args.Error(1)
}

func (m *submissionRepositoryMock) ListByTaskIDs(ctx context.Context, taskIDs []uint64) ([]domain.Submission, error) {
	args := m.Called(ctx, taskIDs)
	var subs []domain.Submission
	if value := args.Get(0); value != nil {
		subs = value.([]domain.Submission)
	}
	return subs, args.Error(1)
}

func (m *submissionRepositoryMock) FinalizeReview(ctx context.Context, outcome domain.ReviewOutcome) error {
	return m.Called(ctx, outcome).Error(0)
}

type directoryMock struct {
	mock.Mock
}

func (m *directoryMock) GetUser(ctx context.Context, id uint64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

type notifierMock struct {
	mock.Mock
}

func (m *notifierMock) Publish(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

type reviewPolicyMock struct {
	mock.Mock
}

func (m *reviewPolicyMock) CanReview(ctx context.Context, reviewer domain.Actor, task domain.Task) (bool, error) {
	args := m.Called(ctx, reviewer, task)
	return args.Bool(0), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}
