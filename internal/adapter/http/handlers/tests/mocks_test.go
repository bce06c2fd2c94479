package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"worktrack/internal/adapter/clock"
	httpadapter "worktrack/internal/adapter/http"
	"worktrack/internal/adapter/http/handlers"
	"worktrack/internal/adapter/http/middleware"
	"worktrack/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

var (
	testNow    = time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	testSecret = []byte("handler-test-secret")
	manager    = domain.Actor{UserID: 2, Role: domain.RoleManager}
	employee   = domain.Actor{UserID: 4, Role: domain.RoleEmployee}
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, actor domain.Actor, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, actor, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, actor domain.Actor, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, actor, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) Transition(ctx context.Context, actor domain.Actor, id uint64, next domain.TaskStatus) (domain.Task, error) {
	args := m.Called(ctx, actor, id, next)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, actor domain.Actor, id uint64) error {
	return m.Called(ctx, actor, id).Error(0)
}

type submissionServiceMock struct {
	mock.Mock
}

func (m *submissionServiceMock) Submit(ctx context.Context, actor domain.Actor, taskID uint64, report string, attachment *string) (domain.Submission, error) {
	args := m.Called(ctx, actor, taskID, report, attachment)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func (m *submissionServiceMock) GetSubmission(ctx context.Context, id uint64) (domain.Submission, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func (m *submissionServiceMock) GetTaskSubmission(ctx context.Context, taskID uint64) (domain.Submission, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(domain.Submission), args.Error(1)
}

func (m *submissionServiceMock) ListPending(ctx context.Context) ([]domain.PendingSubmission, error) {
	args := m.Called(ctx)

	var pending []domain.PendingSubmission
	if value := args.Get(0); value != nil {
		pending = value.([]domain.PendingSubmission)
	}
	return pending, args.Error(1)
}

type reviewServiceMock struct {
	mock.Mock
}

func (m *reviewServiceMock) Review(ctx context.Context, submissionID uint64, decision domain.ReviewDecision) (domain.Submission, error) {
	args := m.Called(ctx, submissionID, decision)
	return args.Get(0).(domain.Submission), args.Error(1)
}

type performanceServiceMock struct {
	mock.Mock
}

func (m *performanceServiceMock) Snapshot(ctx context.Context, scope domain.PerformanceScope) (domain.PerformanceSnapshot, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.PerformanceSnapshot), args.Error(1)
}

type fixture struct {
	router      *gin.Engine
	tasks       *taskServiceMock
	submissions *submissionServiceMock
	reviews     *reviewServiceMock
	performance *performanceServiceMock
}

// newFixture wires the real routes, including bearer authentication, over service mocks.
func newFixture() *fixture {
	f := &fixture{
		router:      gin.New(),
		tasks:       new(taskServiceMock),
		submissions: new(submissionServiceMock),
		reviews:     new(reviewServiceMock),
		performance: new(performanceServiceMock),
	}
	fixed := &clock.Fixed{At: testNow}
	httpadapter.RegisterRoutes(f.router, httpadapter.Handlers{
		Health:      handlers.NewHealthHandler(nil, fixed),
		Tasks:       handlers.NewTaskHandler(f.tasks, fixed),
		Submissions: handlers.NewSubmissionHandler(f.submissions, f.reviews),
		Performance: handlers.NewPerformanceHandler(f.performance),
	}, testSecret)
	return f
}

func (f *fixture) do(method, path string, actor *domain.Actor, body string, lang string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	if actor != nil {
		token, err := middleware.IssueToken(testSecret, *actor, time.Hour)
		if err != nil {
			panic(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.tasks.AssertExpectations(t)
	f.submissions.AssertExpectations(t)
	f.reviews.AssertExpectations(t)
	f.performance.AssertExpectations(t)
}

func ptr[T any](v T) *T {
	return &v
}
