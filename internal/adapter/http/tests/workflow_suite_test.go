package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	dbadapter "worktrack/internal/adapter/db"
	"worktrack/internal/adapter/http/dto"
	"worktrack/internal/adapter/http/middleware"
	"worktrack/internal/cli"
	"worktrack/internal/config"
	"worktrack/internal/core/domain"
	"worktrack/internal/core/scoring"
	"worktrack/pkg/apierrors"
	"worktrack/pkg/translator"
)

var jwtSecret = []byte("integration-secret")

// WorkflowSuite drives the assembled API over a real database. open hands out a migrated,
// empty database for each test.
type WorkflowSuite struct {
	suite.Suite

	open func(t *testing.T) *sqlx.DB

	DB     *sqlx.DB
	router *gin.Engine

	admin    domain.Actor
	manager  domain.Actor
	employee domain.Actor
	outsider domain.Actor
}

func (s *WorkflowSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{})
}

func (s *WorkflowSuite) SetupTest() {
	s.DB = s.open(s.T())

	users := dbadapter.NewUserRepository(s.DB)
	create := func(name string, role domain.Role, managerID *uint64) domain.Actor {
		user, err := users.Create(context.Background(), domain.User{Name: name, Role: role, ManagerID: managerID, WorkspaceID: 1})
		s.Require().NoError(err)
		return domain.Actor{UserID: user.ID, Role: user.Role}
	}
	s.admin = create("Ada", domain.RoleAdmin, nil)
	s.manager = create("Malik", domain.RoleManager, nil)
	s.employee = create("Erin", domain.RoleEmployee, &s.manager.UserID)
	s.outsider = create("Otto", domain.RoleManager, nil)

	app, err := cli.NewApp(&config.Config{
		JwtSecret:           string(jwtSecret),
		Scoring:             scoring.DefaultRules(),
		ReviewRetryAttempts: 3,
	}, s.DB, zap.NewNop(), nil)
	s.Require().NoError(err)
	s.router = app.Router
}

func (s *WorkflowSuite) do(method, path string, actor domain.Actor, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := middleware.IssueToken(jwtSecret, actor, time.Hour)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeInto[T any](s *WorkflowSuite, rec *httptest.ResponseRecorder) T {
	var out T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *WorkflowSuite) createTask(title string, start, due time.Time) dto.TaskItem {
	body := fmt.Sprintf(`{"title":%q,"assigned_to":%d,"start_date":%q,"due_at":%q}`,
		title, s.employee.UserID, start.UTC().Format(time.RFC3339), due.UTC().Format(time.RFC3339))
	rec := s.do(http.MethodPost, "/api/tasks", s.manager, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decodeInto[dto.TaskItem](s, rec)
}

func (s *WorkflowSuite) submit(taskID uint64) dto.SubmissionItem {
	rec := s.do(http.MethodPost, fmt.Sprintf("/api/tasks/%d/submission", taskID), s.employee, `{"report":"all done"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decodeInto[dto.SubmissionItem](s, rec)
}

func (s *WorkflowSuite) review(submissionID uint64, actor domain.Actor, body string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, fmt.Sprintf("/api/submissions/%d/review", submissionID), actor, body)
}

func (s *WorkflowSuite) TestHealthReportsDatabase() {
	rec := s.do(http.MethodGet, "/api/health/report", s.employee, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var report struct {
		Status struct {
			Database string `json:"database"`
			Driver   string `json:"driver"`
		} `json:"status"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.Equal("ok", report.Status.Database)
	s.Equal(s.DB.DriverName(), report.Status.Driver)
}

func (s *WorkflowSuite) TestTaskLifecycle() {
	now := time.Now()
	task := s.createTask("Quarterly audit", now.Add(-time.Hour), now.Add(48*time.Hour))
	s.Equal("OPEN", task.Status)
	s.Equal(uint64(1), task.WorkspaceID)

	rec := s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", task.ID), s.employee, `{"status":"in_progress"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("IN_PROGRESS", decodeInto[dto.TaskItem](s, rec).Status)

	rec = s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", task.ID), s.outsider, `{"status":"done"}`)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", task.ID), s.manager, `{"status":"cancelled"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", task.ID), s.manager, `{"status":"in_progress"}`)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(apierrors.MsgInvalidTransition, decodeInto[apierrors.JsonErr](s, rec).ErrDetails.Key)

	rec = s.do(http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", task.ID), s.outsider, `{"status":"done"}`)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(apierrors.MsgInvalidTransition, decodeInto[apierrors.JsonErr](s, rec).ErrDetails.Key)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/tasks/%d/submission", task.ID), s.employee, `{"report":"late"}`)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(apierrors.MsgTaskClosed, decodeInto[apierrors.JsonErr](s, rec).ErrDetails.Key)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/tasks?assigned_to=%d&status=cancelled", s.employee.UserID), s.manager, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(decodeInto[[]dto.TaskItem](s, rec), 1)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), s.manager, "")
	s.Equal(http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), s.manager, "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *WorkflowSuite) TestSubmitReviewAndScore() {
	now := time.Now()
	onTime := s.createTask("On time", now.Add(-time.Hour), now.Add(48*time.Hour))
	late := s.createTask("Late", now.Add(-72*time.Hour), now.Add(-24*time.Hour))
	rejected := s.createTask("Rejected", now.Add(-time.Hour), now.Add(24*time.Hour))

	onTimeSub := s.submit(onTime.ID)
	lateSub := s.submit(late.ID)
	rejectedSub := s.submit(rejected.ID)

	rec := s.do(http.MethodPost, fmt.Sprintf("/api/tasks/%d/submission", onTime.ID), s.employee, `{"report":"again"}`)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(apierrors.MsgDuplicateSubmission, decodeInto[apierrors.JsonErr](s, rec).ErrDetails.Key)

	rec = s.do(http.MethodGet, "/api/submissions/pending", s.manager, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	pending := decodeInto[[]dto.PendingSubmissionItem](s, rec)
	s.Len(pending, 3)
	for _, p := range pending {
		s.False(p.NeedsEscalation)
	}

	rec = s.review(onTimeSub.ID, s.outsider, `{"status":"approved"}`)
	s.Equal(http.StatusForbidden, rec.Code)
	rec = s.review(onTimeSub.ID, s.manager, `{"status":"approved","quality_points":11}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(apierrors.MsgInvalidPoints, decodeInto[apierrors.JsonErr](s, rec).ErrDetails.Key)

	rec = s.review(onTimeSub.ID, s.manager, `{"status":"approved","quality_points":8,"bonus_points":2,"remarks":"sharp"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	reviewed := decodeInto[dto.SubmissionItem](s, rec)
	s.Equal(5, reviewed.BasePoints)
	s.Equal(15, reviewed.TotalPoints)
	s.Equal(s.manager.UserID, *reviewed.ReviewedBy)

	rec = s.review(lateSub.ID, s.admin, `{"status":"approved","quality_points":6}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(6, decodeInto[dto.SubmissionItem](s, rec).TotalPoints)

	rec = s.review(rejectedSub.ID, s.manager, `{"status":"rejected","remarks":"incomplete"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	rejectedItem := decodeInto[dto.SubmissionItem](s, rec)
	s.Equal("rejected", rejectedItem.Status)
	s.Equal(5, rejectedItem.BasePoints)
	s.Equal(5, rejectedItem.TotalPoints)

	rec = s.review(rejectedSub.ID, s.admin, `{"status":"approved"}`)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(apierrors.MsgAlreadyReviewed, decodeInto[apierrors.JsonErr](s, rec).ErrDetails.Key)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", onTime.ID), s.manager, "")
	s.Equal("DONE", decodeInto[dto.TaskItem](s, rec).Status)
	rec = s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", rejected.ID), s.manager, "")
	s.Equal("OPEN", decodeInto[dto.TaskItem](s, rec).Status)

	rec = s.do(http.MethodGet, "/api/performance/workspaces/1", s.admin, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	perf := decodeInto[dto.PerformanceItem](s, rec)
	s.Equal(3, perf.TotalTasks)
	s.Equal(2, perf.CompletedTasks)
	s.Equal(1, perf.PendingTasks)
	s.Equal(21, perf.TotalPointsEarned)
	s.Equal(40, perf.TotalPossiblePoints)
	s.Equal(52.5, perf.PointsEfficiency)
	s.Equal(66.67, perf.CompletionRate)
	s.Equal(50.0, perf.OnTimeRate)
	s.Equal(7.0, perf.AverageQualityScore)
	s.Equal(1, perf.OnTimeSubmissions)
	s.Equal(1, perf.LateSubmissions)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/performance/users/%d", s.manager.UserID), s.admin, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Zero(decodeInto[dto.PerformanceItem](s, rec).TotalTasks)
}

func (s *WorkflowSuite) TestConcurrentReviewsHaveSingleWinner() {
	now := time.Now()
	task := s.createTask("Contended", now.Add(-time.Hour), now.Add(time.Hour))
	sub := s.submit(task.ID)

	const reviewers = 6
	codes := make([]int, reviewers)
	keys := make([]string, reviewers)
	var wg sync.WaitGroup
	for i := range reviewers {
		actor := s.manager
		if i%2 == 1 {
			actor = s.admin
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := s.review(sub.ID, actor, fmt.Sprintf(`{"status":"approved","quality_points":%d}`, i))
			codes[i] = rec.Code
			if rec.Code != http.StatusOK {
				var body apierrors.JsonErr
				_ = json.Unmarshal(rec.Body.Bytes(), &body)
				keys[i] = body.ErrDetails.Key
			}
		}()
	}
	wg.Wait()

	winners := 0
	for i, code := range codes {
		if code == http.StatusOK {
			winners++
			continue
		}
		s.Equal(http.StatusConflict, code)
		s.Equal(apierrors.MsgAlreadyReviewed, keys[i])
	}
	s.Equal(1, winners)
}
