package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/internal/adapter/http/handlers"
	"worktrack/internal/adapter/http/middleware"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Tasks       *handlers.TaskHandler
	Submissions *handlers.SubmissionHandler
	Performance *handlers.PerformanceHandler
	// Events streams notifications over SSE; nil disables the route.
	Events gin.HandlerFunc
	// Metrics serves the Prometheus registry; nil disables the route.
	Metrics http.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers, jwtSecret []byte) {
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
	}

	secured := api.Group("")
	secured.Use(middleware.AuthMiddleware(jwtSecret))
	{
		secured.POST("/tasks", h.Tasks.CreateTask)
		secured.GET("/tasks", h.Tasks.ListTasks)
		secured.GET("/tasks/:id", h.Tasks.GetTask)
		secured.PATCH("/tasks/:id", h.Tasks.UpdateTask)
		secured.PATCH("/tasks/:id/status", h.Tasks.UpdateTaskStatus)
		secured.DELETE("/tasks/:id", h.Tasks.DeleteTask)

		secured.POST("/tasks/:id/submission", h.Submissions.Submit)
		secured.GET("/tasks/:id/submission", h.Submissions.GetTaskSubmission)
		secured.GET("/submissions/pending", h.Submissions.ListPending)
		secured.GET("/submissions/:id", h.Submissions.GetSubmission)
		secured.POST("/submissions/:id/review", h.Submissions.Review)

		secured.GET("/performance/users/:id", h.Performance.UserSnapshot)
		secured.GET("/performance/workspaces/:id", h.Performance.WorkspaceSnapshot)

		if h.Events != nil {
			secured.GET("/events", h.Events)
		}
	}
}
