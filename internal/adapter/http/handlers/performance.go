package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/internal/adapter/http/mapper"
	"worktrack/internal/adapter/http/validation"
	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
	"worktrack/pkg/apierrors"
)

type PerformanceHandler struct {
	performanceService ports.PerformanceService
}

func NewPerformanceHandler(performanceService ports.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService}
}

func (h *PerformanceHandler) UserSnapshot(c *gin.Context) {
	userID, ok := pathID(c, apierrors.MsgInvalidUserID)
	if !ok {
		return
	}
	h.snapshot(c, domain.PerformanceScope{UserID: userID})
}

func (h *PerformanceHandler) WorkspaceSnapshot(c *gin.Context) {
	workspaceID, ok := pathID(c, apierrors.MsgInvalidWorkspaceID)
	if !ok {
		return
	}
	h.snapshot(c, domain.PerformanceScope{WorkspaceID: workspaceID})
}

func (h *PerformanceHandler) snapshot(c *gin.Context, scope domain.PerformanceScope) {
	from, to, err := validation.BuildWindow(c.Request.URL.Query())
	if err != nil {
		badRequest(c, apierrors.MsgInvalidQuery)
		return
	}
	scope.From, scope.To = from, to

	snap, err := h.performanceService.Snapshot(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err, apierrors.MsgFailPerformance)
		return
	}

	c.JSON(http.StatusOK, mapper.ToPerformanceItem(scope, snap))
}
