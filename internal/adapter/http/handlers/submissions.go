package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"worktrack/internal/adapter/http/dto"
	"worktrack/internal/adapter/http/mapper"
	"worktrack/internal/adapter/http/validation"
	"worktrack/internal/core/ports"
	"worktrack/pkg/apierrors"
)

type SubmissionHandler struct {
	submissionService ports.SubmissionService
	reviewService     ports.ReviewService
}

func NewSubmissionHandler(submissionService ports.SubmissionService, reviewService ports.ReviewService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, reviewService: reviewService}
}

func (h *SubmissionHandler) Submit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	var req dto.SubmitWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidSubmissionPayload)
		return
	}

	sub, err := h.submissionService.Submit(c.Request.Context(), actor, taskID, req.Report, req.Attachment)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSubmit, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToSubmissionItem(sub))
}

func (h *SubmissionHandler) GetTaskSubmission(c *gin.Context) {
	taskID, ok := pathID(c, apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	sub, err := h.submissionService.GetTaskSubmission(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListSubmissions, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToSubmissionItem(sub))
}

func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	submissionID, ok := pathID(c, apierrors.MsgInvalidSubmissionID)
	if !ok {
		return
	}

	sub, err := h.submissionService.GetSubmission(c.Request.Context(), submissionID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListSubmissions, zap.Uint64("submission_id", submissionID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToSubmissionItem(sub))
}

func (h *SubmissionHandler) ListPending(c *gin.Context) {
	pending, err := h.submissionService.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListSubmissions)
		return
	}

	c.JSON(http.StatusOK, mapper.ToPendingSubmissionItems(pending))
}

func (h *SubmissionHandler) Review(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, apierrors.MsgInvalidSubmissionID)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	raw, err := bindWithPresence(c, &req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidReviewPayload)
		return
	}

	decision, err := validation.BuildReviewDecision(req, raw, actor)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidReviewPayload)
		return
	}

	sub, err := h.reviewService.Review(c.Request.Context(), submissionID, decision)
	if err != nil {
		respondError(c, err, apierrors.MsgFailReview, zap.Uint64("submission_id", submissionID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToSubmissionItem(sub))
}
