package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"worktrack/internal/adapter/http/middleware"
	"worktrack/internal/adapter/http/validation"
	"worktrack/internal/core/domain"
	"worktrack/pkg/apierrors"
)

type errorMapping struct {
	target error
	status int
	msgKey string
}

// domainErrors is checked in order; specific not-found sentinels come before ErrNotFound.
var domainErrors = []errorMapping{
	{domain.ErrInvalidTransition, http.StatusConflict, apierrors.MsgInvalidTransition},
	{domain.ErrNotAssignee, http.StatusForbidden, apierrors.MsgNotAssignee},
	{domain.ErrDuplicateSubmission, http.StatusConflict, apierrors.MsgDuplicateSubmission},
	{domain.ErrEmptyReport, http.StatusBadRequest, apierrors.MsgEmptyReport},
	{domain.ErrAlreadyReviewed, http.StatusConflict, apierrors.MsgAlreadyReviewed},
	{domain.ErrUnauthorized, http.StatusForbidden, apierrors.MsgUnauthorized},
	{domain.ErrInvalidPoints, http.StatusBadRequest, apierrors.MsgInvalidPoints},
	{domain.ErrInvalidDecision, http.StatusBadRequest, apierrors.MsgInvalidReviewPayload},
	{domain.ErrInvalidStatus, http.StatusBadRequest, apierrors.MsgInvalidStatusPayload},
	{domain.ErrInvalidPriority, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload},
	{domain.ErrInvalidTaskInput, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload},
	{domain.ErrInvalidSchedule, http.StatusBadRequest, apierrors.MsgInvalidSchedule},
	{domain.ErrInvalidScope, http.StatusBadRequest, apierrors.MsgInvalidQuery},
	{domain.ErrTaskClosed, http.StatusConflict, apierrors.MsgTaskClosed},
	{domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrSubmissionNotFound, http.StatusNotFound, apierrors.MsgSubmissionNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound, apierrors.MsgUserNotFound},
	{domain.ErrNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, apierrors.MsgStoreUnavailable},
}

// respondError writes the translated error for err. Unknown errors are logged and become a
// 500 with fallbackKey.
func respondError(c *gin.Context, err error, fallbackKey string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				zap.L().Warn("request failed", append(fields, zap.Error(err))...)
			}
			c.JSON(m.status, apierrors.CreateError(m.status, m.msgKey, lang))
			return
		}
	}

	zap.L().Error("request failed", append(fields, zap.Error(err))...)
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, fallbackKey, lang),
	)
}

func badRequest(c *gin.Context, msgKey string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)),
	)
}

// requireActor returns the authenticated actor or aborts with 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.AbortWithStatusJSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, middleware.GetLang(c)),
		)
		return domain.Actor{}, false
	}
	return actor, true
}

func pathID(c *gin.Context, msgKey string) (uint64, bool) {
	id, ok := validation.ParseID(c.Param("id"))
	if !ok {
		badRequest(c, msgKey)
		return 0, false
	}
	return id, true
}
