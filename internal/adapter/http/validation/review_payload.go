package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"worktrack/internal/adapter/http/dto"
	"worktrack/internal/core/domain"
)

var ErrInvalidReviewPayload = errors.New("invalid review payload")

// BuildReviewDecision maps the body onto a decision. Missing point fields mean zero; an
// explicit null is rejected so a typo never silently awards nothing.
func BuildReviewDecision(req dto.ReviewRequest, raw map[string]json.RawMessage, reviewer domain.Actor) (domain.ReviewDecision, error) {
	status := domain.SubmissionStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if status != domain.SubmissionStatusApproved && status != domain.SubmissionStatusRejected {
		return domain.ReviewDecision{}, ErrInvalidReviewPayload
	}

	decision := domain.ReviewDecision{
		Status:   status,
		Remarks:  req.Remarks,
		Reviewer: reviewer,
	}

	if hasJSONField(raw, "quality_points") {
		if req.QualityPoints == nil {
			return domain.ReviewDecision{}, ErrInvalidReviewPayload
		}
		decision.QualityPoints = *req.QualityPoints
	}

	if hasJSONField(raw, "bonus_points") {
		if req.BonusPoints == nil {
			return domain.ReviewDecision{}, ErrInvalidReviewPayload
		}
		decision.BonusPoints = *req.BonusPoints
	}

	return decision, nil
}
