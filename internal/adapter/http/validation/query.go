package validation

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"worktrack/internal/core/domain"
)

var ErrInvalidQuery = errors.New("invalid query")

// BuildTaskFilter reads assigned_to, created_by, workspace_id, status, from and to.
func BuildTaskFilter(query url.Values) (domain.TaskFilter, error) {
	var (
		filter domain.TaskFilter
		err    error
	)

	if filter.AssignedTo, err = optionalID(query, "assigned_to"); err != nil {
		return domain.TaskFilter{}, err
	}
	if filter.CreatedBy, err = optionalID(query, "created_by"); err != nil {
		return domain.TaskFilter{}, err
	}
	if filter.WorkspaceID, err = optionalID(query, "workspace_id"); err != nil {
		return domain.TaskFilter{}, err
	}
	if raw := query.Get("status"); raw != "" {
		status, parseErr := domain.ParseTaskStatus(raw)
		if parseErr != nil {
			return domain.TaskFilter{}, ErrInvalidQuery
		}
		filter.Status = status
	}
	if filter.CreatedFrom, filter.CreatedTo, err = BuildWindow(query); err != nil {
		return domain.TaskFilter{}, err
	}

	return filter, nil
}

// BuildWindow reads the optional half-open [from, to) range.
func BuildWindow(query url.Values) (*time.Time, *time.Time, error) {
	from, err := optionalDate(query, "from")
	if err != nil {
		return nil, nil, err
	}
	to, err := optionalDate(query, "to")
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, ErrInvalidQuery
	}
	return from, to, nil
}

func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func optionalID(query url.Values, key string) (uint64, error) {
	raw := query.Get(key)
	if raw == "" {
		return 0, nil
	}
	id, ok := ParseID(raw)
	if !ok {
		return 0, ErrInvalidQuery
	}
	return id, nil
}

func optionalDate(query url.Values, key string) (*time.Time, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return nil, ErrInvalidQuery
	}
	return &parsed, nil
}
