package service

import (
	"context"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
)

// ManagerOrAdminPolicy grants review rights to admins and to the assignee's direct manager.
// Roles are re-read from the directory rather than trusted from the caller.
type ManagerOrAdminPolicy struct {
	directory ports.Directory
}

func NewManagerOrAdminPolicy(directory ports.Directory) *ManagerOrAdminPolicy {
	return &ManagerOrAdminPolicy{directory: directory}
}

var _ ports.ReviewPolicy = (*ManagerOrAdminPolicy)(nil)

func (p *ManagerOrAdminPolicy) CanReview(ctx context.Context, reviewer domain.Actor, task domain.Task) (bool, error) {
	if reviewer.UserID == 0 || reviewer.UserID == task.AssignedTo {
		return false, nil
	}

	user, err := p.directory.GetUser(ctx, reviewer.UserID)
	if err != nil {
		return false, err
	}
	if user.Role == domain.RoleAdmin {
		return true, nil
	}

	assignee, err := p.directory.GetUser(ctx, task.AssignedTo)
	if err != nil {
		return false, err
	}
	return assignee.ManagerID != nil && *assignee.ManagerID == reviewer.UserID, nil
}
