package service

import (
	"context"

	"worktrack/internal/core/domain"
	"worktrack/internal/core/ports"
)

// ParticipantPolicy lets the task's creator, its assignee and admins move it.
type ParticipantPolicy struct{}

var _ ports.TransitionPolicy = ParticipantPolicy{}

func (ParticipantPolicy) CanTransition(_ context.Context, actor domain.Actor, task domain.Task) (bool, error) {
	return canManage(actor, task) || actor.UserID == task.AssignedTo, nil
}
