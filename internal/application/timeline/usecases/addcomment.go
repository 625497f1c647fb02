package usecases

import (
	"context"
	"fmt"
	"time"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/constants"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

type AddCommentCommand struct {
	TicketID  uint
	ActorType string
	ActorName string
	Content   string
	// UserVisible publishes the comment on the reporter's timeline.
	// Comments default to internal.
	UserVisible bool
}

type AddCommentResult struct {
	ActivityID       uint
	RequiresApproval bool
	CreatedAt        time.Time
}

type AddCommentUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	logger       logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "actor", cmd.ActorName)

	actor, err := vo.NewActor(cmd.ActorType, cmd.ActorName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Content == "" {
		return nil, errors.NewValidationError("content is required")
	}
	if len(cmd.Content) > constants.MaxContentLength {
		return nil, errors.NewValidationError(fmt.Sprintf("content exceeds maximum length of %d characters", constants.MaxContentLength))
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	visibility := vo.VisibilityInternal
	if cmd.UserVisible {
		visibility = vo.VisibilityUserVisible
	}

	// Agent-authored user-visible content always goes through the
	// approval gate before the reporter can see it.
	requiresApproval := cmd.UserVisible && actor.Type.IsAgent()

	content := cmd.Content
	activity, err := ticket.NewActivity(ticket.NewActivityParams{
		TicketID:         t.ID(),
		ActivityType:     vo.ActivityComment,
		Actor:            actor,
		Content:          &content,
		Visibility:       visibility,
		RequiresApproval: requiresApproval,
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.activityRepo.Save(ctx, activity); err != nil {
		uc.logger.Errorw("failed to save comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("comment added", "ticket_id", t.ID(), "activity_id", activity.ID())

	return &AddCommentResult{
		ActivityID:       activity.ID(),
		RequiresApproval: requiresApproval,
		CreatedAt:        activity.CreatedAt(),
	}, nil
}
