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

// SendMessageCommand posts a user-facing message onto the ticket.
// Messages are always user_visible; agent-authored messages are held
// as drafts until an admin approves them.
type SendMessageCommand struct {
	TicketID  uint
	ActorType string
	ActorName string
	Content   string
	// RequiresApproval lets any caller stage the message as a draft.
	// Agent-authored messages are held regardless of this flag.
	RequiresApproval bool
}

type SendMessageResult struct {
	ActivityID       uint
	RequiresApproval bool
	CreatedAt        time.Time
}

type SendMessageUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	logger       logger.Interface
}

func NewSendMessageUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	logger logger.Interface,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error) {
	uc.logger.Infow("executing send message use case", "ticket_id", cmd.TicketID, "actor", cmd.ActorName)

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

	requiresApproval := cmd.RequiresApproval || actor.Type.IsAgent()

	content := cmd.Content
	activity, err := ticket.NewActivity(ticket.NewActivityParams{
		TicketID:         t.ID(),
		ActivityType:     vo.ActivityMessage,
		Actor:            actor,
		Content:          &content,
		Visibility:       vo.VisibilityUserVisible,
		RequiresApproval: requiresApproval,
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.activityRepo.Save(ctx, activity); err != nil {
		uc.logger.Errorw("failed to save message", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if requiresApproval {
		uc.logger.Infow("agent message held for approval",
			"ticket_id", t.ID(), "activity_id", activity.ID())
	} else {
		uc.logger.Infow("message sent", "ticket_id", t.ID(), "activity_id", activity.ID())
	}

	return &SendMessageResult{
		ActivityID:       activity.ID(),
		RequiresApproval: requiresApproval,
		CreatedAt:        activity.CreatedAt(),
	}, nil
}
