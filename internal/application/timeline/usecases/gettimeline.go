package usecases

import (
	"context"
	"time"

	"shipdesk/internal/application/ticket/dto"
	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

// GetTimelineQuery returns the full audit timeline for admin and agent
// consumers. Entries come back ordered oldest first.
type GetTimelineQuery struct {
	TicketID   uint
	Visibility *string
	Types      []string
	Since      *time.Time
	Limit      int
}

type GetTimelineUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	logger       logger.Interface
}

func NewGetTimelineUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	logger logger.Interface,
) *GetTimelineUseCase {
	return &GetTimelineUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (uc *GetTimelineUseCase) Execute(ctx context.Context, query GetTimelineQuery) ([]dto.ActivityDTO, error) {
	filter := ticket.TimelineFilter{
		Since: query.Since,
		Limit: query.Limit,
	}

	if query.Visibility != nil {
		v, err := vo.NewVisibility(*query.Visibility)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Visibility = &v
	}
	for _, s := range query.Types {
		at, err := vo.NewActivityType(s)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Types = append(filter.Types, at)
	}

	t, err := uc.ticketRepo.FindByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	activities, err := uc.activityRepo.Timeline(ctx, t.ID(), filter)
	if err != nil {
		uc.logger.Errorw("failed to load timeline", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	return dto.ToActivityDTOs(activities), nil
}
