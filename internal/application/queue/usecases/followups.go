package usecases

import (
	"context"
	"time"

	"shipdesk/internal/application/ticket/dto"
	"shipdesk/internal/domain/ticket"
	"shipdesk/internal/shared/logger"
)

// FollowUpsQuery returns tickets flagged for follow-up. DueBy limits
// the result to flags that are already actionable; nil returns every
// flagged ticket.
type FollowUpsQuery struct {
	ProjectID *uint
	DueBy     *time.Time
}

type FollowUpsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewFollowUpsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *FollowUpsUseCase {
	return &FollowUpsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *FollowUpsUseCase) Execute(ctx context.Context, query FollowUpsQuery) ([]dto.TicketListItemDTO, error) {
	tickets, err := uc.ticketRepo.FollowUps(ctx, query.ProjectID, query.DueBy)
	if err != nil {
		uc.logger.Errorw("failed to load follow-ups", "error", err)
		return nil, err
	}

	return dto.ToTicketListItemDTOs(tickets), nil
}
