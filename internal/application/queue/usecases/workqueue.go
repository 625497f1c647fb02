package usecases

import (
	"context"

	"shipdesk/internal/application/ticket/dto"
	"shipdesk/internal/domain/ticket"
	"shipdesk/internal/shared/logger"
)

// WorkQueueQuery returns approved tickets ordered by work priority, the
// order in which implementation agents should pick them up.
type WorkQueueQuery struct {
	ProjectID *uint
}

type WorkQueueUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewWorkQueueUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *WorkQueueUseCase {
	return &WorkQueueUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *WorkQueueUseCase) Execute(ctx context.Context, query WorkQueueQuery) ([]dto.TicketListItemDTO, error) {
	tickets, err := uc.ticketRepo.WorkQueue(ctx, query.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to load work queue", "error", err)
		return nil, err
	}

	return dto.ToTicketListItemDTOs(tickets), nil
}
