package usecases

import (
	"context"

	"shipdesk/internal/application/ticket/dto"
	"shipdesk/internal/domain/ticket"
	"shipdesk/internal/shared/constants"
	"shipdesk/internal/shared/logger"
)

// TriageBatchQuery returns the oldest untriaged tickets, a small batch
// at a time, for the triage agent to work through.
type TriageBatchQuery struct {
	ProjectID *uint
	Size      int
}

type TriageBatchUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewTriageBatchUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *TriageBatchUseCase {
	return &TriageBatchUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *TriageBatchUseCase) Execute(ctx context.Context, query TriageBatchQuery) ([]dto.TicketListItemDTO, error) {
	size := query.Size
	if size < 1 {
		size = constants.DefaultTriageBatchSize
	}

	tickets, err := uc.ticketRepo.TriageBatch(ctx, query.ProjectID, size)
	if err != nil {
		uc.logger.Errorw("failed to load triage batch", "error", err)
		return nil, err
	}

	return dto.ToTicketListItemDTOs(tickets), nil
}
