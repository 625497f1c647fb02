package usecases

import (
	"context"

	"shipdesk/internal/application/ticket/dto"
	"shipdesk/internal/domain/ticket"
	"shipdesk/internal/shared/logger"
)

// ReworkItemsQuery returns in-flight tickets whose testing came back
// fail or partial and which therefore need another implementation pass.
type ReworkItemsQuery struct {
	ProjectID *uint
}

type ReworkItemsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewReworkItemsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ReworkItemsUseCase {
	return &ReworkItemsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ReworkItemsUseCase) Execute(ctx context.Context, query ReworkItemsQuery) ([]dto.TicketListItemDTO, error) {
	tickets, err := uc.ticketRepo.ReworkItems(ctx, query.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to load rework items", "error", err)
		return nil, err
	}

	return dto.ToTicketListItemDTOs(tickets), nil
}
