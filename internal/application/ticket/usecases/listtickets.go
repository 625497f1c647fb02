package usecases

import (
	"context"

	"shipdesk/internal/application/ticket/dto"
	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/constants"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

type ListTicketsQuery struct {
	ProjectID     *uint
	Statuses      []string
	TicketType    *string
	Priority      *string
	Assignee      *string
	ReporterID    *string
	NeedsFollowup *bool
	ParentID      *uint
	Search        string
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}

type ListTicketsResult struct {
	Tickets  []dto.TicketListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := uc.buildFilter(query)
	if err != nil {
		uc.logger.Errorw("invalid list tickets query", "error", err)
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	return &ListTicketsResult{
		Tickets:  dto.ToTicketListItemDTOs(tickets),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListTicketsUseCase) buildFilter(query ListTicketsQuery) (ticket.TicketFilter, error) {
	filter := ticket.TicketFilter{
		ProjectID:     query.ProjectID,
		Assignee:      query.Assignee,
		ReporterID:    query.ReporterID,
		NeedsFollowup: query.NeedsFollowup,
		ParentID:      query.ParentID,
		Search:        query.Search,
		Page:          query.Page,
		PageSize:      query.PageSize,
		SortBy:        query.SortBy,
		SortOrder:     query.SortOrder,
	}

	for _, s := range query.Statuses {
		status, err := vo.NewTicketStatus(s)
		if err != nil {
			return ticket.TicketFilter{}, errors.NewValidationError("invalid status filter: " + s)
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	if query.TicketType != nil {
		tt, err := vo.NewTicketType(*query.TicketType)
		if err != nil {
			return ticket.TicketFilter{}, errors.NewValidationError("invalid ticket type filter: " + *query.TicketType)
		}
		filter.TicketType = &tt
	}

	if query.Priority != nil {
		p, err := vo.NewPriority(*query.Priority)
		if err != nil {
			return ticket.TicketFilter{}, errors.NewValidationError("invalid priority filter: " + *query.Priority)
		}
		filter.Priority = &p
	}

	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}

	return filter, nil
}
