package usecases

import (
	"context"

	"shipdesk/internal/application/ticket/dto"
	"shipdesk/internal/domain/ticket"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

// GetTicketQuery resolves a ticket either by internal ID or by
// (project, ticket number). ID wins when both are set.
type GetTicketQuery struct {
	TicketID     uint
	ProjectID    uint
	TicketNumber int
}

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := uc.findTicket(ctx, query)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	return dto.ToTicketDTO(t), nil
}

// ExecuteWithAttachments additionally resolves the ticket's attachment
// descriptors.
func (uc *GetTicketUseCase) ExecuteWithAttachments(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, []dto.AttachmentDTO, error) {
	t, err := uc.findTicket(ctx, query)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, errors.NewNotFoundError("ticket not found")
	}

	attachments, err := uc.attachmentRepo.FindByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load attachments", "ticket_id", t.ID(), "error", err)
		return nil, nil, err
	}

	return dto.ToTicketDTO(t), dto.ToAttachmentDTOs(attachments), nil
}

func (uc *GetTicketUseCase) findTicket(ctx context.Context, query GetTicketQuery) (*ticket.Ticket, error) {
	if query.TicketID != 0 {
		return uc.ticketRepo.FindByID(ctx, query.TicketID)
	}
	if query.ProjectID != 0 && query.TicketNumber != 0 {
		return uc.ticketRepo.FindByNumber(ctx, query.ProjectID, query.TicketNumber)
	}
	return nil, errors.NewValidationError("either ticket ID or project ID and ticket number are required")
}
