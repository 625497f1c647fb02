package usecases

import (
	"context"

	"shipdesk/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
	ExecuteWithAttachments(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, []dto.AttachmentDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type TriageTicketExecutor interface {
	Execute(ctx context.Context, cmd TriageTicketCommand) (*TriageTicketResult, error)
}

type ApproveTicketExecutor interface {
	Execute(ctx context.Context, cmd ApproveTicketCommand) (*ApproveTicketResult, error)
}

type RejectTicketExecutor interface {
	Execute(ctx context.Context, cmd RejectTicketCommand) (*RejectTicketResult, error)
}

type ResolveTicketExecutor interface {
	Execute(ctx context.Context, cmd ResolveTicketCommand) (*ResolveTicketResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error)
}

type RegisterAttachmentExecutor interface {
	Execute(ctx context.Context, cmd RegisterAttachmentCommand) (*RegisterAttachmentResult, error)
}
