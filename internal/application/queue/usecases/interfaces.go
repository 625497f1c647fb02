package usecases

import (
	"context"

	"shipdesk/internal/application/ticket/dto"
)

type TriageBatchExecutor interface {
	Execute(ctx context.Context, query TriageBatchQuery) ([]dto.TicketListItemDTO, error)
}

type WorkQueueExecutor interface {
	Execute(ctx context.Context, query WorkQueueQuery) ([]dto.TicketListItemDTO, error)
}

type ReworkItemsExecutor interface {
	Execute(ctx context.Context, query ReworkItemsQuery) ([]dto.TicketListItemDTO, error)
}

type FollowUpsExecutor interface {
	Execute(ctx context.Context, query FollowUpsQuery) ([]dto.TicketListItemDTO, error)
}
