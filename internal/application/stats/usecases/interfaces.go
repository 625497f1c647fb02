package usecases

import "context"

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, query TicketStatsQuery) (*TicketStatsResult, error)
}

type PipelineCountsExecutor interface {
	Execute(ctx context.Context, query PipelineCountsQuery) (*PipelineCountsResult, error)
}
