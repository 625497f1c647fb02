package usecases

import (
	"context"

	"shipdesk/internal/application/ticket/dto"
)

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error)
}

type SendMessageExecutor interface {
	Execute(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error)
}

type GetTimelineExecutor interface {
	Execute(ctx context.Context, query GetTimelineQuery) ([]dto.ActivityDTO, error)
}

type GetUserTimelineExecutor interface {
	Execute(ctx context.Context, query GetUserTimelineQuery) ([]dto.ActivityDTO, error)
}

type AgentNarrativeExecutor interface {
	Execute(ctx context.Context, query AgentNarrativeQuery) (*AgentNarrativeResult, error)
}

type ApproveActivityExecutor interface {
	Execute(ctx context.Context, cmd ApproveActivityCommand) (*ApproveActivityResult, error)
}

type PromoteActivityExecutor interface {
	Execute(ctx context.Context, cmd PromoteActivityCommand) (*PromoteActivityResult, error)
}
