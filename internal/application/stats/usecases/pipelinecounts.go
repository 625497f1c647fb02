package usecases

import (
	"context"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/biztime"
	"shipdesk/internal/shared/logger"
)

type PipelineCountsQuery struct {
	ProjectID *uint
}

// PipelineCountsResult maps each dashboard column to its ticket count.
type PipelineCountsResult struct {
	Untriaged    int64 `json:"untriaged"`
	YourDecision int64 `json:"your_decision"`
	AgentWorking int64 `json:"agent_working"`
	Testing      int64 `json:"testing"`
	UserReview   int64 `json:"user_review"`
	Done         int64 `json:"done"`
	FollowUps    int64 `json:"follow_ups"`
}

type PipelineCountsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewPipelineCountsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *PipelineCountsUseCase {
	return &PipelineCountsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *PipelineCountsUseCase) Execute(ctx context.Context, query PipelineCountsQuery) (*PipelineCountsResult, error) {
	byStatus, err := uc.ticketRepo.GroupCountByStatus(ctx, query.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to count by status", "error", err)
		return nil, err
	}
	followUpsDue, err := uc.ticketRepo.FollowUpsDueCount(ctx, query.ProjectID, biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to count due follow-ups", "error", err)
		return nil, err
	}

	return &PipelineCountsResult{
		Untriaged:    byStatus[vo.StatusNew.String()],
		YourDecision: byStatus[vo.StatusTriaged.String()],
		AgentWorking: byStatus[vo.StatusApproved.String()] + byStatus[vo.StatusInProgress.String()],
		Testing:      byStatus[vo.StatusInReview.String()],
		UserReview:   byStatus[vo.StatusUserReview.String()],
		Done:         byStatus[vo.StatusResolved.String()] + byStatus[vo.StatusClosed.String()],
		FollowUps:    followUpsDue,
	}, nil
}
