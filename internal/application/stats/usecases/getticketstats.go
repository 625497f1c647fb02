package usecases

import (
	"context"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/biztime"
	"shipdesk/internal/shared/logger"
)

type TicketStatsQuery struct {
	ProjectID *uint
}

type TicketStatsResult struct {
	Total              int64            `json:"total"`
	Open               int64            `json:"open"`
	ByStatus           map[string]int64 `json:"by_status"`
	ByType             map[string]int64 `json:"by_type"`
	ByPriority         map[string]int64 `json:"by_priority"`
	NeedingDecision    int64            `json:"needing_decision"`
	Rework             int64            `json:"rework"`
	FollowupsDue       int64            `json:"followups_due"`
	AvgResolutionHours *float64         `json:"avg_resolution_hours"`
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query TicketStatsQuery) (*TicketStatsResult, error) {
	byStatus, err := uc.ticketRepo.GroupCountByStatus(ctx, query.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to count by status", "error", err)
		return nil, err
	}
	byType, err := uc.ticketRepo.GroupCountByType(ctx, query.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to count by type", "error", err)
		return nil, err
	}
	byPriority, err := uc.ticketRepo.GroupCountByPriority(ctx, query.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to count by priority", "error", err)
		return nil, err
	}
	rework, err := uc.ticketRepo.ReworkCount(ctx, query.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to count rework items", "error", err)
		return nil, err
	}
	followupsDue, err := uc.ticketRepo.FollowUpsDueCount(ctx, query.ProjectID, biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to count due follow-ups", "error", err)
		return nil, err
	}
	avgResolution, err := uc.ticketRepo.AvgResolutionHours(ctx, query.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to compute average resolution time", "error", err)
		return nil, err
	}

	var total, open int64
	for status, count := range byStatus {
		total += count
		if status != vo.StatusResolved.String() && status != vo.StatusClosed.String() {
			open += count
		}
	}

	return &TicketStatsResult{
		Total:              total,
		Open:               open,
		ByStatus:           byStatus,
		ByType:             byType,
		ByPriority:         byPriority,
		NeedingDecision:    byStatus[vo.StatusTriaged.String()],
		Rework:             rework,
		FollowupsDue:       followupsDue,
		AvgResolutionHours: avgResolution,
	}, nil
}
