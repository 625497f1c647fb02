package usecases

import (
	"context"

	"shipdesk/internal/application/ticket/dto"
	"shipdesk/internal/domain/ticket"
	"shipdesk/internal/shared/logger"
	"shipdesk/internal/shared/services/markdown"
)

// GetUserTimelineQuery returns the reporter-facing view of a ticket's
// timeline. The gate fails closed: a missing ticket, a reporter
// mismatch, or an unapproved draft all result in entries simply not
// appearing, never in an error that would leak ticket existence.
type GetUserTimelineQuery struct {
	TicketID   uint
	ReporterID string
	// RenderHTML converts each entry's markdown content to sanitized
	// HTML for direct embedding in the widget.
	RenderHTML bool
}

type GetUserTimelineUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	markdownSvc  markdown.Service
	logger       logger.Interface
}

func NewGetUserTimelineUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	markdownSvc markdown.Service,
	logger logger.Interface,
) *GetUserTimelineUseCase {
	return &GetUserTimelineUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		markdownSvc:  markdownSvc,
		logger:       logger,
	}
}

func (uc *GetUserTimelineUseCase) Execute(ctx context.Context, query GetUserTimelineQuery) ([]dto.ActivityDTO, error) {
	if query.ReporterID == "" {
		return []dto.ActivityDTO{}, nil
	}

	t, err := uc.ticketRepo.FindByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}
	if t == nil || t.ReporterID() != query.ReporterID {
		uc.logger.Warnw("user timeline denied",
			"ticket_id", query.TicketID, "reporter_id", query.ReporterID)
		return []dto.ActivityDTO{}, nil
	}

	activities, err := uc.activityRepo.Timeline(ctx, t.ID(), ticket.TimelineFilter{
		ReporterVisible: true,
	})
	if err != nil {
		uc.logger.Errorw("failed to load timeline", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	items := dto.ToActivityDTOs(activities)

	if query.RenderHTML {
		for i := range items {
			if items[i].Content == nil {
				continue
			}
			html, err := uc.markdownSvc.ToHTMLSanitized(*items[i].Content)
			if err != nil {
				uc.logger.Warnw("failed to render activity content",
					"activity_id", items[i].ID, "error", err)
				continue
			}
			items[i].Content = &html
		}
	}

	return items, nil
}
