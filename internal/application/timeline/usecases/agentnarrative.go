package usecases

import (
	"context"
	"fmt"
	"strings"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

// AgentNarrativeQuery renders a ticket and its full timeline as plain
// text for consumption by AI agents. The output is deterministic for a
// given ticket state so agents can diff successive reads.
type AgentNarrativeQuery struct {
	TicketID uint
}

type AgentNarrativeResult struct {
	TicketID  uint
	Narrative string
}

type AgentNarrativeUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	logger       logger.Interface
}

func NewAgentNarrativeUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	logger logger.Interface,
) *AgentNarrativeUseCase {
	return &AgentNarrativeUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (uc *AgentNarrativeUseCase) Execute(ctx context.Context, query AgentNarrativeQuery) (*AgentNarrativeResult, error) {
	t, err := uc.ticketRepo.FindByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	activities, err := uc.activityRepo.Timeline(ctx, t.ID(), ticket.TimelineFilter{})
	if err != nil {
		uc.logger.Errorw("failed to load timeline", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	return &AgentNarrativeResult{
		TicketID:  t.ID(),
		Narrative: renderNarrative(t, activities),
	}, nil
}

func renderNarrative(t *ticket.Ticket, activities []*ticket.Activity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ticket %s: %s\n", t.Reference(), t.Title())
	fmt.Fprintf(&b, "Status: %s", t.Status())
	if t.Resolution() != "" {
		fmt.Fprintf(&b, " (resolution: %s)", t.Resolution())
	}
	fmt.Fprintf(&b, " | Priority: %s | Type: %s\n", t.Priority(), t.TicketType())
	fmt.Fprintf(&b, "Reporter: %s", reporterLabel(t))
	if t.Assignee() != "" {
		fmt.Fprintf(&b, " | Assignee: %s", t.Assignee())
	}
	b.WriteString("\n")
	if t.Direction() != "" {
		fmt.Fprintf(&b, "Direction: %s\n", t.Direction())
	}
	if t.Description() != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Description())
	}

	if len(activities) > 0 {
		b.WriteString("\nTimeline:\n")
		for _, a := range activities {
			fmt.Fprintf(&b, "[%s] %s (%s): %s\n",
				a.CreatedAt().UTC().Format("2006-01-02 15:04:05"),
				a.AuthorName(), a.AuthorType(), narrativeBody(a))
		}
	}

	return b.String()
}

func reporterLabel(t *ticket.Ticket) string {
	if t.ReporterName() != "" {
		return t.ReporterName()
	}
	return t.ReporterID()
}

func narrativeBody(a *ticket.Activity) string {
	md := a.Metadata()

	switch a.ActivityType() {
	case vo.ActivityStatusChange:
		return fmt.Sprintf("status changed from %v to %v", md["from"], md["to"])
	case vo.ActivityDecision:
		if md["decision"] == "approved" {
			if direction, ok := md["direction"]; ok {
				return fmt.Sprintf("approved for work (direction: %v)", direction)
			}
			return "approved for work"
		}
		return fmt.Sprintf("rejected (%v)", md["resolution"])
	case vo.ActivityFieldChange:
		return fmt.Sprintf("changed %v from %v to %v", md["field"], md["from"], md["to"])
	case vo.ActivityAssignment:
		return fmt.Sprintf("assigned to %v", md["assignee"])
	}

	if a.Content() != nil {
		body := *a.Content()
		if a.RequiresApproval() && !a.IsApproved() {
			return body + " [draft, pending approval]"
		}
		return body
	}
	return string(a.ActivityType())
}
