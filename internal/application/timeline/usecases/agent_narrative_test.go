package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
)

func reconstructedActivity(t *testing.T, id uint, at vo.ActivityType, actor vo.Actor, content *string, md map[string]interface{}, created time.Time) *ticket.Activity {
	t.Helper()
	a, err := ticket.ReconstructActivity(ticket.ReconstructActivityParams{
		ID:           id,
		TicketID:     42,
		ActivityType: at,
		AuthorType:   actor.Type,
		AuthorName:   actor.Name,
		Content:      content,
		Metadata:     md,
		Visibility:   vo.VisibilityInternal,
		CreatedAt:    created,
	})
	require.NoError(t, err)
	return a
}

func TestAgentNarrative_RendersDeterministicText(t *testing.T) {
	tk := reporterTicket(t, "u1")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	comment := "Reproduced on staging."
	activities := []*ticket.Activity{
		reconstructedActivity(t, 1, vo.ActivityStatusChange,
			vo.Actor{Type: vo.AuthorAgent, Name: "triage-bot"}, nil,
			map[string]interface{}{"from": "new", "to": "triaged"}, base),
		reconstructedActivity(t, 2, vo.ActivityComment,
			vo.Actor{Type: vo.AuthorAdmin, Name: "alice"}, &comment, nil,
			base.Add(5*time.Minute)),
		reconstructedActivity(t, 3, vo.ActivityDecision,
			vo.Actor{Type: vo.AuthorAdmin, Name: "alice"}, nil,
			map[string]interface{}{"decision": "approved", "direction": "fix the guard"},
			base.Add(10*time.Minute)),
	}

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		TimelineFunc: func(ctx context.Context, ticketID uint, filter ticket.TimelineFilter) ([]*ticket.Activity, error) {
			return activities, nil
		},
	}

	uc := NewAgentNarrativeUseCase(ticketRepo, activityRepo, newTestLogger())

	first, err := uc.Execute(context.Background(), AgentNarrativeQuery{TicketID: 42})
	require.NoError(t, err)

	assert.Contains(t, first.Narrative, "Ticket T-7: Login fails")
	assert.Contains(t, first.Narrative, "Status: triaged | Priority: high | Type: bug")
	assert.Contains(t, first.Narrative, "[2026-03-01 12:00:00] triage-bot (agent): status changed from new to triaged")
	assert.Contains(t, first.Narrative, "[2026-03-01 12:05:00] alice (admin): Reproduced on staging.")
	assert.Contains(t, first.Narrative, "approved for work (direction: fix the guard)")

	second, err := uc.Execute(context.Background(), AgentNarrativeQuery{TicketID: 42})
	require.NoError(t, err)
	assert.Equal(t, first.Narrative, second.Narrative)
}

func TestAgentNarrative_HeaderShowsResolution(t *testing.T) {
	tk := reporterTicket(t, "u1")
	admin, err := vo.NewActor("admin", "alice")
	require.NoError(t, err)
	tk.RejectWork("wont_fix", admin)

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		TimelineFunc: func(ctx context.Context, ticketID uint, filter ticket.TimelineFilter) ([]*ticket.Activity, error) {
			return nil, nil
		},
	}

	uc := NewAgentNarrativeUseCase(ticketRepo, activityRepo, newTestLogger())

	result, err := uc.Execute(context.Background(), AgentNarrativeQuery{TicketID: 42})
	require.NoError(t, err)

	assert.Contains(t, result.Narrative, "Status: closed (resolution: wont_fix) | Priority: high | Type: bug")
}

func TestAgentNarrative_MarksPendingDrafts(t *testing.T) {
	tk := reporterTicket(t, "u1")
	content := "Please try again now."
	draft, err := ticket.ReconstructActivity(ticket.ReconstructActivityParams{
		ID:               4,
		TicketID:         42,
		ActivityType:     vo.ActivityMessage,
		AuthorType:       vo.AuthorAgent,
		AuthorName:       "worker-bot",
		Content:          &content,
		Visibility:       vo.VisibilityUserVisible,
		RequiresApproval: true,
		CreatedAt:        time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		TimelineFunc: func(ctx context.Context, ticketID uint, filter ticket.TimelineFilter) ([]*ticket.Activity, error) {
			return []*ticket.Activity{draft}, nil
		},
	}

	uc := NewAgentNarrativeUseCase(ticketRepo, activityRepo, newTestLogger())

	result, err := uc.Execute(context.Background(), AgentNarrativeQuery{TicketID: 42})
	require.NoError(t, err)

	assert.Contains(t, result.Narrative, "Please try again now. [draft, pending approval]")
}
