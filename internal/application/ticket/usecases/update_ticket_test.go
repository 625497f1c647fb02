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

func reconstructedTicket(t *testing.T) *ticket.Ticket {
	t.Helper()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tk, err := ticket.ReconstructTicket(ticket.ReconstructTicketParams{
		ID:           42,
		ProjectID:    1,
		TicketNumber: 7,
		TicketType:   vo.TypeBug,
		Priority:     vo.PriorityLow,
		Title:        "Login fails",
		ReporterID:   "u1",
		Status:       vo.StatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return tk
}

func TestUpdateTicket_RecordsFieldChangeActivities(t *testing.T) {
	tk := reconstructedTicket(t)
	var activities []*ticket.Activity
	updateCalled := false

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updateCalled = true
			return nil
		},
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			activities = append(activities, a)
			return nil
		},
	}

	uc := NewUpdateTicketUseCase(ticketRepo, activityRepo, newTestTxMgr(t), newTestLogger())

	newTitle := "Login button unresponsive"
	newPriority := "high"
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:  42,
		ActorType: "admin",
		ActorName: "alice",
		Title:     &newTitle,
		Priority:  &newPriority,
	})
	require.NoError(t, err)

	assert.True(t, updateCalled)
	assert.ElementsMatch(t, []string{"title", "priority"}, result.ChangedFields)

	require.Len(t, activities, 2)
	for _, a := range activities {
		assert.Equal(t, vo.ActivityFieldChange, a.ActivityType())
		assert.Equal(t, vo.VisibilityInternal, a.Visibility())
	}
	first := activities[0].Metadata()
	assert.Equal(t, "title", first["field"])
	assert.Equal(t, "Login fails", first["from"])
	assert.Equal(t, "Login button unresponsive", first["to"])
}

func TestUpdateTicket_NoOpWritesNothing(t *testing.T) {
	tk := reconstructedTicket(t)
	before := tk.UpdatedAt()
	updateCalled := false
	activitySaved := false

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updateCalled = true
			return nil
		},
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			activitySaved = true
			return nil
		},
	}

	uc := NewUpdateTicketUseCase(ticketRepo, activityRepo, newTestTxMgr(t), newTestLogger())

	sameTitle := "Login fails"
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:  42,
		ActorType: "admin",
		ActorName: "alice",
		Title:     &sameTitle,
	})
	require.NoError(t, err)

	assert.Empty(t, result.ChangedFields)
	assert.Equal(t, before, tk.UpdatedAt())
	assert.False(t, updateCalled)
	assert.False(t, activitySaved)
}

func TestUpdateTicket_NotFound(t *testing.T) {
	uc := NewUpdateTicketUseCase(&mockTicketRepository{}, &mockActivityRepository{}, newTestTxMgr(t), newTestLogger())

	newTitle := "anything"
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:  99,
		ActorType: "admin",
		ActorName: "alice",
		Title:     &newTitle,
	})
	require.Error(t, err)
}

func TestUpdateTicket_RejectsInvalidValues(t *testing.T) {
	uc := NewUpdateTicketUseCase(&mockTicketRepository{}, &mockActivityRepository{}, newTestTxMgr(t), newTestLogger())

	bad := "urgent"
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:  42,
		ActorType: "admin",
		ActorName: "alice",
		Priority:  &bad,
	})
	require.Error(t, err)

	score := 9
	_, err = uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:      42,
		ActorType:     "admin",
		ActorName:     "alice",
		AutonomyScore: &score,
	})
	require.Error(t, err)
}
