package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
)

func TestRejectTicket_EmitsDecisionResolutionAndStatusChange(t *testing.T) {
	tk := reconstructedTicket(t)
	var activities []*ticket.Activity

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			activities = append(activities, a)
			return nil
		},
	}

	uc := NewRejectTicketUseCase(ticketRepo, activityRepo, newTestTxMgr(t), newTestLogger())

	result, err := uc.Execute(context.Background(), RejectTicketCommand{
		TicketID:   42,
		ActorType:  "admin",
		ActorName:  "alice",
		Resolution: "wont_fix",
		Reason:     "Working as intended",
	})
	require.NoError(t, err)

	assert.Equal(t, "closed", result.Status)
	assert.Equal(t, "wont_fix", result.Resolution)
	assert.Equal(t, vo.StatusClosed, tk.Status())

	require.Len(t, activities, 3)

	decision := activities[0]
	assert.Equal(t, vo.ActivityDecision, decision.ActivityType())
	assert.Equal(t, vo.VisibilityInternal, decision.Visibility())
	assert.Equal(t, "rejected", decision.Metadata()["decision"])
	assert.Equal(t, "Working as intended", decision.Metadata()["reason"])

	resolution := activities[1]
	assert.Equal(t, vo.ActivityResolution, resolution.ActivityType())
	assert.Equal(t, vo.VisibilityUserVisible, resolution.Visibility())
	require.NotNil(t, resolution.Content())
	assert.Contains(t, *resolution.Content(), "wont_fix")

	statusChange := activities[2]
	assert.Equal(t, vo.ActivityStatusChange, statusChange.ActivityType())
	assert.Equal(t, "new", statusChange.Metadata()["from"])
	assert.Equal(t, "closed", statusChange.Metadata()["to"])
}

func TestRejectTicket_AlreadyClosedStillEmitsThreeActivities(t *testing.T) {
	tk := reconstructedTicket(t)
	admin, err := vo.NewActor("admin", "alice")
	require.NoError(t, err)
	tk.RejectWork("wont_fix", admin)
	require.Equal(t, vo.StatusClosed, tk.Status())

	var activities []*ticket.Activity
	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			activities = append(activities, a)
			return nil
		},
	}

	uc := NewRejectTicketUseCase(ticketRepo, activityRepo, newTestTxMgr(t), newTestLogger())

	result, err := uc.Execute(context.Background(), RejectTicketCommand{
		TicketID:   42,
		ActorType:  "admin",
		ActorName:  "alice",
		Resolution: "duplicate",
	})
	require.NoError(t, err)

	assert.False(t, result.StatusChanged)
	require.Len(t, activities, 3)

	statusChange := activities[2]
	assert.Equal(t, vo.ActivityStatusChange, statusChange.ActivityType())
	assert.Equal(t, "closed", statusChange.Metadata()["from"])
	assert.Equal(t, "closed", statusChange.Metadata()["to"])
}

func TestRejectTicket_RequiresResolution(t *testing.T) {
	uc := NewRejectTicketUseCase(&mockTicketRepository{}, &mockActivityRepository{}, newTestTxMgr(t), newTestLogger())

	_, err := uc.Execute(context.Background(), RejectTicketCommand{
		TicketID:  42,
		ActorType: "admin",
		ActorName: "alice",
	})
	require.Error(t, err)
}
