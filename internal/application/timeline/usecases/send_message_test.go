package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
)

func TestSendMessage_AgentMessagesAreHeldForApproval(t *testing.T) {
	tk := reporterTicket(t, "u1")
	var saved *ticket.Activity

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			saved = a
			return nil
		},
	}

	uc := NewSendMessageUseCase(ticketRepo, activityRepo, newTestLogger())

	result, err := uc.Execute(context.Background(), SendMessageCommand{
		TicketID:  42,
		ActorType: "agent",
		ActorName: "worker-bot",
		Content:   "I have started looking into this.",
	})
	require.NoError(t, err)

	assert.True(t, result.RequiresApproval)
	require.NotNil(t, saved)
	assert.Equal(t, vo.ActivityMessage, saved.ActivityType())
	assert.Equal(t, vo.VisibilityUserVisible, saved.Visibility())
	assert.True(t, saved.RequiresApproval())
	assert.False(t, saved.IsReporterVisible())
}

func TestSendMessage_AdminMessagesGoStraightOut(t *testing.T) {
	tk := reporterTicket(t, "u1")
	var saved *ticket.Activity

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			saved = a
			return nil
		},
	}

	uc := NewSendMessageUseCase(ticketRepo, activityRepo, newTestLogger())

	result, err := uc.Execute(context.Background(), SendMessageCommand{
		TicketID:  42,
		ActorType: "admin",
		ActorName: "alice",
		Content:   "We shipped a fix, please retry.",
	})
	require.NoError(t, err)

	assert.False(t, result.RequiresApproval)
	require.NotNil(t, saved)
	assert.False(t, saved.RequiresApproval())
	assert.True(t, saved.IsReporterVisible())
}

func TestSendMessage_AdminCanRequestDraft(t *testing.T) {
	tk := reporterTicket(t, "u1")
	var saved *ticket.Activity

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			saved = a
			return nil
		},
	}

	uc := NewSendMessageUseCase(ticketRepo, activityRepo, newTestLogger())

	result, err := uc.Execute(context.Background(), SendMessageCommand{
		TicketID:         42,
		ActorType:        "admin",
		ActorName:        "alice",
		Content:          "Draft for review before it goes out.",
		RequiresApproval: true,
	})
	require.NoError(t, err)

	assert.True(t, result.RequiresApproval)
	require.NotNil(t, saved)
	assert.True(t, saved.RequiresApproval())
	assert.False(t, saved.IsReporterVisible())
}

func TestSendMessage_AgentCannotOptOutOfApproval(t *testing.T) {
	tk := reporterTicket(t, "u1")
	var saved *ticket.Activity

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			saved = a
			return nil
		},
	}

	uc := NewSendMessageUseCase(ticketRepo, activityRepo, newTestLogger())

	result, err := uc.Execute(context.Background(), SendMessageCommand{
		TicketID:         42,
		ActorType:        "agent",
		ActorName:        "worker-bot",
		Content:          "Please publish this directly.",
		RequiresApproval: false,
	})
	require.NoError(t, err)

	assert.True(t, result.RequiresApproval)
	require.NotNil(t, saved)
	assert.True(t, saved.RequiresApproval())
}

func TestSendMessage_RequiresContent(t *testing.T) {
	uc := NewSendMessageUseCase(&mockTicketRepository{}, &mockActivityRepository{}, newTestLogger())

	_, err := uc.Execute(context.Background(), SendMessageCommand{
		TicketID:  42,
		ActorType: "admin",
		ActorName: "alice",
	})
	require.Error(t, err)
}

func TestAddComment_DefaultsToInternal(t *testing.T) {
	tk := reporterTicket(t, "u1")
	var saved *ticket.Activity

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			saved = a
			return nil
		},
	}

	uc := NewAddCommentUseCase(ticketRepo, activityRepo, newTestLogger())

	result, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID:  42,
		ActorType: "admin",
		ActorName: "alice",
		Content:   "Reproduced locally, looks like a session bug.",
	})
	require.NoError(t, err)

	assert.False(t, result.RequiresApproval)
	require.NotNil(t, saved)
	assert.Equal(t, vo.ActivityComment, saved.ActivityType())
	assert.Equal(t, vo.VisibilityInternal, saved.Visibility())
}

func TestAddComment_AgentUserVisibleRequiresApproval(t *testing.T) {
	tk := reporterTicket(t, "u1")
	var saved *ticket.Activity

	ticketRepo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			saved = a
			return nil
		},
	}

	uc := NewAddCommentUseCase(ticketRepo, activityRepo, newTestLogger())

	result, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID:    42,
		ActorType:   "agent",
		ActorName:   "worker-bot",
		Content:     "Here is a summary of the fix.",
		UserVisible: true,
	})
	require.NoError(t, err)

	assert.True(t, result.RequiresApproval)
	require.NotNil(t, saved)
	assert.Equal(t, vo.VisibilityUserVisible, saved.Visibility())
	assert.False(t, saved.IsReporterVisible())
}
