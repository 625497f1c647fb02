package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	TriageBatchFunc func(ctx context.Context, projectID *uint, size int) ([]*ticket.Ticket, error)
	WorkQueueFunc   func(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error)
	ReworkItemsFunc func(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error)
	FollowUpsFunc   func(ctx context.Context, projectID *uint, dueBy *time.Time) ([]*ticket.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error   { return nil }
func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error { return nil }

func (m *mockTicketRepository) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) FindByNumber(ctx context.Context, projectID uint, number int) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) FindByClientReference(ctx context.Context, projectID uint, clientReferenceID string) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) NextTicketNumber(ctx context.Context, projectID uint) (int, error) {
	return 1, nil
}

func (m *mockTicketRepository) MaxWorkPriority(ctx context.Context) (int, error) { return 0, nil }

func (m *mockTicketRepository) TriageBatch(ctx context.Context, projectID *uint, size int) ([]*ticket.Ticket, error) {
	if m.TriageBatchFunc != nil {
		return m.TriageBatchFunc(ctx, projectID, size)
	}
	return nil, nil
}

func (m *mockTicketRepository) WorkQueue(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error) {
	if m.WorkQueueFunc != nil {
		return m.WorkQueueFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockTicketRepository) ReworkItems(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error) {
	if m.ReworkItemsFunc != nil {
		return m.ReworkItemsFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockTicketRepository) FollowUps(ctx context.Context, projectID *uint, dueBy *time.Time) ([]*ticket.Ticket, error) {
	if m.FollowUpsFunc != nil {
		return m.FollowUpsFunc(ctx, projectID, dueBy)
	}
	return nil, nil
}

func (m *mockTicketRepository) GroupCountByStatus(ctx context.Context, projectID *uint) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (m *mockTicketRepository) GroupCountByType(ctx context.Context, projectID *uint) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (m *mockTicketRepository) GroupCountByPriority(ctx context.Context, projectID *uint) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func (m *mockTicketRepository) ReworkCount(ctx context.Context, projectID *uint) (int64, error) {
	return 0, nil
}

func (m *mockTicketRepository) FollowUpsDueCount(ctx context.Context, projectID *uint, now time.Time) (int64, error) {
	return 0, nil
}

func (m *mockTicketRepository) AvgResolutionHours(ctx context.Context, projectID *uint) (*float64, error) {
	return nil, nil
}

func queueTicket(t *testing.T, id uint, number int, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tk, err := ticket.ReconstructTicket(ticket.ReconstructTicketParams{
		ID:           id,
		ProjectID:    1,
		TicketNumber: number,
		TicketType:   vo.TypeBug,
		Priority:     vo.PriorityMedium,
		Title:        "Queue item",
		ReporterID:   "u1",
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return tk
}

func TestTriageBatch_DefaultsBatchSize(t *testing.T) {
	var gotSize int
	repo := &mockTicketRepository{
		TriageBatchFunc: func(ctx context.Context, projectID *uint, size int) ([]*ticket.Ticket, error) {
			gotSize = size
			return []*ticket.Ticket{
				queueTicket(t, 1, 1, vo.StatusNew),
				queueTicket(t, 2, 2, vo.StatusNew),
			}, nil
		},
	}

	uc := NewTriageBatchUseCase(repo, logger.NewLogger())

	items, err := uc.Execute(context.Background(), TriageBatchQuery{})
	require.NoError(t, err)

	assert.Equal(t, 3, gotSize)
	assert.Len(t, items, 2)
	assert.Equal(t, "T-1", items[0].Reference)
}

func TestTriageBatch_ExplicitSize(t *testing.T) {
	var gotSize int
	repo := &mockTicketRepository{
		TriageBatchFunc: func(ctx context.Context, projectID *uint, size int) ([]*ticket.Ticket, error) {
			gotSize = size
			return nil, nil
		},
	}

	uc := NewTriageBatchUseCase(repo, logger.NewLogger())

	_, err := uc.Execute(context.Background(), TriageBatchQuery{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, gotSize)
}

func TestWorkQueue(t *testing.T) {
	repo := &mockTicketRepository{
		WorkQueueFunc: func(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error) {
			return []*ticket.Ticket{queueTicket(t, 3, 5, vo.StatusApproved)}, nil
		},
	}

	uc := NewWorkQueueUseCase(repo, logger.NewLogger())

	items, err := uc.Execute(context.Background(), WorkQueueQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "approved", items[0].Status)
}

func TestFollowUps_PassesDueBy(t *testing.T) {
	due := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	var gotDueBy *time.Time
	repo := &mockTicketRepository{
		FollowUpsFunc: func(ctx context.Context, projectID *uint, dueBy *time.Time) ([]*ticket.Ticket, error) {
			gotDueBy = dueBy
			return nil, nil
		},
	}

	uc := NewFollowUpsUseCase(repo, logger.NewLogger())

	_, err := uc.Execute(context.Background(), FollowUpsQuery{DueBy: &due})
	require.NoError(t, err)
	require.NotNil(t, gotDueBy)
	assert.Equal(t, due, *gotDueBy)
}
