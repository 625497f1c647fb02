package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/logger"
)

func newTestLogger() logger.Interface {
	return logger.NewLogger()
}

func reporterTicket(t *testing.T, reporterID string) *ticket.Ticket {
	t.Helper()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tk, err := ticket.ReconstructTicket(ticket.ReconstructTicketParams{
		ID:           42,
		ProjectID:    1,
		TicketNumber: 7,
		TicketType:   vo.TypeBug,
		Priority:     vo.PriorityHigh,
		Title:        "Login fails",
		ReporterID:   reporterID,
		Status:       vo.StatusTriaged,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return tk
}

// mockTicketRepository implements ticket.TicketRepository; only the
// lookup paths matter for timeline behavior.
type mockTicketRepository struct {
	FindByIDFunc func(ctx context.Context, id uint) (*ticket.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error   { return nil }
func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error { return nil }

func (m *mockTicketRepository) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
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
	return nil, nil
}

func (m *mockTicketRepository) WorkQueue(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) ReworkItems(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) FollowUps(ctx context.Context, projectID *uint, dueBy *time.Time) ([]*ticket.Ticket, error) {
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

type mockActivityRepository struct {
	SaveFunc           func(ctx context.Context, a *ticket.Activity) error
	FindByIDFunc       func(ctx context.Context, id uint) (*ticket.Activity, error)
	UpdateApprovalFunc func(ctx context.Context, a *ticket.Activity) error
	TimelineFunc       func(ctx context.Context, ticketID uint, filter ticket.TimelineFilter) ([]*ticket.Activity, error)
}

func (m *mockActivityRepository) Save(ctx context.Context, a *ticket.Activity) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockActivityRepository) FindByID(ctx context.Context, id uint) (*ticket.Activity, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockActivityRepository) UpdateApproval(ctx context.Context, a *ticket.Activity) error {
	if m.UpdateApprovalFunc != nil {
		return m.UpdateApprovalFunc(ctx, a)
	}
	return nil
}

func (m *mockActivityRepository) Timeline(ctx context.Context, ticketID uint, filter ticket.TimelineFilter) ([]*ticket.Activity, error) {
	if m.TimelineFunc != nil {
		return m.TimelineFunc(ctx, ticketID, filter)
	}
	return nil, nil
}
