package usecases

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shipdesk/internal/domain/ticket"
	"shipdesk/internal/shared/db"
	"shipdesk/internal/shared/logger"
)

func newTestLogger() logger.Interface {
	return logger.NewLogger()
}

// newTestTxMgr backs the transaction manager with an in-memory sqlite
// handle; the mocked repositories never touch it.
func newTestTxMgr(t *testing.T) *db.TransactionManager {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return db.NewTransactionManager(gdb)
}

type mockTicketRepository struct {
	SaveFunc                  func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc                func(ctx context.Context, t *ticket.Ticket) error
	FindByIDFunc              func(ctx context.Context, id uint) (*ticket.Ticket, error)
	FindByNumberFunc          func(ctx context.Context, projectID uint, number int) (*ticket.Ticket, error)
	FindByClientReferenceFunc func(ctx context.Context, projectID uint, clientReferenceID string) (*ticket.Ticket, error)
	ListFunc                  func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	NextTicketNumberFunc      func(ctx context.Context, projectID uint) (int, error)
	MaxWorkPriorityFunc       func(ctx context.Context) (int, error)
	TriageBatchFunc           func(ctx context.Context, projectID *uint, size int) ([]*ticket.Ticket, error)
	WorkQueueFunc             func(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error)
	ReworkItemsFunc           func(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error)
	FollowUpsFunc             func(ctx context.Context, projectID *uint, dueBy *time.Time) ([]*ticket.Ticket, error)
	GroupCountByStatusFunc    func(ctx context.Context, projectID *uint) (map[string]int64, error)
	GroupCountByTypeFunc      func(ctx context.Context, projectID *uint) (map[string]int64, error)
	GroupCountByPriorityFunc  func(ctx context.Context, projectID *uint) (map[string]int64, error)
	ReworkCountFunc           func(ctx context.Context, projectID *uint) (int64, error)
	FollowUpsDueCountFunc     func(ctx context.Context, projectID *uint, now time.Time) (int64, error)
	AvgResolutionHoursFunc    func(ctx context.Context, projectID *uint) (*float64, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) FindByNumber(ctx context.Context, projectID uint, number int) (*ticket.Ticket, error) {
	if m.FindByNumberFunc != nil {
		return m.FindByNumberFunc(ctx, projectID, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) FindByClientReference(ctx context.Context, projectID uint, clientReferenceID string) (*ticket.Ticket, error) {
	if m.FindByClientReferenceFunc != nil {
		return m.FindByClientReferenceFunc(ctx, projectID, clientReferenceID)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) NextTicketNumber(ctx context.Context, projectID uint) (int, error) {
	if m.NextTicketNumberFunc != nil {
		return m.NextTicketNumberFunc(ctx, projectID)
	}
	return 1, nil
}

func (m *mockTicketRepository) MaxWorkPriority(ctx context.Context) (int, error) {
	if m.MaxWorkPriorityFunc != nil {
		return m.MaxWorkPriorityFunc(ctx)
	}
	return 0, nil
}

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
	if m.GroupCountByStatusFunc != nil {
		return m.GroupCountByStatusFunc(ctx, projectID)
	}
	return map[string]int64{}, nil
}

func (m *mockTicketRepository) GroupCountByType(ctx context.Context, projectID *uint) (map[string]int64, error) {
	if m.GroupCountByTypeFunc != nil {
		return m.GroupCountByTypeFunc(ctx, projectID)
	}
	return map[string]int64{}, nil
}

func (m *mockTicketRepository) GroupCountByPriority(ctx context.Context, projectID *uint) (map[string]int64, error) {
	if m.GroupCountByPriorityFunc != nil {
		return m.GroupCountByPriorityFunc(ctx, projectID)
	}
	return map[string]int64{}, nil
}

func (m *mockTicketRepository) ReworkCount(ctx context.Context, projectID *uint) (int64, error) {
	if m.ReworkCountFunc != nil {
		return m.ReworkCountFunc(ctx, projectID)
	}
	return 0, nil
}

func (m *mockTicketRepository) FollowUpsDueCount(ctx context.Context, projectID *uint, now time.Time) (int64, error) {
	if m.FollowUpsDueCountFunc != nil {
		return m.FollowUpsDueCountFunc(ctx, projectID, now)
	}
	return 0, nil
}

func (m *mockTicketRepository) AvgResolutionHours(ctx context.Context, projectID *uint) (*float64, error) {
	if m.AvgResolutionHoursFunc != nil {
		return m.AvgResolutionHoursFunc(ctx, projectID)
	}
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

type mockAttachmentRepository struct {
	SaveFunc           func(ctx context.Context, a *ticket.Attachment) error
	FindByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error)
}

func (m *mockAttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockAttachmentRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	if m.FindByTicketIDFunc != nil {
		return m.FindByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}
