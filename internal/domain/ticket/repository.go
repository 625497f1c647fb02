package ticket

import (
	"context"
	"time"

	vo "shipdesk/internal/domain/ticket/value_objects"
)

// TicketFilter narrows and orders ticket listings. Nil pointers mean
// "no filter". Soft-deleted rows are excluded unless IncludeDeleted is
// set.
type TicketFilter struct {
	ProjectID      *uint
	Statuses       []vo.TicketStatus
	TicketType     *vo.TicketType
	Priority       *vo.Priority
	Assignee       *string
	ReporterID     *string
	NeedsFollowup  *bool
	ParentID       *uint
	Search         string
	IncludeDeleted bool
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

// TimelineFilter narrows a ticket's activity timeline. Entries always
// come back ordered by createdAt ascending.
type TimelineFilter struct {
	Visibility *vo.Visibility
	Types      []vo.ActivityType
	Since      *time.Time
	Limit      int
	// ReporterVisible additionally applies the approval gate:
	// user_visible entries only, and entries written under
	// requiresApproval must carry an approval stamp.
	ReporterVisible bool
}

// TicketRepository is the store contract for ticket rows.
type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	// FindByID returns (nil, nil) when the ticket is absent or
	// soft-deleted.
	FindByID(ctx context.Context, id uint) (*Ticket, error)
	FindByNumber(ctx context.Context, projectID uint, number int) (*Ticket, error)
	// FindByClientReference resolves the idempotency key.
	FindByClientReference(ctx context.Context, projectID uint, clientReferenceID string) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)

	// NextTicketNumber returns MAX(ticket_number)+1 for the project.
	// Callers invoke it inside the create transaction.
	NextTicketNumber(ctx context.Context, projectID uint) (int, error)
	// MaxWorkPriority returns the highest work priority among tickets
	// currently in approved, or 0 when there are none.
	MaxWorkPriority(ctx context.Context) (int, error)

	TriageBatch(ctx context.Context, projectID *uint, size int) ([]*Ticket, error)
	WorkQueue(ctx context.Context, projectID *uint) ([]*Ticket, error)
	ReworkItems(ctx context.Context, projectID *uint) ([]*Ticket, error)
	FollowUps(ctx context.Context, projectID *uint, dueBy *time.Time) ([]*Ticket, error)

	GroupCountByStatus(ctx context.Context, projectID *uint) (map[string]int64, error)
	GroupCountByType(ctx context.Context, projectID *uint) (map[string]int64, error)
	GroupCountByPriority(ctx context.Context, projectID *uint) (map[string]int64, error)
	ReworkCount(ctx context.Context, projectID *uint) (int64, error)
	FollowUpsDueCount(ctx context.Context, projectID *uint, now time.Time) (int64, error)
	// AvgResolutionHours returns nil when no ticket has been resolved.
	AvgResolutionHours(ctx context.Context, projectID *uint) (*float64, error)
}

// ActivityRepository is the store contract for the append-only
// activity log.
type ActivityRepository interface {
	Save(ctx context.Context, a *Activity) error
	// FindByID returns (nil, nil) when absent.
	FindByID(ctx context.Context, id uint) (*Activity, error)
	// UpdateApproval persists only the approval and visibility fields;
	// everything else on an activity row is immutable.
	UpdateApproval(ctx context.Context, a *Activity) error
	Timeline(ctx context.Context, ticketID uint, filter TimelineFilter) ([]*Activity, error)
}

// AttachmentRepository stores attachment descriptors; payloads live in
// the external blob store.
type AttachmentRepository interface {
	Save(ctx context.Context, a *Attachment) error
	FindByTicketID(ctx context.Context, ticketID uint) ([]*Attachment, error)
}
