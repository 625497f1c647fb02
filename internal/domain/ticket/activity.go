package ticket

import (
	"fmt"
	"time"

	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/biztime"
)

// Activity is one immutable entry in a ticket's audit trail. Entries
// are never updated after insert except to stamp the approval fields,
// and are never deleted. createdAt is the sole ordering key.
type Activity struct {
	id               uint
	ticketID         uint
	activityType     vo.ActivityType
	authorType       vo.AuthorType
	authorName       string
	content          *string
	metadata         map[string]interface{}
	visibility       vo.Visibility
	requiresApproval bool
	approvedBy       *string
	approvedAt       *time.Time
	createdAt        time.Time
}

// NewActivityParams carries the fields for a new timeline entry.
type NewActivityParams struct {
	TicketID         uint
	ActivityType     vo.ActivityType
	Actor            vo.Actor
	Content          *string
	Metadata         map[string]interface{}
	Visibility       vo.Visibility
	RequiresApproval bool
}

func NewActivity(p NewActivityParams) (*Activity, error) {
	if p.TicketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !p.ActivityType.IsValid() {
		return nil, fmt.Errorf("invalid activity type: %s", p.ActivityType)
	}
	if err := p.Actor.Validate(); err != nil {
		return nil, err
	}
	visibility := p.Visibility
	if visibility == "" {
		visibility = vo.VisibilityInternal
	}
	if !visibility.IsValid() {
		return nil, fmt.Errorf("invalid visibility: %s", p.Visibility)
	}

	return &Activity{
		ticketID:         p.TicketID,
		activityType:     p.ActivityType,
		authorType:       p.Actor.Type,
		authorName:       p.Actor.Name,
		content:          p.Content,
		metadata:         p.Metadata,
		visibility:       visibility,
		requiresApproval: p.RequiresApproval,
		createdAt:        biztime.NowUTC(),
	}, nil
}

// ReconstructActivityParams rebuilds an entry from storage.
type ReconstructActivityParams struct {
	ID               uint
	TicketID         uint
	ActivityType     vo.ActivityType
	AuthorType       vo.AuthorType
	AuthorName       string
	Content          *string
	Metadata         map[string]interface{}
	Visibility       vo.Visibility
	RequiresApproval bool
	ApprovedBy       *string
	ApprovedAt       *time.Time
	CreatedAt        time.Time
}

func ReconstructActivity(p ReconstructActivityParams) (*Activity, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("activity ID cannot be zero")
	}
	if p.TicketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !p.ActivityType.IsValid() {
		return nil, fmt.Errorf("invalid activity type: %s", p.ActivityType)
	}

	return &Activity{
		id:               p.ID,
		ticketID:         p.TicketID,
		activityType:     p.ActivityType,
		authorType:       p.AuthorType,
		authorName:       p.AuthorName,
		content:          p.Content,
		metadata:         p.Metadata,
		visibility:       p.Visibility,
		requiresApproval: p.RequiresApproval,
		approvedBy:       p.ApprovedBy,
		approvedAt:       p.ApprovedAt,
		createdAt:        p.CreatedAt,
	}, nil
}

func (a *Activity) ID() uint                     { return a.id }
func (a *Activity) TicketID() uint               { return a.ticketID }
func (a *Activity) ActivityType() vo.ActivityType { return a.activityType }
func (a *Activity) AuthorType() vo.AuthorType    { return a.authorType }
func (a *Activity) AuthorName() string           { return a.authorName }
func (a *Activity) Content() *string             { return a.content }
func (a *Activity) Visibility() vo.Visibility    { return a.visibility }
func (a *Activity) RequiresApproval() bool       { return a.requiresApproval }
func (a *Activity) ApprovedBy() *string          { return a.approvedBy }
func (a *Activity) ApprovedAt() *time.Time       { return a.approvedAt }
func (a *Activity) CreatedAt() time.Time         { return a.createdAt }

func (a *Activity) Metadata() map[string]interface{} {
	if a.metadata == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(a.metadata))
	for k, v := range a.metadata {
		copied[k] = v
	}
	return copied
}

func (a *Activity) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("activity ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("activity ID cannot be zero")
	}
	a.id = id
	return nil
}

// IsApproved reports whether any required approval has been given.
func (a *Activity) IsApproved() bool {
	return a.approvedAt != nil
}

// IsReporterVisible reports whether the entry may be shown to the
// ticket's reporter: it must be user_visible and, if it was authored
// under the approval requirement, explicitly approved.
func (a *Activity) IsReporterVisible() bool {
	if !a.visibility.IsUserVisible() {
		return false
	}
	if a.requiresApproval && a.approvedAt == nil {
		return false
	}
	return true
}

// Approve stamps the approval fields. Returns false when the entry
// does not require approval or is already approved; callers treat that
// as a no-op, not an error.
func (a *Activity) Approve(admin vo.Actor) bool {
	if !a.requiresApproval || a.approvedAt != nil {
		return false
	}
	now := biztime.NowUTC()
	name := admin.Name
	a.approvedBy = &name
	a.approvedAt = &now
	return true
}

// PromoteToUserVisible flips an internal entry to user_visible and
// stamps the approval fields. The flip is one-way. Returns false when
// the entry is already user_visible.
func (a *Activity) PromoteToUserVisible(admin vo.Actor) bool {
	if a.visibility.IsUserVisible() {
		return false
	}
	a.visibility = vo.VisibilityUserVisible
	now := biztime.NowUTC()
	name := admin.Name
	a.approvedBy = &name
	a.approvedAt = &now
	return true
}
