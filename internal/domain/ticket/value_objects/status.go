package value_objects

import "fmt"

type TicketStatus string

const (
	StatusNew        TicketStatus = "new"
	StatusTriaged    TicketStatus = "triaged"
	StatusApproved   TicketStatus = "approved"
	StatusInProgress TicketStatus = "in_progress"
	StatusInReview   TicketStatus = "in_review"
	StatusUserReview TicketStatus = "user_review"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusNew:        true,
	StatusTriaged:    true,
	StatusApproved:   true,
	StatusInProgress: true,
	StatusInReview:   true,
	StatusUserReview: true,
	StatusResolved:   true,
	StatusClosed:     true,
}

// nominalOrder ranks statuses along the forward workflow. Any status
// may transition to any other (rework loops are legitimate), but a move
// to a lower rank is flagged so callers can log it.
var nominalOrder = map[TicketStatus]int{
	StatusNew:        0,
	StatusTriaged:    1,
	StatusApproved:   2,
	StatusInProgress: 3,
	StatusInReview:   4,
	StatusUserReview: 5,
	StatusResolved:   6,
	StatusClosed:     7,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

// Rank returns the position of the status in the nominal forward order.
func (ts TicketStatus) Rank() int {
	return nominalOrder[ts]
}

// IsBackwardFrom reports whether moving from the given status to this
// one goes against the nominal order.
func (ts TicketStatus) IsBackwardFrom(from TicketStatus) bool {
	return ts.Rank() < from.Rank()
}

// IsTerminal reports whether the status ends the workflow.
func (ts TicketStatus) IsTerminal() bool {
	return ts == StatusResolved || ts == StatusClosed
}

func (ts TicketStatus) IsNew() bool {
	return ts == StatusNew
}

func (ts TicketStatus) IsTriaged() bool {
	return ts == StatusTriaged
}

func (ts TicketStatus) IsApproved() bool {
	return ts == StatusApproved
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}

// AllStatuses returns every status in nominal forward order.
func AllStatuses() []TicketStatus {
	return []TicketStatus{
		StatusNew,
		StatusTriaged,
		StatusApproved,
		StatusInProgress,
		StatusInReview,
		StatusUserReview,
		StatusResolved,
		StatusClosed,
	}
}
