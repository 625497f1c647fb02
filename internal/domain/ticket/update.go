package ticket

import (
	"slices"
	"time"

	vo "shipdesk/internal/domain/ticket/value_objects"
)

// UpdateChanges is the allow-list of fields a plain update may touch.
// Nil pointers mean "leave unchanged". Identity, numbering, status,
// audit, and idempotency fields are deliberately absent; they move only
// through their dedicated operations.
type UpdateChanges struct {
	Title       *string
	Description *string
	TicketType  *vo.TicketType
	Priority    *vo.Priority
	Tags        *[]string
	Route       *string
	Environment *string
	Assignee    *string
	Direction   *string

	AIAssessment        *string
	AISolutionProposal  *string
	AISuggestedPriority *vo.Priority
	AIComplexity        *string
	AIEstimatedFiles    *[]string
	AutonomyScore       *int

	WorkPriority  *int
	TestingResult *vo.TestingResult
	NeedsFollowup *bool
	FollowupNotes *string
	FollowupAfter *time.Time
	Resolution    *string

	ReporterName  *string
	ReporterEmail *string
}

// FieldChange describes one tracked field whose value actually changed.
// Each change becomes an internal field_change activity entry.
type FieldChange struct {
	Field string
	From  interface{}
	To    interface{}
}

// ApplyUpdate applies the allow-listed changes field by field and
// returns the diffs. When nothing actually changed the ticket is left
// untouched, including updatedAt, so retried no-op updates write no
// timeline noise.
func (t *Ticket) ApplyUpdate(changes UpdateChanges, actor vo.Actor) []FieldChange {
	var diffs []FieldChange

	setString := func(field string, target *string, newVal *string) {
		if newVal != nil && *newVal != *target {
			diffs = append(diffs, FieldChange{Field: field, From: *target, To: *newVal})
			*target = *newVal
		}
	}

	setString("title", &t.title, changes.Title)
	setString("description", &t.description, changes.Description)

	if changes.TicketType != nil && *changes.TicketType != t.ticketType {
		diffs = append(diffs, FieldChange{Field: "ticketType", From: t.ticketType.String(), To: changes.TicketType.String()})
		t.ticketType = *changes.TicketType
	}
	if changes.Priority != nil && *changes.Priority != t.priority {
		diffs = append(diffs, FieldChange{Field: "priority", From: t.priority.String(), To: changes.Priority.String()})
		t.priority = *changes.Priority
	}
	if changes.Tags != nil && !slices.Equal(*changes.Tags, t.tags) {
		diffs = append(diffs, FieldChange{Field: "tags", From: slices.Clone(t.tags), To: slices.Clone(*changes.Tags)})
		t.tags = slices.Clone(*changes.Tags)
	}

	setString("route", &t.route, changes.Route)
	setString("environment", &t.environment, changes.Environment)
	setString("assignee", &t.assignee, changes.Assignee)
	setString("direction", &t.direction, changes.Direction)
	setString("aiAssessment", &t.aiAssessment, changes.AIAssessment)
	setString("aiSolutionProposal", &t.aiSolutionProposal, changes.AISolutionProposal)

	if changes.AISuggestedPriority != nil && *changes.AISuggestedPriority != t.aiSuggestedPriority {
		diffs = append(diffs, FieldChange{Field: "aiSuggestedPriority", From: t.aiSuggestedPriority.String(), To: changes.AISuggestedPriority.String()})
		t.aiSuggestedPriority = *changes.AISuggestedPriority
	}

	setString("aiComplexity", &t.aiComplexity, changes.AIComplexity)

	if changes.AIEstimatedFiles != nil && !slices.Equal(*changes.AIEstimatedFiles, t.aiEstimatedFiles) {
		diffs = append(diffs, FieldChange{Field: "aiEstimatedFiles", From: slices.Clone(t.aiEstimatedFiles), To: slices.Clone(*changes.AIEstimatedFiles)})
		t.aiEstimatedFiles = slices.Clone(*changes.AIEstimatedFiles)
	}
	if changes.AutonomyScore != nil && !equalIntPtr(changes.AutonomyScore, t.autonomyScore) {
		diffs = append(diffs, FieldChange{Field: "autonomyScore", From: derefInt(t.autonomyScore), To: *changes.AutonomyScore})
		score := *changes.AutonomyScore
		t.autonomyScore = &score
	}
	if changes.WorkPriority != nil && !equalIntPtr(changes.WorkPriority, t.workPriority) {
		diffs = append(diffs, FieldChange{Field: "workPriority", From: derefInt(t.workPriority), To: *changes.WorkPriority})
		wp := *changes.WorkPriority
		t.workPriority = &wp
	}
	if changes.TestingResult != nil && *changes.TestingResult != t.testingResult {
		diffs = append(diffs, FieldChange{Field: "testingResult", From: t.testingResult.String(), To: changes.TestingResult.String()})
		t.testingResult = *changes.TestingResult
	}
	if changes.NeedsFollowup != nil && *changes.NeedsFollowup != t.needsFollowup {
		diffs = append(diffs, FieldChange{Field: "needsFollowup", From: t.needsFollowup, To: *changes.NeedsFollowup})
		t.needsFollowup = *changes.NeedsFollowup
	}

	setString("followupNotes", &t.followupNotes, changes.FollowupNotes)

	if changes.FollowupAfter != nil && !equalTimePtr(changes.FollowupAfter, t.followupAfter) {
		diffs = append(diffs, FieldChange{Field: "followupAfter", From: t.followupAfter, To: *changes.FollowupAfter})
		after := *changes.FollowupAfter
		t.followupAfter = &after
	}

	setString("resolution", &t.resolution, changes.Resolution)
	setString("reporterName", &t.reporterName, changes.ReporterName)
	setString("reporterEmail", &t.reporterEmail, changes.ReporterEmail)

	if len(diffs) > 0 {
		t.touch(actor)
	}
	return diffs
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func derefInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
