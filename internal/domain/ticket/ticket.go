package ticket

import (
	"fmt"
	"slices"
	"time"

	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/biztime"
)

// Ticket is the unit of work tracked by the engine. All mutation goes
// through methods on the aggregate; the persistence layer reconstructs
// it via ReconstructTicket.
type Ticket struct {
	id           uint
	projectID    uint
	ticketNumber int

	source     string
	ticketType vo.TicketType
	priority   vo.Priority
	tags       []string

	title       string
	description string
	route       string
	environment string
	browserInfo string
	osInfo      string

	reporterID    string
	reporterName  string
	reporterEmail string

	status       vo.TicketStatus
	assignee     string
	direction    string
	workPriority *int
	resolution   string
	resolvedAt   *time.Time

	aiAssessment        string
	aiSolutionProposal  string
	aiSuggestedPriority vo.Priority
	aiComplexity        string
	aiEstimatedFiles    []string
	autonomyScore       *int

	testingResult vo.TestingResult
	needsFollowup bool
	followupNotes string
	followupAfter *time.Time

	parentID          *uint
	clientReferenceID *string

	createdAt time.Time
	updatedAt time.Time
	updatedBy string
	deletedAt *time.Time
}

// NewTicketParams carries the caller-supplied fields for ticket creation.
type NewTicketParams struct {
	ProjectID         uint
	Source            string
	TicketType        vo.TicketType
	Priority          vo.Priority
	Tags              []string
	Title             string
	Description       string
	Route             string
	Environment       string
	BrowserInfo       string
	OSInfo            string
	ReporterID        string
	ReporterName      string
	ReporterEmail     string
	ParentID          *uint
	ClientReferenceID *string
}

func NewTicket(p NewTicketParams) (*Ticket, error) {
	if p.ProjectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	if len(p.Title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(p.Title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(p.ReporterID) == 0 {
		return nil, fmt.Errorf("reporter ID is required")
	}
	if !p.TicketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type")
	}
	priority := p.Priority
	if priority == "" {
		priority = vo.PriorityUnset
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if p.ClientReferenceID != nil && *p.ClientReferenceID == "" {
		return nil, fmt.Errorf("client reference ID cannot be empty when provided")
	}

	now := biztime.NowUTC()

	return &Ticket{
		projectID:         p.ProjectID,
		source:            p.Source,
		ticketType:        p.TicketType,
		priority:          priority,
		tags:              slices.Clone(p.Tags),
		title:             p.Title,
		description:       p.Description,
		route:             p.Route,
		environment:       p.Environment,
		browserInfo:       p.BrowserInfo,
		osInfo:            p.OSInfo,
		reporterID:        p.ReporterID,
		reporterName:      p.ReporterName,
		reporterEmail:     p.ReporterEmail,
		status:            vo.StatusNew,
		parentID:          p.ParentID,
		clientReferenceID: p.ClientReferenceID,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructTicketParams carries every persisted field for rebuilding
// the aggregate from storage.
type ReconstructTicketParams struct {
	ID                  uint
	ProjectID           uint
	TicketNumber        int
	Source              string
	TicketType          vo.TicketType
	Priority            vo.Priority
	Tags                []string
	Title               string
	Description         string
	Route               string
	Environment         string
	BrowserInfo         string
	OSInfo              string
	ReporterID          string
	ReporterName        string
	ReporterEmail       string
	Status              vo.TicketStatus
	Assignee            string
	Direction           string
	WorkPriority        *int
	Resolution          string
	ResolvedAt          *time.Time
	AIAssessment        string
	AISolutionProposal  string
	AISuggestedPriority vo.Priority
	AIComplexity        string
	AIEstimatedFiles    []string
	AutonomyScore       *int
	TestingResult       vo.TestingResult
	NeedsFollowup       bool
	FollowupNotes       string
	FollowupAfter       *time.Time
	ParentID            *uint
	ClientReferenceID   *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	UpdatedBy           string
	DeletedAt           *time.Time
}

func ReconstructTicket(p ReconstructTicketParams) (*Ticket, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if p.TicketNumber == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", p.Status)
	}
	if !p.TicketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type: %s", p.TicketType)
	}

	return &Ticket{
		id:                  p.ID,
		projectID:           p.ProjectID,
		ticketNumber:        p.TicketNumber,
		source:              p.Source,
		ticketType:          p.TicketType,
		priority:            p.Priority,
		tags:                slices.Clone(p.Tags),
		title:               p.Title,
		description:         p.Description,
		route:               p.Route,
		environment:         p.Environment,
		browserInfo:         p.BrowserInfo,
		osInfo:              p.OSInfo,
		reporterID:          p.ReporterID,
		reporterName:        p.ReporterName,
		reporterEmail:       p.ReporterEmail,
		status:              p.Status,
		assignee:            p.Assignee,
		direction:           p.Direction,
		workPriority:        p.WorkPriority,
		resolution:          p.Resolution,
		resolvedAt:          p.ResolvedAt,
		aiAssessment:        p.AIAssessment,
		aiSolutionProposal:  p.AISolutionProposal,
		aiSuggestedPriority: p.AISuggestedPriority,
		aiComplexity:        p.AIComplexity,
		aiEstimatedFiles:    slices.Clone(p.AIEstimatedFiles),
		autonomyScore:       p.AutonomyScore,
		testingResult:       p.TestingResult,
		needsFollowup:       p.NeedsFollowup,
		followupNotes:       p.FollowupNotes,
		followupAfter:       p.FollowupAfter,
		parentID:            p.ParentID,
		clientReferenceID:   p.ClientReferenceID,
		createdAt:           p.CreatedAt,
		updatedAt:           p.UpdatedAt,
		updatedBy:           p.UpdatedBy,
		deletedAt:           p.DeletedAt,
	}, nil
}

func (t *Ticket) ID() uint                        { return t.id }
func (t *Ticket) ProjectID() uint                 { return t.projectID }
func (t *Ticket) TicketNumber() int               { return t.ticketNumber }
func (t *Ticket) Source() string                  { return t.source }
func (t *Ticket) TicketType() vo.TicketType       { return t.ticketType }
func (t *Ticket) Priority() vo.Priority           { return t.priority }
func (t *Ticket) Tags() []string                  { return slices.Clone(t.tags) }
func (t *Ticket) Title() string                   { return t.title }
func (t *Ticket) Description() string             { return t.description }
func (t *Ticket) Route() string                   { return t.route }
func (t *Ticket) Environment() string             { return t.environment }
func (t *Ticket) BrowserInfo() string             { return t.browserInfo }
func (t *Ticket) OSInfo() string                  { return t.osInfo }
func (t *Ticket) ReporterID() string              { return t.reporterID }
func (t *Ticket) ReporterName() string            { return t.reporterName }
func (t *Ticket) ReporterEmail() string           { return t.reporterEmail }
func (t *Ticket) Status() vo.TicketStatus         { return t.status }
func (t *Ticket) Assignee() string                { return t.assignee }
func (t *Ticket) Direction() string               { return t.direction }
func (t *Ticket) WorkPriority() *int              { return t.workPriority }
func (t *Ticket) Resolution() string              { return t.resolution }
func (t *Ticket) ResolvedAt() *time.Time          { return t.resolvedAt }
func (t *Ticket) AIAssessment() string            { return t.aiAssessment }
func (t *Ticket) AISolutionProposal() string      { return t.aiSolutionProposal }
func (t *Ticket) AISuggestedPriority() vo.Priority { return t.aiSuggestedPriority }
func (t *Ticket) AIComplexity() string            { return t.aiComplexity }
func (t *Ticket) AIEstimatedFiles() []string      { return slices.Clone(t.aiEstimatedFiles) }
func (t *Ticket) AutonomyScore() *int             { return t.autonomyScore }
func (t *Ticket) TestingResult() vo.TestingResult { return t.testingResult }
func (t *Ticket) NeedsFollowup() bool             { return t.needsFollowup }
func (t *Ticket) FollowupNotes() string           { return t.followupNotes }
func (t *Ticket) FollowupAfter() *time.Time       { return t.followupAfter }
func (t *Ticket) ParentID() *uint                 { return t.parentID }
func (t *Ticket) ClientReferenceID() *string      { return t.clientReferenceID }
func (t *Ticket) CreatedAt() time.Time            { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time            { return t.updatedAt }
func (t *Ticket) UpdatedBy() string               { return t.updatedBy }
func (t *Ticket) DeletedAt() *time.Time           { return t.deletedAt }

func (t *Ticket) IsDeleted() bool {
	return t.deletedAt != nil
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// SetTicketNumber assigns the per-project sequential number. It is
// immutable once set.
func (t *Ticket) SetTicketNumber(number int) error {
	if t.ticketNumber != 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if number <= 0 {
		return fmt.Errorf("ticket number must be positive")
	}
	t.ticketNumber = number
	return nil
}

// Reference returns the human-facing ticket reference, e.g. "T-123".
func (t *Ticket) Reference() string {
	return fmt.Sprintf("T-%d", t.ticketNumber)
}

// ChangeStatus moves the ticket to newStatus. Transitions are never
// blocked; the returned backward flag tells the caller the move went
// against the nominal order so it can be logged. resolvedAt is stamped
// exactly once, the first time the status becomes resolved.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus, actor vo.Actor) (changed bool, backward bool) {
	if newStatus == t.status {
		return false, false
	}

	backward = newStatus.IsBackwardFrom(t.status)
	t.status = newStatus

	if newStatus.IsResolved() && t.resolvedAt == nil {
		now := biztime.NowUTC()
		t.resolvedAt = &now
	}

	t.touch(actor)
	return true, backward
}

// TriageData carries the AI assessment attached during triage.
type TriageData struct {
	Assessment        string
	SolutionProposal  string
	SuggestedPriority vo.Priority
	Complexity        string
	EstimatedFiles    []string
	AutonomyScore     *int
}

func (d TriageData) Validate() error {
	if d.SuggestedPriority != "" && !d.SuggestedPriority.IsValid() {
		return fmt.Errorf("invalid suggested priority: %s", d.SuggestedPriority)
	}
	if d.AutonomyScore != nil && (*d.AutonomyScore < 1 || *d.AutonomyScore > 5) {
		return fmt.Errorf("autonomy score must be between 1 and 5")
	}
	return nil
}

// ApplyTriage records the agent's assessment, adopts the suggested
// priority when none has been set, and forces the status to triaged.
// Returns whether the status actually changed.
func (t *Ticket) ApplyTriage(data TriageData, actor vo.Actor) (statusChanged bool) {
	t.aiAssessment = data.Assessment
	t.aiSolutionProposal = data.SolutionProposal
	t.aiSuggestedPriority = data.SuggestedPriority
	t.aiComplexity = data.Complexity
	t.aiEstimatedFiles = slices.Clone(data.EstimatedFiles)
	t.autonomyScore = data.AutonomyScore

	if !t.priority.IsSet() && data.SuggestedPriority.IsSet() {
		t.priority = data.SuggestedPriority
	}

	statusChanged = t.status != vo.StatusTriaged
	t.status = vo.StatusTriaged
	t.touch(actor)
	return statusChanged
}

// ApproveWork marks the ticket approved for implementation. An empty
// direction keeps whatever direction is already recorded.
func (t *Ticket) ApproveWork(direction string, workPriority int, actor vo.Actor) (statusChanged bool) {
	if direction != "" {
		t.direction = direction
	}
	t.workPriority = &workPriority

	statusChanged = t.status != vo.StatusApproved
	t.status = vo.StatusApproved
	t.touch(actor)
	return statusChanged
}

// RejectWork closes the ticket with a terminal resolution code.
func (t *Ticket) RejectWork(resolution string, actor vo.Actor) (statusChanged bool) {
	t.resolution = resolution

	statusChanged = t.status != vo.StatusClosed
	t.status = vo.StatusClosed
	t.touch(actor)
	return statusChanged
}

// SubmitResolution moves a worked ticket into review with testing
// pending. The resolution notes travel on the timeline, not here.
func (t *Ticket) SubmitResolution(actor vo.Actor) (statusChanged bool) {
	t.testingResult = vo.TestingPending

	statusChanged = t.status != vo.StatusInReview
	t.status = vo.StatusInReview
	t.touch(actor)
	return statusChanged
}

// SoftDelete stamps deletedAt; the row stays in the store but drops out
// of listings, queues, and statistics.
func (t *Ticket) SoftDelete(actor vo.Actor) {
	if t.deletedAt != nil {
		return
	}
	now := biztime.NowUTC()
	t.deletedAt = &now
	t.touch(actor)
}

func (t *Ticket) touch(actor vo.Actor) {
	t.updatedAt = biztime.NowUTC()
	t.updatedBy = actor.Name
}

func (t *Ticket) Validate() error {
	if t.projectID == 0 {
		return fmt.Errorf("project ID is required")
	}
	if len(t.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(t.reporterID) == 0 {
		return fmt.Errorf("reporter ID is required")
	}
	if !t.ticketType.IsValid() {
		return fmt.Errorf("invalid ticket type")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	return nil
}
