package dto

import (
	"time"

	"shipdesk/internal/domain/ticket"
)

type TicketDTO struct {
	ID                  uint       `json:"id"`
	ProjectID           uint       `json:"project_id"`
	TicketNumber        int        `json:"ticket_number"`
	Reference           string     `json:"reference"`
	Source              string     `json:"source"`
	TicketType          string     `json:"ticket_type"`
	Priority            string     `json:"priority"`
	Tags                []string   `json:"tags"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Route               string     `json:"route,omitempty"`
	Environment         string     `json:"environment,omitempty"`
	BrowserInfo         string     `json:"browser_info,omitempty"`
	OSInfo              string     `json:"os_info,omitempty"`
	ReporterID          string     `json:"reporter_id"`
	ReporterName        string     `json:"reporter_name,omitempty"`
	ReporterEmail       string     `json:"reporter_email,omitempty"`
	Status              string     `json:"status"`
	Assignee            string     `json:"assignee,omitempty"`
	Direction           string     `json:"direction,omitempty"`
	WorkPriority        *int       `json:"work_priority"`
	Resolution          string     `json:"resolution,omitempty"`
	ResolvedAt          *time.Time `json:"resolved_at"`
	AIAssessment        string     `json:"ai_assessment,omitempty"`
	AISolutionProposal  string     `json:"ai_solution_proposal,omitempty"`
	AISuggestedPriority string     `json:"ai_suggested_priority,omitempty"`
	AIComplexity        string     `json:"ai_complexity,omitempty"`
	AIEstimatedFiles    []string   `json:"ai_estimated_files,omitempty"`
	AutonomyScore       *int       `json:"autonomy_score"`
	TestingResult       string     `json:"testing_result,omitempty"`
	NeedsFollowup       bool       `json:"needs_followup"`
	FollowupNotes       string     `json:"followup_notes,omitempty"`
	FollowupAfter       *time.Time `json:"followup_after"`
	ParentID            *uint      `json:"parent_id"`
	ClientReferenceID   *string    `json:"client_reference_id"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	UpdatedBy           string     `json:"updated_by,omitempty"`
}

type TicketListItemDTO struct {
	ID            uint   `json:"id"`
	ProjectID     uint   `json:"project_id"`
	Reference     string `json:"reference"`
	Title         string `json:"title"`
	TicketType    string `json:"ticket_type"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	Assignee      string `json:"assignee,omitempty"`
	WorkPriority  *int   `json:"work_priority"`
	TestingResult string `json:"testing_result,omitempty"`
	NeedsFollowup bool   `json:"needs_followup"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type ActivityDTO struct {
	ID               uint                   `json:"id"`
	TicketID         uint                   `json:"ticket_id"`
	ActivityType     string                 `json:"activity_type"`
	AuthorType       string                 `json:"author_type"`
	AuthorName       string                 `json:"author_name"`
	Content          *string                `json:"content"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	Visibility       string                 `json:"visibility"`
	RequiresApproval bool                   `json:"requires_approval"`
	ApprovedBy       *string                `json:"approved_by"`
	ApprovedAt       *time.Time             `json:"approved_at"`
	CreatedAt        time.Time              `json:"created_at"`
}

type AttachmentDTO struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		ID:                  t.ID(),
		ProjectID:           t.ProjectID(),
		TicketNumber:        t.TicketNumber(),
		Reference:           t.Reference(),
		Source:              t.Source(),
		TicketType:          t.TicketType().String(),
		Priority:            t.Priority().String(),
		Tags:                t.Tags(),
		Title:               t.Title(),
		Description:         t.Description(),
		Route:               t.Route(),
		Environment:         t.Environment(),
		BrowserInfo:         t.BrowserInfo(),
		OSInfo:              t.OSInfo(),
		ReporterID:          t.ReporterID(),
		ReporterName:        t.ReporterName(),
		ReporterEmail:       t.ReporterEmail(),
		Status:              t.Status().String(),
		Assignee:            t.Assignee(),
		Direction:           t.Direction(),
		WorkPriority:        t.WorkPriority(),
		Resolution:          t.Resolution(),
		ResolvedAt:          t.ResolvedAt(),
		AIAssessment:        t.AIAssessment(),
		AISolutionProposal:  t.AISolutionProposal(),
		AISuggestedPriority: t.AISuggestedPriority().String(),
		AIComplexity:        t.AIComplexity(),
		AIEstimatedFiles:    t.AIEstimatedFiles(),
		AutonomyScore:       t.AutonomyScore(),
		TestingResult:       t.TestingResult().String(),
		NeedsFollowup:       t.NeedsFollowup(),
		FollowupNotes:       t.FollowupNotes(),
		FollowupAfter:       t.FollowupAfter(),
		ParentID:            t.ParentID(),
		ClientReferenceID:   t.ClientReferenceID(),
		CreatedAt:           t.CreatedAt(),
		UpdatedAt:           t.UpdatedAt(),
		UpdatedBy:           t.UpdatedBy(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:            t.ID(),
		ProjectID:     t.ProjectID(),
		Reference:     t.Reference(),
		Title:         t.Title(),
		TicketType:    t.TicketType().String(),
		Priority:      t.Priority().String(),
		Status:        t.Status().String(),
		Assignee:      t.Assignee(),
		WorkPriority:  t.WorkPriority(),
		TestingResult: t.TestingResult().String(),
		NeedsFollowup: t.NeedsFollowup(),
		CreatedAt:     t.CreatedAt().Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt().Format(time.RFC3339),
	}
}

func ToTicketListItemDTOs(tickets []*ticket.Ticket) []TicketListItemDTO {
	items := make([]TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, ToTicketListItemDTO(t))
	}
	return items
}

func ToActivityDTO(a *ticket.Activity) ActivityDTO {
	return ActivityDTO{
		ID:               a.ID(),
		TicketID:         a.TicketID(),
		ActivityType:     a.ActivityType().String(),
		AuthorType:       a.AuthorType().String(),
		AuthorName:       a.AuthorName(),
		Content:          a.Content(),
		Metadata:         a.Metadata(),
		Visibility:       a.Visibility().String(),
		RequiresApproval: a.RequiresApproval(),
		ApprovedBy:       a.ApprovedBy(),
		ApprovedAt:       a.ApprovedAt(),
		CreatedAt:        a.CreatedAt(),
	}
}

func ToActivityDTOs(activities []*ticket.Activity) []ActivityDTO {
	items := make([]ActivityDTO, 0, len(activities))
	for _, a := range activities {
		items = append(items, ToActivityDTO(a))
	}
	return items
}

func ToAttachmentDTO(a *ticket.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:         a.ID(),
		TicketID:   a.TicketID(),
		Filename:   a.Filename(),
		MimeType:   a.MimeType(),
		SizeBytes:  a.SizeBytes(),
		UploadedBy: a.UploadedBy(),
		CreatedAt:  a.CreatedAt(),
	}
}

func ToAttachmentDTOs(attachments []*ticket.Attachment) []AttachmentDTO {
	items := make([]AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		items = append(items, ToAttachmentDTO(a))
	}
	return items
}
