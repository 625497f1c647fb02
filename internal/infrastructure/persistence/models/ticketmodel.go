package models

import "gorm.io/datatypes"

type TicketModel struct {
	ID           uint `gorm:"primaryKey"`
	ProjectID    uint `gorm:"not null;index;uniqueIndex:idx_project_ticket_number;uniqueIndex:idx_project_client_ref"`
	TicketNumber int  `gorm:"not null;uniqueIndex:idx_project_ticket_number"`

	Source     string `gorm:"size:50"`
	TicketType string `gorm:"size:20;not null;index"`
	Priority   string `gorm:"size:20;not null;index"`
	Tags       string `gorm:"type:json"`

	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	Route       string `gorm:"size:500"`
	Environment string `gorm:"size:100"`
	BrowserInfo string `gorm:"size:500"`
	OSInfo      string `gorm:"size:200"`

	ReporterID    string `gorm:"size:100;not null;index"`
	ReporterName  string `gorm:"size:200"`
	ReporterEmail string `gorm:"size:320"`

	Status       string `gorm:"size:20;not null;index"`
	Assignee     string `gorm:"size:100;index"`
	Direction    string `gorm:"type:text"`
	WorkPriority *int   `gorm:"index"`
	Resolution   string `gorm:"size:50"`
	ResolvedAt   *int64

	AIAssessment        string `gorm:"type:text"`
	AISolutionProposal  string `gorm:"type:text"`
	AISuggestedPriority string `gorm:"size:20"`
	AIComplexity        string `gorm:"size:20"`
	AIEstimatedFiles    string `gorm:"type:json"`
	AutonomyScore       *int

	TestingResult string `gorm:"size:20;index"`
	NeedsFollowup bool   `gorm:"not null;default:false;index"`
	FollowupNotes string `gorm:"type:text"`
	FollowupAfter *int64 `gorm:"index"`

	ParentID          *uint   `gorm:"index"`
	ClientReferenceID *string `gorm:"size:200;uniqueIndex:idx_project_client_ref"`

	CreatedAt int64  `gorm:"not null;index"`
	UpdatedAt int64  `gorm:"not null"`
	UpdatedBy string `gorm:"size:100"`
	DeletedAt *int64 `gorm:"index"`

	// Note: no foreign key constraints or associations. Relationships
	// are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type ActivityModel struct {
	ID               uint              `gorm:"primaryKey"`
	TicketID         uint              `gorm:"not null;index:idx_activity_ticket_created"`
	ActivityType     string            `gorm:"size:20;not null;index"`
	AuthorType       string            `gorm:"size:20;not null"`
	AuthorName       string            `gorm:"size:100;not null"`
	Content          *string           `gorm:"type:text"`
	Metadata         datatypes.JSONMap `gorm:"type:json"`
	Visibility       string            `gorm:"size:20;not null;index"`
	RequiresApproval bool              `gorm:"not null;default:false"`
	ApprovedBy       *string           `gorm:"size:100"`
	ApprovedAt       *int64
	CreatedAt        int64 `gorm:"not null;index:idx_activity_ticket_created"`
}

func (ActivityModel) TableName() string {
	return "ticket_activities"
}

type AttachmentModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"not null;index"`
	Filename   string `gorm:"size:255;not null"`
	MimeType   string `gorm:"size:100"`
	SizeBytes  int64  `gorm:"not null"`
	UploadedBy string `gorm:"size:100"`
	CreatedAt  int64  `gorm:"not null"`
}

func (AttachmentModel) TableName() string {
	return "ticket_attachments"
}
