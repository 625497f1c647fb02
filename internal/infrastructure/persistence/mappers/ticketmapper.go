package mappers

import (
	"encoding/json"
	"fmt"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/infrastructure/persistence/models"
	"shipdesk/internal/shared/biztime"
)

// TicketMapper handles the conversion between Ticket domain entities
// and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToDomainList(models []*models.TicketModel) ([]*ticket.Ticket, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:                  t.ID(),
		ProjectID:           t.ProjectID(),
		TicketNumber:        t.TicketNumber(),
		Source:              t.Source(),
		TicketType:          t.TicketType().String(),
		Priority:            t.Priority().String(),
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
		ResolvedAt:          biztime.ToMillisPtr(t.ResolvedAt()),
		AIAssessment:        t.AIAssessment(),
		AISolutionProposal:  t.AISolutionProposal(),
		AISuggestedPriority: t.AISuggestedPriority().String(),
		AIComplexity:        t.AIComplexity(),
		AutonomyScore:       t.AutonomyScore(),
		TestingResult:       t.TestingResult().String(),
		NeedsFollowup:       t.NeedsFollowup(),
		FollowupNotes:       t.FollowupNotes(),
		FollowupAfter:       biztime.ToMillisPtr(t.FollowupAfter()),
		ParentID:            t.ParentID(),
		ClientReferenceID:   t.ClientReferenceID(),
		CreatedAt:           t.CreatedAt().UnixMilli(),
		UpdatedAt:           t.UpdatedAt().UnixMilli(),
		UpdatedBy:           t.UpdatedBy(),
		DeletedAt:           biztime.ToMillisPtr(t.DeletedAt()),
	}

	if len(t.Tags()) > 0 {
		tagsJSON, _ := json.Marshal(t.Tags())
		model.Tags = string(tagsJSON)
	}
	if len(t.AIEstimatedFiles()) > 0 {
		filesJSON, _ := json.Marshal(t.AIEstimatedFiles())
		model.AIEstimatedFiles = string(filesJSON)
	}

	return model
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	var tags []string
	if model.Tags != "" {
		if err := json.Unmarshal([]byte(model.Tags), &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ticket tags (id=%d): %w", model.ID, err)
		}
	}

	var estimatedFiles []string
	if model.AIEstimatedFiles != "" {
		if err := json.Unmarshal([]byte(model.AIEstimatedFiles), &estimatedFiles); err != nil {
			return nil, fmt.Errorf("failed to unmarshal estimated files (id=%d): %w", model.ID, err)
		}
	}

	return ticket.ReconstructTicket(ticket.ReconstructTicketParams{
		ID:                  model.ID,
		ProjectID:           model.ProjectID,
		TicketNumber:        model.TicketNumber,
		Source:              model.Source,
		TicketType:          vo.TicketType(model.TicketType),
		Priority:            vo.Priority(model.Priority),
		Tags:                tags,
		Title:               model.Title,
		Description:         model.Description,
		Route:               model.Route,
		Environment:         model.Environment,
		BrowserInfo:         model.BrowserInfo,
		OSInfo:              model.OSInfo,
		ReporterID:          model.ReporterID,
		ReporterName:        model.ReporterName,
		ReporterEmail:       model.ReporterEmail,
		Status:              vo.TicketStatus(model.Status),
		Assignee:            model.Assignee,
		Direction:           model.Direction,
		WorkPriority:        model.WorkPriority,
		Resolution:          model.Resolution,
		ResolvedAt:          biztime.FromMillisPtr(model.ResolvedAt),
		AIAssessment:        model.AIAssessment,
		AISolutionProposal:  model.AISolutionProposal,
		AISuggestedPriority: vo.Priority(model.AISuggestedPriority),
		AIComplexity:        model.AIComplexity,
		AIEstimatedFiles:    estimatedFiles,
		AutonomyScore:       model.AutonomyScore,
		TestingResult:       vo.TestingResult(model.TestingResult),
		NeedsFollowup:       model.NeedsFollowup,
		FollowupNotes:       model.FollowupNotes,
		FollowupAfter:       biztime.FromMillisPtr(model.FollowupAfter),
		ParentID:            model.ParentID,
		ClientReferenceID:   model.ClientReferenceID,
		CreatedAt:           biztime.FromMillis(model.CreatedAt),
		UpdatedAt:           biztime.FromMillis(model.UpdatedAt),
		UpdatedBy:           model.UpdatedBy,
		DeletedAt:           biztime.FromMillisPtr(model.DeletedAt),
	})
}

func (m *TicketMapperImpl) ToDomainList(modelList []*models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, 0, len(modelList))
	for _, model := range modelList {
		t, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
