package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"shipdesk/internal/domain/ticket"
	"shipdesk/internal/infrastructure/persistence/mappers"
	"shipdesk/internal/infrastructure/persistence/models"
	"shipdesk/internal/shared/db"
)

// allowedTicketOrderByFields is the whitelist of ORDER BY columns to
// prevent SQL injection through sort parameters.
var allowedTicketOrderByFields = map[string]bool{
	"id":            true,
	"ticket_number": true,
	"title":         true,
	"status":        true,
	"priority":      true,
	"ticket_type":   true,
	"assignee":      true,
	"work_priority": true,
	"created_at":    true,
	"updated_at":    true,
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(gdb *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") so zero values (cleared assignee, false flags) are
	// written too, not skipped by the struct-update shortcut.
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Scopes(db.NotDeleted()).
		First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) FindByNumber(ctx context.Context, projectID uint, number int) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Scopes(db.NotDeleted()).
		Where("project_id = ? AND ticket_number = ?", projectID, number).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) FindByClientReference(ctx context.Context, projectID uint, clientReferenceID string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("project_id = ? AND client_reference_id = ?", projectID, clientReferenceID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket by client reference: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if !filter.IncludeDeleted {
		query = query.Scopes(db.NotDeleted())
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, s.String())
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.TicketType != nil {
		query = query.Where("ticket_type = ?", filter.TicketType.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.Assignee != nil {
		query = query.Where("assignee = ?", *filter.Assignee)
	}
	if filter.ReporterID != nil {
		query = query.Where("reporter_id = ?", *filter.ReporterID)
	}
	if filter.NeedsFollowup != nil {
		query = query.Where("needs_followup = ?", *filter.NeedsFollowup)
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedTicketOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var ticketModels []*models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(ticketModels)
	if err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

func (r *TicketRepository) NextTicketNumber(ctx context.Context, projectID uint) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var maxNumber int
	err := tx.
		Model(&models.TicketModel{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(ticket_number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, fmt.Errorf("failed to determine next ticket number: %w", err)
	}

	return maxNumber + 1, nil
}

func (r *TicketRepository) MaxWorkPriority(ctx context.Context) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var maxPriority int
	err := tx.
		Model(&models.TicketModel{}).
		Scopes(db.NotDeleted()).
		Where("status = ?", "approved").
		Select("COALESCE(MAX(work_priority), 0)").
		Scan(&maxPriority).Error
	if err != nil {
		return 0, fmt.Errorf("failed to determine max work priority: %w", err)
	}

	return maxPriority, nil
}

func (r *TicketRepository) TriageBatch(ctx context.Context, projectID *uint, size int) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.
		Model(&models.TicketModel{}).
		Scopes(db.NotDeleted()).
		Where("status = ?", "new").
		Order("created_at ASC").
		Limit(size)

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var ticketModels []*models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load triage batch: %w", err)
	}

	return r.mapper.ToDomainList(ticketModels)
}

func (r *TicketRepository) WorkQueue(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.
		Model(&models.TicketModel{}).
		Scopes(db.NotDeleted()).
		Where("status = ?", "approved").
		Order("work_priority ASC, created_at ASC")

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var ticketModels []*models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load work queue: %w", err)
	}

	return r.mapper.ToDomainList(ticketModels)
}

func (r *TicketRepository) ReworkItems(ctx context.Context, projectID *uint) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.
		Model(&models.TicketModel{}).
		Scopes(db.NotDeleted()).
		Where("testing_result IN ?", []string{"fail", "partial"}).
		Where("status IN ?", []string{"in_progress", "in_review"}).
		Order("updated_at DESC")

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var ticketModels []*models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load rework items: %w", err)
	}

	return r.mapper.ToDomainList(ticketModels)
}

func (r *TicketRepository) FollowUps(ctx context.Context, projectID *uint, dueBy *time.Time) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.
		Model(&models.TicketModel{}).
		Scopes(db.NotDeleted()).
		Where("needs_followup = ?", true).
		Order("followup_after ASC")

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if dueBy != nil {
		query = query.Where("followup_after IS NULL OR followup_after <= ?", dueBy.UnixMilli())
	}

	var ticketModels []*models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load follow-ups: %w", err)
	}

	return r.mapper.ToDomainList(ticketModels)
}
