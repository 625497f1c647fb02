package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shipdesk/internal/domain/ticket"
	"shipdesk/internal/infrastructure/persistence/mappers"
	"shipdesk/internal/infrastructure/persistence/models"
	"shipdesk/internal/shared/biztime"
	"shipdesk/internal/shared/db"
)

type ActivityRepository struct {
	db     *gorm.DB
	mapper mappers.ActivityMapper
}

func NewActivityRepository(gdb *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		db:     gdb,
		mapper: mappers.NewActivityMapper(),
	}
}

func (r *ActivityRepository) Save(ctx context.Context, a *ticket.Activity) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *ActivityRepository) FindByID(ctx context.Context, id uint) (*ticket.Activity, error) {
	var model models.ActivityModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find activity by id: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// UpdateApproval writes only the approval stamp and visibility; the
// rest of an activity row never changes after insert.
func (r *ActivityRepository) UpdateApproval(ctx context.Context, a *ticket.Activity) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ActivityModel{}).
		Where("id = ?", a.ID()).
		Updates(map[string]interface{}{
			"visibility":  a.Visibility().String(),
			"approved_by": a.ApprovedBy(),
			"approved_at": biztime.ToMillisPtr(a.ApprovedAt()),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update activity approval: %w", result.Error)
	}

	return nil
}

func (r *ActivityRepository) Timeline(ctx context.Context, ticketID uint, filter ticket.TimelineFilter) ([]*ticket.Activity, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.
		Model(&models.ActivityModel{}).
		Where("ticket_id = ?", ticketID)

	if filter.ReporterVisible {
		// End-user view: user-visible entries only, and anything that
		// needed approval must actually have been approved.
		query = query.
			Where("visibility = ?", "user_visible").
			Where("requires_approval = ? OR approved_at IS NOT NULL", false)
	} else if filter.Visibility != nil {
		query = query.Where("visibility = ?", filter.Visibility.String())
	}

	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, t.String())
		}
		query = query.Where("activity_type IN ?", types)
	}

	if filter.Since != nil {
		query = query.Where("created_at > ?", filter.Since.UnixMilli())
	}

	query = query.Order("created_at ASC, id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var modelList []*models.ActivityModel
	if err := query.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to load activity timeline: %w", err)
	}

	return r.mapper.ToDomainList(modelList)
}
