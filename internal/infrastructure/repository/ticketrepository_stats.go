package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shipdesk/internal/infrastructure/persistence/models"
	"shipdesk/internal/shared/db"
)

type groupCountRow struct {
	Bucket string
	Count  int64
}

func (r *TicketRepository) groupCount(ctx context.Context, projectID *uint, column string) (map[string]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.
		Model(&models.TicketModel{}).
		Scopes(db.NotDeleted()).
		Select(column + " AS bucket, COUNT(*) AS count").
		Group(column)

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var rows []groupCountRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to group count by %s: %w", column, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Bucket] = row.Count
	}
	return counts, nil
}

func (r *TicketRepository) GroupCountByStatus(ctx context.Context, projectID *uint) (map[string]int64, error) {
	return r.groupCount(ctx, projectID, "status")
}

func (r *TicketRepository) GroupCountByType(ctx context.Context, projectID *uint) (map[string]int64, error) {
	return r.groupCount(ctx, projectID, "ticket_type")
}

func (r *TicketRepository) GroupCountByPriority(ctx context.Context, projectID *uint) (map[string]int64, error) {
	return r.groupCount(ctx, projectID, "priority")
}

func (r *TicketRepository) ReworkCount(ctx context.Context, projectID *uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.
		Model(&models.TicketModel{}).
		Scopes(db.NotDeleted()).
		Where("testing_result IN ?", []string{"fail", "partial"}).
		Where("status IN ?", []string{"in_progress", "in_review"})

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rework items: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) FollowUpsDueCount(ctx context.Context, projectID *uint, now time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.
		Model(&models.TicketModel{}).
		Scopes(db.NotDeleted()).
		Where("needs_followup = ?", true).
		Where("followup_after IS NULL OR followup_after <= ?", now.UnixMilli())

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count due follow-ups: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) AvgResolutionHours(ctx context.Context, projectID *uint) (*float64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.
		Model(&models.TicketModel{}).
		Scopes(db.NotDeleted()).
		Where("resolved_at IS NOT NULL").
		Select("AVG(resolved_at - created_at)")

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var avgMillis *float64
	if err := query.Scan(&avgMillis).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to compute average resolution time: %w", err)
	}
	if avgMillis == nil {
		return nil, nil
	}

	hours := *avgMillis / float64(time.Hour.Milliseconds())
	return &hours, nil
}
