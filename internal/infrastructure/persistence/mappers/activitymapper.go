package mappers

import (
	"gorm.io/datatypes"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/infrastructure/persistence/models"
	"shipdesk/internal/shared/biztime"
)

// ActivityMapper converts between Activity domain entities and
// persistence models.
type ActivityMapper interface {
	ToModel(a *ticket.Activity) *models.ActivityModel
	ToDomain(model *models.ActivityModel) (*ticket.Activity, error)
	ToDomainList(models []*models.ActivityModel) ([]*ticket.Activity, error)
}

type ActivityMapperImpl struct{}

func NewActivityMapper() ActivityMapper {
	return &ActivityMapperImpl{}
}

func (m *ActivityMapperImpl) ToModel(a *ticket.Activity) *models.ActivityModel {
	model := &models.ActivityModel{
		ID:               a.ID(),
		TicketID:         a.TicketID(),
		ActivityType:     a.ActivityType().String(),
		AuthorType:       a.AuthorType().String(),
		AuthorName:       a.AuthorName(),
		Content:          a.Content(),
		Visibility:       a.Visibility().String(),
		RequiresApproval: a.RequiresApproval(),
		ApprovedBy:       a.ApprovedBy(),
		ApprovedAt:       biztime.ToMillisPtr(a.ApprovedAt()),
		CreatedAt:        a.CreatedAt().UnixMilli(),
	}

	if md := a.Metadata(); len(md) > 0 {
		model.Metadata = datatypes.JSONMap(md)
	}

	return model
}

func (m *ActivityMapperImpl) ToDomain(model *models.ActivityModel) (*ticket.Activity, error) {
	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		metadata = map[string]interface{}(model.Metadata)
	}

	return ticket.ReconstructActivity(ticket.ReconstructActivityParams{
		ID:               model.ID,
		TicketID:         model.TicketID,
		ActivityType:     vo.ActivityType(model.ActivityType),
		AuthorType:       vo.AuthorType(model.AuthorType),
		AuthorName:       model.AuthorName,
		Content:          model.Content,
		Metadata:         metadata,
		Visibility:       vo.Visibility(model.Visibility),
		RequiresApproval: model.RequiresApproval,
		ApprovedBy:       model.ApprovedBy,
		ApprovedAt:       biztime.FromMillisPtr(model.ApprovedAt),
		CreatedAt:        biztime.FromMillis(model.CreatedAt),
	})
}

func (m *ActivityMapperImpl) ToDomainList(modelList []*models.ActivityModel) ([]*ticket.Activity, error) {
	activities := make([]*ticket.Activity, 0, len(modelList))
	for _, model := range modelList {
		a, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, nil
}
