package mappers

import (
	"shipdesk/internal/domain/ticket"
	"shipdesk/internal/infrastructure/persistence/models"
	"shipdesk/internal/shared/biztime"
)

type AttachmentMapper interface {
	ToModel(a *ticket.Attachment) *models.AttachmentModel
	ToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
	ToDomainList(models []*models.AttachmentModel) ([]*ticket.Attachment, error)
}

type AttachmentMapperImpl struct{}

func NewAttachmentMapper() AttachmentMapper {
	return &AttachmentMapperImpl{}
}

func (m *AttachmentMapperImpl) ToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:         a.ID(),
		TicketID:   a.TicketID(),
		Filename:   a.Filename(),
		MimeType:   a.MimeType(),
		SizeBytes:  a.SizeBytes(),
		UploadedBy: a.UploadedBy(),
		CreatedAt:  a.CreatedAt().UnixMilli(),
	}
}

func (m *AttachmentMapperImpl) ToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.Filename,
		model.MimeType,
		model.SizeBytes,
		model.UploadedBy,
		biztime.FromMillis(model.CreatedAt),
	)
}

func (m *AttachmentMapperImpl) ToDomainList(modelList []*models.AttachmentModel) ([]*ticket.Attachment, error) {
	attachments := make([]*ticket.Attachment, 0, len(modelList))
	for _, model := range modelList {
		a, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, nil
}
