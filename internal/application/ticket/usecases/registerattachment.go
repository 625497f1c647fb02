package usecases

import (
	"context"
	"fmt"
	"time"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/db"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

// RegisterAttachmentCommand records attachment metadata against a
// ticket. The payload itself lives in the external blob store; only
// the descriptor is kept here.
type RegisterAttachmentCommand struct {
	TicketID  uint
	Filename  string
	MimeType  string
	SizeBytes int64
	ActorType string
	ActorName string
}

type RegisterAttachmentResult struct {
	AttachmentID uint
	CreatedAt    time.Time
}

type RegisterAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	activityRepo   ticket.ActivityRepository
	txMgr          *db.TransactionManager
	logger         logger.Interface
}

func NewRegisterAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	activityRepo ticket.ActivityRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *RegisterAttachmentUseCase {
	return &RegisterAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		activityRepo:   activityRepo,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *RegisterAttachmentUseCase) Execute(ctx context.Context, cmd RegisterAttachmentCommand) (*RegisterAttachmentResult, error) {
	uc.logger.Infow("executing register attachment use case",
		"ticket_id", cmd.TicketID, "filename", cmd.Filename)

	actor, err := vo.NewActor(cmd.ActorType, cmd.ActorName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	attachment, err := ticket.NewAttachment(t.ID(), cmd.Filename, cmd.MimeType, cmd.SizeBytes, actor.Name)
	if err != nil {
		uc.logger.Errorw("failed to create attachment entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.attachmentRepo.Save(txCtx, attachment); err != nil {
			return fmt.Errorf("failed to save attachment: %w", err)
		}

		content := fmt.Sprintf("Attachment added: %s", cmd.Filename)
		activity, err := ticket.NewActivity(ticket.NewActivityParams{
			TicketID:     t.ID(),
			ActivityType: vo.ActivitySystem,
			Actor:        actor,
			Content:      &content,
			Metadata: map[string]interface{}{
				"filename":  cmd.Filename,
				"mimeType":  cmd.MimeType,
				"sizeBytes": cmd.SizeBytes,
			},
			Visibility: vo.VisibilityUserVisible,
		})
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to register attachment", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("attachment registered", "ticket_id", t.ID(), "attachment_id", attachment.ID())

	return &RegisterAttachmentResult{
		AttachmentID: attachment.ID(),
		CreatedAt:    attachment.CreatedAt(),
	}, nil
}
