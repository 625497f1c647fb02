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

type ChangeStatusCommand struct {
	TicketID  uint
	NewStatus string
	ActorType string
	ActorName string
}

type ChangeStatusResult struct {
	TicketID   uint
	OldStatus  string
	NewStatus  string
	Changed    bool
	Backward   bool
	ResolvedAt *time.Time
}

type ChangeStatusUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case",
		"ticket_id", cmd.TicketID, "new_status", cmd.NewStatus, "actor", cmd.ActorName)

	actor, err := vo.NewActor(cmd.ActorType, cmd.ActorName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	newStatus, err := vo.NewTicketStatus(cmd.NewStatus)
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

	oldStatus := t.Status()
	changed, backward := t.ChangeStatus(newStatus, actor)
	if !changed {
		return &ChangeStatusResult{
			TicketID:   t.ID(),
			OldStatus:  oldStatus.String(),
			NewStatus:  newStatus.String(),
			ResolvedAt: t.ResolvedAt(),
		}, nil
	}

	if backward {
		uc.logger.Warnw("backward status transition",
			"ticket_id", t.ID(), "from", oldStatus.String(), "to", newStatus.String(), "actor", cmd.ActorName)
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		activity, err := ticket.NewActivity(ticket.NewActivityParams{
			TicketID:     t.ID(),
			ActivityType: vo.ActivityStatusChange,
			Actor:        actor,
			Metadata: map[string]interface{}{
				"from": oldStatus.String(),
				"to":   newStatus.String(),
			},
			Visibility: vo.VisibilityUserVisible,
		})
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to change status", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("status changed",
		"ticket_id", t.ID(), "from", oldStatus.String(), "to", newStatus.String())

	return &ChangeStatusResult{
		TicketID:   t.ID(),
		OldStatus:  oldStatus.String(),
		NewStatus:  newStatus.String(),
		Changed:    true,
		Backward:   backward,
		ResolvedAt: t.ResolvedAt(),
	}, nil
}
