package usecases

import (
	"context"
	"fmt"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/db"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

type ApproveTicketCommand struct {
	TicketID  uint
	ActorType string
	ActorName string
	Direction string
	// WorkPriority nil means "assign the next free slot": one past the
	// highest priority currently held by an approved ticket.
	WorkPriority *int
}

type ApproveTicketResult struct {
	TicketID      uint
	Status        string
	WorkPriority  int
	StatusChanged bool
}

type ApproveTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewApproveTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *ApproveTicketUseCase {
	return &ApproveTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *ApproveTicketUseCase) Execute(ctx context.Context, cmd ApproveTicketCommand) (*ApproveTicketResult, error) {
	uc.logger.Infow("executing approve ticket use case",
		"ticket_id", cmd.TicketID, "direction", cmd.Direction, "actor", cmd.ActorName)

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

	oldStatus := t.Status()
	var statusChanged bool

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		workPriority := 0
		if cmd.WorkPriority != nil {
			workPriority = *cmd.WorkPriority
		} else {
			maxPriority, err := uc.ticketRepo.MaxWorkPriority(txCtx)
			if err != nil {
				return fmt.Errorf("failed to determine work priority: %w", err)
			}
			workPriority = maxPriority + 1
		}

		statusChanged = t.ApproveWork(cmd.Direction, workPriority, actor)

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		decisionMeta := map[string]interface{}{
			"decision":     "approved",
			"workPriority": workPriority,
		}
		if t.Direction() != "" {
			decisionMeta["direction"] = t.Direction()
		}
		decision, err := ticket.NewActivity(ticket.NewActivityParams{
			TicketID:     t.ID(),
			ActivityType: vo.ActivityDecision,
			Actor:        actor,
			Metadata:     decisionMeta,
			Visibility:   vo.VisibilityInternal,
		})
		if err != nil {
			return err
		}
		if err := uc.activityRepo.Save(txCtx, decision); err != nil {
			return fmt.Errorf("failed to record decision: %w", err)
		}

		if statusChanged {
			statusActivity, err := ticket.NewActivity(ticket.NewActivityParams{
				TicketID:     t.ID(),
				ActivityType: vo.ActivityStatusChange,
				Actor:        actor,
				Metadata: map[string]interface{}{
					"from": oldStatus.String(),
					"to":   t.Status().String(),
				},
				Visibility: vo.VisibilityUserVisible,
			})
			if err != nil {
				return err
			}
			if err := uc.activityRepo.Save(txCtx, statusActivity); err != nil {
				return fmt.Errorf("failed to record status change: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to approve ticket", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, txErr
	}

	workPriority := 0
	if t.WorkPriority() != nil {
		workPriority = *t.WorkPriority()
	}

	uc.logger.Infow("ticket approved", "ticket_id", t.ID(), "work_priority", workPriority)

	return &ApproveTicketResult{
		TicketID:      t.ID(),
		Status:        t.Status().String(),
		WorkPriority:  workPriority,
		StatusChanged: statusChanged,
	}, nil
}
