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

type RejectTicketCommand struct {
	TicketID   uint
	ActorType  string
	ActorName  string
	Resolution string
	Reason     string
}

type RejectTicketResult struct {
	TicketID      uint
	Status        string
	Resolution    string
	StatusChanged bool
}

type RejectTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewRejectTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *RejectTicketUseCase {
	return &RejectTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *RejectTicketUseCase) Execute(ctx context.Context, cmd RejectTicketCommand) (*RejectTicketResult, error) {
	uc.logger.Infow("executing reject ticket use case",
		"ticket_id", cmd.TicketID, "resolution", cmd.Resolution, "actor", cmd.ActorName)

	actor, err := vo.NewActor(cmd.ActorType, cmd.ActorName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Resolution == "" {
		return nil, errors.NewValidationError("resolution is required")
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
	statusChanged := t.RejectWork(cmd.Resolution, actor)

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		decisionMeta := map[string]interface{}{
			"decision":   "rejected",
			"resolution": cmd.Resolution,
		}
		if cmd.Reason != "" {
			decisionMeta["reason"] = cmd.Reason
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

		content := resolutionMessage(cmd.Resolution, cmd.Reason)
		resolution, err := ticket.NewActivity(ticket.NewActivityParams{
			TicketID:     t.ID(),
			ActivityType: vo.ActivityResolution,
			Actor:        actor,
			Content:      &content,
			Metadata: map[string]interface{}{
				"resolution": cmd.Resolution,
			},
			Visibility: vo.VisibilityUserVisible,
		})
		if err != nil {
			return err
		}
		if err := uc.activityRepo.Save(txCtx, resolution); err != nil {
			return fmt.Errorf("failed to record resolution: %w", err)
		}

		// The status entry is written even when the ticket was already
		// closed, so a rejection always reads as three entries.
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
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to reject ticket", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("ticket rejected", "ticket_id", t.ID(), "resolution", cmd.Resolution)

	return &RejectTicketResult{
		TicketID:      t.ID(),
		Status:        t.Status().String(),
		Resolution:    cmd.Resolution,
		StatusChanged: statusChanged,
	}, nil
}

func resolutionMessage(resolution, reason string) string {
	if reason != "" {
		return fmt.Sprintf("This ticket was closed as %s: %s", resolution, reason)
	}
	return fmt.Sprintf("This ticket was closed as %s", resolution)
}
