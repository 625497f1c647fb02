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

// ResolveTicketCommand records an implementation hand-off: the worker
// submits its notes and the ticket moves into review with testing
// pending.
type ResolveTicketCommand struct {
	TicketID            uint
	ActorType           string
	ActorName           string
	Notes               string
	PullRequestURL      string
	TestingInstructions string
}

type ResolveTicketResult struct {
	TicketID      uint
	Status        string
	TestingResult string
	StatusChanged bool
}

type ResolveTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewResolveTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *ResolveTicketUseCase {
	return &ResolveTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *ResolveTicketUseCase) Execute(ctx context.Context, cmd ResolveTicketCommand) (*ResolveTicketResult, error) {
	uc.logger.Infow("executing resolve ticket use case", "ticket_id", cmd.TicketID, "actor", cmd.ActorName)

	actor, err := vo.NewActor(cmd.ActorType, cmd.ActorName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Notes == "" {
		return nil, errors.NewValidationError("resolution notes are required")
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
	statusChanged := t.SubmitResolution(actor)

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		md := map[string]interface{}{
			"testingResult": t.TestingResult().String(),
		}
		if cmd.PullRequestURL != "" {
			md["pullRequestUrl"] = cmd.PullRequestURL
		}
		if cmd.TestingInstructions != "" {
			md["testingInstructions"] = cmd.TestingInstructions
		}
		notes := cmd.Notes
		testResult, err := ticket.NewActivity(ticket.NewActivityParams{
			TicketID:     t.ID(),
			ActivityType: vo.ActivityTestResult,
			Actor:        actor,
			Content:      &notes,
			Metadata:     md,
			Visibility:   vo.VisibilityInternal,
		})
		if err != nil {
			return err
		}
		if err := uc.activityRepo.Save(txCtx, testResult); err != nil {
			return fmt.Errorf("failed to record resolution notes: %w", err)
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
		uc.logger.Errorw("failed to resolve ticket", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("ticket moved into review", "ticket_id", t.ID())

	return &ResolveTicketResult{
		TicketID:      t.ID(),
		Status:        t.Status().String(),
		TestingResult: t.TestingResult().String(),
		StatusChanged: statusChanged,
	}, nil
}
