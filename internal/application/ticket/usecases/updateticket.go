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

type UpdateTicketCommand struct {
	TicketID  uint
	ActorType string
	ActorName string

	Title       *string
	Description *string
	TicketType  *string
	Priority    *string
	Tags        *[]string
	Route       *string
	Environment *string
	Assignee    *string
	Direction   *string

	AIAssessment        *string
	AISolutionProposal  *string
	AISuggestedPriority *string
	AIComplexity        *string
	AIEstimatedFiles    *[]string
	AutonomyScore       *int

	WorkPriority  *int
	TestingResult *string
	NeedsFollowup *bool
	FollowupNotes *string
	FollowupAfter *time.Time
	Resolution    *string

	ReporterName  *string
	ReporterEmail *string
}

type UpdateTicketResult struct {
	TicketID      uint
	ChangedFields []string
	UpdatedAt     time.Time
}

type UpdateTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "actor", cmd.ActorName)

	actor, err := vo.NewActor(cmd.ActorType, cmd.ActorName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	changes, err := uc.buildChanges(cmd)
	if err != nil {
		uc.logger.Errorw("invalid update ticket command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	diffs := t.ApplyUpdate(changes, actor)
	if len(diffs) == 0 {
		// Nothing actually changed; leave the row and the timeline
		// alone so retried updates stay silent.
		uc.logger.Infow("update produced no changes", "ticket_id", cmd.TicketID)
		return &UpdateTicketResult{
			TicketID:  t.ID(),
			UpdatedAt: t.UpdatedAt(),
		}, nil
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		for _, diff := range diffs {
			activity, err := ticket.NewActivity(ticket.NewActivityParams{
				TicketID:     t.ID(),
				ActivityType: vo.ActivityFieldChange,
				Actor:        actor,
				Metadata: map[string]interface{}{
					"field": diff.Field,
					"from":  diff.From,
					"to":    diff.To,
				},
				Visibility: vo.VisibilityInternal,
			})
			if err != nil {
				return err
			}
			if err := uc.activityRepo.Save(txCtx, activity); err != nil {
				return fmt.Errorf("failed to record field change: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, txErr
	}

	fields := make([]string, 0, len(diffs))
	for _, diff := range diffs {
		fields = append(fields, diff.Field)
	}

	uc.logger.Infow("ticket updated", "ticket_id", t.ID(), "changed_fields", fields)

	return &UpdateTicketResult{
		TicketID:      t.ID(),
		ChangedFields: fields,
		UpdatedAt:     t.UpdatedAt(),
	}, nil
}

func (uc *UpdateTicketUseCase) buildChanges(cmd UpdateTicketCommand) (ticket.UpdateChanges, error) {
	changes := ticket.UpdateChanges{
		Title:              cmd.Title,
		Description:        cmd.Description,
		Tags:               cmd.Tags,
		Route:              cmd.Route,
		Environment:        cmd.Environment,
		Assignee:           cmd.Assignee,
		Direction:          cmd.Direction,
		AIAssessment:       cmd.AIAssessment,
		AISolutionProposal: cmd.AISolutionProposal,
		AIComplexity:       cmd.AIComplexity,
		AIEstimatedFiles:   cmd.AIEstimatedFiles,
		AutonomyScore:      cmd.AutonomyScore,
		WorkPriority:       cmd.WorkPriority,
		NeedsFollowup:      cmd.NeedsFollowup,
		FollowupNotes:      cmd.FollowupNotes,
		FollowupAfter:      cmd.FollowupAfter,
		Resolution:         cmd.Resolution,
		ReporterName:       cmd.ReporterName,
		ReporterEmail:      cmd.ReporterEmail,
	}

	if cmd.Title != nil && *cmd.Title == "" {
		return ticket.UpdateChanges{}, errors.NewValidationError("title cannot be empty")
	}

	if cmd.TicketType != nil {
		tt, err := vo.NewTicketType(*cmd.TicketType)
		if err != nil {
			return ticket.UpdateChanges{}, errors.NewValidationError(err.Error())
		}
		changes.TicketType = &tt
	}
	if cmd.Priority != nil {
		p, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return ticket.UpdateChanges{}, errors.NewValidationError(err.Error())
		}
		changes.Priority = &p
	}
	if cmd.AISuggestedPriority != nil {
		p, err := vo.NewPriority(*cmd.AISuggestedPriority)
		if err != nil {
			return ticket.UpdateChanges{}, errors.NewValidationError(err.Error())
		}
		changes.AISuggestedPriority = &p
	}
	if cmd.TestingResult != nil {
		tr, err := vo.NewTestingResult(*cmd.TestingResult)
		if err != nil {
			return ticket.UpdateChanges{}, errors.NewValidationError(err.Error())
		}
		changes.TestingResult = &tr
	}
	if cmd.AutonomyScore != nil && (*cmd.AutonomyScore < 1 || *cmd.AutonomyScore > 5) {
		return ticket.UpdateChanges{}, errors.NewValidationError("autonomy score must be between 1 and 5")
	}

	return changes, nil
}
