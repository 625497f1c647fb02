package usecases

import (
	"context"
	"fmt"
	"strings"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/db"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

type TriageTicketCommand struct {
	TicketID  uint
	ActorType string
	ActorName string

	Assessment        string
	SolutionProposal  string
	SuggestedPriority string
	Complexity        string
	EstimatedFiles    []string
	AutonomyScore     *int
}

type TriageTicketResult struct {
	TicketID      uint
	Status        string
	Priority      string
	StatusChanged bool
}

type TriageTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewTriageTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *TriageTicketUseCase {
	return &TriageTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *TriageTicketUseCase) Execute(ctx context.Context, cmd TriageTicketCommand) (*TriageTicketResult, error) {
	uc.logger.Infow("executing triage ticket use case", "ticket_id", cmd.TicketID, "actor", cmd.ActorName)

	actor, err := vo.NewActor(cmd.ActorType, cmd.ActorName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	data := ticket.TriageData{
		Assessment:        cmd.Assessment,
		SolutionProposal:  cmd.SolutionProposal,
		SuggestedPriority: vo.Priority(cmd.SuggestedPriority),
		Complexity:        cmd.Complexity,
		EstimatedFiles:    cmd.EstimatedFiles,
		AutonomyScore:     cmd.AutonomyScore,
	}
	if err := data.Validate(); err != nil {
		uc.logger.Errorw("invalid triage data", "error", err)
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
	statusChanged := t.ApplyTriage(data, actor)

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		content := triageSummary(data)
		assessment, err := ticket.NewActivity(ticket.NewActivityParams{
			TicketID:     t.ID(),
			ActivityType: vo.ActivityComment,
			Actor:        actor,
			Content:      &content,
			Metadata:     triageMetadata(data),
			Visibility:   vo.VisibilityInternal,
		})
		if err != nil {
			return err
		}
		if err := uc.activityRepo.Save(txCtx, assessment); err != nil {
			return fmt.Errorf("failed to record triage assessment: %w", err)
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
		uc.logger.Errorw("failed to triage ticket", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("ticket triaged", "ticket_id", t.ID(), "priority", t.Priority().String())

	return &TriageTicketResult{
		TicketID:      t.ID(),
		Status:        t.Status().String(),
		Priority:      t.Priority().String(),
		StatusChanged: statusChanged,
	}, nil
}

func triageSummary(data ticket.TriageData) string {
	var b strings.Builder
	b.WriteString("Triage assessment\n\n")
	if data.Assessment != "" {
		b.WriteString(data.Assessment)
		b.WriteString("\n")
	}
	if data.SolutionProposal != "" {
		b.WriteString("\nProposed solution:\n")
		b.WriteString(data.SolutionProposal)
		b.WriteString("\n")
	}
	if data.SuggestedPriority.IsSet() {
		fmt.Fprintf(&b, "\nSuggested priority: %s\n", data.SuggestedPriority)
	}
	if data.Complexity != "" {
		fmt.Fprintf(&b, "Complexity: %s\n", data.Complexity)
	}
	if data.AutonomyScore != nil {
		fmt.Fprintf(&b, "Autonomy score: %d/5\n", *data.AutonomyScore)
	}
	return strings.TrimRight(b.String(), "\n")
}

func triageMetadata(data ticket.TriageData) map[string]interface{} {
	md := map[string]interface{}{
		"suggestedPriority": data.SuggestedPriority.String(),
		"complexity":        data.Complexity,
	}
	if len(data.EstimatedFiles) > 0 {
		md["estimatedFiles"] = data.EstimatedFiles
	}
	if data.AutonomyScore != nil {
		md["autonomyScore"] = *data.AutonomyScore
	}
	return md
}
