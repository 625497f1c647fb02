package usecases

import (
	"context"
	"fmt"
	"time"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/constants"
	"shipdesk/internal/shared/db"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	ProjectID         uint
	Source            string
	TicketType        string
	Priority          string
	Tags              []string
	Title             string
	Description       string
	Route             string
	Environment       string
	BrowserInfo       string
	OSInfo            string
	ReporterID        string
	ReporterName      string
	ReporterEmail     string
	ParentID          *uint
	ClientReferenceID *string
}

type CreateTicketResult struct {
	TicketID     uint
	TicketNumber int
	Reference    string
	Status       string
	// Created is false when the client reference matched an existing
	// ticket and that ticket was returned instead.
	Created   bool
	CreatedAt time.Time
}

type CreateTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case",
		"project_id", cmd.ProjectID, "title", cmd.Title, "source", cmd.Source)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create ticket command", "error", err)
		return nil, err
	}

	// The client reference makes creation idempotent: a retry with the
	// same reference returns the ticket the first attempt created.
	if cmd.ClientReferenceID != nil {
		existing, err := uc.ticketRepo.FindByClientReference(ctx, cmd.ProjectID, *cmd.ClientReferenceID)
		if err != nil {
			uc.logger.Errorw("failed to look up client reference", "error", err)
			return nil, err
		}
		if existing != nil {
			uc.logger.Infow("client reference matched existing ticket",
				"ticket_id", existing.ID(), "client_reference_id", *cmd.ClientReferenceID)
			return existingResult(existing), nil
		}
	}

	newTicket, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID:         cmd.ProjectID,
		Source:            cmd.Source,
		TicketType:        vo.TicketType(cmd.TicketType),
		Priority:          vo.Priority(cmd.Priority),
		Tags:              cmd.Tags,
		Title:             cmd.Title,
		Description:       cmd.Description,
		Route:             cmd.Route,
		Environment:       cmd.Environment,
		BrowserInfo:       cmd.BrowserInfo,
		OSInfo:            cmd.OSInfo,
		ReporterID:        cmd.ReporterID,
		ReporterName:      cmd.ReporterName,
		ReporterEmail:     cmd.ReporterEmail,
		ParentID:          cmd.ParentID,
		ClientReferenceID: cmd.ClientReferenceID,
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		number, err := uc.ticketRepo.NextTicketNumber(txCtx, cmd.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to allocate ticket number: %w", err)
		}
		if err := newTicket.SetTicketNumber(number); err != nil {
			return err
		}

		if err := uc.ticketRepo.Save(txCtx, newTicket); err != nil {
			return err
		}

		content := fmt.Sprintf("Ticket created via %s", sourceLabel(cmd.Source))
		activity, err := ticket.NewActivity(ticket.NewActivityParams{
			TicketID:     newTicket.ID(),
			ActivityType: vo.ActivitySystem,
			Actor:        vo.SystemActor(),
			Content:      &content,
			Visibility:   vo.VisibilityUserVisible,
		})
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if txErr != nil {
		// A concurrent create with the same client reference can win
		// the race past the pre-check; the unique index catches it and
		// we hand back the winner's ticket.
		if cmd.ClientReferenceID != nil && errors.IsDuplicateError(txErr) {
			existing, err := uc.ticketRepo.FindByClientReference(ctx, cmd.ProjectID, *cmd.ClientReferenceID)
			if err == nil && existing != nil {
				uc.logger.Infow("duplicate client reference resolved to existing ticket",
					"ticket_id", existing.ID(), "client_reference_id", *cmd.ClientReferenceID)
				return existingResult(existing), nil
			}
		}
		uc.logger.Errorw("failed to create ticket", "error", txErr)
		return nil, txErr
	}

	uc.logger.Infow("ticket created successfully",
		"ticket_id", newTicket.ID(), "reference", newTicket.Reference())

	return &CreateTicketResult{
		TicketID:     newTicket.ID(),
		TicketNumber: newTicket.TicketNumber(),
		Reference:    newTicket.Reference(),
		Status:       newTicket.Status().String(),
		Created:      true,
		CreatedAt:    newTicket.CreatedAt(),
	}, nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if cmd.ProjectID == 0 {
		return errors.NewValidationError("project ID is required")
	}
	if len(cmd.Title) == 0 {
		return errors.NewValidationError("title is required")
	}
	if len(cmd.Title) > constants.MaxTitleLength {
		return errors.NewValidationError(fmt.Sprintf("title exceeds maximum length of %d characters", constants.MaxTitleLength))
	}
	if len(cmd.Description) > constants.MaxContentLength {
		return errors.NewValidationError(fmt.Sprintf("description exceeds maximum length of %d characters", constants.MaxContentLength))
	}
	if len(cmd.ReporterID) == 0 {
		return errors.NewValidationError("reporter ID is required")
	}
	if !vo.TicketType(cmd.TicketType).IsValid() {
		return errors.NewValidationError("invalid ticket type")
	}
	if cmd.Priority != "" && !vo.Priority(cmd.Priority).IsValid() {
		return errors.NewValidationError("invalid priority")
	}
	if cmd.ClientReferenceID != nil && *cmd.ClientReferenceID == "" {
		return errors.NewValidationError("client reference ID cannot be empty when provided")
	}
	return nil
}

func existingResult(t *ticket.Ticket) *CreateTicketResult {
	return &CreateTicketResult{
		TicketID:     t.ID(),
		TicketNumber: t.TicketNumber(),
		Reference:    t.Reference(),
		Status:       t.Status().String(),
		Created:      false,
		CreatedAt:    t.CreatedAt(),
	}
}

func sourceLabel(source string) string {
	if source == "" {
		return "api"
	}
	return source
}
