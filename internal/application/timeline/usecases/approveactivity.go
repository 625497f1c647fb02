package usecases

import (
	"context"
	"time"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

// ApproveActivityCommand releases a held draft to the reporter.
// Approving an entry that does not require approval, or is already
// approved, is a silent no-op.
type ApproveActivityCommand struct {
	ActivityID uint
	AdminName  string
}

type ApproveActivityResult struct {
	ActivityID uint
	Approved   bool
	ApprovedAt *time.Time
}

type ApproveActivityUseCase struct {
	activityRepo ticket.ActivityRepository
	logger       logger.Interface
}

func NewApproveActivityUseCase(activityRepo ticket.ActivityRepository, logger logger.Interface) *ApproveActivityUseCase {
	return &ApproveActivityUseCase{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (uc *ApproveActivityUseCase) Execute(ctx context.Context, cmd ApproveActivityCommand) (*ApproveActivityResult, error) {
	uc.logger.Infow("executing approve activity use case",
		"activity_id", cmd.ActivityID, "admin", cmd.AdminName)

	admin, err := vo.NewActor(vo.AuthorAdmin.String(), cmd.AdminName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	activity, err := uc.activityRepo.FindByID(ctx, cmd.ActivityID)
	if err != nil {
		uc.logger.Errorw("failed to load activity", "activity_id", cmd.ActivityID, "error", err)
		return nil, err
	}
	if activity == nil {
		return nil, errors.NewNotFoundError("activity not found")
	}

	if !activity.Approve(admin) {
		uc.logger.Infow("activity approval was a no-op", "activity_id", cmd.ActivityID)
		return &ApproveActivityResult{
			ActivityID: activity.ID(),
			Approved:   false,
			ApprovedAt: activity.ApprovedAt(),
		}, nil
	}

	if err := uc.activityRepo.UpdateApproval(ctx, activity); err != nil {
		uc.logger.Errorw("failed to persist approval", "activity_id", cmd.ActivityID, "error", err)
		return nil, err
	}

	uc.logger.Infow("activity approved", "activity_id", activity.ID(), "admin", cmd.AdminName)

	return &ApproveActivityResult{
		ActivityID: activity.ID(),
		Approved:   true,
		ApprovedAt: activity.ApprovedAt(),
	}, nil
}
