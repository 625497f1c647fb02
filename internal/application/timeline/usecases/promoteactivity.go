package usecases

import (
	"context"
	"time"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
)

// PromoteActivityCommand flips an internal entry to user_visible and
// stamps it approved. Promoting an already user-visible entry is a
// silent no-op.
type PromoteActivityCommand struct {
	ActivityID uint
	AdminName  string
}

type PromoteActivityResult struct {
	ActivityID uint
	Promoted   bool
	ApprovedAt *time.Time
}

type PromoteActivityUseCase struct {
	activityRepo ticket.ActivityRepository
	logger       logger.Interface
}

func NewPromoteActivityUseCase(activityRepo ticket.ActivityRepository, logger logger.Interface) *PromoteActivityUseCase {
	return &PromoteActivityUseCase{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (uc *PromoteActivityUseCase) Execute(ctx context.Context, cmd PromoteActivityCommand) (*PromoteActivityResult, error) {
	uc.logger.Infow("executing promote activity use case",
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

	if !activity.PromoteToUserVisible(admin) {
		uc.logger.Infow("activity promotion was a no-op", "activity_id", cmd.ActivityID)
		return &PromoteActivityResult{
			ActivityID: activity.ID(),
			Promoted:   false,
			ApprovedAt: activity.ApprovedAt(),
		}, nil
	}

	if err := uc.activityRepo.UpdateApproval(ctx, activity); err != nil {
		uc.logger.Errorw("failed to persist promotion", "activity_id", cmd.ActivityID, "error", err)
		return nil, err
	}

	uc.logger.Infow("activity promoted", "activity_id", activity.ID(), "admin", cmd.AdminName)

	return &PromoteActivityResult{
		ActivityID: activity.ID(),
		Promoted:   true,
		ApprovedAt: activity.ApprovedAt(),
	}, nil
}
