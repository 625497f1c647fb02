package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shipdesk/internal/domain/ticket"
	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/infrastructure/persistence/models"
	"shipdesk/internal/shared/biztime"
	"shipdesk/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.TicketModel{}, &models.ActivityModel{}, &models.AttachmentModel{})
	require.NoError(t, err)

	return db
}

func newTestTicket(t *testing.T, projectID uint, title string) *ticket.Ticket {
	tk, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID:   projectID,
		Source:      "api",
		TicketType:  vo.TypeBug,
		Priority:    vo.PriorityMedium,
		Title:       title,
		Description: "Something broke during deploy",
		ReporterID:  "usr_100",
	})
	require.NoError(t, err)
	return tk
}

func saveTicketWithNumber(t *testing.T, repo *TicketRepository, tk *ticket.Ticket) *ticket.Ticket {
	ctx := context.Background()
	number, err := repo.NextTicketNumber(ctx, tk.ProjectID())
	require.NoError(t, err)
	require.NoError(t, tk.SetTicketNumber(number))
	require.NoError(t, repo.Save(ctx, tk))
	return tk
}

func adminActor(t *testing.T) vo.Actor {
	actor, err := vo.NewActor("admin", "alice")
	require.NoError(t, err)
	return actor
}

func TestTicketRepository_NextTicketNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	number, err := repo.NextTicketNumber(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, number)

	for i := 1; i <= 3; i++ {
		tk := newTestTicket(t, 1, fmt.Sprintf("Ticket %d", i))
		saveTicketWithNumber(t, repo, tk)
		assert.Equal(t, i, tk.TicketNumber())
	}

	// Numbering is per project.
	number, err = repo.NextTicketNumber(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, number)

	number, err = repo.NextTicketNumber(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, number)
}

func TestTicketRepository_ClientReferenceUniqueIndex(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	ref := "deploy-failure-2026-08-30"

	first, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID:         1,
		TicketType:        vo.TypeBug,
		Title:             "First submission",
		Description:       "desc",
		ReporterID:        "usr_100",
		ClientReferenceID: &ref,
	})
	require.NoError(t, err)
	saveTicketWithNumber(t, repo, first)

	second, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID:         1,
		TicketType:        vo.TypeBug,
		Title:             "Retried submission",
		Description:       "desc",
		ReporterID:        "usr_100",
		ClientReferenceID: &ref,
	})
	require.NoError(t, err)
	require.NoError(t, second.SetTicketNumber(2))

	err = repo.Save(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.IsDuplicateError(err))

	// The same reference under another project is a different ticket.
	otherProject, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID:         2,
		TicketType:        vo.TypeBug,
		Title:             "Other project",
		Description:       "desc",
		ReporterID:        "usr_100",
		ClientReferenceID: &ref,
	})
	require.NoError(t, err)
	saveTicketWithNumber(t, repo, otherProject)

	found, err := repo.FindByClientReference(ctx, 1, ref)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID(), found.ID())
}

func TestTicketRepository_FindByNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Find me"))

	found, err := repo.FindByNumber(ctx, 1, tk.TicketNumber())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, tk.ID(), found.ID())
	assert.Equal(t, "Find me", found.Title())

	missing, err := repo.FindByNumber(ctx, 1, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTicketRepository_SoftDeleteExclusion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Doomed"))
	keeper := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Keeper"))

	tk.SoftDelete(adminActor(t))
	require.NoError(t, repo.Update(ctx, tk))

	found, err := repo.FindByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, found)

	tickets, total, err := repo.List(ctx, ticket.TicketFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tickets, 1)
	assert.Equal(t, keeper.ID(), tickets[0].ID())

	tickets, total, err = repo.List(ctx, ticket.TicketFilter{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, tickets, 2)
}

func TestTicketRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()
	actor := adminActor(t)

	bug := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Crash on deploy page"))
	bug.ChangeStatus(vo.StatusTriaged, actor)
	require.NoError(t, repo.Update(ctx, bug))

	feature, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID:   1,
		TicketType:  vo.TypeFeature,
		Priority:    vo.PriorityLow,
		Title:       "Add rollback button",
		Description: "Requested by ops",
		ReporterID:  "usr_200",
	})
	require.NoError(t, err)
	saveTicketWithNumber(t, repo, feature)

	t.Run("filter by status", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{
			Statuses: []vo.TicketStatus{vo.StatusTriaged},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, bug.ID(), tickets[0].ID())
	})

	t.Run("filter by type", func(t *testing.T) {
		ticketType := vo.TypeFeature
		tickets, _, err := repo.List(ctx, ticket.TicketFilter{TicketType: &ticketType})
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, feature.ID(), tickets[0].ID())
	})

	t.Run("filter by reporter", func(t *testing.T) {
		reporter := "usr_200"
		tickets, _, err := repo.List(ctx, ticket.TicketFilter{ReporterID: &reporter})
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, feature.ID(), tickets[0].ID())
	})

	t.Run("search matches title", func(t *testing.T) {
		tickets, _, err := repo.List(ctx, ticket.TicketFilter{Search: "rollback"})
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, feature.ID(), tickets[0].ID())
	})

	t.Run("sort whitelist falls back on unknown column", func(t *testing.T) {
		tickets, _, err := repo.List(ctx, ticket.TicketFilter{
			SortBy:    "evil; DROP TABLE tickets",
			SortOrder: "asc",
		})
		require.NoError(t, err)
		assert.Len(t, tickets, 2)
	})
}

func TestTicketRepository_MaxWorkPriority(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()
	actor := adminActor(t)

	max, err := repo.MaxWorkPriority(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	for i, priority := range []int{3, 7, 5} {
		tk := saveTicketWithNumber(t, repo, newTestTicket(t, 1, fmt.Sprintf("Approved %d", i)))
		tk.ApplyTriage(ticket.TriageData{Assessment: "looks real"}, actor)
		tk.ApproveWork("fix it", priority, actor)
		require.NoError(t, repo.Update(ctx, tk))
	}

	max, err = repo.MaxWorkPriority(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, max)
}

func TestTicketRepository_Queues(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()
	actor := adminActor(t)

	newOne := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Untriaged one"))
	newTwo := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Untriaged two"))

	worker := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Second in line"))
	worker.ApplyTriage(ticket.TriageData{Assessment: "ok"}, actor)
	worker.ApproveWork("", 2, actor)
	require.NoError(t, repo.Update(ctx, worker))

	urgent := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "First in line"))
	urgent.ApplyTriage(ticket.TriageData{Assessment: "ok"}, actor)
	urgent.ApproveWork("", 1, actor)
	require.NoError(t, repo.Update(ctx, urgent))

	t.Run("triage batch returns oldest new tickets", func(t *testing.T) {
		batch, err := repo.TriageBatch(ctx, nil, 3)
		require.NoError(t, err)
		require.Len(t, batch, 2)
		assert.Equal(t, newOne.ID(), batch[0].ID())
		assert.Equal(t, newTwo.ID(), batch[1].ID())

		limited, err := repo.TriageBatch(ctx, nil, 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, newOne.ID(), limited[0].ID())
	})

	t.Run("work queue ordered by work priority", func(t *testing.T) {
		queue, err := repo.WorkQueue(ctx, nil)
		require.NoError(t, err)
		require.Len(t, queue, 2)
		assert.Equal(t, urgent.ID(), queue[0].ID())
		assert.Equal(t, worker.ID(), queue[1].ID())
	})
}

func TestTicketRepository_FollowUps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()
	actor := adminActor(t)

	due := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Follow up now"))
	needsFollowup := true
	past := biztime.NowUTC().Add(-time.Hour)
	due.ApplyUpdate(ticket.UpdateChanges{NeedsFollowup: &needsFollowup, FollowupAfter: &past}, actor)
	require.NoError(t, repo.Update(ctx, due))

	later := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Follow up later"))
	future := biztime.NowUTC().Add(48 * time.Hour)
	later.ApplyUpdate(ticket.UpdateChanges{NeedsFollowup: &needsFollowup, FollowupAfter: &future}, actor)
	require.NoError(t, repo.Update(ctx, later))

	now := biztime.NowUTC()

	items, err := repo.FollowUps(ctx, nil, &now)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, due.ID(), items[0].ID())

	all, err := repo.FollowUps(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := repo.FollowUpsDueCount(ctx, nil, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTicketRepository_Stats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()
	actor := adminActor(t)

	saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Still new"))

	triaged := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Triaged"))
	triaged.ApplyTriage(ticket.TriageData{Assessment: "ok"}, actor)
	require.NoError(t, repo.Update(ctx, triaged))

	resolved := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Resolved"))
	resolved.ChangeStatus(vo.StatusResolved, actor)
	require.NoError(t, repo.Update(ctx, resolved))

	rework := saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Failed testing"))
	rework.ChangeStatus(vo.StatusInProgress, actor)
	failResult := vo.TestingFail
	rework.ApplyUpdate(ticket.UpdateChanges{TestingResult: &failResult}, actor)
	require.NoError(t, repo.Update(ctx, rework))

	byStatus, err := repo.GroupCountByStatus(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byStatus["new"])
	assert.Equal(t, int64(1), byStatus["triaged"])
	assert.Equal(t, int64(1), byStatus["resolved"])
	assert.Equal(t, int64(1), byStatus["in_progress"])

	byType, err := repo.GroupCountByType(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), byType["bug"])

	reworkCount, err := repo.ReworkCount(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reworkCount)

	avg, err := repo.AvgResolutionHours(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.GreaterOrEqual(t, *avg, 0.0)
}

func TestTicketRepository_AvgResolutionHours_NoneResolved(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)

	saveTicketWithNumber(t, repo, newTestTicket(t, 1, "Open"))

	avg, err := repo.AvgResolutionHours(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, avg)
}

func newTestActivity(t *testing.T, ticketID uint, activityType vo.ActivityType, visibility vo.Visibility, requiresApproval bool, content string) *ticket.Activity {
	actor, err := vo.NewActor("agent", "triage-bot")
	require.NoError(t, err)

	activity, err := ticket.NewActivity(ticket.NewActivityParams{
		TicketID:         ticketID,
		ActivityType:     activityType,
		Actor:            actor,
		Content:          &content,
		Visibility:       visibility,
		RequiresApproval: requiresApproval,
	})
	require.NoError(t, err)
	return activity
}

func TestActivityRepository_TimelineOrderingAndFilters(t *testing.T) {
	db := setupTestDB(t)
	ticketRepo := NewTicketRepository(db)
	activityRepo := NewActivityRepository(db)
	ctx := context.Background()

	tk := saveTicketWithNumber(t, ticketRepo, newTestTicket(t, 1, "Busy ticket"))

	internal := newTestActivity(t, tk.ID(), vo.ActivityComment, vo.VisibilityInternal, false, "internal note")
	require.NoError(t, activityRepo.Save(ctx, internal))

	visible := newTestActivity(t, tk.ID(), vo.ActivityMessage, vo.VisibilityUserVisible, false, "we are on it")
	require.NoError(t, activityRepo.Save(ctx, visible))

	draft := newTestActivity(t, tk.ID(), vo.ActivityMessage, vo.VisibilityUserVisible, true, "draft agent reply")
	require.NoError(t, activityRepo.Save(ctx, draft))

	t.Run("full timeline in insertion order", func(t *testing.T) {
		timeline, err := activityRepo.Timeline(ctx, tk.ID(), ticket.TimelineFilter{})
		require.NoError(t, err)
		require.Len(t, timeline, 3)
		assert.Equal(t, internal.ID(), timeline[0].ID())
		assert.Equal(t, visible.ID(), timeline[1].ID())
		assert.Equal(t, draft.ID(), timeline[2].ID())
	})

	t.Run("visibility filter", func(t *testing.T) {
		visibility := vo.VisibilityInternal
		timeline, err := activityRepo.Timeline(ctx, tk.ID(), ticket.TimelineFilter{Visibility: &visibility})
		require.NoError(t, err)
		require.Len(t, timeline, 1)
		assert.Equal(t, internal.ID(), timeline[0].ID())
	})

	t.Run("type filter", func(t *testing.T) {
		timeline, err := activityRepo.Timeline(ctx, tk.ID(), ticket.TimelineFilter{
			Types: []vo.ActivityType{vo.ActivityMessage},
		})
		require.NoError(t, err)
		assert.Len(t, timeline, 2)
	})

	t.Run("reporter view hides internal and unapproved drafts", func(t *testing.T) {
		timeline, err := activityRepo.Timeline(ctx, tk.ID(), ticket.TimelineFilter{ReporterVisible: true})
		require.NoError(t, err)
		require.Len(t, timeline, 1)
		assert.Equal(t, visible.ID(), timeline[0].ID())
	})

	t.Run("approved draft appears in reporter view", func(t *testing.T) {
		admin, err := vo.NewActor("admin", "alice")
		require.NoError(t, err)
		require.True(t, draft.Approve(admin))
		require.NoError(t, activityRepo.UpdateApproval(ctx, draft))

		timeline, err := activityRepo.Timeline(ctx, tk.ID(), ticket.TimelineFilter{ReporterVisible: true})
		require.NoError(t, err)
		require.Len(t, timeline, 2)
		assert.Equal(t, draft.ID(), timeline[1].ID())
	})

	t.Run("limit caps results", func(t *testing.T) {
		timeline, err := activityRepo.Timeline(ctx, tk.ID(), ticket.TimelineFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, timeline, 2)
	})
}

func TestActivityRepository_UpdateApproval(t *testing.T) {
	db := setupTestDB(t)
	ticketRepo := NewTicketRepository(db)
	activityRepo := NewActivityRepository(db)
	ctx := context.Background()

	tk := saveTicketWithNumber(t, ticketRepo, newTestTicket(t, 1, "Ticket"))

	draft := newTestActivity(t, tk.ID(), vo.ActivityComment, vo.VisibilityInternal, false, "promote me")
	require.NoError(t, activityRepo.Save(ctx, draft))

	admin, err := vo.NewActor("admin", "alice")
	require.NoError(t, err)
	require.True(t, draft.PromoteToUserVisible(admin))
	require.NoError(t, activityRepo.UpdateApproval(ctx, draft))

	found, err := activityRepo.FindByID(ctx, draft.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, vo.VisibilityUserVisible, found.Visibility())
	require.NotNil(t, found.ApprovedBy())
	assert.Equal(t, "alice", *found.ApprovedBy())
	assert.NotNil(t, found.ApprovedAt())
	// Content untouched by the approval write.
	require.NotNil(t, found.Content())
	assert.Equal(t, "promote me", *found.Content())
}

func TestActivityRepository_FindByID_Missing(t *testing.T) {
	db := setupTestDB(t)
	activityRepo := NewActivityRepository(db)

	found, err := activityRepo.FindByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAttachmentRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	ticketRepo := NewTicketRepository(db)
	attachmentRepo := NewAttachmentRepository(db)
	ctx := context.Background()

	tk := saveTicketWithNumber(t, ticketRepo, newTestTicket(t, 1, "With attachments"))

	first, err := ticket.NewAttachment(tk.ID(), "screenshot.png", "image/png", 2048, "usr_100")
	require.NoError(t, err)
	require.NoError(t, attachmentRepo.Save(ctx, first))
	assert.NotZero(t, first.ID())

	second, err := ticket.NewAttachment(tk.ID(), "deploy.log", "text/plain", 512, "usr_100")
	require.NoError(t, err)
	require.NoError(t, attachmentRepo.Save(ctx, second))

	attachments, err := attachmentRepo.FindByTicketID(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Equal(t, "screenshot.png", attachments[0].Filename())
	assert.Equal(t, int64(2048), attachments[0].SizeBytes())
	assert.Equal(t, "deploy.log", attachments[1].Filename())

	none, err := attachmentRepo.FindByTicketID(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}
