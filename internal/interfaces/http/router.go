package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	queueUC "shipdesk/internal/application/queue/usecases"
	statsUC "shipdesk/internal/application/stats/usecases"
	ticketUC "shipdesk/internal/application/ticket/usecases"
	timelineUC "shipdesk/internal/application/timeline/usecases"
	"shipdesk/internal/infrastructure/config"
	"shipdesk/internal/infrastructure/ratelimit"
	"shipdesk/internal/infrastructure/repository"
	"shipdesk/internal/interfaces/http/handlers"
	"shipdesk/internal/interfaces/http/middleware"
	"shipdesk/internal/shared/db"
	"shipdesk/internal/shared/logger"
	"shipdesk/internal/shared/services/markdown"
)

type Router struct {
	engine          *gin.Engine
	ticketHandler   *handlers.TicketHandler
	workflowHandler *handlers.WorkflowHandler
	timelineHandler *handlers.TimelineHandler
	queueHandler    *handlers.QueueHandler
	statsHandler    *handlers.StatsHandler
	widgetLimiter   gin.HandlerFunc
	logger          logger.Interface
}

func NewRouter(database *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Router {
	log := logger.NewLogger()

	ticketRepo := repository.NewTicketRepository(database)
	activityRepo := repository.NewActivityRepository(database)
	attachmentRepo := repository.NewAttachmentRepository(database)
	txMgr := db.NewTransactionManager(database)
	markdownSvc := markdown.NewService()

	ticketHandler := handlers.NewTicketHandler(
		ticketUC.NewCreateTicketUseCase(ticketRepo, activityRepo, txMgr, log),
		ticketUC.NewGetTicketUseCase(ticketRepo, attachmentRepo, log),
		ticketUC.NewListTicketsUseCase(ticketRepo, log),
		ticketUC.NewUpdateTicketUseCase(ticketRepo, activityRepo, txMgr, log),
		ticketUC.NewChangeStatusUseCase(ticketRepo, activityRepo, txMgr, log),
		ticketUC.NewDeleteTicketUseCase(ticketRepo, log),
		ticketUC.NewRegisterAttachmentUseCase(ticketRepo, attachmentRepo, activityRepo, txMgr, log),
	)

	workflowHandler := handlers.NewWorkflowHandler(
		ticketUC.NewTriageTicketUseCase(ticketRepo, activityRepo, txMgr, log),
		ticketUC.NewApproveTicketUseCase(ticketRepo, activityRepo, txMgr, log),
		ticketUC.NewRejectTicketUseCase(ticketRepo, activityRepo, txMgr, log),
		ticketUC.NewResolveTicketUseCase(ticketRepo, activityRepo, txMgr, log),
	)

	timelineHandler := handlers.NewTimelineHandler(
		timelineUC.NewAddCommentUseCase(ticketRepo, activityRepo, log),
		timelineUC.NewSendMessageUseCase(ticketRepo, activityRepo, log),
		timelineUC.NewGetTimelineUseCase(ticketRepo, activityRepo, log),
		timelineUC.NewGetUserTimelineUseCase(ticketRepo, activityRepo, markdownSvc, log),
		timelineUC.NewAgentNarrativeUseCase(ticketRepo, activityRepo, log),
		timelineUC.NewApproveActivityUseCase(activityRepo, log),
		timelineUC.NewPromoteActivityUseCase(activityRepo, log),
	)

	queueHandler := handlers.NewQueueHandler(
		queueUC.NewTriageBatchUseCase(ticketRepo, log),
		queueUC.NewWorkQueueUseCase(ticketRepo, log),
		queueUC.NewReworkItemsUseCase(ticketRepo, log),
		queueUC.NewFollowUpsUseCase(ticketRepo, log),
	)

	statsHandler := handlers.NewStatsHandler(
		statsUC.NewGetTicketStatsUseCase(ticketRepo, log),
		statsUC.NewPipelineCountsUseCase(ticketRepo, log),
	)

	limiter := ratelimit.NewRedisRateLimiter(redisClient)

	return &Router{
		engine:          gin.New(),
		ticketHandler:   ticketHandler,
		workflowHandler: workflowHandler,
		timelineHandler: timelineHandler,
		queueHandler:    queueHandler,
		statsHandler:    statsHandler,
		widgetLimiter:   middleware.WidgetRateLimit(limiter, &cfg.Widget, log),
		logger:          log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	api.Use(middleware.Actor())

	r.setupTicketRoutes(api)
	r.setupTimelineRoutes(api)
	r.setupQueueRoutes(api)
	r.setupStatsRoutes(api)
}

func (r *Router) setupTicketRoutes(api *gin.RouterGroup) {
	// Widget submissions bypass the actor headers but carry the rate
	// limit.
	api.POST("/widget/tickets", r.widgetLimiter, r.ticketHandler.CreateFromWidget)

	tickets := api.Group("/tickets")
	{
		tickets.POST("", r.ticketHandler.Create)
		tickets.GET("", r.ticketHandler.List)
		tickets.GET("/:id", r.ticketHandler.Get)
		tickets.PATCH("/:id", middleware.RequireAdmin(), r.ticketHandler.Update)
		tickets.PATCH("/:id/status", r.ticketHandler.ChangeStatus)
		tickets.DELETE("/:id", middleware.RequireAdmin(), r.ticketHandler.Delete)

		tickets.POST("/:id/triage", middleware.RequireAgent(), r.workflowHandler.Triage)
		tickets.POST("/:id/decision", middleware.RequireAgent(), r.workflowHandler.Decide)
		tickets.POST("/:id/resolve", middleware.RequireAgent(), r.workflowHandler.Resolve)

		tickets.POST("/:id/attachments", r.ticketHandler.RegisterAttachment)
	}

	api.GET("/projects/:projectID/tickets/:number", r.ticketHandler.GetByNumber)
}

func (r *Router) setupTimelineRoutes(api *gin.RouterGroup) {
	tickets := api.Group("/tickets")
	{
		tickets.POST("/:id/comments", r.timelineHandler.AddComment)
		tickets.POST("/:id/messages", r.timelineHandler.SendMessage)

		tickets.GET("/:id/timeline", middleware.RequireAdmin(), r.timelineHandler.GetTimeline)
		tickets.GET("/:id/timeline/user", r.timelineHandler.GetUserTimeline)
		tickets.GET("/:id/timeline/agent", middleware.RequireAgent(), r.timelineHandler.GetAgentNarrative)
	}

	activities := api.Group("/activities")
	activities.Use(middleware.RequireAdmin())
	{
		activities.POST("/:id/approve", r.timelineHandler.ApproveActivity)
		activities.POST("/:id/promote", r.timelineHandler.PromoteActivity)
	}
}

func (r *Router) setupQueueRoutes(api *gin.RouterGroup) {
	queues := api.Group("/queues")
	{
		queues.GET("/triage", r.queueHandler.TriageBatch)
		queues.GET("/work", r.queueHandler.WorkQueue)
		queues.GET("/rework", r.queueHandler.ReworkItems)
		queues.GET("/followups", r.queueHandler.FollowUps)
	}
}

func (r *Router) setupStatsRoutes(api *gin.RouterGroup) {
	stats := api.Group("/stats")
	{
		stats.GET("/tickets", r.statsHandler.TicketStats)
		stats.GET("/pipeline", r.statsHandler.PipelineCounts)
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
