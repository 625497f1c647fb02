package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/application/ticket/usecases"
	"shipdesk/internal/shared/constants"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
	"shipdesk/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC usecases.CreateTicketExecutor
	getTicketUC    usecases.GetTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	changeStatusUC usecases.ChangeStatusExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
	attachmentUC   usecases.RegisterAttachmentExecutor
	logger         logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	attachmentUC usecases.RegisterAttachmentExecutor,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC: createTicketUC,
		getTicketUC:    getTicketUC,
		listTicketsUC:  listTicketsUC,
		updateTicketUC: updateTicketUC,
		changeStatusUC: changeStatusUC,
		deleteTicketUC: deleteTicketUC,
		attachmentUC:   attachmentUC,
		logger:         logger.NewLogger(),
	}
}

type CreateTicketRequest struct {
	ProjectID         uint     `json:"project_id" binding:"required"`
	Source            string   `json:"source"`
	TicketType        string   `json:"ticket_type"`
	Priority          string   `json:"priority"`
	Tags              []string `json:"tags"`
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	Route             string   `json:"route"`
	Environment       string   `json:"environment"`
	BrowserInfo       string   `json:"browser_info"`
	OSInfo            string   `json:"os_info"`
	ReporterID        string   `json:"reporter_id" binding:"required"`
	ReporterName      string   `json:"reporter_name"`
	ReporterEmail     string   `json:"reporter_email"`
	ParentID          *uint    `json:"parent_id"`
	ClientReferenceID *string  `json:"client_reference_id"`
}

type UpdateTicketRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	TicketType  *string   `json:"ticket_type"`
	Priority    *string   `json:"priority"`
	Tags        *[]string `json:"tags"`
	Route       *string   `json:"route"`
	Environment *string   `json:"environment"`
	Assignee    *string   `json:"assignee"`
	Direction   *string   `json:"direction"`

	AIAssessment        *string   `json:"ai_assessment"`
	AISolutionProposal  *string   `json:"ai_solution_proposal"`
	AISuggestedPriority *string   `json:"ai_suggested_priority"`
	AIComplexity        *string   `json:"ai_complexity"`
	AIEstimatedFiles    *[]string `json:"ai_estimated_files"`
	AutonomyScore       *int      `json:"autonomy_score"`

	WorkPriority  *int       `json:"work_priority"`
	TestingResult *string    `json:"testing_result"`
	NeedsFollowup *bool      `json:"needs_followup"`
	FollowupNotes *string    `json:"followup_notes"`
	FollowupAfter *time.Time `json:"followup_after"`
	Resolution    *string    `json:"resolution"`

	ReporterName  *string `json:"reporter_name"`
	ReporterEmail *string `json:"reporter_email"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RegisterAttachmentRequest struct {
	Filename  string `json:"filename" binding:"required"`
	MimeType  string `json:"mime_type" binding:"required"`
	SizeBytes int64  `json:"size_bytes" binding:"required,min=1"`
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), h.buildCreateCommand(req))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if !result.Created {
		utils.SuccessResponse(c, http.StatusOK, "Ticket already exists for client reference", result)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// CreateFromWidget accepts unauthenticated widget submissions. The
// source is pinned so widget traffic cannot masquerade as anything
// else.
func (h *TicketHandler) CreateFromWidget(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for widget ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	cmd := h.buildCreateCommand(req)
	cmd.Source = "widget"

	result, err := h.createTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if !result.Created {
		utils.SuccessResponse(c, http.StatusOK, "Ticket already exists for client reference", result)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

func (h *TicketHandler) buildCreateCommand(req CreateTicketRequest) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		ProjectID:         req.ProjectID,
		Source:            req.Source,
		TicketType:        req.TicketType,
		Priority:          req.Priority,
		Tags:              req.Tags,
		Title:             req.Title,
		Description:       req.Description,
		Route:             req.Route,
		Environment:       req.Environment,
		BrowserInfo:       req.BrowserInfo,
		OSInfo:            req.OSInfo,
		ReporterID:        req.ReporterID,
		ReporterName:      req.ReporterName,
		ReporterEmail:     req.ReporterEmail,
		ParentID:          req.ParentID,
		ClientReferenceID: req.ClientReferenceID,
	}
}

func (h *TicketHandler) Get(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketDTO, attachments, err := h.getTicketUC.ExecuteWithAttachments(c.Request.Context(), usecases.GetTicketQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket retrieved successfully", gin.H{
		"ticket":      ticketDTO,
		"attachments": attachments,
	})
}

func (h *TicketHandler) GetByNumber(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectID"), 10, 32)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid project ID"))
		return
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid ticket number"))
		return
	}

	ticketDTO, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		ProjectID:    uint(projectID),
		TicketNumber: number,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket retrieved successfully", ticketDTO)
}

func (h *TicketHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListTicketsQuery{
		Statuses:  c.QueryArray("status"),
		Search:    c.Query("search"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if projectID := c.Query("project_id"); projectID != "" {
		id, err := strconv.ParseUint(projectID, 10, 32)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid project ID"))
			return
		}
		pid := uint(id)
		query.ProjectID = &pid
	}

	if parentID := c.Query("parent_id"); parentID != "" {
		id, err := strconv.ParseUint(parentID, 10, 32)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid parent ID"))
			return
		}
		pid := uint(id)
		query.ParentID = &pid
	}

	if ticketType := c.Query("type"); ticketType != "" {
		query.TicketType = &ticketType
	}
	if priority := c.Query("priority"); priority != "" {
		query.Priority = &priority
	}
	if assignee := c.Query("assignee"); assignee != "" {
		query.Assignee = &assignee
	}
	if reporterID := c.Query("reporter_id"); reporterID != "" {
		query.ReporterID = &reporterID
	}
	if needsFollowup := c.Query("needs_followup"); needsFollowup != "" {
		v := needsFollowup == "true"
		query.NeedsFollowup = &v
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

func (h *TicketHandler) Update(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket",
			"ticket_id", ticketID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	actorType, actorName := actorFromContext(c)
	cmd := usecases.UpdateTicketCommand{
		TicketID:  ticketID,
		ActorType: actorType,
		ActorName: actorName,

		Title:       req.Title,
		Description: req.Description,
		TicketType:  req.TicketType,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Route:       req.Route,
		Environment: req.Environment,
		Assignee:    req.Assignee,
		Direction:   req.Direction,

		AIAssessment:        req.AIAssessment,
		AISolutionProposal:  req.AISolutionProposal,
		AISuggestedPriority: req.AISuggestedPriority,
		AIComplexity:        req.AIComplexity,
		AIEstimatedFiles:    req.AIEstimatedFiles,
		AutonomyScore:       req.AutonomyScore,

		WorkPriority:  req.WorkPriority,
		TestingResult: req.TestingResult,
		NeedsFollowup: req.NeedsFollowup,
		FollowupNotes: req.FollowupNotes,
		FollowupAfter: req.FollowupAfter,
		Resolution:    req.Resolution,

		ReporterName:  req.ReporterName,
		ReporterEmail: req.ReporterEmail,
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change status",
			"ticket_id", ticketID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	actorType, actorName := actorFromContext(c)
	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID:  ticketID,
		NewStatus: req.Status,
		ActorType: actorType,
		ActorName: actorName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status changed successfully", result)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actorType, actorName := actorFromContext(c)
	if _, err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		TicketID:  ticketID,
		ActorType: actorType,
		ActorName: actorName,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *TicketHandler) RegisterAttachment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RegisterAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register attachment",
			"ticket_id", ticketID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	actorType, actorName := actorFromContext(c)
	result, err := h.attachmentUC.Execute(c.Request.Context(), usecases.RegisterAttachmentCommand{
		TicketID:  ticketID,
		Filename:  req.Filename,
		MimeType:  req.MimeType,
		SizeBytes: req.SizeBytes,
		ActorType: actorType,
		ActorName: actorName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment registered successfully")
}

func parseTicketID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.NewValidationError("invalid ticket ID")
	}
	return uint(id), nil
}

func actorFromContext(c *gin.Context) (string, string) {
	return c.GetString(constants.CtxActorType), c.GetString(constants.CtxActorName)
}
