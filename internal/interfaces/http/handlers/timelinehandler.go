package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/application/timeline/usecases"
	"shipdesk/internal/shared/constants"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
	"shipdesk/internal/shared/utils"
)

type TimelineHandler struct {
	addCommentUC      usecases.AddCommentExecutor
	sendMessageUC     usecases.SendMessageExecutor
	getTimelineUC     usecases.GetTimelineExecutor
	getUserTimelineUC usecases.GetUserTimelineExecutor
	agentNarrativeUC  usecases.AgentNarrativeExecutor
	approveActivityUC usecases.ApproveActivityExecutor
	promoteActivityUC usecases.PromoteActivityExecutor
	logger            logger.Interface
}

func NewTimelineHandler(
	addCommentUC usecases.AddCommentExecutor,
	sendMessageUC usecases.SendMessageExecutor,
	getTimelineUC usecases.GetTimelineExecutor,
	getUserTimelineUC usecases.GetUserTimelineExecutor,
	agentNarrativeUC usecases.AgentNarrativeExecutor,
	approveActivityUC usecases.ApproveActivityExecutor,
	promoteActivityUC usecases.PromoteActivityExecutor,
) *TimelineHandler {
	return &TimelineHandler{
		addCommentUC:      addCommentUC,
		sendMessageUC:     sendMessageUC,
		getTimelineUC:     getTimelineUC,
		getUserTimelineUC: getUserTimelineUC,
		agentNarrativeUC:  agentNarrativeUC,
		approveActivityUC: approveActivityUC,
		promoteActivityUC: promoteActivityUC,
		logger:            logger.NewLogger(),
	}
}

type AddCommentRequest struct {
	Content     string `json:"content" binding:"required"`
	UserVisible bool   `json:"user_visible"`
}

type SendMessageRequest struct {
	Content          string `json:"content" binding:"required"`
	RequiresApproval bool   `json:"requires_approval"`
}

func (h *TimelineHandler) AddComment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add comment",
			"ticket_id", ticketID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	actorType, actorName := actorFromContext(c)
	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		TicketID:    ticketID,
		ActorType:   actorType,
		ActorName:   actorName,
		Content:     req.Content,
		UserVisible: req.UserVisible,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

func (h *TimelineHandler) SendMessage(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for send message",
			"ticket_id", ticketID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	actorType, actorName := actorFromContext(c)
	result, err := h.sendMessageUC.Execute(c.Request.Context(), usecases.SendMessageCommand{
		TicketID:         ticketID,
		ActorType:        actorType,
		ActorName:        actorName,
		Content:          req.Content,
		RequiresApproval: req.RequiresApproval,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message sent successfully")
}

func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetTimelineQuery{
		TicketID: ticketID,
		Types:    c.QueryArray("type"),
	}

	if visibility := c.Query("visibility"); visibility != "" {
		query.Visibility = &visibility
	}

	if since := c.Query("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid since timestamp, expected RFC3339"))
			return
		}
		query.Since = &t
	}

	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid limit"))
			return
		}
		query.Limit = n
	}

	activities, err := h.getTimelineUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Timeline retrieved successfully", activities)
}

// GetUserTimeline serves the reporter-scoped view. The reporter comes
// from the gateway header, never from the query string.
func (h *TimelineHandler) GetUserTimeline(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	activities, err := h.getUserTimelineUC.Execute(c.Request.Context(), usecases.GetUserTimelineQuery{
		TicketID:   ticketID,
		ReporterID: c.GetString(constants.CtxReporterID),
		RenderHTML: c.Query("render") == "html",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Timeline retrieved successfully", activities)
}

func (h *TimelineHandler) GetAgentNarrative(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.agentNarrativeUC.Execute(c.Request.Context(), usecases.AgentNarrativeQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.String(http.StatusOK, result.Narrative)
}

func (h *TimelineHandler) ApproveActivity(c *gin.Context) {
	activityID, err := parseActivityID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	_, adminName := actorFromContext(c)
	result, err := h.approveActivityUC.Execute(c.Request.Context(), usecases.ApproveActivityCommand{
		ActivityID: activityID,
		AdminName:  adminName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Activity approval processed", result)
}

func (h *TimelineHandler) PromoteActivity(c *gin.Context) {
	activityID, err := parseActivityID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	_, adminName := actorFromContext(c)
	result, err := h.promoteActivityUC.Execute(c.Request.Context(), usecases.PromoteActivityCommand{
		ActivityID: activityID,
		AdminName:  adminName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Activity promotion processed", result)
}

func parseActivityID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.NewValidationError("invalid activity ID")
	}
	return uint(id), nil
}
