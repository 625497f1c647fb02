package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/application/ticket/usecases"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
	"shipdesk/internal/shared/utils"
)

// WorkflowHandler covers the triage, decision, and resolution steps of
// the ticket pipeline.
type WorkflowHandler struct {
	triageTicketUC  usecases.TriageTicketExecutor
	approveTicketUC usecases.ApproveTicketExecutor
	rejectTicketUC  usecases.RejectTicketExecutor
	resolveTicketUC usecases.ResolveTicketExecutor
	logger          logger.Interface
}

func NewWorkflowHandler(
	triageTicketUC usecases.TriageTicketExecutor,
	approveTicketUC usecases.ApproveTicketExecutor,
	rejectTicketUC usecases.RejectTicketExecutor,
	resolveTicketUC usecases.ResolveTicketExecutor,
) *WorkflowHandler {
	return &WorkflowHandler{
		triageTicketUC:  triageTicketUC,
		approveTicketUC: approveTicketUC,
		rejectTicketUC:  rejectTicketUC,
		resolveTicketUC: resolveTicketUC,
		logger:          logger.NewLogger(),
	}
}

type TriageTicketRequest struct {
	Assessment        string   `json:"assessment" binding:"required"`
	SolutionProposal  string   `json:"solution_proposal"`
	SuggestedPriority string   `json:"suggested_priority"`
	Complexity        string   `json:"complexity"`
	EstimatedFiles    []string `json:"estimated_files"`
	AutonomyScore     *int     `json:"autonomy_score"`
}

type DecisionRequest struct {
	Decision     string `json:"decision" binding:"required,oneof=approved rejected"`
	Direction    string `json:"direction"`
	WorkPriority *int   `json:"work_priority"`
	Resolution   string `json:"resolution"`
	Reason       string `json:"reason"`
}

type ResolveTicketRequest struct {
	Notes               string `json:"notes" binding:"required"`
	PullRequestURL      string `json:"pull_request_url"`
	TestingInstructions string `json:"testing_instructions"`
}

func (h *WorkflowHandler) Triage(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req TriageTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for triage",
			"ticket_id", ticketID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	actorType, actorName := actorFromContext(c)
	result, err := h.triageTicketUC.Execute(c.Request.Context(), usecases.TriageTicketCommand{
		TicketID:  ticketID,
		ActorType: actorType,
		ActorName: actorName,

		Assessment:        req.Assessment,
		SolutionProposal:  req.SolutionProposal,
		SuggestedPriority: req.SuggestedPriority,
		Complexity:        req.Complexity,
		EstimatedFiles:    req.EstimatedFiles,
		AutonomyScore:     req.AutonomyScore,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket triaged successfully", result)
}

// Decide routes an admin decision to the approve or reject flow.
func (h *WorkflowHandler) Decide(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for decision",
			"ticket_id", ticketID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	actorType, actorName := actorFromContext(c)

	switch req.Decision {
	case "approved":
		result, err := h.approveTicketUC.Execute(c.Request.Context(), usecases.ApproveTicketCommand{
			TicketID:     ticketID,
			ActorType:    actorType,
			ActorName:    actorName,
			Direction:    req.Direction,
			WorkPriority: req.WorkPriority,
		})
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Ticket approved for work", result)

	case "rejected":
		result, err := h.rejectTicketUC.Execute(c.Request.Context(), usecases.RejectTicketCommand{
			TicketID:   ticketID,
			ActorType:  actorType,
			ActorName:  actorName,
			Resolution: req.Resolution,
			Reason:     req.Reason,
		})
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Ticket rejected", result)

	default:
		utils.ErrorResponseWithError(c, errors.NewValidationError("decision must be approved or rejected"))
	}
}

func (h *WorkflowHandler) Resolve(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ResolveTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for resolve",
			"ticket_id", ticketID,
			"error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	actorType, actorName := actorFromContext(c)
	result, err := h.resolveTicketUC.Execute(c.Request.Context(), usecases.ResolveTicketCommand{
		TicketID:            ticketID,
		ActorType:           actorType,
		ActorName:           actorName,
		Notes:               req.Notes,
		PullRequestURL:      req.PullRequestURL,
		TestingInstructions: req.TestingInstructions,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Resolution submitted successfully", result)
}
