package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/application/stats/usecases"
	"shipdesk/internal/shared/logger"
	"shipdesk/internal/shared/utils"
)

type StatsHandler struct {
	ticketStatsUC    usecases.GetTicketStatsExecutor
	pipelineCountsUC usecases.PipelineCountsExecutor
	logger           logger.Interface
}

func NewStatsHandler(
	ticketStatsUC usecases.GetTicketStatsExecutor,
	pipelineCountsUC usecases.PipelineCountsExecutor,
) *StatsHandler {
	return &StatsHandler{
		ticketStatsUC:    ticketStatsUC,
		pipelineCountsUC: pipelineCountsUC,
		logger:           logger.NewLogger(),
	}
}

func (h *StatsHandler) TicketStats(c *gin.Context) {
	projectID, err := parseProjectIDQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ticketStatsUC.Execute(c.Request.Context(), usecases.TicketStatsQuery{ProjectID: projectID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket stats retrieved successfully", result)
}

func (h *StatsHandler) PipelineCounts(c *gin.Context) {
	projectID, err := parseProjectIDQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.pipelineCountsUC.Execute(c.Request.Context(), usecases.PipelineCountsQuery{ProjectID: projectID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pipeline counts retrieved successfully", result)
}
