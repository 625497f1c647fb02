package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/application/queue/usecases"
	"shipdesk/internal/shared/errors"
	"shipdesk/internal/shared/logger"
	"shipdesk/internal/shared/utils"
)

type QueueHandler struct {
	triageBatchUC usecases.TriageBatchExecutor
	workQueueUC   usecases.WorkQueueExecutor
	reworkItemsUC usecases.ReworkItemsExecutor
	followUpsUC   usecases.FollowUpsExecutor
	logger        logger.Interface
}

func NewQueueHandler(
	triageBatchUC usecases.TriageBatchExecutor,
	workQueueUC usecases.WorkQueueExecutor,
	reworkItemsUC usecases.ReworkItemsExecutor,
	followUpsUC usecases.FollowUpsExecutor,
) *QueueHandler {
	return &QueueHandler{
		triageBatchUC: triageBatchUC,
		workQueueUC:   workQueueUC,
		reworkItemsUC: reworkItemsUC,
		followUpsUC:   followUpsUC,
		logger:        logger.NewLogger(),
	}
}

func (h *QueueHandler) TriageBatch(c *gin.Context) {
	projectID, err := parseProjectIDQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	size := 0
	if sizeStr := c.Query("size"); sizeStr != "" {
		size, err = strconv.Atoi(sizeStr)
		if err != nil || size < 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid batch size"))
			return
		}
	}

	tickets, err := h.triageBatchUC.Execute(c.Request.Context(), usecases.TriageBatchQuery{
		ProjectID: projectID,
		Size:      size,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Triage batch retrieved successfully", tickets)
}

func (h *QueueHandler) WorkQueue(c *gin.Context) {
	projectID, err := parseProjectIDQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	tickets, err := h.workQueueUC.Execute(c.Request.Context(), usecases.WorkQueueQuery{ProjectID: projectID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work queue retrieved successfully", tickets)
}

func (h *QueueHandler) ReworkItems(c *gin.Context) {
	projectID, err := parseProjectIDQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	tickets, err := h.reworkItemsUC.Execute(c.Request.Context(), usecases.ReworkItemsQuery{ProjectID: projectID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rework items retrieved successfully", tickets)
}

func (h *QueueHandler) FollowUps(c *gin.Context) {
	projectID, err := parseProjectIDQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.FollowUpsQuery{ProjectID: projectID}

	if dueBy := c.Query("due_by"); dueBy != "" {
		t, err := time.Parse(time.RFC3339, dueBy)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid due_by timestamp, expected RFC3339"))
			return
		}
		query.DueBy = &t
	}

	tickets, err := h.followUpsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Follow-ups retrieved successfully", tickets)
}

func parseProjectIDQuery(c *gin.Context) (*uint, error) {
	projectID := c.Query("project_id")
	if projectID == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(projectID, 10, 32)
	if err != nil {
		return nil, errors.NewValidationError("invalid project ID")
	}

	pid := uint(id)
	return &pid, nil
}
