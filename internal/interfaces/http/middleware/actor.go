package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	vo "shipdesk/internal/domain/ticket/value_objects"
	"shipdesk/internal/shared/constants"
	"shipdesk/internal/shared/utils"
)

// Actor resolves the identity headers set by the auth gateway into the
// request context. Requests without an actor type default to "user".
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorType := c.GetHeader("X-Actor-Type")
		if actorType == "" {
			actorType = vo.AuthorUser.String()
		}

		if !vo.AuthorType(actorType).IsValid() {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid actor type")
			c.Abort()
			return
		}

		actorName := c.GetHeader("X-Actor-Name")
		if actorName == "" {
			actorName = "anonymous"
		}

		c.Set(constants.CtxActorType, actorType)
		c.Set(constants.CtxActorName, actorName)
		c.Set(constants.CtxReporterID, c.GetHeader("X-Reporter-ID"))

		c.Next()
	}
}

// RequireAdmin guards admin-only routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorType := c.GetString(constants.CtxActorType)
		if actorType != vo.AuthorAdmin.String() {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAgent guards agent-only routes.
func RequireAgent() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorType := c.GetString(constants.CtxActorType)
		if actorType != vo.AuthorAgent.String() && actorType != vo.AuthorAdmin.String() {
			utils.ErrorResponse(c, http.StatusForbidden, "agent access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
