package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/study-planner/internal/http/middleware"
)

type Error struct {
	Code    int
	Message string
}

type HandlerFuncWithSession func(ctx *gin.Context, sessionID string) (any, *Error)

func ResolveEndpointWithSession(h HandlerFuncWithSession) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionID, ok := middleware.GetSessionID(ctx)
		if !ok {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
			return
		}

		result, err := h(ctx, sessionID)
		if err != nil {
			ctx.JSON(err.Code, gin.H{"error": err.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}
