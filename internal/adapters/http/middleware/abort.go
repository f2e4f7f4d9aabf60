package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/associate-quotes/internal/platform/telemetry"
)

// abortWithCode stops the chain with the standard error envelope.
// Nothing is written when the response has already started.
func abortWithCode(c *gin.Context, code, message string) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	errResp := dto.NewErrorResponse(code, message).
		WithTraceID(telemetry.TraceID(c.Request.Context()))

	c.AbortWithStatusJSON(dto.HTTPStatusFromCode(code), errResp)
}
