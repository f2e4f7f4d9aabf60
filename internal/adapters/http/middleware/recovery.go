package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/associate-quotes/internal/platform/logging"
	"github.com/jsamuelsen/associate-quotes/internal/platform/telemetry"
)

// Recovery turns panics into a 500 with the standard error envelope.
// Apply it first so it covers every later middleware. onPanic, when set,
// also receives the recovered value and stack.
func Recovery(onPanic func(recovered any, stack []byte)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			stack := debug.Stack()
			if onPanic != nil {
				onPanic(r, stack)
			}

			ctx := c.Request.Context()
			logging.FromContext(ctx).ErrorContext(ctx, "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(stack)),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", telemetry.TraceID(ctx)),
			)

			abortWithCode(c, dto.ErrorCodeInternal, "an internal error occurred")
		}()

		c.Next()
	}
}
