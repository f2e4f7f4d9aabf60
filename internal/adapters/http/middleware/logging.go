package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/identity"
	"github.com/jsamuelsen/associate-quotes/internal/platform/logging"
)

// Logging seeds the request context with logger and writes one line per
// request once it completes. Place it before the ID middleware: the line is
// logged through the context logger they enrich.
//
// Paths under /-/ and any of skipPaths are not logged.
func Logging(logger *slog.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))

		path := c.Request.URL.Path
		if _, ok := skip[path]; ok || strings.HasPrefix(path, "/-/") {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", c.Request.URL.RawQuery),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		}

		if s, ok := identity.SessionFromContext(c.Request.Context()); ok {
			attrs = append(attrs,
				slog.Bool("partner_profile", s.Profile != nil),
				slog.String("associate_id", s.AssociateID),
			)
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}

		ctx := c.Request.Context()
		logging.FromContext(ctx).LogAttrs(ctx, level, "request completed", attrs...)
	}
}
