package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/identity"
	"github.com/jsamuelsen/associate-quotes/internal/domain"
	"github.com/jsamuelsen/associate-quotes/internal/platform/config"
	"github.com/jsamuelsen/associate-quotes/internal/platform/logging"
)

// ContextKeySession is the gin context key for the resolved session.
const ContextKeySession = "session"

// ProfileParser verifies a signed partner profile.
type ProfileParser interface {
	Parse(token string) (*domain.PartnerProfile, error)
}

// Session resolves the caller's partner profile and associate ID and stores
// them on both the gin and request contexts.
//
// The profile is read from the configured header, then cookie. A token that
// fails verification is treated as absent and logged at debug level; the
// view then asks the quote service without a company. The associate ID is
// read from its header, then cookie.
func Session(cfg *config.SessionConfig, parser ProfileParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := identity.Session{
			AssociateID: firstNonEmpty(c, cfg.AssociateIDHeader, cfg.AssociateIDCookie),
		}

		if token := firstNonEmpty(c, cfg.ProfileHeader, cfg.ProfileCookie); token != "" {
			profile, err := parser.Parse(strings.TrimPrefix(token, "Bearer "))
			if err != nil {
				logging.FromContext(c.Request.Context()).DebugContext(c.Request.Context(),
					"ignoring partner profile", slog.Any("error", err))
			} else {
				s.Profile = profile
			}
		}

		c.Set(ContextKeySession, s)
		c.Request = c.Request.WithContext(identity.WithSession(c.Request.Context(), s))

		c.Next()
	}
}

// RequireAssociate rejects requests without an associate ID with 401.
func RequireAssociate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s, ok := GetSession(c); !ok || strings.TrimSpace(s.AssociateID) == "" {
			abortWithCode(c, dto.ErrorCodeUnauthorized, "associate identification required")
			return
		}

		c.Next()
	}
}

// GetSession returns the session stored by Session.
func GetSession(c *gin.Context) (identity.Session, bool) {
	v, ok := c.Get(ContextKeySession)
	if !ok {
		return identity.Session{}, false
	}

	s, ok := v.(identity.Session)

	return s, ok
}

// firstNonEmpty returns the header value, falling back to the cookie.
func firstNonEmpty(c *gin.Context, header, cookie string) string {
	if header != "" {
		if v := strings.TrimSpace(c.GetHeader(header)); v != "" {
			return v
		}
	}

	if cookie != "" {
		if v, err := c.Cookie(cookie); err == nil {
			return strings.TrimSpace(v)
		}
	}

	return ""
}
