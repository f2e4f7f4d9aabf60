package identity

import (
	"context"
	"strings"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
	"github.com/jsamuelsen/associate-quotes/internal/ports"
)

type contextKey struct{}

// Session is the caller's identity material for one request.
type Session struct {
	// Profile is nil when no valid partner profile was presented.
	Profile *domain.PartnerProfile

	// AssociateID is empty when absent.
	AssociateID string
}

// Identity builds the quote-listing scope for the session.
func (s Session) Identity() domain.Identity {
	return domain.NewIdentity(s.Profile, strings.TrimSpace(s.AssociateID))
}

// WithSession stores s on ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// SessionFromContext returns the session on ctx, if any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}

	s, ok := ctx.Value(contextKey{}).(Session)

	return s, ok
}

// ContextProvider resolves identity from the request session.
// A request without a session yields an empty identity.
type ContextProvider struct{}

var _ ports.IdentityProvider = ContextProvider{}

// Identity implements ports.IdentityProvider.
func (ContextProvider) Identity(ctx context.Context) (domain.Identity, error) {
	s, _ := SessionFromContext(ctx)
	return s.Identity(), nil
}

// Static returns a provider with a fixed scope. Blank values are absent.
func Static(companyID, associateID string) ports.IdentityProvider {
	id := domain.Identity{}

	if c := strings.TrimSpace(companyID); c != "" {
		id.CompanyID = &c
	}

	if a := strings.TrimSpace(associateID); a != "" {
		id.AssociateID = &a
	}

	return ports.IdentityProviderFunc(func(context.Context) (domain.Identity, error) {
		return id, nil
	})
}
