// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrUnavailable, ErrValidation, ...)
package ports

import (
	"context"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
)

// LatestQuotes is the outcome of one upstream "latest quotes" call.
type LatestQuotes struct {
	// Quotes holds the listed quotes in upstream order.
	Quotes []domain.Quote

	// HasData reports whether the response carried a data list at all.
	// A response without one is a valid reply that must not replace state.
	HasData bool
}

// QuoteLister fetches the latest quotes visible to an associate.
//
// Example usage in application layer:
//
//	latest, err := lister.ListLatestQuotes(ctx, domain.FilterFor(identity))
//	if err != nil {
//	    return err
//	}
//	if latest.HasData {
//	    quotes = latest.Quotes
//	}
type QuoteLister interface {
	// ListLatestQuotes issues a single request scoped by filter.
	// Returns domain.ErrUnavailable when the quote service is unreachable or
	// its response cannot be decoded.
	ListLatestQuotes(ctx context.Context, filter domain.LatestQuotesFilter) (*LatestQuotes, error)
}

// IdentityProvider resolves who is asking for quotes.
// HTTP requests resolve it from the session; the CLI from flags.
type IdentityProvider interface {
	// Identity returns the acting associate's scope. Missing pieces are nil,
	// never an error; errors are reserved for provider failures.
	Identity(ctx context.Context) (domain.Identity, error)
}

// IdentityProviderFunc adapts a function to IdentityProvider.
type IdentityProviderFunc func(ctx context.Context) (domain.Identity, error)

// Identity implements IdentityProvider.
func (f IdentityProviderFunc) Identity(ctx context.Context) (domain.Identity, error) {
	return f(ctx)
}
