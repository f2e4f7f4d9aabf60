// Package view projects loaded quotes into the associate quotes list view.
// Everything here is pure: the same inputs always yield the same table.
package view

import (
	"strings"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
)

// Filter keeps the quotes whose code or name contains query, ignoring case.
// Order is preserved and the result never shares a backing array with quotes.
// An empty query keeps every quote.
func Filter(quotes []domain.Quote, query string) []domain.Quote {
	out := make([]domain.Quote, 0, len(quotes))

	if query == "" {
		return append(out, quotes...)
	}

	needle := strings.ToLower(query)

	for i := range quotes {
		if matches(quotes[i].QuoteCode, needle) || matches(quotes[i].QuoteName, needle) {
			out = append(out, quotes[i])
		}
	}

	return out
}

// matches reports whether an optional field contains the lower-cased needle.
func matches(field *string, needle string) bool {
	if field == nil {
		return false
	}

	return strings.Contains(strings.ToLower(*field), needle)
}
