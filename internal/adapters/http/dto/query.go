package dto

import (
	"strings"

	"github.com/jsamuelsen/associate-quotes/internal/view"
)

// MaxPageSize caps the rows a single page may request.
const MaxPageSize = 500

// QuotesQuery is the query string of the quotes list endpoints.
type QuotesQuery struct {
	// Q is the search text matched against quote code and name.
	Q string `form:"q" validate:"max=200,printable"`

	// Page is 1-based; 0 means the first page.
	Page int `form:"page" validate:"gte=0"`

	// PageSize overrides the configured page size; 0 shows all rows.
	PageSize *int `form:"page_size" validate:"omitempty,gte=0,lte=500"`
}

// ViewOptions resolves the query against the configured defaults.
func (q *QuotesQuery) ViewOptions(defaultPageSize int, dealsRoute string) view.Options {
	size := defaultPageSize
	if q.PageSize != nil {
		size = *q.PageSize
	}

	return view.Options{
		Query:      q.Q,
		Page:       max(q.Page, 1),
		PageSize:   min(size, MaxPageSize),
		DealsRoute: dealsRoute,
	}
}

// ExportFilename builds the download name for an export of q.
func (q *QuotesQuery) ExportFilename() string {
	if q.Q == "" {
		return "quotes.xlsx"
	}

	var b strings.Builder

	for _, r := range strings.ToLower(q.Q) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ':
			b.WriteByte('-')
		}
	}

	if b.Len() == 0 {
		return "quotes.xlsx"
	}

	return "quotes-" + b.String() + ".xlsx"
}
