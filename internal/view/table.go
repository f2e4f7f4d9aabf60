package view

import (
	"fmt"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
)

// Page copy.
const (
	Title             = "Quotes"
	Subtitle          = "View and manage your quotes"
	SearchPlaceholder = "Search quotes..."
	NewQuoteLabel     = "New Quote from Deal"
	FiltersLabel      = "Filters"
	ErrorMessage      = "An error occurred while fetching quotes"

	// DefaultDealsRoute is where quotes are created from deals.
	DefaultDealsRoute = "/associate/deals"
)

// Columns lists the table headings in display order.
var Columns = []string{
	"S.No",
	"Quote ID",
	"Quote Date",
	"Company Name",
	"Primary Customer",
	"Origin",
	"Services Type",
	"Quote Cre",
	"Quote Value",
	"Quote Status",
	"IsApproved",
	"Ageing",
	"Created By",
	"Actions",
}

// State is what the data loader hands the renderer.
type State struct {
	Quotes  []domain.Quote
	Loading bool
	Failed  bool
}

// Options control filtering and paging of one render.
type Options struct {
	// Query is the raw search text.
	Query string

	// Page is 1-based. Out-of-range pages are clamped.
	Page int

	// PageSize of 0 shows every row on a single page.
	PageSize int

	// DealsRoute is the target of the new-quote link. Empty means DefaultDealsRoute.
	DealsRoute string
}

// Table is the rendered list view.
type Table struct {
	Title             string   `json:"title"`
	Subtitle          string   `json:"subtitle"`
	SearchPlaceholder string   `json:"searchPlaceholder"`
	Query             string   `json:"query"`
	NewQuote          Link     `json:"newQuote"`
	Filters           Action   `json:"filters"`
	Columns           []string `json:"columns"`
	Rows              []Row    `json:"rows"`
	Loading           bool     `json:"loading"`
	Error             bool     `json:"error"`
	ErrorMessage      string   `json:"errorMessage,omitempty"`
	Footer            *Footer  `json:"footer,omitempty"`
}

// Link is a navigation target without parameters.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Action is a control shown to the user. Inert actions have no handler.
type Action struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Inert bool   `json:"inert"`
}

// Row is one displayed quote with every cell already formatted.
type Row struct {
	Number          int      `json:"number"`
	QuoteID         string   `json:"quoteId"`
	QuoteCode       string   `json:"quoteCode"`
	QuoteDate       string   `json:"quoteDate"`
	CompanyName     Cell     `json:"companyName"`
	PrimaryCustomer Cell     `json:"primaryCustomer"`
	Origin          string   `json:"origin"`
	ServiceType     string   `json:"serviceType"`
	QuoteCreator    string   `json:"quoteCreator"`
	Amount          string   `json:"amount"`
	Status          Badge    `json:"status"`
	Approved        string   `json:"approved"`
	Ageing          string   `json:"ageing"`
	CreatedBy       string   `json:"createdBy"`
	Actions         []Action `json:"actions"`
}

// Cell is a text cell that may be styled as a link.
type Cell struct {
	Text string `json:"text"`
	Link bool   `json:"link"`
}

// Badge is a status pill.
type Badge struct {
	Label   string `json:"label"`
	Tone    Tone   `json:"tone"`
	Classes string `json:"classes"`
}

// Footer summarises the filtered list.
type Footer struct {
	Count int    `json:"count"`
	Label string `json:"label"`
	Pager *Pager `json:"pager,omitempty"`
}

// Pager describes page navigation. Prev and Next are nil when there is no such page.
type Pager struct {
	Page  int  `json:"page"`
	Pages int  `json:"pages"`
	Prev  *int `json:"prev"`
	Next  *int `json:"next"`
}

// Render projects state into the list view for opts.
func Render(state State, opts Options) Table {
	filtered := Filter(state.Quotes, opts.Query)

	deals := opts.DealsRoute
	if deals == "" {
		deals = DefaultDealsRoute
	}

	t := Table{
		Title:             Title,
		Subtitle:          Subtitle,
		SearchPlaceholder: SearchPlaceholder,
		Query:             opts.Query,
		NewQuote:          Link{Label: NewQuoteLabel, Href: deals},
		Filters:           Action{Name: "filters", Label: FiltersLabel, Inert: true},
		Columns:           append([]string(nil), Columns...),
		Rows:              []Row{},
		Loading:           state.Loading,
		Error:             state.Failed,
	}

	if state.Failed {
		t.ErrorMessage = ErrorMessage
	}

	page, pages, start, end := paginate(len(filtered), opts.Page, opts.PageSize)

	for i := start; i < end; i++ {
		t.Rows = append(t.Rows, NewRow(i+1, &filtered[i]))
	}

	if !state.Loading && len(filtered) > 0 {
		t.Footer = &Footer{
			Count: len(filtered),
			Label: CountLabel(len(filtered)),
		}

		if opts.PageSize > 0 {
			t.Footer.Pager = newPager(page, pages)
		}
	}

	return t
}

// NewRow formats one quote at its 1-based position in the filtered list.
func NewRow(number int, q *domain.Quote) Row {
	tone := StatusTone(q.QuoteStatus)

	return Row{
		Number:          number,
		QuoteID:         q.QuoteID,
		QuoteCode:       q.Code(),
		QuoteDate:       FormatDate(q.QuoteDate),
		CompanyName:     Cell{Text: q.CompanyName, Link: true},
		PrimaryCustomer: Cell{Text: q.PrimaryCustomer, Link: true},
		Origin:          optional(q.Origin),
		ServiceType:     q.ServiceType,
		QuoteCreator:    q.CreatedBy,
		Amount:          FormatRupees(q.TotalAmount),
		Status:          Badge{Label: q.QuoteStatus, Tone: tone, Classes: tone.Classes()},
		Approved:        ApprovalLabel(q.IsApproved),
		Ageing:          optionalInt(q.AgeingDays),
		CreatedBy:       q.CreatedBy,
		Actions: []Action{
			{Name: "edit", Label: "Edit", Inert: true},
			{Name: "delete", Label: "Delete", Inert: true},
		},
	}
}

// CountLabel renders the footer count.
func CountLabel(n int) string {
	return fmt.Sprintf("Showing %d quotes", n)
}

// paginate clamps page into range and returns the slice bounds for it.
func paginate(total, page, size int) (current, pages, start, end int) {
	if size <= 0 {
		return 1, 1, 0, total
	}

	pages = (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}

	current = min(max(page, 1), pages)
	start = min((current-1)*size, total)
	end = min(start+size, total)

	return current, pages, start, end
}

func newPager(page, pages int) *Pager {
	p := &Pager{Page: page, Pages: pages}

	if page > 1 {
		prev := page - 1
		p.Prev = &prev
	}

	if page < pages {
		next := page + 1
		p.Next = &next
	}

	return p
}
