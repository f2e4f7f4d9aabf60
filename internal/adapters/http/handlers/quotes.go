package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/export"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/identity"
	"github.com/jsamuelsen/associate-quotes/internal/app"
	"github.com/jsamuelsen/associate-quotes/internal/domain"
	"github.com/jsamuelsen/associate-quotes/internal/ports"
	"github.com/jsamuelsen/associate-quotes/internal/view"
)

// QuotesPageTemplate is the name of the list page template.
const QuotesPageTemplate = "quotes.html"

// quotesPage is the list page data. PageSize is the page_size parameter of
// the request, empty when it was not set, so pager links keep it.
type quotesPage struct {
	view.Table
	PageSize string
}

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Install the result with
// gin.Engine.SetHTMLTemplate before serving the list page.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// QuotesHandlerConfig holds the dependencies of QuotesHandler.
type QuotesHandlerConfig struct {
	Service *app.QuoteService

	// Identity resolves the caller. Defaults to the request session.
	Identity ports.IdentityProvider

	// PageSize is used when the request does not set page_size. 0 shows all rows.
	PageSize int

	// DealsRoute is the target of the new-quote link.
	DealsRoute string

	// ServiceName names the upstream in export failures.
	ServiceName string
}

// QuotesHandler serves the associate quotes list as JSON, HTML and XLSX.
// Every request loads a fresh board; nothing is cached between requests.
type QuotesHandler struct {
	service     *app.QuoteService
	identity    ports.IdentityProvider
	pageSize    int
	dealsRoute  string
	serviceName string
}

// NewQuotesHandler creates a QuotesHandler. It panics if cfg.Service is nil.
func NewQuotesHandler(cfg QuotesHandlerConfig) *QuotesHandler {
	if cfg.Service == nil {
		panic("handlers: quote service is required")
	}

	h := &QuotesHandler{
		service:     cfg.Service,
		identity:    cfg.Identity,
		pageSize:    cfg.PageSize,
		dealsRoute:  cfg.DealsRoute,
		serviceName: cfg.ServiceName,
	}

	if h.identity == nil {
		h.identity = identity.ContextProvider{}
	}

	if h.serviceName == "" {
		h.serviceName = "quotes-service"
	}

	return h
}

// List renders the table view as JSON. A failed load is still a 200; the
// table carries error true and the error message.
func (h *QuotesHandler) List(c *gin.Context) {
	var q dto.QuotesQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		respondBadQuery(c, err)
		return
	}

	c.JSON(http.StatusOK, h.render(c, &q))
}

// Page renders the list page as HTML.
func (h *QuotesHandler) Page(c *gin.Context) {
	var q dto.QuotesQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		respondBadQuery(c, err)
		return
	}

	page := quotesPage{Table: h.render(c, &q)}
	if q.PageSize != nil {
		page.PageSize = strconv.Itoa(*q.PageSize)
	}

	c.HTML(http.StatusOK, QuotesPageTemplate, page)
}

// Export downloads the filtered list as a spreadsheet. Paging is ignored.
// A failed load answers 503 since there is no table to carry the flag.
func (h *QuotesHandler) Export(c *gin.Context) {
	var q dto.QuotesQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		respondBadQuery(c, err)
		return
	}

	state := h.service.LatestQuotes(c.Request.Context(), h.identity)
	if state.Failed {
		RespondWithError(c, domain.NewUnavailableError(h.serviceName, "latest quotes could not be loaded"))
		return
	}

	var buf bytes.Buffer
	if err := export.WriteQuotes(&buf, view.Filter(state.Quotes, q.Q)); err != nil {
		RespondWithError(c, fmt.Errorf("writing quotes export: %w", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", q.ExportFilename()))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *QuotesHandler) render(c *gin.Context, q *dto.QuotesQuery) view.Table {
	state := h.service.LatestQuotes(c.Request.Context(), h.identity)

	return view.Render(view.State{
		Quotes:  state.Quotes,
		Loading: state.Loading,
		Failed:  state.Failed,
	}, q.ViewOptions(h.pageSize, h.dealsRoute))
}

// RegisterRoutes registers the JSON and export routes on api and the page
// route on pages.
func (h *QuotesHandler) RegisterRoutes(api, pages *gin.RouterGroup) {
	api.GET("/associate/quotes", h.List)
	api.GET("/associate/quotes/export.xlsx", h.Export)
	pages.GET("/associate/quotes", h.Page)
}
