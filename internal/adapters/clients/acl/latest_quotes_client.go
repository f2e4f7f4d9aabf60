package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/associate-quotes/internal/domain"
	"github.com/jsamuelsen/associate-quotes/internal/platform/config"
	"github.com/jsamuelsen/associate-quotes/internal/platform/logging"
	"github.com/jsamuelsen/associate-quotes/internal/ports"
)

const operationListLatest = "list latest quotes"

// LatestQuotesClientConfig configures LatestQuotesClient.
type LatestQuotesClientConfig struct {
	// Client must have its BaseURL set to the quote service.
	Client *clients.Client

	// ServiceName labels errors. Defaults to the client's name.
	ServiceName string

	// Path is the endpoint path. Defaults to config.DefaultLatestQuotesPath.
	Path string

	Logger *slog.Logger
}

// LatestQuotesClient implements ports.QuoteLister against the quote
// service's getLatestQuotes endpoint.
type LatestQuotesClient struct {
	BaseAdapter

	path   string
	logger *slog.Logger
}

var _ ports.QuoteLister = (*LatestQuotesClient)(nil)

// NewLatestQuotesClient creates the adapter. Panics if Client is nil.
func NewLatestQuotesClient(cfg LatestQuotesClientConfig) *LatestQuotesClient {
	if cfg.Client == nil {
		panic("LatestQuotesClient: Client is required")
	}

	name := cfg.ServiceName
	if name == "" {
		name = cfg.Client.Name()
	}

	path := cfg.Path
	if path == "" {
		path = config.DefaultLatestQuotesPath
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &LatestQuotesClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, name),
		path:        path,
		logger:      logger,
	}
}

// latestQuotesRequest is the upstream request body. Nil IDs are sent as null.
type latestQuotesRequest struct {
	CompanyID   *string `json:"CompanyID"`
	AssociateID *string `json:"AssociateID"`
	IsAssociate bool    `json:"isAssociate"`
}

// latestQuoteDTO is one upstream row. Never leaves this package.
type latestQuoteDTO struct {
	QuoteID         flexString `json:"QuoteID"`
	QuoteCode       flexString `json:"QuoteCode"`
	QuoteName       flexString `json:"QuoteName"`
	QuoteDate       flexString `json:"QuoteDate"`
	CompanyName     flexString `json:"CompanyName"`
	PrimaryCustomer flexString `json:"PrimaryCustomer"`
	Origin          flexString `json:"Origin"`
	ServiceType     flexString `json:"ServiceType"`
	CreatedBy       flexString `json:"CreatedBy"`
	TotalAmount     flexAmount `json:"TotalAmount"`
	QuoteStatus     flexString `json:"QuoteStatus"`
	IsApproved      flexBool   `json:"IsApproved"`
	AgeingDays      flexInt    `json:"AgeingDays"`
}

// ListLatestQuotes implements ports.QuoteLister. It sends exactly one
// request; a failed load is reported, never retried.
func (c *LatestQuotesClient) ListLatestQuotes(ctx context.Context, filter domain.LatestQuotesFilter) (*ports.LatestQuotes, error) {
	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "fetching latest quotes",
		slog.Bool("has_company", filter.CompanyID != nil),
		slog.Bool("has_associate", filter.AssociateID != nil),
	)

	body, err := c.PostJSON(ctx, c.path, latestQuotesRequest{
		CompanyID:   filter.CompanyID,
		AssociateID: filter.AssociateID,
		IsAssociate: filter.IsAssociate,
	}, operationListLatest, clients.SingleAttempt())
	if err != nil {
		return nil, err
	}

	logger.Log(ctx, logging.LevelTrace, "latest quotes response", slog.Int("bytes", len(body)))

	latest, err := c.decode(body)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "latest quotes decoded",
		slog.Bool("has_data", latest.HasData),
		slog.Int("count", len(latest.Quotes)),
	)

	return latest, nil
}

// decode reads the {"data": [...]} envelope. Well-formed JSON without a data
// list is a valid reply that carries no update.
func (c *LatestQuotesClient) decode(body []byte) (*ports.LatestQuotes, error) {
	if !json.Valid(body) {
		return nil, domain.NewUnavailableError(c.ServiceName(), "response is not valid JSON")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &ports.LatestQuotes{}, nil //nolint:nilerr // non-object JSON carries no data list
	}

	data := bytes.TrimSpace(envelope["data"])
	if len(data) == 0 || data[0] != '[' {
		return &ports.LatestQuotes{}, nil
	}

	var rows []latestQuoteDTO
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), fmt.Sprintf("decoding quotes: %v", err))
	}

	quotes, err := TranslateSlice(rows, translateQuote)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), err.Error())
	}

	return &ports.LatestQuotes{Quotes: quotes, HasData: true}, nil
}

// translateQuote maps one upstream row to the domain record.
func translateQuote(ext *latestQuoteDTO) (domain.Quote, error) {
	return domain.Quote{
		QuoteID:         ext.QuoteID.Value,
		QuoteCode:       ext.QuoteCode.Ptr(),
		QuoteName:       ext.QuoteName.Ptr(),
		QuoteDate:       ext.QuoteDate.Value,
		CompanyName:     ext.CompanyName.Value,
		PrimaryCustomer: ext.PrimaryCustomer.Value,
		Origin:          ext.Origin.Ptr(),
		ServiceType:     ext.ServiceType.Value,
		CreatedBy:       ext.CreatedBy.Value,
		TotalAmount:     ext.TotalAmount.Amount,
		QuoteStatus:     ext.QuoteStatus.Value,
		IsApproved:      bool(ext.IsApproved),
		AgeingDays:      ext.AgeingDays.Ptr(),
	}, nil
}
