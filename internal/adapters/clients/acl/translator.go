package acl

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/associate-quotes/internal/domain"
)

// maxResponseBytes bounds how much of an upstream body is read.
const maxResponseBytes = 16 << 20

// BaseAdapter carries the client and service name shared by ACL adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a new base adapter with the given client and service name.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
	}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// PostJSON sends payload and returns the raw success body, at most
// maxResponseBytes long. Failures come back as domain errors.
func (a *BaseAdapter) PostJSON(ctx context.Context, path string, payload any, operation string, opts ...clients.RequestOption) ([]byte, error) {
	resp, err := a.client.PostJSON(ctx, path, payload, opts...)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, MapHTTPError(resp, nil, a.serviceName, operation)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domain.NewUnavailableError(a.serviceName, fmt.Sprintf("reading %s response: %v", operation, err))
	}

	return body, nil
}

// Translator converts one external DTO into a domain value.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateSlice applies translate to every item, stopping at the first error.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}
