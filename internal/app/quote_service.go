// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jsamuelsen/associate-quotes/internal/ports"
)

// QuoteService mounts quote boards for incoming list views.
// It depends on port interfaces, not concrete implementations.
type QuoteService struct {
	lister  ports.QuoteLister
	metrics *BoardMetrics
	logger  *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Lister  ports.QuoteLister
	Metrics *BoardMetrics
	Logger  *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Lister == nil {
		panic("app: quote lister is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		lister:  cfg.Lister,
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

// NewBoard creates an unloaded board scoped to identity.
func (s *QuoteService) NewBoard(identity ports.IdentityProvider) *QuoteBoard {
	return NewQuoteBoard(s.lister, identity, s.metrics)
}

// LatestQuotes loads a fresh board for identity and returns its final state.
// A failed load is reported through BoardState.Failed, not as an error; the
// failure itself is logged here.
func (s *QuoteService) LatestQuotes(ctx context.Context, identity ports.IdentityProvider) BoardState {
	board := s.NewBoard(identity)
	defer board.Close()

	if err := board.Load(ctx); err != nil {
		attrs := []any{slog.Any("error", err)}
		if step, ok := GetExecutionStep(err); ok {
			attrs = append(attrs, slog.String("step", string(step)))
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, ErrBoardClosed) {
			s.logger.WarnContext(ctx, "quote load abandoned", attrs...)
		} else {
			s.logger.ErrorContext(ctx, "failed to load latest quotes", attrs...)
		}
	}

	return board.Snapshot()
}
