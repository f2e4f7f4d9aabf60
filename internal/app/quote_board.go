package app

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/jsamuelsen/associate-quotes/internal/domain"
	"github.com/jsamuelsen/associate-quotes/internal/platform/logging"
	"github.com/jsamuelsen/associate-quotes/internal/platform/telemetry"
	"github.com/jsamuelsen/associate-quotes/internal/ports"
)

var (
	// ErrAlreadyLoaded is returned by a second Load on the same board.
	ErrAlreadyLoaded = errors.New("quote board already loaded")

	// ErrBoardClosed is returned when the board was closed before its result landed.
	ErrBoardClosed = errors.New("quote board closed")
)

// BoardState is a point-in-time view of a QuoteBoard.
type BoardState struct {
	Quotes  []domain.Quote
	Loading bool
	Failed  bool
}

// QuoteBoard holds the quotes shown on one associate's list view.
// It loads at most once and is discarded with the request that created it.
type QuoteBoard struct {
	lister   ports.QuoteLister
	identity ports.IdentityProvider
	metrics  *BoardMetrics

	mu      sync.Mutex
	state   BoardState
	started bool
	closed  bool
	cancel  context.CancelFunc
}

// NewQuoteBoard creates a board in the loading state.
func NewQuoteBoard(lister ports.QuoteLister, identity ports.IdentityProvider, metrics *BoardMetrics) *QuoteBoard {
	if lister == nil {
		panic("app: quote lister is required")
	}

	if identity == nil {
		panic("app: identity provider is required")
	}

	return &QuoteBoard{
		lister:   lister,
		identity: identity,
		metrics:  metrics,
		state:    BoardState{Loading: true},
	}
}

// Load fetches the associate's latest quotes into the board.
//
// A reply carrying a data list replaces the quotes, even when empty. A reply
// without one leaves them untouched. Any failure sets the Failed flag and keeps
// the quotes. Loading is always cleared on return.
func (b *QuoteBoard) Load(ctx context.Context) (err error) {
	ctx, cancel, err := b.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	ctx, span := telemetry.StartSpan(ctx, "QuoteBoard.Load")
	defer func() { telemetry.EndSpan(span, err) }()

	outcome := OutcomeLoaded

	defer func() {
		b.mu.Lock()
		b.state.Loading = false

		if err != nil && !b.closed {
			b.state.Failed = true
		}

		if b.closed {
			outcome = OutcomeDiscarded
		}
		b.mu.Unlock()

		b.metrics.observe(outcome)
	}()

	id, err := b.identity.Identity(ctx)
	if err != nil {
		outcome = OutcomeFailed
		return stepError(StepValidate, "identity unavailable", err)
	}

	latest, err := Execute(ctx, b.loadOperation(), id)
	if err != nil {
		outcome = OutcomeFailed

		if errors.Is(err, ErrBoardClosed) {
			return ErrBoardClosed
		}

		return err
	}

	if !latest.HasData {
		outcome = OutcomeNoData
	}

	logging.FromContext(ctx).DebugContext(ctx, "quote board loaded",
		slog.String("outcome", outcome),
		slog.Int("quotes", len(latest.Quotes)),
	)

	return nil
}

func (b *QuoteBoard) begin(ctx context.Context) (context.Context, context.CancelFunc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return nil, nil, ErrAlreadyLoaded
	}

	b.started = true

	if b.closed {
		b.state.Loading = false
		return nil, nil, ErrBoardClosed
	}

	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	return ctx, cancel, nil
}

func (b *QuoteBoard) loadOperation() Operation[domain.Identity, *ports.LatestQuotes, *ports.LatestQuotes] {
	return Operation[domain.Identity, *ports.LatestQuotes, *ports.LatestQuotes]{
		Name:     "load_latest_quotes",
		Validate: validateIdentity,
		Perform: func(ctx context.Context, id domain.Identity) (*ports.LatestQuotes, error) {
			return b.lister.ListLatestQuotes(ctx, domain.FilterFor(id))
		},
		Verify: func(_ context.Context, _ domain.Identity, latest *ports.LatestQuotes) (*ports.LatestQuotes, error) {
			if latest == nil {
				return nil, domain.NewUnavailableError("quotes", "empty reply")
			}

			if !latest.HasData && len(latest.Quotes) > 0 {
				return nil, domain.NewUnavailableError("quotes", "rows without a data list")
			}

			return latest, nil
		},
		Archive: func(_ context.Context, _ domain.Identity, latest *ports.LatestQuotes) error {
			b.mu.Lock()
			defer b.mu.Unlock()

			if b.closed {
				return ErrBoardClosed
			}

			if latest.HasData {
				b.state.Quotes = slices.Clone(latest.Quotes)
				if b.state.Quotes == nil {
					b.state.Quotes = []domain.Quote{}
				}
			}

			return nil
		},
	}
}

func validateIdentity(_ context.Context, id domain.Identity) error {
	if id.CompanyID != nil && strings.TrimSpace(*id.CompanyID) == "" {
		return domain.NewValidationError("CompanyID", "must not be blank when present")
	}

	if id.AssociateID != nil && strings.TrimSpace(*id.AssociateID) == "" {
		return domain.NewValidationError("AssociateID", "must not be blank when present")
	}

	return nil
}

// Snapshot returns a copy of the current state.
func (b *QuoteBoard) Snapshot() BoardState {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state
	s.Quotes = slices.Clone(b.state.Quotes)

	return s
}

// Close cancels an in-flight load. Results arriving afterwards are dropped.
// Close is safe to call more than once.
func (b *QuoteBoard) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true

	if b.cancel != nil {
		b.cancel()
	}
}
