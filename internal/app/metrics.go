package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes recorded by BoardMetrics.
const (
	OutcomeLoaded    = "loaded"
	OutcomeNoData    = "no_data"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

// BoardMetrics counts quote board loads by outcome.
// A nil *BoardMetrics records nothing.
type BoardMetrics struct {
	loads *prometheus.CounterVec
}

// NewBoardMetrics registers the board collectors with reg.
// Pass prometheus.DefaultRegisterer to expose them on /-/metrics.
func NewBoardMetrics(reg prometheus.Registerer) *BoardMetrics {
	return &BoardMetrics{
		loads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "quote_board_loads_total",
			Help: "Quote board loads by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *BoardMetrics) observe(outcome string) {
	if m == nil {
		return
	}

	m.loads.WithLabelValues(outcome).Inc()
}
