package clients

import (
	"sync"
	"time"
)

// State is the circuit breaker position.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cool-down elapses.
	StateOpen

	// StateHalfOpen admits a limited number of probes.
	StateHalfOpen
)

var stateNames = map[State]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "unknown"
}

// CircuitBreakerConfig configures the circuit breaker behavior.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures int

	// Timeout is the cool-down spent open before probing.
	Timeout time.Duration

	// HalfOpenLimit is both the probe concurrency and the number of
	// consecutive probe successes that close the circuit.
	HalfOpenLimit int
}

// Counts is a point-in-time view of the breaker's counters.
type Counts struct {
	State               State
	ConsecutiveFailures int
	ProbeSuccesses      int
	ProbesInFlight      int
}

// CircuitBreaker guards the quote service from request pile-ups while it is
// failing.
//
//	closed    --MaxFailures consecutive failures--> open
//	open      --Timeout elapsed, next Allow-->      half-open
//	half-open --HalfOpenLimit successes-->          closed
//	half-open --any failure-->                      open
type CircuitBreaker struct {
	mu       sync.RWMutex
	cfg      CircuitBreakerConfig
	counts   Counts
	openedAt time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures < 1 {
		cfg.MaxFailures = 1
	}

	if cfg.HalfOpenLimit < 1 {
		cfg.HalfOpenLimit = 1
	}

	return &CircuitBreaker{
		cfg: cfg,
		now: time.Now,
	}
}

// OnStateChange registers fn to run, asynchronously, after every transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Allow reports whether a request may proceed. Callers that get true must
// report the outcome with RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.counts.State {
	case StateClosed:
		return true
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			return false
		}

		cb.setState(StateHalfOpen)
		cb.counts.ProbesInFlight = 1

		return true
	case StateHalfOpen:
		if cb.counts.ProbesInFlight >= cb.cfg.HalfOpenLimit {
			return false
		}

		cb.counts.ProbesInFlight++

		return true
	default:
		return false
	}
}

// RecordSuccess records a successful request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.counts.State {
	case StateClosed:
		cb.counts.ConsecutiveFailures = 0
	case StateHalfOpen:
		cb.releaseProbe()
		cb.counts.ProbeSuccesses++

		if cb.counts.ProbeSuccesses >= cb.cfg.HalfOpenLimit {
			cb.setState(StateClosed)
		}
	}
}

// RecordFailure records a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.counts.State {
	case StateClosed:
		cb.counts.ConsecutiveFailures++

		if cb.counts.ConsecutiveFailures >= cb.cfg.MaxFailures {
			cb.trip()
		}
	case StateHalfOpen:
		cb.releaseProbe()
		cb.trip()
	case StateOpen:
		cb.openedAt = cb.now()
	}
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.counts.State
}

// Counts returns a copy of the breaker's counters.
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.counts
}

// trip opens the circuit. Caller holds the lock.
func (cb *CircuitBreaker) trip() {
	cb.openedAt = cb.now()
	cb.setState(StateOpen)
}

func (cb *CircuitBreaker) releaseProbe() {
	if cb.counts.ProbesInFlight > 0 {
		cb.counts.ProbesInFlight--
	}
}

// setState moves to next and resets the counters. Caller holds the lock.
func (cb *CircuitBreaker) setState(next State) {
	prev := cb.counts.State
	if prev == next {
		return
	}

	cb.counts = Counts{State: next}

	if cb.onStateChange != nil {
		go cb.onStateChange(prev, next)
	}
}
