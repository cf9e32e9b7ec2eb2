// Package reliability tracks per-transition success history and turns it
// into dynamic pathfinding costs: unreliable transitions get more
// expensive, so search routes around them.
//
// Tracker implements both ports.Recorder (fed by the executor after every
// run) and ports.CostProvider (consulted by the pathfinder). All methods
// are safe for concurrent use.
package reliability

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// Stats holds the execution statistics of one transition.
type Stats struct {
	TransitionID string
	Successes    int
	Failures     int
	TotalTime    time.Duration
	LastSuccess  time.Time
	LastFailure  time.Time
}

// Attempts returns the total number of recorded executions.
func (s Stats) Attempts() int {
	return s.Successes + s.Failures
}

// SuccessRate returns the fraction of successful executions, or 1.0 when
// nothing has been recorded yet.
func (s Stats) SuccessRate() float64 {
	if s.Attempts() == 0 {
		return 1.0
	}
	return float64(s.Successes) / float64(s.Attempts())
}

// FailureRate returns 1 minus the success rate.
func (s Stats) FailureRate() float64 {
	return 1.0 - s.SuccessRate()
}

// AverageTime returns the mean execution time across all attempts.
func (s Stats) AverageTime() time.Duration {
	if s.Attempts() == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Attempts())
}

// Tracker accumulates stats and derives costs. The cost multiplier is
//
//	clamp(1 + failureRate*(penalty-1), minMultiplier, maxMultiplier)
//
// so a fully reliable transition keeps its base cost and a fully failing
// one costs base*penalty, capped by maxMultiplier.
type Tracker struct {
	mu    sync.Mutex
	stats map[string]*Stats

	penalty       float64
	minMultiplier float64
	maxMultiplier float64
	logger        *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithPenalty sets the cost multiplier applied at a 100% failure rate.
func WithPenalty(p float64) Option {
	return func(t *Tracker) { t.penalty = p }
}

// WithMultiplierBounds clamps the derived multiplier to [min, max].
func WithMultiplierBounds(min, max float64) Option {
	return func(t *Tracker) {
		t.minMultiplier = min
		t.maxMultiplier = max
	}
}

// WithLogger sets the logger used for per-record debug output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// New creates a tracker with a penalty of 2 and multiplier bounds [1, 10].
func New(opts ...Option) *Tracker {
	t := &Tracker{
		stats:         make(map[string]*Stats),
		penalty:       2.0,
		minMultiplier: 1.0,
		maxMultiplier: 10.0,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record registers one execution outcome. It satisfies ports.Recorder.
func (t *Tracker) Record(transitionID string, success bool, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.get(transitionID)
	s.TotalTime += elapsed
	if success {
		s.Successes++
		s.LastSuccess = time.Now()
		t.logger.Debug("transition succeeded",
			"transition", transitionID, "success_rate", s.SuccessRate())
	} else {
		s.Failures++
		s.LastFailure = time.Now()
		t.logger.Warn("transition failed",
			"transition", transitionID, "success_rate", s.SuccessRate())
	}
}

// DynamicCost returns the reliability-adjusted cost for a transition. It
// satisfies ports.CostProvider. With no recorded history the base cost is
// returned unchanged.
func (t *Tracker) DynamicCost(transitionID string, baseCost float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.get(transitionID)
	if s.Attempts() == 0 {
		return baseCost
	}
	multiplier := 1.0 + s.FailureRate()*(t.penalty-1.0)
	if multiplier < t.minMultiplier {
		multiplier = t.minMultiplier
	}
	if multiplier > t.maxMultiplier {
		multiplier = t.maxMultiplier
	}
	return baseCost * multiplier
}

// Stats returns a copy of the stats for one transition.
func (t *Tracker) Stats(transitionID string) Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.get(transitionID)
}

// AllStats returns a copy of the stats for every tracked transition.
func (t *Tracker) AllStats() map[string]Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]Stats, len(t.stats))
	for id, s := range t.stats {
		out[id] = *s
	}
	return out
}

// Reset forgets all history for one transition.
func (t *Tracker) Reset(transitionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.stats, transitionID)
}

// get returns the stats entry for an ID, creating it if needed.
// Callers must hold the lock.
func (t *Tracker) get(transitionID string) *Stats {
	s, ok := t.stats[transitionID]
	if !ok {
		s = &Stats{TransitionID: transitionID}
		t.stats[transitionID] = s
	}
	return s
}
