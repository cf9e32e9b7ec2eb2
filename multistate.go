package multistate

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/multistate/internal/logging"
	"github.com/aretw0/multistate/pkg/domain"
	"github.com/aretw0/multistate/pkg/dsl"
	"github.com/aretw0/multistate/pkg/execution"
	"github.com/aretw0/multistate/pkg/guard"
	"github.com/aretw0/multistate/pkg/pathfind"
	"github.com/aretw0/multistate/pkg/ports"
)

// Engine is the high-level entry point. It wires a transition executor
// and a pathfinder over one validated definition. The engine never owns
// the live active-state set; every method takes the caller's
// configuration and returns deltas or plans against it.
type Engine struct {
	def      *dsl.Definition
	executor *execution.Executor
	finder   *pathfind.PathFinder
	logger   *slog.Logger
}

type config struct {
	logger       *slog.Logger
	policy       execution.SuccessPolicy
	threshold    float64
	atomicity    bool
	strategy     pathfind.Strategy
	budget       int
	callbacks    ports.Callbacks
	recorder     ports.Recorder
	costs        ports.CostProvider
	guardEval    ports.GuardEvaluator
	hooks        execution.Hooks
	hooksSet     bool
	guardEvalSet bool
}

// Option configures an Engine.
type Option func(*config)

// WithLogger sets a structured logger for the executor and pathfinder.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSuccessPolicy sets the INCOMING phase success policy.
func WithSuccessPolicy(p execution.SuccessPolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithThreshold sets the ratio required by the threshold policy.
func WithThreshold(ratio float64) Option {
	return func(c *config) { c.threshold = ratio }
}

// WithoutAtomicityCheck disables pre-commit group atomicity validation.
func WithoutAtomicityCheck() Option {
	return func(c *config) { c.atomicity = false }
}

// WithStrategy selects the search strategy. Default is BFS.
func WithStrategy(s pathfind.Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithSearchBudget bounds node expansions per search call.
func WithSearchBudget(n int) Option {
	return func(c *config) { c.budget = n }
}

// WithCallbacks sets the external action registry.
func WithCallbacks(cb ports.Callbacks) Option {
	return func(c *config) { c.callbacks = cb }
}

// WithRecorder sets the collaborator receiving execution outcomes. Pass a
// *reliability.Tracker here and to WithCostProvider to make search prefer
// reliable transitions.
func WithRecorder(r ports.Recorder) Option {
	return func(c *config) { c.recorder = r }
}

// WithCostProvider replaces base transition costs during search.
func WithCostProvider(cp ports.CostProvider) Option {
	return func(c *config) { c.costs = cp }
}

// WithGuardEvaluator replaces the default expression evaluator for
// transition guards.
func WithGuardEvaluator(g ports.GuardEvaluator) Option {
	return func(c *config) {
		c.guardEval = g
		c.guardEvalSet = true
	}
}

// WithHooks sets executor observability hooks.
func WithHooks(h execution.Hooks) Option {
	return func(c *config) {
		c.hooks = h
		c.hooksSet = true
	}
}

// New creates an engine over a validated definition.
func New(def *dsl.Definition, opts ...Option) (*Engine, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is required")
	}

	cfg := &config{
		logger:    logging.NewNop(),
		policy:    execution.PolicyStrict,
		threshold: 0.8,
		atomicity: true,
		strategy:  pathfind.BFS,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.guardEvalSet {
		cfg.guardEval = guard.New()
	}

	execOpts := []execution.Option{
		execution.WithPolicy(cfg.policy),
		execution.WithThreshold(cfg.threshold),
		execution.WithGroups(def.Groups()...),
		execution.WithLogger(cfg.logger),
	}
	if !cfg.atomicity {
		execOpts = append(execOpts, execution.WithoutAtomicityCheck())
	}
	if cfg.callbacks != nil {
		execOpts = append(execOpts, execution.WithCallbacks(cfg.callbacks))
	}
	if cfg.recorder != nil {
		execOpts = append(execOpts, execution.WithRecorder(cfg.recorder))
	}
	if cfg.guardEval != nil {
		execOpts = append(execOpts, execution.WithGuardEvaluator(cfg.guardEval))
	}
	if cfg.hooksSet {
		execOpts = append(execOpts, execution.WithHooks(cfg.hooks))
	}

	findOpts := []pathfind.Option{
		pathfind.WithStrategy(cfg.strategy),
		pathfind.WithLogger(cfg.logger),
	}
	if cfg.budget > 0 {
		findOpts = append(findOpts, pathfind.WithBudget(cfg.budget))
	}
	if cfg.costs != nil {
		findOpts = append(findOpts, pathfind.WithCostProvider(cfg.costs))
	}

	return &Engine{
		def:      def,
		executor: execution.New(execOpts...),
		finder:   pathfind.New(def.Transitions(), findOpts...),
		logger:   cfg.logger,
	}, nil
}

// Definition returns the engine's immutable definition.
func (e *Engine) Definition() *dsl.Definition {
	return e.def
}

// CanExecute reports whether the transition passes the structural
// VALIDATE checks against the given configuration.
func (e *Engine) CanExecute(t *domain.Transition, active domain.StateSet) bool {
	return e.executor.CanExecute(t, active)
}

// Execute runs one transition through the phase protocol. The caller's
// set is never mutated; commit the returned delta with result.Apply.
func (e *Engine) Execute(t *domain.Transition, active domain.StateSet) *domain.TransitionResult {
	return e.executor.Execute(t, active)
}

// Project returns the what-if configuration after the transition, with no
// side effects.
func (e *Engine) Project(t *domain.Transition, active domain.StateSet) domain.StateSet {
	return e.executor.Project(t, active)
}

// FindPathToAll searches for a minimum-cost transition sequence covering
// every target. A nil path with nil error means no covering path exists.
func (e *Engine) FindPathToAll(current, targets domain.StateSet) (*domain.Path, error) {
	return e.finder.FindPathToAll(current, targets)
}

// EstimateComplexity reports the theoretical joint search-space size for
// a model of the given dimensions.
func (e *Engine) EstimateComplexity(numStates, numTargets int) pathfind.ComplexityReport {
	return pathfind.EstimateComplexity(numStates, numTargets)
}
