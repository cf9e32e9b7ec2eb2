// Package ports defines the collaborator interfaces the core consumes.
// Implementations are injected by composition; the executor and the
// pathfinder never reach out to concrete collaborators themselves.
package ports

import (
	"time"

	"github.com/aretw0/multistate/pkg/domain"
)

// CostProvider replaces a transition's base cost during search, e.g. with
// a reliability-weighted cost. Implementations shared across concurrent
// searches must be internally synchronized.
type CostProvider interface {
	DynamicCost(transitionID string, baseCost float64) float64
}

// Callbacks supplies outgoing and incoming actions from outside the
// transition definitions. A registered callback takes priority over the
// transition's inline action for the same key.
type Callbacks interface {
	// Outgoing returns the outgoing action for a transition, if registered.
	Outgoing(transitionID string) (domain.Action, bool)
	// Incoming returns the incoming action for a (transition, state) pair,
	// if registered.
	Incoming(transitionID, stateID string) (domain.Action, bool)
}

// Recorder receives the outcome of every executed transition. Reliability
// trackers implement this to feed dynamic costs back into search.
// Implementations shared across executors must be internally synchronized.
type Recorder interface {
	Record(transitionID string, success bool, elapsed time.Duration)
}

// GuardEvaluator evaluates a transition's guard expression against an
// environment during the VALIDATE phase. Evaluation must be side-effect
// free.
type GuardEvaluator interface {
	Evaluate(expression string, env map[string]any) (bool, error)
}
