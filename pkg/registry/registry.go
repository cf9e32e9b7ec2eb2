// Package registry provides a thread-safe callback registry implementing
// ports.Callbacks. It is the external alternative to inline per-Transition
// action fields: hosts register side effects keyed by transition ID (and
// state ID for incoming actions) without touching the definitions.
package registry

import (
	"sync"

	"github.com/aretw0/multistate/pkg/domain"
)

type incomingKey struct {
	transitionID string
	stateID      string
}

// Registry manages externally supplied transition actions.
type Registry struct {
	mu       sync.RWMutex
	outgoing map[string]domain.Action
	incoming map[incomingKey]domain.Action
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		outgoing: make(map[string]domain.Action),
		incoming: make(map[incomingKey]domain.Action),
	}
}

// RegisterOutgoing attaches an outgoing action to a transition.
// Re-registering overwrites the previous action.
func (r *Registry) RegisterOutgoing(transitionID string, action domain.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outgoing[transitionID] = action
}

// RegisterIncoming attaches an incoming action to a (transition, state)
// pair. Re-registering overwrites the previous action.
func (r *Registry) RegisterIncoming(transitionID, stateID string, action domain.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.incoming[incomingKey{transitionID, stateID}] = action
}

// Outgoing returns the outgoing action for a transition, if registered.
func (r *Registry) Outgoing(transitionID string) (domain.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.outgoing[transitionID]
	return a, ok
}

// Incoming returns the incoming action for a (transition, state) pair, if
// registered.
func (r *Registry) Incoming(transitionID, stateID string) (domain.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.incoming[incomingKey{transitionID, stateID}]
	return a, ok
}

// Clear removes all registered actions.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outgoing = make(map[string]domain.Action)
	r.incoming = make(map[incomingKey]domain.Action)
}
