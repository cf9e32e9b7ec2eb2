package dsl

import (
	"fmt"
	"sort"

	"github.com/aretw0/multistate/pkg/domain"
)

// Definition is a validated, immutable multistate model: states and
// groups by ID, transitions in declaration order. It owns no runtime
// state; the live active configuration belongs to the caller.
type Definition struct {
	states      map[string]*domain.State
	groups      map[string]*domain.StateGroup
	transitions map[string]*domain.Transition
	order       []string
}

// State looks up a state by ID.
func (d *Definition) State(id string) (*domain.State, bool) {
	s, ok := d.states[id]
	return s, ok
}

// Group looks up a group by ID.
func (d *Definition) Group(id string) (*domain.StateGroup, bool) {
	g, ok := d.groups[id]
	return g, ok
}

// Transition looks up a transition by ID.
func (d *Definition) Transition(id string) (*domain.Transition, bool) {
	t, ok := d.transitions[id]
	return t, ok
}

// States returns all states sorted by ID.
func (d *Definition) States() []*domain.State {
	ids := make([]string, 0, len(d.states))
	for id := range d.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*domain.State, len(ids))
	for i, id := range ids {
		out[i] = d.states[id]
	}
	return out
}

// Groups returns all groups sorted by ID.
func (d *Definition) Groups() []*domain.StateGroup {
	ids := make([]string, 0, len(d.groups))
	for id := range d.groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*domain.StateGroup, len(ids))
	for i, id := range ids {
		out[i] = d.groups[id]
	}
	return out
}

// Transitions returns all transitions in declaration order.
func (d *Definition) Transitions() []*domain.Transition {
	out := make([]*domain.Transition, len(d.order))
	for i, id := range d.order {
		out[i] = d.transitions[id]
	}
	return out
}

// StateSet resolves state IDs into a configuration set. Unknown IDs
// return an error; this is the entry point callers use to express start
// configurations and target sets by name.
func (d *Definition) StateSet(ids ...string) (domain.StateSet, error) {
	out := make(domain.StateSet, len(ids))
	for _, id := range ids {
		s, ok := d.states[id]
		if !ok {
			return nil, fmt.Errorf("state %q: %w", id, domain.ErrUnknownReference)
		}
		out.Add(s)
	}
	return out, nil
}
