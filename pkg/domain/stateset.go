package domain

import (
	"sort"
	"strings"
)

// StateSet is a set of states keyed by ID. It is the working
// representation of an active configuration and of the activate/exit
// deltas on transitions.
//
// All derived-set operations return new sets; only Add and Remove mutate
// the receiver. Callers that hand a StateSet to the executor or the
// pathfinder keep ownership: neither ever mutates its input.
type StateSet map[string]*State

// NewStateSet builds a set from the given states.
func NewStateSet(states ...*State) StateSet {
	ss := make(StateSet, len(states))
	for _, s := range states {
		ss[s.ID] = s
	}
	return ss
}

// Add inserts a state into the set.
func (ss StateSet) Add(s *State) {
	ss[s.ID] = s
}

// Remove deletes a state by ID. Removing an absent ID is a no-op.
func (ss StateSet) Remove(id string) {
	delete(ss, id)
}

// Contains reports whether the set holds a state with the given ID.
func (ss StateSet) Contains(id string) bool {
	_, ok := ss[id]
	return ok
}

// Clone returns a shallow copy of the set.
func (ss StateSet) Clone() StateSet {
	out := make(StateSet, len(ss))
	for id, s := range ss {
		out[id] = s
	}
	return out
}

// Union returns a new set with all states of both sets.
func (ss StateSet) Union(other StateSet) StateSet {
	out := ss.Clone()
	for id, s := range other {
		out[id] = s
	}
	return out
}

// Subtract returns a new set with other's states removed.
func (ss StateSet) Subtract(other StateSet) StateSet {
	out := make(StateSet, len(ss))
	for id, s := range ss {
		if !other.Contains(id) {
			out[id] = s
		}
	}
	return out
}

// Intersect returns a new set with the states present in both sets.
func (ss StateSet) Intersect(other StateSet) StateSet {
	small, large := ss, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(StateSet)
	for id, s := range small {
		if large.Contains(id) {
			out[id] = s
		}
	}
	return out
}

// Intersects reports whether the two sets share at least one state.
func (ss StateSet) Intersects(other StateSet) bool {
	small, large := ss, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if large.Contains(id) {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every state in the set is also in other.
func (ss StateSet) SubsetOf(other StateSet) bool {
	for id := range ss {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold exactly the same state IDs.
func (ss StateSet) Equal(other StateSet) bool {
	return len(ss) == len(other) && ss.SubsetOf(other)
}

// IDs returns the sorted state IDs.
func (ss StateSet) IDs() []string {
	ids := make([]string, 0, len(ss))
	for id := range ss {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Sorted returns the states ordered by ID, for deterministic iteration.
func (ss StateSet) Sorted() []*State {
	ids := ss.IDs()
	out := make([]*State, len(ids))
	for i, id := range ids {
		out[i] = ss[id]
	}
	return out
}

// Key returns a canonical string key for the set, suitable for use as a
// map key in search closed sets. Unit separator keeps IDs unambiguous.
func (ss StateSet) Key() string {
	return strings.Join(ss.IDs(), "\x1f")
}

// Names returns the sorted human-readable names, for logs and messages.
func (ss StateSet) Names() []string {
	names := make([]string, 0, len(ss))
	for _, s := range ss {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}
