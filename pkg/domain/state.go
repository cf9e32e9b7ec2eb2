package domain

import "sort"

// State is a named collection of elements. Multiple states can be active
// at once; the live configuration is a StateSet owned by the caller.
//
// Identity is the ID alone. Two *State values with the same ID denote the
// same state regardless of payload, and StateSet keys on ID.
type State struct {
	ID       string
	Name     string
	Elements map[string]Element

	// Group is the ID of the StateGroup this state belongs to, or empty.
	// It is wired by dsl registration; a state belongs to at most one group.
	Group string

	// InitialWeight biases initial-configuration selection in simulation.
	InitialWeight float64

	// SearchCost is an advisory per-state cost for search tuning.
	SearchCost float64

	// Blocking marks a state that, while active, vetoes activation of any
	// state outside its own group (e.g. a modal dialog).
	Blocking bool

	// Blocks lists state IDs this state explicitly blocks. Advisory data
	// for orchestration layers; the executor's veto is group-based.
	Blocks map[string]struct{}

	Metadata map[string]any
}

// NewState creates a state with the given identity and sane defaults.
func NewState(id, name string) *State {
	return &State{
		ID:            id,
		Name:          name,
		Elements:      make(map[string]Element),
		InitialWeight: 1.0,
		SearchCost:    1.0,
		Blocks:        make(map[string]struct{}),
	}
}

// AddElement adds or replaces an element on this state.
func (s *State) AddElement(e Element) {
	if s.Elements == nil {
		s.Elements = make(map[string]Element)
	}
	s.Elements[e.ID] = e
}

// RemoveElement removes an element by ID. Removing an absent element is a
// no-op.
func (s *State) RemoveElement(id string) {
	delete(s.Elements, id)
}

// HasElement reports whether the state contains an element with the given ID.
func (s *State) HasElement(id string) bool {
	_, ok := s.Elements[id]
	return ok
}

// BlockedIDs returns the explicitly blocked state IDs, sorted.
func (s *State) BlockedIDs() []string {
	ids := make([]string, 0, len(s.Blocks))
	for id := range s.Blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ToMap returns a plain map representation for logging and debugging.
func (s *State) ToMap() map[string]any {
	elems := make([]string, 0, len(s.Elements))
	for id := range s.Elements {
		elems = append(elems, id)
	}
	sort.Strings(elems)
	return map[string]any{
		"id":             s.ID,
		"name":           s.Name,
		"elements":       elems,
		"group":          s.Group,
		"initial_weight": s.InitialWeight,
		"search_cost":    s.SearchCost,
		"blocking":       s.Blocking,
		"blocks":         s.BlockedIDs(),
	}
}
