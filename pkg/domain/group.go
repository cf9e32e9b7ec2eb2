package domain

// StateGroup is a set of states bound by an atomicity contract: against
// any active configuration the group is either fully active or fully
// inactive. A state belongs to at most one group; membership is wired by
// dsl registration, which rejects conflicts instead of silently rewriting
// the state's Group field.
type StateGroup struct {
	ID       string
	Name     string
	States   StateSet
	Metadata map[string]any
}

// NewStateGroup creates an empty group with the given identity.
func NewStateGroup(id, name string) *StateGroup {
	return &StateGroup{
		ID:     id,
		Name:   name,
		States: make(StateSet),
	}
}

// FullyActive reports whether every member is in the active set.
func (g *StateGroup) FullyActive(active StateSet) bool {
	return g.States.SubsetOf(active)
}

// FullyInactive reports whether no member is in the active set.
func (g *StateGroup) FullyInactive(active StateSet) bool {
	return !g.States.Intersects(active)
}

// Atomic reports whether the atomicity contract holds against the given
// configuration: the group is fully active or fully inactive.
func (g *StateGroup) Atomic(active StateSet) bool {
	return g.FullyActive(active) || g.FullyInactive(active)
}

// ToMap returns a plain map representation for logging and debugging.
func (g *StateGroup) ToMap() map[string]any {
	return map[string]any{
		"id":     g.ID,
		"name":   g.Name,
		"states": g.States.IDs(),
	}
}
