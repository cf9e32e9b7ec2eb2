package domain

import "sort"

// Action is a nullary side effect attached to a transition. A nil error
// means success. Actions run during the OUTGOING and INCOMING phases of
// execution and are never invoked by the pathfinder.
type Action func() error

// StaysVisible directs whether a transition's surviving source states
// remain visible afterwards. The directive is advisory: the VISIBILITY
// phase reports show/hide sets, committing them is up to the caller.
type StaysVisible string

const (
	// VisibilityInherit emits no directive; the surrounding container or
	// default policy decides.
	VisibilityInherit StaysVisible = "inherit"
	// VisibilityShow marks surviving source states to stay visible.
	VisibilityShow StaysVisible = "show_source"
	// VisibilityHide marks surviving source states as hidden.
	VisibilityHide StaysVisible = "hide_source"
)

// Transition declaratively describes a delta against an active
// configuration: which states must be active for it to fire, which states
// and groups it activates, which it exits, and the actions that run along
// the way.
type Transition struct {
	ID   string
	Name string

	// From holds the states this transition can fire from. The set is a
	// disjunction: one active member is enough. Empty means wildcard: the
	// transition fires from any configuration.
	From StateSet

	Activate StateSet
	Exit     StateSet

	// ActivateGroups and ExitGroups are expanded into the derived
	// activate/exit sets; groups keep their members moving as one unit.
	ActivateGroups []*StateGroup
	ExitGroups     []*StateGroup

	// Action is the outgoing action, run before any state mutation. An
	// external callback registry entry for this transition takes priority.
	Action Action

	// IncomingActions maps activated state IDs to per-state actions, each
	// run exactly once when the state is activated by this transition.
	IncomingActions map[string]Action

	// Cost is the base pathfinding cost. Must be non-negative.
	Cost float64

	Visibility StaysVisible

	// Guard is an optional boolean expression evaluated during VALIDATE
	// against the active configuration and this transition's metadata.
	// Empty means always allowed.
	Guard string

	Metadata map[string]any
}

// NewTransition creates a transition with the given identity, unit cost,
// and inherit visibility.
func NewTransition(id, name string) *Transition {
	return &Transition{
		ID:              id,
		Name:            name,
		From:            make(StateSet),
		Activate:        make(StateSet),
		Exit:            make(StateSet),
		IncomingActions: make(map[string]Action),
		Cost:            1.0,
		Visibility:      VisibilityInherit,
	}
}

// CanFire reports whether the transition is eligible from the given
// configuration: wildcard, or at least one required source is active.
// This is the shared precondition of the executor's VALIDATE phase and
// the pathfinder's successor enumeration.
func (t *Transition) CanFire(active StateSet) bool {
	if len(t.From) == 0 {
		return true
	}
	return t.From.Intersects(active)
}

// StatesToActivate returns the full derived activate set: the individual
// states plus every member of the activate groups.
func (t *Transition) StatesToActivate() StateSet {
	all := t.Activate.Clone()
	for _, g := range t.ActivateGroups {
		for id, s := range g.States {
			all[id] = s
		}
	}
	return all
}

// StatesToExit returns the full derived exit set, group members included.
func (t *Transition) StatesToExit() StateSet {
	all := t.Exit.Clone()
	for _, g := range t.ExitGroups {
		for id, s := range g.States {
			all[id] = s
		}
	}
	return all
}

// SurvivingSources returns the source states that remain active after the
// transition (From minus the derived exit set). The VISIBILITY phase
// applies its directive to exactly this set.
func (t *Transition) SurvivingSources() StateSet {
	return t.From.Subtract(t.StatesToExit())
}

// IncomingActionFor returns the inline incoming action for a state, if any.
func (t *Transition) IncomingActionFor(stateID string) (Action, bool) {
	a, ok := t.IncomingActions[stateID]
	return a, ok
}

// ToMap returns a plain map representation for logging and debugging.
func (t *Transition) ToMap() map[string]any {
	groupIDs := func(groups []*StateGroup) []string {
		ids := make([]string, 0, len(groups))
		for _, g := range groups {
			ids = append(ids, g.ID)
		}
		sort.Strings(ids)
		return ids
	}
	incoming := make([]string, 0, len(t.IncomingActions))
	for id := range t.IncomingActions {
		incoming = append(incoming, id)
	}
	sort.Strings(incoming)
	return map[string]any{
		"id":              t.ID,
		"name":            t.Name,
		"from":            t.From.IDs(),
		"activate":        t.Activate.IDs(),
		"exit":            t.Exit.IDs(),
		"activate_groups": groupIDs(t.ActivateGroups),
		"exit_groups":     groupIDs(t.ExitGroups),
		"cost":            t.Cost,
		"visibility":      string(t.Visibility),
		"guard":           t.Guard,
		"has_action":      t.Action != nil,
		"incoming":        incoming,
	}
}
