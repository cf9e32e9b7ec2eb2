package dsl

import (
	"github.com/aretw0/multistate/pkg/domain"
)

// Builder accumulates state, group, and transition declarations and
// compiles them into a Definition. Declaration order is preserved for
// transitions so that search exploration stays deterministic.
type Builder struct {
	states      []*StateBuilder
	groups      []*GroupBuilder
	transitions []*TransitionBuilder
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{}
}

// State declares a state. Redeclaring an ID returns the existing builder.
func (b *Builder) State(id string) *StateBuilder {
	for _, sb := range b.states {
		if sb.id == id {
			return sb
		}
	}
	sb := &StateBuilder{id: id, name: id, weight: 1.0, cost: 1.0}
	b.states = append(b.states, sb)
	return sb
}

// Group declares a group with the given member state IDs.
func (b *Builder) Group(id string, memberIDs ...string) *GroupBuilder {
	for _, gb := range b.groups {
		if gb.id == id {
			gb.members = append(gb.members, memberIDs...)
			return gb
		}
	}
	gb := &GroupBuilder{id: id, name: id, members: memberIDs}
	b.groups = append(b.groups, gb)
	return gb
}

// Transition declares a transition. Redeclaring an ID returns the
// existing builder.
func (b *Builder) Transition(id string) *TransitionBuilder {
	for _, tb := range b.transitions {
		if tb.id == id {
			return tb
		}
	}
	tb := &TransitionBuilder{
		id:         id,
		name:       id,
		cost:       1.0,
		visibility: domain.VisibilityInherit,
		incoming:   make(map[string]domain.Action),
	}
	b.transitions = append(b.transitions, tb)
	return tb
}

// StateBuilder declares one state.
type StateBuilder struct {
	id       string
	name     string
	elements []domain.Element
	weight   float64
	cost     float64
	blocking bool
	blocks   []string
	metadata map[string]any
}

// Name sets the human-readable name (defaults to the ID).
func (sb *StateBuilder) Name(name string) *StateBuilder {
	sb.name = name
	return sb
}

// Element adds an element to the state.
func (sb *StateBuilder) Element(id, name, typ string) *StateBuilder {
	sb.elements = append(sb.elements, domain.Element{ID: id, Name: name, Type: typ})
	return sb
}

// ElementValue adds a fully populated element to the state.
func (sb *StateBuilder) ElementValue(e domain.Element) *StateBuilder {
	sb.elements = append(sb.elements, e)
	return sb
}

// Weight sets the initial-selection weight.
func (sb *StateBuilder) Weight(w float64) *StateBuilder {
	sb.weight = w
	return sb
}

// Cost sets the advisory search cost.
func (sb *StateBuilder) Cost(c float64) *StateBuilder {
	sb.cost = c
	return sb
}

// Blocking marks the state as blocking.
func (sb *StateBuilder) Blocking() *StateBuilder {
	sb.blocking = true
	return sb
}

// Blocks records explicitly blocked state IDs.
func (sb *StateBuilder) Blocks(ids ...string) *StateBuilder {
	sb.blocks = append(sb.blocks, ids...)
	return sb
}

// Meta sets a metadata entry.
func (sb *StateBuilder) Meta(key string, value any) *StateBuilder {
	if sb.metadata == nil {
		sb.metadata = make(map[string]any)
	}
	sb.metadata[key] = value
	return sb
}

// GroupBuilder declares one state group.
type GroupBuilder struct {
	id       string
	name     string
	members  []string
	metadata map[string]any
}

// Name sets the human-readable name (defaults to the ID).
func (gb *GroupBuilder) Name(name string) *GroupBuilder {
	gb.name = name
	return gb
}

// Members appends member state IDs.
func (gb *GroupBuilder) Members(ids ...string) *GroupBuilder {
	gb.members = append(gb.members, ids...)
	return gb
}

// TransitionBuilder declares one transition.
type TransitionBuilder struct {
	id             string
	name           string
	from           []string
	activate       []string
	exit           []string
	activateGroups []string
	exitGroups     []string
	action         domain.Action
	incoming       map[string]domain.Action
	cost           float64
	visibility     domain.StaysVisible
	guard          string
	metadata       map[string]any
}

// Name sets the human-readable name (defaults to the ID).
func (tb *TransitionBuilder) Name(name string) *TransitionBuilder {
	tb.name = name
	return tb
}

// From adds required source state IDs. Leaving From empty declares a
// wildcard transition.
func (tb *TransitionBuilder) From(ids ...string) *TransitionBuilder {
	tb.from = append(tb.from, ids...)
	return tb
}

// Activate adds state IDs to activate.
func (tb *TransitionBuilder) Activate(ids ...string) *TransitionBuilder {
	tb.activate = append(tb.activate, ids...)
	return tb
}

// Exit adds state IDs to exit.
func (tb *TransitionBuilder) Exit(ids ...string) *TransitionBuilder {
	tb.exit = append(tb.exit, ids...)
	return tb
}

// ActivateGroups adds group IDs to activate atomically.
func (tb *TransitionBuilder) ActivateGroups(ids ...string) *TransitionBuilder {
	tb.activateGroups = append(tb.activateGroups, ids...)
	return tb
}

// ExitGroups adds group IDs to exit atomically.
func (tb *TransitionBuilder) ExitGroups(ids ...string) *TransitionBuilder {
	tb.exitGroups = append(tb.exitGroups, ids...)
	return tb
}

// Action sets the inline outgoing action.
func (tb *TransitionBuilder) Action(a domain.Action) *TransitionBuilder {
	tb.action = a
	return tb
}

// OnEnter sets the inline incoming action for an activated state.
func (tb *TransitionBuilder) OnEnter(stateID string, a domain.Action) *TransitionBuilder {
	tb.incoming[stateID] = a
	return tb
}

// Cost sets the base pathfinding cost.
func (tb *TransitionBuilder) Cost(c float64) *TransitionBuilder {
	tb.cost = c
	return tb
}

// Visibility sets the visibility directive.
func (tb *TransitionBuilder) Visibility(v domain.StaysVisible) *TransitionBuilder {
	tb.visibility = v
	return tb
}

// Guard sets the optional guard expression.
func (tb *TransitionBuilder) Guard(expression string) *TransitionBuilder {
	tb.guard = expression
	return tb
}

// Meta sets a metadata entry.
func (tb *TransitionBuilder) Meta(key string, value any) *TransitionBuilder {
	if tb.metadata == nil {
		tb.metadata = make(map[string]any)
	}
	tb.metadata[key] = value
	return tb
}

// Build compiles the declarations into an immutable Definition. All
// validation failures are collected and returned together as an
// AggregateError.
func (b *Builder) Build() (*Definition, error) {
	var errs []error
	fail := func(kind, id, reason string, sentinel error) {
		errs = append(errs, &ConfigError{Kind: kind, ID: id, Reason: reason, Err: sentinel})
	}

	states := make(map[string]*domain.State, len(b.states))
	for _, sb := range b.states {
		s := domain.NewState(sb.id, sb.name)
		for _, e := range sb.elements {
			s.AddElement(e)
		}
		s.InitialWeight = sb.weight
		s.SearchCost = sb.cost
		s.Blocking = sb.blocking
		for _, id := range sb.blocks {
			s.Blocks[id] = struct{}{}
		}
		s.Metadata = sb.metadata
		states[sb.id] = s
	}

	// Blocked IDs must refer to declared states.
	for _, sb := range b.states {
		for _, id := range sb.blocks {
			if _, ok := states[id]; !ok {
				fail("state", sb.id, "blocks unknown state "+id, domain.ErrUnknownReference)
			}
		}
	}

	// Group registration wires the back-reference exactly once; a second
	// group claiming the same state is a conflict, not a rewrite.
	groups := make(map[string]*domain.StateGroup, len(b.groups))
	for _, gb := range b.groups {
		g := domain.NewStateGroup(gb.id, gb.name)
		g.Metadata = gb.metadata
		for _, id := range gb.members {
			s, ok := states[id]
			if !ok {
				fail("group", gb.id, "unknown member state "+id, domain.ErrUnknownReference)
				continue
			}
			if s.Group != "" && s.Group != gb.id {
				fail("group", gb.id, "state "+id+" already belongs to group "+s.Group, domain.ErrGroupConflict)
				continue
			}
			s.Group = gb.id
			g.States.Add(s)
		}
		groups[gb.id] = g
	}

	resolveStates := func(kind, id string, ids []string) domain.StateSet {
		out := make(domain.StateSet, len(ids))
		for _, sid := range ids {
			s, ok := states[sid]
			if !ok {
				fail(kind, id, "unknown state "+sid, domain.ErrUnknownReference)
				continue
			}
			out.Add(s)
		}
		return out
	}
	resolveGroups := func(kind, id string, ids []string) []*domain.StateGroup {
		out := make([]*domain.StateGroup, 0, len(ids))
		for _, gid := range ids {
			g, ok := groups[gid]
			if !ok {
				fail(kind, id, "unknown group "+gid, domain.ErrUnknownReference)
				continue
			}
			out = append(out, g)
		}
		return out
	}

	transitions := make(map[string]*domain.Transition, len(b.transitions))
	order := make([]string, 0, len(b.transitions))
	for _, tb := range b.transitions {
		if tb.cost < 0 {
			fail("transition", tb.id, "negative cost", domain.ErrInvalidCost)
			continue
		}
		t := domain.NewTransition(tb.id, tb.name)
		t.From = resolveStates("transition", tb.id, tb.from)
		t.Activate = resolveStates("transition", tb.id, tb.activate)
		t.Exit = resolveStates("transition", tb.id, tb.exit)
		t.ActivateGroups = resolveGroups("transition", tb.id, tb.activateGroups)
		t.ExitGroups = resolveGroups("transition", tb.id, tb.exitGroups)
		t.Action = tb.action
		t.Cost = tb.cost
		t.Visibility = tb.visibility
		t.Guard = tb.guard
		t.Metadata = tb.metadata

		// Incoming actions only make sense for states this transition
		// activates.
		activated := t.StatesToActivate()
		for sid, a := range tb.incoming {
			if !activated.Contains(sid) {
				fail("transition", tb.id, "incoming action for state "+sid+" which it does not activate", domain.ErrUnknownReference)
				continue
			}
			t.IncomingActions[sid] = a
		}

		transitions[tb.id] = t
		order = append(order, tb.id)
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return &Definition{
		states:      states,
		groups:      groups,
		transitions: transitions,
		order:       order,
	}, nil
}
