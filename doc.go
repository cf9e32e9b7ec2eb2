/*
Package multistate models applications whose current position is a set of
simultaneously active states (overlapping panels, concurrent objectives,
parallel service routes) rather than a single state.

It pairs two tightly coupled pieces:

  - a phased transition executor (pkg/execution) that runs a transition
    through VALIDATE, OUTGOING, ACTIVATE, INCOMING, EXIT, VISIBILITY, and
    CLEANUP against a caller-owned active-state set, returning a
    structured delta instead of mutating anything, and
  - a multi-target pathfinder (pkg/pathfind) that searches the joint
    (configuration, targets-reached) space for a minimum-cost transition
    sequence visiting every target at least once.

Definitions are built or loaded with pkg/dsl; the Engine in this package
wires both pieces over one definition:

	b := dsl.New()
	b.State("login")
	b.State("menu")
	b.Transition("open_menu").From("login").Activate("menu").Exit("login")
	def, _ := b.Build()

	eng, _ := multistate.New(def, multistate.WithStrategy(pathfind.Dijkstra))

	start, _ := def.StateSet("login")
	targets, _ := def.StateSet("menu")
	path, _ := eng.FindPathToAll(start, targets)
	for _, t := range path.Transitions {
		res := eng.Execute(t, start)
		start = res.Apply(start)
	}

The engine holds no live active-state set; callers own their
configuration and commit deltas with TransitionResult.Apply.
*/
package multistate
