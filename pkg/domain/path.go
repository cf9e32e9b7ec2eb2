package domain

import (
	"fmt"
	"strings"
)

// Path is the result of a multi-target search: an ordered sequence of
// configuration snapshots, the transitions taken between them, the target
// set it covers, and the accumulated cost.
//
// A path with zero transitions is valid: it means every target was
// already active at the start.
type Path struct {
	States      []StateSet
	Transitions []*Transition
	Targets     StateSet
	TotalCost   float64
}

// Steps returns the number of transitions on the path.
func (p *Path) Steps() int {
	return len(p.Transitions)
}

// Complete reports whether the union of all visited configurations covers
// every target. Targets need not be simultaneously active.
func (p *Path) Complete() bool {
	visited := make(StateSet)
	for _, ss := range p.States {
		for id, s := range ss {
			visited[id] = s
		}
	}
	return p.Targets.SubsetOf(visited)
}

// String renders the path for logs and debugging.
func (p *Path) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path(%d steps, cost %.2f): ", p.Steps(), p.TotalCost)
	for i, ss := range p.States {
		if i > 0 {
			b.WriteString(" -> ")
		}
		fmt.Fprintf(&b, "[%s]", strings.Join(ss.IDs(), ", "))
	}
	return b.String()
}
