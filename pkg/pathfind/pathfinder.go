// Package pathfind searches for a minimum-cost transition sequence that
// reaches every state in a target set, not just one. The search state is
// the pair (active configuration, targets reached): a target counts as
// reached the moment it is visited and stays reached even if a later
// transition exits it. Tracking that progress alongside the configuration
// is what makes the joint space finite and the closed set correct, and
// what makes the space O(V * 2^k) in the number of targets k.
//
// Successor generation reuses the same activate/exit set algebra as the
// executor but deliberately runs none of its side-effecting phases; a
// plan is a structural projection, replayed through the executor one
// transition at a time.
package pathfind

import (
	"container/heap"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/aretw0/multistate/pkg/domain"
	"github.com/aretw0/multistate/pkg/ports"
)

// Strategy selects the search algorithm.
type Strategy string

const (
	// BFS minimizes the number of transitions, ignoring costs.
	BFS Strategy = "bfs"
	// Dijkstra minimizes accumulated cost. Requires non-negative costs.
	Dijkstra Strategy = "dijkstra"
	// AStar is Dijkstra with an admissible heuristic: the number of
	// transitions still needed to cover the unreached targets (their count
	// divided by the largest activate set any transition carries, rounded
	// up) scaled by the minimum base transition cost. A cost provider that
	// lowers costs below the minimum base cost can break admissibility;
	// prefer Dijkstra there.
	AStar Strategy = "astar"
)

// ErrBudgetExhausted reports that the search hit its node-expansion
// budget before covering all targets. It is an explicit aborted outcome,
// distinct from "no path exists".
var ErrBudgetExhausted = errors.New("search budget exhausted")

// DefaultBudget bounds node expansions per search call.
const DefaultBudget = 1 << 20

// PathFinder searches over a fixed transition set. It holds no per-search
// state and is safe for concurrent FindPathToAll calls as long as the
// definitions are not mutated and any shared cost provider synchronizes
// itself.
type PathFinder struct {
	transitions []*domain.Transition
	strategy    Strategy
	costs       ports.CostProvider
	budget      int
	logger      *slog.Logger

	// minBaseCost and maxActivate feed the A* heuristic.
	minBaseCost float64
	maxActivate int
}

// Option configures a PathFinder.
type Option func(*PathFinder)

// WithStrategy selects the search algorithm. Default is BFS.
func WithStrategy(s Strategy) Option {
	return func(pf *PathFinder) { pf.strategy = s }
}

// WithCostProvider replaces base transition costs during search.
func WithCostProvider(cp ports.CostProvider) Option {
	return func(pf *PathFinder) { pf.costs = cp }
}

// WithBudget sets the node-expansion budget. Values below 1 keep the
// default.
func WithBudget(n int) Option {
	return func(pf *PathFinder) {
		if n > 0 {
			pf.budget = n
		}
	}
}

// WithLogger sets a structured logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(pf *PathFinder) { pf.logger = l }
}

// New creates a pathfinder over the given transitions.
func New(transitions []*domain.Transition, opts ...Option) *PathFinder {
	pf := &PathFinder{
		transitions: transitions,
		strategy:    BFS,
		budget:      DefaultBudget,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(pf)
	}
	pf.minBaseCost = math.Inf(1)
	for _, t := range transitions {
		if t.Cost < pf.minBaseCost {
			pf.minBaseCost = t.Cost
		}
		if n := len(t.StatesToActivate()); n > pf.maxActivate {
			pf.maxActivate = n
		}
	}
	if math.IsInf(pf.minBaseCost, 1) {
		pf.minBaseCost = 0
	}
	return pf
}

// node lives in a per-search arena; parents are arena indices, not
// pointers, so reconstruction walks integers instead of a shared tree.
type node struct {
	active  domain.StateSet
	reached domain.StateSet
	via     *domain.Transition
	parent  int
	cost    float64
	depth   int
}

func (n *node) key() string {
	return n.active.Key() + "|" + n.reached.Key()
}

// FindPathToAll searches for a transition sequence from current whose
// visited configurations jointly cover every target.
//
// A nil path with a nil error means no covering path exists. A nil path
// with ErrBudgetExhausted means the search was aborted. If all targets
// are already active, the result is an immediate zero-step, zero-cost
// path.
func (pf *PathFinder) FindPathToAll(current, targets domain.StateSet) (*domain.Path, error) {
	if targets.SubsetOf(current) {
		return &domain.Path{
			States:  []domain.StateSet{current.Clone()},
			Targets: targets.Clone(),
		}, nil
	}

	var (
		path *domain.Path
		err  error
	)
	switch pf.strategy {
	case Dijkstra:
		path, err = pf.weightedSearch(current, targets, false)
	case AStar:
		path, err = pf.weightedSearch(current, targets, true)
	default:
		path, err = pf.bfsSearch(current, targets)
	}
	if err != nil {
		pf.logger.Warn("search aborted", "budget", pf.budget, "targets", targets.IDs())
		return nil, err
	}
	if path == nil {
		pf.logger.Debug("no covering path", "targets", targets.IDs())
		return nil, nil
	}
	pf.logger.Debug("path found",
		"steps", path.Steps(), "cost", path.TotalCost, "strategy", string(pf.strategy))
	return path, nil
}

func (pf *PathFinder) bfsSearch(current, targets domain.StateSet) (*domain.Path, error) {
	arena := []node{{
		active:  current.Clone(),
		reached: targets.Intersect(current),
		parent:  -1,
	}}
	visited := map[string]bool{arena[0].key(): true}
	queue := []int{0}

	expanded := 0
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		n := arena[idx]

		if n.reached.Equal(targets) {
			return reconstruct(arena, idx, targets), nil
		}
		expanded++
		if expanded > pf.budget {
			return nil, ErrBudgetExhausted
		}

		for _, t := range pf.candidates(n.active) {
			child := pf.successor(&n, idx, t, targets)
			k := child.key()
			if visited[k] {
				continue
			}
			visited[k] = true
			arena = append(arena, child)
			queue = append(queue, len(arena)-1)
		}
	}
	return nil, nil
}

// weightedSearch implements Dijkstra and, with useHeuristic, A*. Instead
// of decrease-key it re-pushes improved nodes and skips stale heap
// entries via the closed set.
func (pf *PathFinder) weightedSearch(current, targets domain.StateSet, useHeuristic bool) (*domain.Path, error) {
	// Each transition covers at most maxActivate targets and costs at
	// least minBaseCost, so ceil(remaining/maxActivate) transitions is a
	// lower bound on the work left and the estimate never overshoots.
	h := func(n *node) float64 {
		if !useHeuristic || pf.maxActivate == 0 {
			return 0
		}
		remaining := len(targets) - len(n.reached)
		steps := (remaining + pf.maxActivate - 1) / pf.maxActivate
		return float64(steps) * pf.minBaseCost
	}

	arena := []node{{
		active:  current.Clone(),
		reached: targets.Intersect(current),
		parent:  -1,
	}}
	closed := make(map[string]bool)
	best := map[string]float64{arena[0].key(): 0}

	pq := &frontier{}
	heap.Init(pq)
	heap.Push(pq, frontierItem{priority: h(&arena[0]), idx: 0})

	expanded := 0
	for pq.Len() > 0 {
		item := heap.Pop(pq).(frontierItem)
		n := arena[item.idx]
		k := n.key()
		if closed[k] {
			continue
		}
		closed[k] = true

		if n.reached.Equal(targets) {
			return reconstruct(arena, item.idx, targets), nil
		}
		expanded++
		if expanded > pf.budget {
			return nil, ErrBudgetExhausted
		}

		for _, t := range pf.candidates(n.active) {
			child := pf.successor(&n, item.idx, t, targets)
			ck := child.key()
			if closed[ck] {
				continue
			}
			if b, ok := best[ck]; ok && child.cost >= b {
				continue
			}
			best[ck] = child.cost
			arena = append(arena, child)
			heap.Push(pq, frontierItem{
				priority: child.cost + h(&child),
				idx:      len(arena) - 1,
			})
		}
	}
	return nil, nil
}

// candidates returns the transitions eligible to fire, in declaration
// order for deterministic exploration.
func (pf *PathFinder) candidates(active domain.StateSet) []*domain.Transition {
	out := make([]*domain.Transition, 0, len(pf.transitions))
	for _, t := range pf.transitions {
		if t.CanFire(active) {
			out = append(out, t)
		}
	}
	return out
}

// successor applies a transition as pure set algebra: remove the exit
// set, add the activate set, fold newly visited targets into the
// permanent reached set.
func (pf *PathFinder) successor(n *node, parentIdx int, t *domain.Transition, targets domain.StateSet) node {
	next := n.active.Subtract(t.StatesToExit()).Union(t.StatesToActivate())
	return node{
		active:  next,
		reached: n.reached.Union(targets.Intersect(next)),
		via:     t,
		parent:  parentIdx,
		cost:    n.cost + pf.cost(t),
		depth:   n.depth + 1,
	}
}

func (pf *PathFinder) cost(t *domain.Transition) float64 {
	if pf.costs != nil {
		return pf.costs.DynamicCost(t.ID, t.Cost)
	}
	return t.Cost
}

// reconstruct walks parent indices from the goal node back to the root
// and emits the forward snapshot and transition sequences.
func reconstruct(arena []node, goal int, targets domain.StateSet) *domain.Path {
	var order []int
	for i := goal; i >= 0; i = arena[i].parent {
		order = append(order, i)
	}
	path := &domain.Path{
		Targets:   targets.Clone(),
		TotalCost: arena[goal].cost,
	}
	for i := len(order) - 1; i >= 0; i-- {
		n := arena[order[i]]
		path.States = append(path.States, n.active)
		if n.via != nil {
			path.Transitions = append(path.Transitions, n.via)
		}
	}
	return path
}

// frontier is the priority queue for weighted search. seq breaks cost
// ties in insertion order so runs are deterministic.
type frontierItem struct {
	priority float64
	seq      int
	idx      int
}

type frontier struct {
	items []frontierItem
	seq   int
}

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool {
	if f.items[i].priority != f.items[j].priority {
		return f.items[i].priority < f.items[j].priority
	}
	return f.items[i].seq < f.items[j].seq
}

func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) {
	item := x.(frontierItem)
	item.seq = f.seq
	f.seq++
	f.items = append(f.items, item)
}

func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	item := old[n-1]
	f.items = old[:n-1]
	return item
}

var _ heap.Interface = (*frontier)(nil)

// String implements fmt.Stringer for strategy values in logs and flags.
func (s Strategy) String() string { return string(s) }

// ParseStrategy maps a string to a Strategy, defaulting to BFS.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case BFS, Dijkstra, AStar:
		return Strategy(s), nil
	case "":
		return BFS, nil
	default:
		return "", fmt.Errorf("unknown strategy %q", s)
	}
}
