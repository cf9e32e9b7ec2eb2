package multistate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/multistate"
	"github.com/aretw0/multistate/pkg/domain"
	"github.com/aretw0/multistate/pkg/dsl"
	"github.com/aretw0/multistate/pkg/execution"
	"github.com/aretw0/multistate/pkg/pathfind"
	"github.com/aretw0/multistate/pkg/registry"
	"github.com/aretw0/multistate/pkg/reliability"
)

// appDefinition models a small application shell: login, a menu, a
// two-state workspace group, and a blocking error dialog.
func appDefinition(t *testing.T) *dsl.Definition {
	t.Helper()
	b := dsl.New()
	b.State("login").Name("Login")
	b.State("menu").Name("Main Menu")
	b.State("toolbar")
	b.State("sidebar")
	b.State("error_dialog").Name("Error").Blocking()
	b.Group("workspace", "toolbar", "sidebar")

	b.Transition("log_in").From("login").Activate("menu").Exit("login")
	b.Transition("open_workspace").From("menu").ActivateGroups("workspace").Cost(2)
	b.Transition("close_workspace").From("toolbar").ExitGroups("workspace")
	b.Transition("show_error").Activate("error_dialog")

	def, err := b.Build()
	require.NoError(t, err)
	return def
}

func TestEngine_RequiresDefinition(t *testing.T) {
	_, err := multistate.New(nil)
	assert.Error(t, err)
}

func TestEngine_PlanAndReplay(t *testing.T) {
	def := appDefinition(t)
	engine, err := multistate.New(def, multistate.WithStrategy(pathfind.Dijkstra))
	require.NoError(t, err)

	start, err := def.StateSet("login")
	require.NoError(t, err)
	targets, err := def.StateSet("toolbar", "sidebar")
	require.NoError(t, err)

	path, err := engine.FindPathToAll(start, targets)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, 2, path.Steps())
	assert.InDelta(t, 3.0, path.TotalCost, 1e-9)

	// Replay the plan through the executor, committing each delta.
	active := start
	for _, tr := range path.Transitions {
		res := engine.Execute(tr, active)
		require.True(t, res.Success, "replaying %s", tr.ID)
		active = res.Apply(active)
	}
	assert.True(t, targets.SubsetOf(active))
	assert.False(t, active.Contains("login"))
}

func TestEngine_BlockingDialogVetoes(t *testing.T) {
	def := appDefinition(t)
	engine, err := multistate.New(def)
	require.NoError(t, err)

	active, err := def.StateSet("menu", "error_dialog")
	require.NoError(t, err)
	open, _ := def.Transition("open_workspace")

	assert.False(t, engine.CanExecute(open, active))
	res := engine.Execute(open, active)
	assert.False(t, res.Success)
}

func TestEngine_GroupsExitAtomically(t *testing.T) {
	def := appDefinition(t)
	engine, err := multistate.New(def)
	require.NoError(t, err)

	active, err := def.StateSet("toolbar", "sidebar")
	require.NoError(t, err)
	closeWS, _ := def.Transition("close_workspace")

	res := engine.Execute(closeWS, active)
	require.True(t, res.Success)
	next := res.Apply(active)
	assert.Empty(t, next.IDs())
}

func TestEngine_GuardsEvaluateByDefault(t *testing.T) {
	b := dsl.New()
	b.State("draft")
	b.State("published")
	b.Transition("publish").From("draft").Activate("published").Exit("draft").
		Guard(`meta.reviewed == true`).Meta("reviewed", false)
	def, err := b.Build()
	require.NoError(t, err)

	engine, err := multistate.New(def)
	require.NoError(t, err)

	active, _ := def.StateSet("draft")
	publish, _ := def.Transition("publish")

	res := engine.Execute(publish, active)
	require.False(t, res.Success)
	phase, _ := res.FailedPhase()
	assert.Equal(t, domain.PhaseValidate, phase)

	publish.Metadata["reviewed"] = true
	res = engine.Execute(publish, active)
	assert.True(t, res.Success)
}

func TestEngine_ReliabilityFeedbackLoop(t *testing.T) {
	// Two routes from a to c. The tracker records failures on the cheap
	// route until the planner switches to the alternative.
	b := dsl.New()
	b.State("a")
	b.State("b")
	b.State("c")
	b.Transition("direct").From("a").Activate("c").Exit("a").Cost(1)
	b.Transition("via_b").From("a").Activate("b").Exit("a").Cost(1)
	b.Transition("b_to_c").From("b").Activate("c").Exit("b").Cost(1)
	def, err := b.Build()
	require.NoError(t, err)

	tracker := reliability.New(reliability.WithPenalty(10))
	engine, err := multistate.New(def,
		multistate.WithStrategy(pathfind.Dijkstra),
		multistate.WithRecorder(tracker),
		multistate.WithCostProvider(tracker),
	)
	require.NoError(t, err)

	start, _ := def.StateSet("a")
	target, _ := def.StateSet("c")

	path, err := engine.FindPathToAll(start, target)
	require.NoError(t, err)
	require.Equal(t, 1, path.Steps(), "direct route is cheapest at first")

	// Simulate repeated direct-route failures.
	for i := 0; i < 5; i++ {
		tracker.Record("direct", false, 0)
	}

	path, err = engine.FindPathToAll(start, target)
	require.NoError(t, err)
	require.NotNil(t, path)
	ids := make([]string, 0, path.Steps())
	for _, tr := range path.Transitions {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"via_b", "b_to_c"}, ids, "search routes around the flaky transition")
}

func TestEngine_CallbackRegistryWiring(t *testing.T) {
	def := appDefinition(t)

	var entered []string
	reg := registry.New()
	reg.RegisterIncoming("open_workspace", "toolbar", func() error {
		entered = append(entered, "toolbar")
		return nil
	})
	reg.RegisterIncoming("open_workspace", "sidebar", func() error {
		entered = append(entered, "sidebar")
		return nil
	})

	engine, err := multistate.New(def, multistate.WithCallbacks(reg))
	require.NoError(t, err)

	active, _ := def.StateSet("menu")
	open, _ := def.Transition("open_workspace")
	res := engine.Execute(open, active)
	require.True(t, res.Success)
	assert.Equal(t, []string{"sidebar", "toolbar"}, entered, "incoming actions run in sorted state order")
}

func TestEngine_HooksObserveExecution(t *testing.T) {
	def := appDefinition(t)

	var phaseCount int
	var resultSeen bool
	engine, err := multistate.New(def, multistate.WithHooks(execution.Hooks{
		OnPhase:  func(string, domain.PhaseResult) { phaseCount++ },
		OnResult: func(string, *domain.TransitionResult) { resultSeen = true },
	}))
	require.NoError(t, err)

	active, _ := def.StateSet("login")
	logIn, _ := def.Transition("log_in")
	engine.Execute(logIn, active)

	assert.Equal(t, 7, phaseCount)
	assert.True(t, resultSeen)
}

func TestEngine_SearchBudget(t *testing.T) {
	def := appDefinition(t)
	engine, err := multistate.New(def, multistate.WithSearchBudget(1))
	require.NoError(t, err)

	start, _ := def.StateSet("login")
	targets, _ := def.StateSet("toolbar", "sidebar")

	_, err = engine.FindPathToAll(start, targets)
	assert.ErrorIs(t, err, pathfind.ErrBudgetExhausted)
}

func TestEngine_EstimateComplexity(t *testing.T) {
	def := appDefinition(t)
	engine, err := multistate.New(def)
	require.NoError(t, err)

	report := engine.EstimateComplexity(len(def.States()), 2)
	assert.Equal(t, 5, report.NumStates)
	assert.True(t, report.Tractable)
}
