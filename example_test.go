package multistate_test

import (
	"fmt"
	"log"

	"github.com/aretw0/multistate"
	"github.com/aretw0/multistate/pkg/dsl"
	"github.com/aretw0/multistate/pkg/pathfind"
)

// ExampleNew demonstrates building a definition in code, planning a path
// to multiple targets and replaying it through the executor.
func ExampleNew() {
	// 1. Declare states, groups and transitions with the builder.
	b := dsl.New()
	b.State("login").Name("Login")
	b.State("menu").Name("Main Menu")
	b.State("toolbar")
	b.State("sidebar")
	b.Group("workspace", "toolbar", "sidebar")
	b.Transition("log_in").From("login").Activate("menu").Exit("login")
	b.Transition("open_workspace").From("menu").ActivateGroups("workspace").Cost(2)

	def, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Wire the engine. Dijkstra minimizes accumulated transition cost.
	engine, err := multistate.New(def, multistate.WithStrategy(pathfind.Dijkstra))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Plan a path that covers both workspace states.
	current, _ := def.StateSet("login")
	targets, _ := def.StateSet("toolbar", "sidebar")
	plan, err := engine.FindPathToAll(current, targets)
	if err != nil {
		log.Fatal(err)
	}

	// 4. Replay the plan, committing each successful delta.
	for _, t := range plan.Transitions {
		result := engine.Execute(t, current)
		if !result.Success {
			log.Fatalf("transition %s failed", t.ID)
		}
		current = result.Apply(current)
	}

	fmt.Printf("Steps: %d, cost %.0f\n", plan.Steps(), plan.TotalCost)
	fmt.Printf("Active: %v\n", current.IDs())
	// Output:
	// Steps: 2, cost 3
	// Active: [menu sidebar toolbar]
}
