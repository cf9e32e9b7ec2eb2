// Package guard evaluates transition guard expressions. Guards are
// optional boolean expressions checked during the VALIDATE phase, on top
// of the structural precondition; they never replace it.
//
// The default evaluator compiles expr-lang expressions and caches the
// compiled programs per expression string. The environment exposes:
//
//	active []string        sorted IDs of the active configuration
//	meta   map[string]any  the transition's metadata
//
// Example guard: `"authenticated" in active && meta.tier != "free"`.
package guard

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Evaluator compiles and runs guard expressions. Safe for concurrent use.
type Evaluator struct {
	mu    sync.Mutex
	cache map[string]*vm.Program
}

// New creates an evaluator with an empty program cache.
func New() *Evaluator {
	return &Evaluator{cache: make(map[string]*vm.Program)}
}

// Evaluate runs the expression against env and returns its boolean value.
// Non-boolean results and compile or runtime errors are reported as
// errors, which the executor records as a VALIDATE failure.
func (e *Evaluator) Evaluate(expression string, env map[string]any) (bool, error) {
	program, err := e.compile(expression)
	if err != nil {
		return false, fmt.Errorf("compile guard: %w", err)
	}
	out, err := vm.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("run guard: %w", err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("guard returned %T, want bool", out)
	}
	return ok, nil
}

func (e *Evaluator) compile(expression string) (*vm.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.cache[expression]; ok {
		return p, nil
	}
	p, err := expr.Compile(expression)
	if err != nil {
		return nil, err
	}
	e.cache[expression] = p
	return p, nil
}
