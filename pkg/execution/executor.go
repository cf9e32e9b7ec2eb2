// Package execution runs single transitions through an ordered phase
// protocol: VALIDATE, OUTGOING, ACTIVATE, INCOMING, EXIT, VISIBILITY,
// CLEANUP. Execution is atomic from the caller's perspective: the
// executor works on local copies and returns the delta; rollback is never
// committing, not an explicit undo.
package execution

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/multistate/pkg/domain"
	"github.com/aretw0/multistate/pkg/ports"
)

// Hooks are optional observability callbacks invoked during execution.
type Hooks struct {
	// OnPhase fires after each phase result is recorded.
	OnPhase func(transitionID string, result domain.PhaseResult)
	// OnResult fires once per Execute call with the finalized result.
	OnResult func(transitionID string, result *domain.TransitionResult)
}

// Executor runs transitions. It is stateless between calls and safe to
// share across goroutines as long as each active-state set is confined to
// one in-flight Execute call (the executor reads it but never writes it).
type Executor struct {
	policy    SuccessPolicy
	threshold float64
	atomicity bool
	groups    []*domain.StateGroup
	callbacks ports.Callbacks
	guard     ports.GuardEvaluator
	recorder  ports.Recorder
	hooks     Hooks
	logger    *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithPolicy sets the INCOMING success policy.
func WithPolicy(p SuccessPolicy) Option {
	return func(e *Executor) { e.policy = p }
}

// WithThreshold sets the success ratio required by PolicyThreshold.
func WithThreshold(ratio float64) Option {
	return func(e *Executor) { e.threshold = ratio }
}

// WithGroups registers the state groups checked by the VALIDATE phase's
// atomicity projection.
func WithGroups(groups ...*domain.StateGroup) Option {
	return func(e *Executor) { e.groups = append(e.groups, groups...) }
}

// WithoutAtomicityCheck disables the pre-commit group atomicity check,
// deferring the invariant entirely to the caller.
func WithoutAtomicityCheck() Option {
	return func(e *Executor) { e.atomicity = false }
}

// WithCallbacks sets the external action registry. Registered callbacks
// take priority over inline transition actions.
func WithCallbacks(c ports.Callbacks) Option {
	return func(e *Executor) { e.callbacks = c }
}

// WithGuardEvaluator sets the evaluator for transition guard expressions.
// Without one, guards are skipped.
func WithGuardEvaluator(g ports.GuardEvaluator) Option {
	return func(e *Executor) { e.guard = g }
}

// WithRecorder sets the collaborator that receives (transition, success,
// elapsed) after every run.
func WithRecorder(r ports.Recorder) Option {
	return func(e *Executor) { e.recorder = r }
}

// WithHooks sets observability hooks.
func WithHooks(h Hooks) Option {
	return func(e *Executor) { e.hooks = h }
}

// WithLogger sets a structured logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// New creates an executor with the strict policy, a 0.8 threshold, and
// atomicity checking enabled.
func New(opts ...Option) *Executor {
	e := &Executor{
		policy:    PolicyStrict,
		threshold: 0.8,
		atomicity: true,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one transition against the given configuration and returns
// a structured result. It never panics across this boundary and never
// mutates active; on success the caller commits the delta, typically with
// result.Apply.
func (e *Executor) Execute(t *domain.Transition, active domain.StateSet) *domain.TransitionResult {
	started := time.Now()
	res := &domain.TransitionResult{
		Metadata: map[string]any{
			"transition_id": t.ID,
			"execution_id":  uuid.NewString(),
			"policy":        string(e.policy),
		},
	}

	e.run(t, active, res)

	// CLEANUP always runs, even after a VALIDATE reject or a recovered
	// panic from an earlier phase.
	if res.Err != nil {
		res.Success = false
		e.appendPhase(res, t.ID, domain.PhaseCleanup, false,
			fmt.Sprintf("unexpected error: %v", res.Err), nil)
	} else {
		e.appendPhase(res, t.ID, domain.PhaseCleanup, true, "finalized", nil)
	}

	if e.recorder != nil {
		e.recorder.Record(t.ID, res.Success, time.Since(started))
	}
	if e.hooks.OnResult != nil {
		e.hooks.OnResult(t.ID, res)
	}
	if res.Success {
		e.logger.Debug("transition executed",
			"transition", t.ID, "activated", len(res.Activated), "deactivated", len(res.Deactivated))
	} else if phase, ok := res.FailedPhase(); ok {
		e.logger.Debug("transition rejected", "transition", t.ID, "phase", string(phase))
	}
	return res
}

// run executes phases VALIDATE through VISIBILITY. Panics from any phase
// are captured into res.Err for CLEANUP to surface.
func (e *Executor) run(t *domain.Transition, active domain.StateSet, res *domain.TransitionResult) {
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("panic during execution: %v", r)
		}
	}()

	// VALIDATE. No side effects have happened yet, so failing here needs
	// no rollback.
	if ok, msg := e.validate(t, active); !ok {
		e.appendPhase(res, t.ID, domain.PhaseValidate, false, msg, nil)
		return
	}
	e.appendPhase(res, t.ID, domain.PhaseValidate, true, "all preconditions satisfied", nil)

	// OUTGOING runs before any state mutation.
	if err := e.runOutgoing(t); err != nil {
		e.appendPhase(res, t.ID, domain.PhaseOutgoing, false,
			"outgoing action failed: "+err.Error(), nil)
		return
	}
	e.appendPhase(res, t.ID, domain.PhaseOutgoing, true, "outgoing action completed", nil)

	// ACTIVATE is a pure set union into a working copy; it cannot fail.
	working := t.StatesToActivate()
	e.appendPhase(res, t.ID, domain.PhaseActivate, true,
		fmt.Sprintf("activated %d states", len(working)),
		map[string]any{"activated": working.IDs()})

	// INCOMING: every activated state's action runs exactly once, failures
	// accumulate without short-circuiting, then the policy decides.
	failed := e.runIncoming(t, working)
	phaseOK := e.policy.Evaluate(len(working), len(failed), e.threshold)
	e.appendPhase(res, t.ID, domain.PhaseIncoming, phaseOK,
		fmt.Sprintf("%d/%d incoming actions succeeded", len(working)-len(failed), len(working)),
		map[string]any{
			"successful": working.Subtract(failed).IDs(),
			"failed":     failed.IDs(),
		})
	res.Metadata["incoming_failures"] = len(failed)
	if !phaseOK {
		// The working copy is discarded; the caller's set was never touched.
		return
	}

	// EXIT is a pure set removal; it cannot fail.
	exits := t.StatesToExit()
	e.appendPhase(res, t.ID, domain.PhaseExit, true,
		fmt.Sprintf("deactivated %d states", len(exits)),
		map[string]any{"deactivated": exits.IDs()})

	// VISIBILITY emits the advisory directive over surviving sources.
	msg, data := visibilityDirective(t)
	e.appendPhase(res, t.ID, domain.PhaseVisibility, true, msg, data)

	res.Success = true
	res.Activated = working
	res.Deactivated = exits
}

// CanExecute exposes the VALIDATE phase's structural check standalone:
// source eligibility, blocking veto, and group atomicity projection.
// Guard expressions and actions are not consulted.
func (e *Executor) CanExecute(t *domain.Transition, active domain.StateSet) bool {
	ok, _ := e.validateStructural(t, active)
	return ok
}

// Project returns the configuration that would result from the transition,
// as pure set algebra with no side effects and no validation.
func (e *Executor) Project(t *domain.Transition, active domain.StateSet) domain.StateSet {
	return active.Subtract(t.StatesToExit()).Union(t.StatesToActivate())
}

func (e *Executor) validate(t *domain.Transition, active domain.StateSet) (bool, string) {
	if ok, msg := e.validateStructural(t, active); !ok {
		return false, msg
	}
	if t.Guard != "" && e.guard != nil {
		ok, err := e.guard.Evaluate(t.Guard, guardEnv(t, active))
		if err != nil {
			return false, "guard error: " + err.Error()
		}
		if !ok {
			return false, "guard rejected transition"
		}
	}
	return true, ""
}

func (e *Executor) validateStructural(t *domain.Transition, active domain.StateSet) (bool, string) {
	if !t.CanFire(active) {
		return false, "no eligible source state is active"
	}

	// An active blocking state vetoes all activations except those joining
	// its own group.
	toActivate := t.StatesToActivate()
	for _, s := range active.Sorted() {
		if !s.Blocking {
			continue
		}
		if !sharesGroup(s, toActivate) {
			return false, fmt.Sprintf("blocking state %q vetoes activation", s.ID)
		}
	}

	if e.atomicity && len(e.groups) > 0 {
		projected := e.Project(t, active)
		for _, g := range e.groups {
			if !g.Atomic(projected) {
				return false, fmt.Sprintf("group atomicity violated: %q", g.ID)
			}
		}
	}
	return true, ""
}

func (e *Executor) runOutgoing(t *domain.Transition) error {
	action := t.Action
	if e.callbacks != nil {
		if cb, ok := e.callbacks.Outgoing(t.ID); ok {
			action = cb
		}
	}
	if action == nil {
		return nil
	}
	return runAction(action)
}

// runIncoming runs the incoming action of every state in working exactly
// once, in deterministic order, and returns the states whose action failed.
func (e *Executor) runIncoming(t *domain.Transition, working domain.StateSet) domain.StateSet {
	failed := make(domain.StateSet)
	for _, s := range working.Sorted() {
		var action domain.Action
		if e.callbacks != nil {
			if cb, ok := e.callbacks.Incoming(t.ID, s.ID); ok {
				action = cb
			}
		}
		if action == nil {
			if inline, ok := t.IncomingActionFor(s.ID); ok {
				action = inline
			}
		}
		if action == nil {
			continue
		}
		if err := runAction(action); err != nil {
			failed.Add(s)
			e.logger.Debug("incoming action failed",
				"transition", t.ID, "state", s.ID, "err", err)
		}
	}
	return failed
}

func (e *Executor) appendPhase(res *domain.TransitionResult, transitionID string, phase domain.Phase, success bool, message string, data map[string]any) {
	pr := domain.PhaseResult{Phase: phase, Success: success, Message: message, Data: data}
	res.Phases = append(res.Phases, pr)
	if e.hooks.OnPhase != nil {
		e.hooks.OnPhase(transitionID, pr)
	}
}

// sharesGroup reports whether any state to activate joins the blocking
// state's group. A blocking state without a group admits nothing.
func sharesGroup(blocking *domain.State, toActivate domain.StateSet) bool {
	if blocking.Group == "" {
		return false
	}
	for _, s := range toActivate {
		if s.Group == blocking.Group {
			return true
		}
	}
	return false
}

// guardEnv builds the evaluation environment for a guard expression.
func guardEnv(t *domain.Transition, active domain.StateSet) map[string]any {
	meta := t.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return map[string]any{
		"active": active.IDs(),
		"meta":   meta,
	}
}

// runAction invokes an action, converting panics into errors so they stay
// inside the phase protocol.
func runAction(a domain.Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panic: %v", r)
		}
	}()
	return a()
}
