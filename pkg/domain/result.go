package domain

// Phase identifies a step of the transition execution protocol. Phases
// run in declaration order; exactly one PhaseResult is appended per phase
// attempted.
type Phase string

const (
	PhaseValidate   Phase = "validate"
	PhaseOutgoing   Phase = "outgoing"
	PhaseActivate   Phase = "activate"
	PhaseIncoming   Phase = "incoming"
	PhaseExit       Phase = "exit"
	PhaseVisibility Phase = "visibility"
	PhaseCleanup    Phase = "cleanup"
)

// PhaseResult records the outcome of a single phase.
type PhaseResult struct {
	Phase   Phase
	Success bool
	Message string
	Data    map[string]any
}

// TransitionResult is the structured outcome of executing one transition.
// The executor never mutates the caller's active set; on success the
// caller commits the delta, typically via Apply.
type TransitionResult struct {
	Success bool
	Phases  []PhaseResult

	// Activated and Deactivated hold the committed delta. They are only
	// populated on success; a failed run carries no delta to commit.
	Activated   StateSet
	Deactivated StateSet

	// Err holds an unexpected error recovered during execution, if any.
	// Action failures are phase results, not errors.
	Err error

	Metadata map[string]any
}

// FailedPhase returns the first failed phase, if any.
func (r *TransitionResult) FailedPhase() (Phase, bool) {
	for _, pr := range r.Phases {
		if !pr.Success {
			return pr.Phase, true
		}
	}
	return "", false
}

// PhaseResultFor returns the recorded result for the given phase.
func (r *TransitionResult) PhaseResultFor(phase Phase) (PhaseResult, bool) {
	for _, pr := range r.Phases {
		if pr.Phase == phase {
			return pr, true
		}
	}
	return PhaseResult{}, false
}

// Apply commits the result's delta to the given configuration and returns
// the new configuration. The input is never mutated. Applying a failed
// result returns the input unchanged: rollback is never committing.
func (r *TransitionResult) Apply(active StateSet) StateSet {
	if !r.Success {
		return active.Clone()
	}
	return active.Subtract(r.Deactivated).Union(r.Activated)
}
