package execution

// SuccessPolicy converts mixed per-state incoming-action outcomes into one
// pass/fail verdict for the INCOMING phase.
type SuccessPolicy string

const (
	// PolicyStrict succeeds only when every incoming action succeeded.
	PolicyStrict SuccessPolicy = "strict"
	// PolicyLenient always succeeds; failures are recorded in the phase
	// data and result metadata only.
	PolicyLenient SuccessPolicy = "lenient"
	// PolicyThreshold succeeds when the success ratio meets the executor's
	// configured threshold.
	PolicyThreshold SuccessPolicy = "threshold"
)

// Evaluate applies the policy to activated/failed counts. With nothing
// activated there is nothing to fail, so every policy succeeds.
func (p SuccessPolicy) Evaluate(activated, failed int, threshold float64) bool {
	if activated == 0 {
		return true
	}
	switch p {
	case PolicyLenient:
		return true
	case PolicyThreshold:
		return float64(activated-failed)/float64(activated) >= threshold
	default:
		return failed == 0
	}
}
