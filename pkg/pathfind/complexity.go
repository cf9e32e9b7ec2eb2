package pathfind

import (
	"fmt"
	"math"
)

// ComplexityReport describes the theoretical size of the joint search
// space for a model with the given number of states and targets. It is a
// monitoring aid; the search itself never consults it. Counts are float64
// because 2^n overflows integers quickly.
type ComplexityReport struct {
	NumStates  int
	NumTargets int

	// StateConfigurations is 2^states: every subset of states is a
	// conceivable configuration.
	StateConfigurations float64

	// TargetConfigurations is 2^targets: the progress bitmask dimension.
	TargetConfigurations float64

	// SearchSpace is the product of both dimensions.
	SearchSpace float64

	// Class is the asymptotic class as a display string.
	Class string

	// Tractable indicates the target count is under the documented
	// practical bound of about ten.
	Tractable bool
}

// EstimateComplexity computes the report for the given model size.
func EstimateComplexity(numStates, numTargets int) ComplexityReport {
	stateConfigs := math.Pow(2, float64(numStates))
	targetConfigs := math.Pow(2, float64(numTargets))
	return ComplexityReport{
		NumStates:            numStates,
		NumTargets:           numTargets,
		StateConfigurations:  stateConfigs,
		TargetConfigurations: targetConfigs,
		SearchSpace:          stateConfigs * targetConfigs,
		Class:                fmt.Sprintf("O(V * 2^k) with V=%d states, k=%d targets", numStates, numTargets),
		Tractable:            numTargets < 10,
	}
}
