package execution

import (
	"fmt"

	"github.com/aretw0/multistate/pkg/domain"
)

// visibilityDirective computes the advisory show/hide sets over the
// transition's surviving source states (From minus the derived exit set).
// Inherit emits no directive. This phase never fails.
func visibilityDirective(t *domain.Transition) (message string, data map[string]any) {
	survivors := t.SurvivingSources()
	switch t.Visibility {
	case domain.VisibilityShow:
		return fmt.Sprintf("%d surviving source states stay visible", len(survivors)),
			map[string]any{"show": survivors.IDs()}
	case domain.VisibilityHide:
		return fmt.Sprintf("%d surviving source states marked hidden", len(survivors)),
			map[string]any{"hide": survivors.IDs()}
	default:
		return "no visibility directive", nil
	}
}
