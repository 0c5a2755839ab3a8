package planner

import (
	"fmt"

	"github.com/visitplan/visitplan/core/assign"
	"github.com/visitplan/visitplan/core/model"
)

// ReassignInspector applies a manual inspector change to one visit of the
// plan. Territorial eligibility is re-validated first: on violation the call
// returns ok=false with an explanatory message and the plan unchanged. On
// success a copy of the plan is returned with only that visit's inspector
// mutated; the warning message, if any, is passed through.
func (p *Planner) ReassignInspector(plan []model.Visit, visitIndex int, newInspector, region string) (bool, string, []model.Visit) {
	if visitIndex < 0 || visitIndex >= len(plan) {
		return false, fmt.Sprintf("visit index %d out of range", visitIndex), plan
	}
	ok, msg := assign.Validate(p.Roster, newInspector, region)
	if !ok {
		return false, msg, plan
	}
	updated := append([]model.Visit(nil), plan...)
	updated[visitIndex].Inspector = newInspector
	if msg == "" {
		msg = "assignment updated"
	}
	return true, msg, updated
}
