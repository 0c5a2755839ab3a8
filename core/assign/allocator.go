// Package assign maps visit candidates to inspectors under the territorial
// restriction: regions in a restricted inspector's allow-list belong to that
// inspector alone, every other region is open to all national inspectors.
package assign

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/visitplan/visitplan/core/model"
)

// Eligible returns the inspectors allowed to take a visit in the given
// region. If the region is claimed by a restricted inspector the result is
// that inspector alone; otherwise it is every national inspector.
func Eligible(roster []model.Inspector, region string) []model.Inspector {
	var restricted []model.Inspector
	var national []model.Inspector
	for _, ins := range roster {
		if ins.National() {
			national = append(national, ins)
			continue
		}
		if ins.Allows(region) {
			restricted = append(restricted, ins)
		}
	}
	if len(restricted) > 0 {
		return restricted
	}
	return national
}

// Allocator assigns inspectors to candidates. Choice among multiple eligible
// inspectors uses an explicit seeded source so runs are reproducible for a
// fixed input ordering.
type Allocator struct {
	roster []model.Inspector
	rng    *rand.Rand
}

// New creates an Allocator over the roster with a per-run seed.
func New(roster []model.Inspector, seed int64) *Allocator {
	return &Allocator{roster: roster, rng: rand.New(rand.NewSource(seed))}
}

// Assign picks an inspector for a visit in the given region. A singleton
// eligible set is assigned deterministically; larger sets are sampled
// uniformly from the seeded source. An empty eligible set means the roster
// violates the configuration invariant that every region maps to at least one
// inspector.
func (a *Allocator) Assign(region string) (model.Inspector, error) {
	eligible := Eligible(a.roster, region)
	switch len(eligible) {
	case 0:
		return model.Inspector{}, fmt.Errorf("no inspector eligible for region %q", region)
	case 1:
		return eligible[0], nil
	default:
		return eligible[a.rng.Intn(len(eligible))], nil
	}
}

// Validate checks a manual reassignment of an inspector to a region. A
// restricted inspector outside their allow-list is rejected. Assigning a
// national inspector inside a restricted territory is allowed but flagged
// with a warning message.
func Validate(roster []model.Inspector, inspector, region string) (bool, string) {
	var target *model.Inspector
	for i := range roster {
		if roster[i].Name == inspector {
			target = &roster[i]
			break
		}
	}
	if target == nil {
		return false, fmt.Sprintf("unknown inspector %q", inspector)
	}
	if !target.National() && !target.Allows(region) {
		return false, fmt.Sprintf("%s can only work in: %s", target.Name, strings.Join(target.AllowedRegions, ", "))
	}
	if target.National() {
		for _, ins := range roster {
			if !ins.National() && ins.Allows(region) {
				return true, fmt.Sprintf("warning: %s is %s's territory", region, ins.Name)
			}
		}
	}
	return true, ""
}
