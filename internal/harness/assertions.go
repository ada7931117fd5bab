package harness

import (
	"fmt"
	"math"

	"github.com/tdmtools/delaycast/internal/project"
)

// defaultTolerance bounds benefit comparisons when a scenario does not set
// its own.
const defaultTolerance = 1e-9

// Check verifies every expectation of the result's scenario against the
// per-project rollup. All violations are collected into a single error so a
// failing scenario reports everything at once.
func Check(r *Result) error {
	byID := make(map[string]project.Benefit, len(r.Projects))
	for _, p := range r.Projects {
		byID[p.ID] = p
	}

	var violations []string
	for _, e := range r.Scenario.Expect {
		p, ok := byID[e.Project]
		if !ok {
			violations = append(violations, fmt.Sprintf("project %s: not in results", e.Project))
			continue
		}
		tol := e.Tolerance
		if tol == 0 {
			tol = defaultTolerance
		}
		violations = append(violations,
			compare(e.Project, "primary_benefits", p.PrimaryBenefits, e.PrimaryBenefits, tol)...)
		violations = append(violations,
			compare(e.Project, "secondary_benefits", p.SecondaryBenefits, e.SecondaryBenefits, tol)...)
		violations = append(violations,
			compare(e.Project, "total_benefits", p.TotalBenefits, e.TotalBenefits, tol)...)
	}

	if len(violations) > 0 {
		msg := violations[0]
		for _, v := range violations[1:] {
			msg += "; " + v
		}
		return fmt.Errorf("scenario %s: %s", r.Scenario.Name, msg)
	}
	return nil
}

func compare(proj, field string, got, want, tol float64) []string {
	if math.Abs(got-want) <= tol {
		return nil
	}
	return []string{fmt.Sprintf("project %s: %s = %v, want %v (tolerance %v)", proj, field, got, want, tol)}
}
