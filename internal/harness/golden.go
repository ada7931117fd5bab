package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/tdmtools/delaycast/internal/pipeline"
)

// AssertGolden compares the run's project_benefits.csv byte-for-byte against
// testdata/golden/{scenario.Name}.golden. The pipeline's output formatting
// is deterministic, so the golden file pins the full numeric result down to
// the last digit.
func AssertGolden(t *testing.T, r *Result) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(r.OutputDir, pipeline.ProjectBenefitsFile))
	if err != nil {
		t.Fatalf("read %s: %v", pipeline.ProjectBenefitsFile, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, r.Scenario.Name, data)
}
