package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario: a parameter file to run and
// the project-level results the run must produce.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the run token
	// and, when Golden is set, the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Params is the parameter file path, relative to the scenario file.
	Params string `yaml:"params"`

	// Golden enables byte comparison of project_benefits.csv against
	// testdata/golden/{name}.golden.
	Golden bool `yaml:"golden,omitempty"`

	// Expect lists the per-project benefit expectations. Projects absent
	// from the list are not checked.
	Expect []ProjectExpect `yaml:"expect"`

	// dir is the scenario file's directory, for resolving Params.
	dir string
}

// ProjectExpect is the expected rollup for one project.
type ProjectExpect struct {
	Project           string  `yaml:"project"`
	PrimaryBenefits   float64 `yaml:"primary_benefits"`
	SecondaryBenefits float64 `yaml:"secondary_benefits"`
	TotalBenefits     float64 `yaml:"total_benefits"`

	// Tolerance for the comparisons; defaults to 1e-9.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// ParamsPath returns the parameter file path resolved against the scenario
// file's directory.
func (s *Scenario) ParamsPath() string {
	if filepath.IsAbs(s.Params) {
		return s.Params
	}
	return filepath.Join(s.dir, s.Params)
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Params == "" {
		return nil, fmt.Errorf("scenario %s: params is required", path)
	}
	if len(s.Expect) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one expectation is required", path)
	}
	for i, e := range s.Expect {
		if e.Project == "" {
			return nil, fmt.Errorf("scenario %s: expect[%d]: project is required", path, i)
		}
	}
	return &s, nil
}

// LoadScenarios loads every *.yaml scenario under dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
