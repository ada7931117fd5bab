package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/tdmtools/delaycast/internal/config"
	"github.com/tdmtools/delaycast/internal/pipeline"
	"github.com/tdmtools/delaycast/internal/project"
)

// Result captures one completed scenario run.
type Result struct {
	Scenario  *Scenario
	OutputDir string
	Projects  []project.Benefit
	Files     []string
}

// Run executes the scenario's pipeline into outDir. The scenario name is
// used as the run token, and relative input paths in the parameter file are
// resolved against the parameter file's own directory, so a scenario behaves
// the same no matter where the test runs from.
func Run(ctx context.Context, s *Scenario, outDir string) (*Result, error) {
	paramsPath := s.ParamsPath()
	params, errs := config.Load(paramsPath)
	if len(errs) > 0 {
		return nil, fmt.Errorf("scenario %s: load params: %w", s.Name, errs[0])
	}

	base := filepath.Dir(paramsPath)
	params.Networks.Build = resolve(base, params.Networks.Build)
	params.Networks.NoBuild = resolve(base, params.Networks.NoBuild)
	if params.Costs != "" {
		params.Costs = resolve(base, params.Costs)
	}
	params.OutputDir = outDir

	runner := &pipeline.Runner{
		Params: params,
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens: pipeline.NewFixedGenerator(s.Name),
	}
	res, err := runner.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	return &Result{
		Scenario:  s,
		OutputDir: outDir,
		Projects:  res.Projects,
		Files:     res.OutputFiles,
	}, nil
}

// resolve joins path onto base unless it is absolute or a SQLite table
// reference with an absolute file part.
func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
