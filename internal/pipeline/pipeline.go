package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tdmtools/delaycast/internal/allocate"
	"github.com/tdmtools/delaycast/internal/classify"
	"github.com/tdmtools/delaycast/internal/config"
	"github.com/tdmtools/delaycast/internal/mapper"
	"github.com/tdmtools/delaycast/internal/netdiff"
	"github.com/tdmtools/delaycast/internal/netgraph"
	"github.com/tdmtools/delaycast/internal/project"
	"github.com/tdmtools/delaycast/internal/table"
)

// Output file names within the configured output directory.
const (
	ProjectBenefitsFile  = "project_benefits.csv"
	LinkDetailFile       = "link_detail.csv"
	AllocationDetailFile = "allocation_detail.csv"
	AnnotatedNetworkFile = "build_network.geojson"
)

// Runner executes the full delay-allocation pipeline for one parameter set.
type Runner struct {
	Params *config.Params
	Log    *slog.Logger
	Tokens TokenGenerator // defaults to UUIDv7Generator
}

// Result summarizes a completed run.
type Result struct {
	RunToken       string
	Links          int
	AllocationRows int
	Projects       []project.Benefit
	OutputFiles    []string
}

// Run executes every stage in order and writes outputs last. Cancelling ctx
// aborts the run between stages and inside the two long loops, with no
// partial output on disk.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	tokens := r.Tokens
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}
	token := tokens.Generate()
	log = log.With("run", token)

	if err := r.Params.CheckInputs(); err != nil {
		return nil, stageError(ErrCodeConfig, "load", "input check failed", err)
	}

	// Stage 1: load and difference the two scenario tables.
	build, err := table.Read(r.Params.Networks.Build)
	if err != nil {
		return nil, stageError(loadCode(err), "load", "build network", err)
	}
	nobuild, err := table.Read(r.Params.Networks.NoBuild)
	if err != nil {
		return nil, stageError(loadCode(err), "load", "no-build network", err)
	}
	log.Info("networks loaded", "build_rows", len(build.Rows), "nobuild_rows", len(nobuild.Rows))

	links, err := netdiff.Diff(build, nobuild, r.Params.DiffFields())
	if err != nil {
		return nil, stageError(loadCode(err), "diff", "scenario differencing", err)
	}
	log.Info("scenarios differenced", "links", len(links))

	// Stage 2: classify every link.
	classify.Apply(links)

	if err := ctx.Err(); err != nil {
		return nil, stageError(ErrCodeCancelled, "classify", "cancelled", err)
	}

	// Stage 3a: distance matrix, solved once and read-only afterwards.
	matrix, err := netgraph.Solve(ctx, links, netgraph.ProjectNodes(links))
	if err != nil {
		return nil, stageError(ErrCodeSolver, "distance", "shortest-path solve", err)
	}
	log.Info("distance matrix solved", "sources", matrix.Sources())

	// Stage 3b: secondary allocation.
	alloc := &allocate.Allocator{
		Links:     links,
		Distances: matrix,
		Buffer:    netgraph.NewNetworkBuffer(links, matrix),
		Log:       log,
	}
	allocated, err := alloc.Run(ctx)
	if err != nil {
		code := ErrCodeSolver
		if errors.Is(err, allocate.ErrNoProjects) {
			code = ErrCodeEmptyResult
		}
		return nil, stageError(code, "allocate", "secondary allocation", err)
	}
	log.Info("secondary benefit allocated", "rows", len(allocated.Rows), "projects", len(allocated.ByProject))

	// Stage 4: primary aggregation and merge.
	primary := project.AggregatePrimary(links)
	benefits := project.Merge(primary, allocated.ByProject)

	// Stage 5: optional cost join.
	withCost := r.Params.Costs != ""
	if withCost {
		costs, err := readCosts(r.Params.Costs)
		if err != nil {
			return nil, stageError(loadCode(err), "costs", "cost table", err)
		}
		project.JoinCosts(benefits, costs)
	}

	if err := ctx.Err(); err != nil {
		return nil, stageError(ErrCodeCancelled, "merge", "cancelled", err)
	}

	// Stage 6: outputs. Nothing was written before this point.
	files, err := r.writeOutputs(links, allocated.Rows, benefits, withCost)
	if err != nil {
		return nil, stageError(ErrCodeWrite, "write", "output files", err)
	}
	log.Info("run complete", "projects", len(benefits), "outputs", len(files))

	return &Result{
		RunToken:       token,
		Links:          len(links),
		AllocationRows: len(allocated.Rows),
		Projects:       benefits,
		OutputFiles:    files,
	}, nil
}

// writeOutputs commits every artifact to the output directory.
func (r *Runner) writeOutputs(links []netdiff.LinkRecord, rows []allocate.Row, benefits []project.Benefit, withCost bool) ([]string, error) {
	dir := r.Params.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	files := []string{
		filepath.Join(dir, ProjectBenefitsFile),
		filepath.Join(dir, LinkDetailFile),
		filepath.Join(dir, AllocationDetailFile),
	}
	if err := mapper.WriteProjectBenefits(files[0], benefits, withCost); err != nil {
		return nil, err
	}
	if err := mapper.WriteLinkDetail(files[1], links); err != nil {
		return nil, err
	}
	if err := mapper.WriteAllocationDetail(files[2], rows); err != nil {
		return nil, err
	}
	if r.Params.Fields.Geometry != "" {
		gj := filepath.Join(dir, AnnotatedNetworkFile)
		if err := mapper.WriteGeoJSON(gj, links); err != nil {
			return nil, err
		}
		files = append(files, gj)
	}
	return files, nil
}

// readCosts loads the cost table with its fixed proj_id/cost columns.
func readCosts(path string) (map[string]float64, error) {
	t, err := table.Read(path)
	if err != nil {
		return nil, err
	}
	if err := t.RequireColumns("proj_id", "cost"); err != nil {
		return nil, err
	}
	costs := make(map[string]float64, len(t.Rows))
	for _, row := range t.Rows {
		costs[row.Text("proj_id")] = row.Num("cost")
	}
	return costs, nil
}

// loadCode maps a table-layer error onto the run taxonomy: empty tables are
// empty-result conditions, anything else at load time is configuration.
func loadCode(err error) RunErrorCode {
	if errors.Is(err, table.ErrEmptyTable) {
		return ErrCodeEmptyResult
	}
	return ErrCodeConfig
}
