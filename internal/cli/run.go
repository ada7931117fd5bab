package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tdmtools/delaycast/internal/config"
	"github.com/tdmtools/delaycast/internal/pipeline"
)

// RunSummary is the JSON payload of a successful run.
type RunSummary struct {
	Links          int           `json:"links"`
	AllocationRows int           `json:"allocation_rows"`
	Projects       int           `json:"projects"`
	TotalBenefits  float64       `json:"total_benefits"`
	OutputFiles    []string      `json:"output_files"`
}

// NewRunCommand creates the run command: the full pipeline, end to end.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	var paramsPath string
	var costsPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the delay-allocation pipeline",
		Long: `Run the full pipeline: difference the build and no-build networks,
classify links, allocate secondary benefit across projects, and write
project_benefits.csv plus the annotated link detail to the output directory.

Cancelling (SIGINT) aborts the run without writing any output file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(rootOpts, cmd, paramsPath, costsPath)
		},
	}

	cmd.Flags().StringVar(&paramsPath, "params", "", "path to the YAML parameter file (required)")
	cmd.Flags().StringVar(&costsPath, "costs", "", "override the cost table path from the parameter file")
	_ = cmd.MarkFlagRequired("params")

	return cmd
}

func runPipeline(opts *RootOptions, cmd *cobra.Command, paramsPath, costsPath string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	params, errs := config.Load(paramsPath)
	if len(errs) > 0 {
		reportConfigErrors(formatter, errs)
		return WrapExitError(ExitCommandError, "invalid parameter file", errs[0])
	}
	if costsPath != "" {
		params.Costs = costsPath
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(formatter.ErrWriter, &slog.HandlerOptions{Level: level}))

	runner := &pipeline.Runner{Params: params, Log: log}
	result, err := runner.Run(cmd.Context())
	if err != nil {
		code := ExitFailure
		if pipeline.IsConfigError(err) {
			code = ExitCommandError
		}
		_ = formatter.Error(string(runErrorCode(err)), err.Error(), nil)
		return WrapExitError(code, "run failed", err)
	}

	var total float64
	for _, p := range result.Projects {
		total += p.TotalBenefits
	}
	summary := RunSummary{
		Links:          result.Links,
		AllocationRows: result.AllocationRows,
		Projects:       len(result.Projects),
		TotalBenefits:  total,
		OutputFiles:    result.OutputFiles,
	}

	if opts.Format == "json" {
		return formatter.Success(result.RunToken, summary)
	}
	return formatter.Success(result.RunToken, fmt.Sprintf(
		"run %s complete: %d links, %d projects, total benefits %.4f\noutputs:\n  %s",
		result.RunToken, summary.Links, summary.Projects, summary.TotalBenefits,
		strings.Join(result.OutputFiles, "\n  ")))
}

// reportConfigErrors prints every collected validation error.
func reportConfigErrors(f *OutputFormatter, errs []error) {
	for _, e := range errs {
		_ = f.Error(string(pipeline.ErrCodeConfig), e.Error(), nil)
	}
}

// runErrorCode extracts the pipeline error code for CLI output.
func runErrorCode(err error) pipeline.RunErrorCode {
	switch {
	case pipeline.IsConfigError(err):
		return pipeline.ErrCodeConfig
	case pipeline.IsEmptyResult(err):
		return pipeline.ErrCodeEmptyResult
	case pipeline.IsCancelled(err):
		return pipeline.ErrCodeCancelled
	}
	return "RUN_FAILED"
}
