package cli

import (
	"github.com/spf13/cobra"

	"github.com/tdmtools/delaycast/internal/config"
)

// ValidationResult holds validation results for JSON output.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command: schema-check the
// parameter file and confirm the referenced inputs exist, without running
// the pipeline.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <params.yaml>",
		Short: "Validate a parameter file without running the pipeline",
		Long: `Validate the YAML parameter file against the embedded schema and check
that every referenced input file exists. Faster than a run for iterating
on field bindings.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, paramsPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	params, errs := config.Load(paramsPath)
	if len(errs) == 0 {
		if err := params.CheckInputs(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		if opts.Format == "json" {
			_ = formatter.Success("", ValidationResult{Valid: false, Errors: msgs})
		} else {
			reportConfigErrors(formatter, errs)
		}
		return WrapExitError(ExitCommandError, "parameter file invalid", errs[0])
	}

	if opts.Format == "json" {
		return formatter.Success("", ValidationResult{Valid: true})
	}
	return formatter.Success("", "parameter file valid")
}
