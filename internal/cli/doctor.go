package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sagaworks/sagalint/internal/health"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, schemas and state directory",
		Long: `Check that sagalint can run in this environment.

Loads the layered configuration, compiles the schema set it selects and
makes sure the history state directory is writable.`,
		Example: `  sagalint doctor
  sagalint doctor --config ci/sagalint.json`,
		GroupID: GroupInspection,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(readGlobalOptions(cmd), cmd.OutOrStdout())
		},
	}
}

func runDoctor(opts globalOptions, out io.Writer) error {
	report := health.RunHealthChecks(opts.ConfigPath)
	fmt.Fprint(out, health.FormatReport(report))
	if !report.Passed {
		return NewExitError(ExitInvalidArguments)
	}
	return nil
}
