// Package cli provides the cobra commands of sagalint: validation of a whole
// game, a single station, the root configuration, a folder of stations and
// schema documents, plus the station graph, run history and version.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	clierrors "github.com/sagaworks/sagalint/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupValidation = "validation"
	GroupInspection = "inspection"
)

// NewRootCmd builds the sagalint command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sagalint",
		Short: "Validate saga game content packages",
		Long: `sagalint validates the content package of a location based audio game:
the root game configuration and every station it lists.

It checks each document against the JSON schemas, then walks every event
tree to find dangling station references, missing audio files, malformed
events and naming mistakes. All problems are reported; the run exits 0
unless --exit-on-errors is set.`,
		Example: `  # Validate a whole game
  sagalint game saga/game.json

  # Validate one station file on its own
  sagalint station saga/stations/cave.json

  # Validate every station in a folder, stop at the first broken one
  sagalint folder saga/stations --exit-on-errors

  # Machine readable output
  sagalint game saga/game.json --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: GroupValidation, Title: "Validation:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupInspection, Title: "Inspection:"})
	rootCmd.SetHelpCommandGroupID(GroupInspection)
	rootCmd.SetCompletionCommandGroupID(GroupInspection)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", ".sagalint.json", "Path to local config file")
	flags.StringP("format", "f", "", "Output format: text, json or yaml (default from config)")
	flags.BoolP("debug", "d", false, "Enable debug logging")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Int("workers", 0, "Stations checked concurrently (default from config)")
	flags.Bool("exit-on-errors", false, "Exit 1 when diagnostics are found; folder scans stop at the first failing file")

	rootCmd.AddCommand(
		newGameCmd(),
		newStationCmd(),
		newConfigCmd(),
		newFolderCmd(),
		newSchemaCmd(),
		newGraphCmd(),
		newHistoryCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs sagalint with the process arguments and returns the exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes args against a fresh command tree.
func Run(args []string, out, errOut io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	cmd, err := rootCmd.ExecuteC()
	if cmd == nil {
		cmd = rootCmd
	}
	if err == nil {
		return ExitSuccess
	}
	if isExitError(err) {
		return ExitCode(err)
	}

	// Errors cobra raises itself: unknown commands, flags and arg counts
	clierrors.FprintError(errOut, clierrors.NewArgumentErrorWithUsage(
		err.Error(),
		cmd.UseLine(),
		"Run 'sagalint --help' for usage",
	))
	return ExitInvalidArguments
}
