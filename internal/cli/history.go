package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	clierrors "github.com/sagaworks/sagalint/internal/errors"
	"github.com/sagaworks/sagalint/internal/history"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View past validation runs",
		Long: `View the log of sagalint validation runs with timestamp, command, target,
status, diagnostic count, exit code and duration. The log lives in
<state_dir>/history.yaml and keeps at most history_max_entries runs.`,
		GroupID: GroupInspection,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clearFlag, _ := cmd.Flags().GetBool("clear")
			limit, _ := cmd.Flags().GetInt("limit")
			return runHistory(cmd.Context(), readGlobalOptions(cmd), clearFlag, limit,
				cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	cmd.Flags().Bool("clear", false, "Clear all history")
	return cmd
}

func runHistory(ctx context.Context, opts globalOptions, clearFlag bool, limit int, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if limit < 0 {
		clierrors.FprintError(errOut, clierrors.NewArgumentError(
			fmt.Sprintf("limit must be positive, got %d", limit),
		))
		return NewExitError(ExitInvalidArguments)
	}
	if clearFlag && limit > 0 {
		clierrors.FprintError(errOut, clierrors.InvalidFlagCombination("--clear --limit", "clear removes every entry"))
		return NewExitError(ExitInvalidArguments)
	}

	st, err := loadSettings(ctx, opts, errOut)
	if err != nil {
		return err
	}

	if clearFlag {
		if err := history.ClearHistory(st.cfg.StateDir); err != nil {
			clierrors.FprintError(errOut, clierrors.WrapWithMessage(err, clierrors.Runtime, "clearing history"))
			return NewExitError(ExitValidationFailed)
		}
		fmt.Fprintln(out, "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(st.cfg.StateDir)
	if err != nil {
		clierrors.FprintError(errOut, clierrors.WrapWithMessage(err, clierrors.Runtime, "loading history"))
		return NewExitError(ExitValidationFailed)
	}

	entries := histFile.Last(limit)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history available.")
		return nil
	}

	displayEntries(out, entries)
	return nil
}

// displayEntries prints entries newest first.
func displayEntries(out io.Writer, entries []history.RunEntry) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, entry := range entries {
		timestamp := entry.Timestamp.Format("2006-01-02 15:04:05")

		exitCodeStr := fmt.Sprintf("%d", entry.ExitCode)
		if entry.ExitCode == 0 {
			exitCodeStr = green(exitCodeStr)
		} else {
			exitCodeStr = red(exitCodeStr)
		}

		fmt.Fprintf(out, "%s  %-22s  %s  %-8s  %-4d  exit=%s  %-8s  %s\n",
			cyan(timestamp),
			entry.ID,
			formatStatus(entry.Status, green, yellow, red),
			entry.Command,
			entry.Diagnostics,
			exitCodeStr,
			entry.Duration,
			entry.Target,
		)
	}
}

// formatStatus returns a color-coded status string.
func formatStatus(status string, green, yellow, red func(a ...interface{}) string) string {
	padded := fmt.Sprintf("%-11s", status)
	switch status {
	case history.StatusClean:
		return green(padded)
	case history.StatusDiagnostics:
		return yellow(padded)
	case history.StatusFailed:
		return red(padded)
	default:
		return padded
	}
}
