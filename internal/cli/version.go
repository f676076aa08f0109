package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sagaworks/sagalint/internal/build"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for sagalint",
		Example: `  # Show version info
  sagalint version

  # Plain output (for scripts)
  sagalint version --plain`,
		GroupID: GroupInspection,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			plain, _ := cmd.Flags().GetBool("plain")
			if plain {
				printPlainVersion(cmd.OutOrStdout())
				return
			}
			printPrettyVersion(cmd.OutOrStdout())
		},
	}
	cmd.Flags().Bool("plain", false, "Plain output without formatting")
	return cmd
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer) {
	fmt.Fprintf(out, "sagalint %s\n", build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func printPrettyVersion(out io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	version := build.Version
	if build.IsDevBuild() {
		version += dim(" (development build)")
	}

	fmt.Fprintf(out, "%s %s\n", cyan("sagalint"), version)
	fmt.Fprintf(out, "  %s %s\n", dim("Commit:  "), build.Commit)
	fmt.Fprintf(out, "  %s %s\n", dim("Built:   "), build.BuildDate)
	fmt.Fprintf(out, "  %s %s %s/%s\n", dim("Go:      "), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
