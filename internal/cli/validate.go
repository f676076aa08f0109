package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagaworks/sagalint/internal/report"
	"github.com/sagaworks/sagalint/internal/validation"
)

// validateFunc runs one kind of validation against target.
type validateFunc func(ctx context.Context, s *session, target string, exitOnErrors bool) ([]*validation.Report, error)

func newGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <game.json>",
		Short: "Validate a game configuration and every station it lists",
		Long: `Validate the whole content package: the root game configuration, every
station file listed in stationPaths, every event tree, and the global audio
assets. Paths inside the package are resolved relative to the directory of
the game configuration.`,
		Example: `  sagalint game saga/game.json
  sagalint game saga/game.json --workers 8 --format yaml`,
		GroupID: GroupValidation,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidation(cmd.Context(), "game", args[0], readGlobalOptions(cmd), validateGame,
				cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func newStationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "station <station.json>",
		Short: "Validate a single station file on its own",
		Long: `Validate one station document without its game: schema violations,
malformed events, help option pairing and file name provenance. References
to other stations and audio files are not checked.`,
		GroupID: GroupValidation,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidation(cmd.Context(), "station", args[0], readGlobalOptions(cmd), validateStation,
				cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config <game.json>",
		Short:   "Validate the structure of a game configuration only",
		Long:    `Check the root game configuration against its schema without loading any station.`,
		GroupID: GroupValidation,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidation(cmd.Context(), "config", args[0], readGlobalOptions(cmd), validateConfig,
				cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func newFolderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "folder <dir>",
		Short: "Validate every station file in a folder",
		Long: `Validate each *.json file directly inside dir as a standalone station, in
name order. Subdirectories are not scanned. With --exit-on-errors the scan
stops at the first file that has diagnostics.`,
		GroupID: GroupValidation,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidation(cmd.Context(), "folder", args[0], readGlobalOptions(cmd), validateFolder,
				cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "schema <schema.json>",
		Short:   "Check a JSON schema document against the draft-07 meta-schema",
		GroupID: GroupValidation,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidation(cmd.Context(), "schema", args[0], readGlobalOptions(cmd), validateSchema,
				cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func validateGame(ctx context.Context, s *session, target string, _ bool) ([]*validation.Report, error) {
	if s.display != nil {
		s.display.Start(target)
	}
	rep, err := s.validator.ValidateGame(ctx, target)
	if s.display != nil {
		n := 0
		if rep != nil {
			n = len(rep.Diagnostics)
		}
		s.display.Finish(n, err)
	}
	if err != nil {
		return nil, err
	}
	return []*validation.Report{rep}, nil
}

func validateStation(ctx context.Context, s *session, target string, _ bool) ([]*validation.Report, error) {
	rep, err := s.validator.ValidateStationFile(ctx, target)
	if err != nil {
		return nil, err
	}
	return []*validation.Report{rep}, nil
}

func validateConfig(ctx context.Context, s *session, target string, _ bool) ([]*validation.Report, error) {
	rep, err := s.validator.ValidateConfigFile(ctx, target)
	if err != nil {
		return nil, err
	}
	return []*validation.Report{rep}, nil
}

func validateFolder(ctx context.Context, s *session, target string, exitOnErrors bool) ([]*validation.Report, error) {
	return s.validator.ValidateFolder(ctx, target, exitOnErrors)
}

func validateSchema(ctx context.Context, s *session, target string, _ bool) ([]*validation.Report, error) {
	rep, err := s.validator.ValidateSchemaFile(ctx, target)
	if err != nil {
		return nil, err
	}
	return []*validation.Report{rep}, nil
}

// runValidation sets up a session, runs fn, writes the reports to out and
// records the run. Diagnostics only fail the run with --exit-on-errors.
func runValidation(ctx context.Context, command, target string, opts globalOptions, fn validateFunc, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := newSession(ctx, opts, errOut)
	if err != nil {
		return err
	}

	started := time.Now()
	reports, err := fn(s.ctx, s, target, opts.ExitOnErrors)
	if err != nil {
		code := s.fail(target, err)
		s.record(command, target, nil, err, code, started)
		return NewExitError(code)
	}

	if err := report.New(out, s.format).Write(reports); err != nil {
		code := s.fail(target, err)
		s.record(command, target, reports, err, code, started)
		return NewExitError(code)
	}

	code := ExitSuccess
	if opts.ExitOnErrors && hasDiagnostics(reports) {
		code = ExitValidationFailed
	}
	s.record(command, target, reports, nil, code, started)

	if code != ExitSuccess {
		return NewExitError(code)
	}
	return nil
}

func hasDiagnostics(reports []*validation.Report) bool {
	for _, r := range reports {
		if r.HasDiagnostics() {
			return true
		}
	}
	return false
}
