package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sagaworks/sagalint/internal/config"
	"github.com/sagaworks/sagalint/internal/ctxlog"
	clierrors "github.com/sagaworks/sagalint/internal/errors"
	"github.com/sagaworks/sagalint/internal/game"
	"github.com/sagaworks/sagalint/internal/history"
	"github.com/sagaworks/sagalint/internal/progress"
	"github.com/sagaworks/sagalint/internal/report"
	"github.com/sagaworks/sagalint/internal/schema"
	"github.com/sagaworks/sagalint/internal/validation"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	ConfigPath   string
	Format       string
	Debug        bool
	NoColor      bool
	Workers      int
	ExitOnErrors bool
}

func readGlobalOptions(cmd *cobra.Command) globalOptions {
	var opts globalOptions
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Format, _ = cmd.Flags().GetString("format")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	opts.NoColor, _ = cmd.Flags().GetBool("no-color")
	opts.Workers, _ = cmd.Flags().GetInt("workers")
	opts.ExitOnErrors, _ = cmd.Flags().GetBool("exit-on-errors")
	return opts
}

// settings is the configuration every command shares.
type settings struct {
	cfg    *config.Configuration
	format report.Format
	ctx    context.Context
}

// loadSettings loads configuration, resolves the output format, applies the
// color preference and installs the logger. Failures are printed to errOut
// and returned as exit errors.
func loadSettings(ctx context.Context, opts globalOptions, errOut io.Writer) (*settings, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		clierrors.FprintError(errOut, clierrors.ConfigParseError(opts.ConfigPath, err))
		return nil, NewExitError(ExitInvalidArguments)
	}

	formatName := cfg.OutputFormat
	if opts.Format != "" {
		formatName = opts.Format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		clierrors.FprintError(errOut, clierrors.InvalidOutputFormat(formatName, report.ValidFormats()))
		return nil, NewExitError(ExitInvalidArguments)
	}

	if opts.Workers < 0 {
		clierrors.FprintError(errOut, clierrors.NewArgumentError(
			"--workers must not be negative",
			"Use 0 to take the value from the configuration",
		))
		return nil, NewExitError(ExitInvalidArguments)
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}

	applyColor(cfg.Color, opts.NoColor)

	logger := ctxlog.New(errOut, opts.Debug)
	logger.Debug("configuration loaded",
		"config", opts.ConfigPath,
		"format", format,
		"workers", cfg.Workers,
		"station_load_policy", cfg.StationLoadPolicy,
	)

	return &settings{cfg: cfg, format: format, ctx: ctxlog.WithLogger(ctx, logger)}, nil
}

// applyColor sets the global color switch. "auto" keeps fatih/color's own
// terminal detection.
func applyColor(mode string, noColor bool) {
	switch {
	case noColor || mode == "never":
		if !color.NoColor {
			color.NoColor = true
		}
	case mode == "always":
		if color.NoColor {
			color.NoColor = false
		}
	}
}

// session is a configured validation run.
type session struct {
	*settings
	validator *validation.Validator
	display   *progress.Display
	errOut    io.Writer
}

func newSession(ctx context.Context, opts globalOptions, errOut io.Writer) (*session, error) {
	st, err := loadSettings(ctx, opts, errOut)
	if err != nil {
		return nil, err
	}

	gate, err := schema.New(schema.Options{Dir: st.cfg.SchemasDir})
	if err != nil {
		clierrors.FprintError(errOut, clierrors.SchemaSetInvalid(st.cfg.SchemasDir, err))
		return nil, NewExitError(ExitInvalidArguments)
	}
	ctxlog.FromContext(st.ctx).Debug("schemas ready", "source", gate.Source())

	s := &session{settings: st, errOut: errOut}

	vopts := validation.Options{
		Gate:    gate,
		Policy:  st.cfg.LoadPolicy(),
		Workers: st.cfg.Workers,
	}
	if f, ok := errOut.(*os.File); ok {
		if caps := progress.DetectTerminalCapabilities(f); caps.IsTTY {
			s.display = progress.NewDisplay(caps, errOut)
			vopts.Progress = s.display
		}
	}
	s.validator = validation.New(vopts)

	return s, nil
}

// fail prints err for the user and returns the exit code it maps to.
func (s *session) fail(target string, err error) int {
	var loadErr *game.LoadError
	var dirErr *validation.NotADirectoryError

	switch {
	case errors.As(err, &loadErr):
		reason := loadErr.Kind.String()
		if loadErr.Err != nil {
			reason += ": " + loadErr.Err.Error()
		}
		clierrors.FprintError(s.errOut, clierrors.LoadFailed(loadErr.Path, reason))
		return ExitLoadFailed
	case errors.As(err, &dirErr):
		clierrors.FprintError(s.errOut, clierrors.NotADirectory(dirErr.Path))
		return ExitInvalidArguments
	case errors.Is(err, fs.ErrNotExist):
		clierrors.FprintError(s.errOut, clierrors.FileNotFound(target))
		return ExitLoadFailed
	case errors.Is(err, context.Canceled):
		clierrors.FprintError(s.errOut, clierrors.NewRuntimeError("validation interrupted"))
		return ExitValidationFailed
	default:
		clierrors.FprintError(s.errOut, clierrors.Wrap(err, clierrors.Runtime))
		return ExitValidationFailed
	}
}

// record appends the run to the history file when history is enabled.
func (s *session) record(command, target string, reports []*validation.Report, runErr error, exitCode int, started time.Time) {
	if !s.cfg.HistoryEnabled {
		return
	}

	diagnostics := 0
	for _, r := range reports {
		diagnostics += len(r.Diagnostics)
	}
	entry := history.RunEntry{
		Command:     command,
		Target:      target,
		Status:      history.StatusFor(diagnostics, runErr),
		Files:       len(reports),
		Diagnostics: diagnostics,
		ExitCode:    exitCode,
		Duration:    time.Since(started).Round(time.Millisecond).String(),
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	history.NewWriter(s.cfg.StateDir, s.cfg.HistoryMaxEntries, s.errOut).LogRun(entry)
}
