package validation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/sagaworks/sagalint/internal/ctxlog"
	"github.com/sagaworks/sagalint/internal/game"
	"github.com/sagaworks/sagalint/internal/schema"
)

// Options configures a Validator.
type Options struct {
	// Gate runs the structural checks. Nil skips them.
	Gate *schema.Gate
	// FS is the filesystem collaborator. Nil uses the OS filesystem.
	FS game.FS
	// Policy decides whether a broken station file aborts a game run.
	Policy game.StationPolicy
	// Workers bounds how many stations are checked at once. Values below
	// one mean one.
	Workers int
	// Progress is told about every checked station. Optional.
	Progress ProgressObserver
}

// ProgressObserver receives station progress during ValidateGame. Calls may
// come from several goroutines.
type ProgressObserver interface {
	StationChecked(done, total int, path string)
}

// Validator coordinates loading, structural checks and semantic checks.
type Validator struct {
	gate     *schema.Gate
	fs       game.FS
	policy   game.StationPolicy
	workers  int
	progress ProgressObserver
}

// New creates a Validator.
func New(opts Options) *Validator {
	v := &Validator{
		gate:     opts.Gate,
		fs:       opts.FS,
		policy:   opts.Policy,
		workers:  opts.Workers,
		progress: opts.Progress,
	}
	if v.fs == nil {
		v.fs = game.OSFS{}
	}
	if v.policy == "" {
		v.policy = game.PolicyContinue
	}
	if v.workers < 1 {
		v.workers = 1
	}
	return v
}

// ValidateGame validates the whole package rooted at rootPath.
//
// A root document that cannot be loaded is returned as a *game.LoadError.
// Everything else becomes a diagnostic, emitted in this order: root schema
// violations, then one block per stationPaths entry (load failure, duplicate,
// or schema violations, event walks and station checks), then missing global
// assets.
func (v *Validator) ValidateGame(ctx context.Context, rootPath string) (*Report, error) {
	log := ctxlog.FromContext(ctx)

	g, err := game.LoadGame(rootPath, game.LoadOptions{FS: v.fs, Policy: v.policy})
	if err != nil {
		return nil, err
	}
	log.Debug("loaded game", "root", rootPath, "stations", len(g.Entries))

	report := &Report{Target: rootPath, Kind: TargetGame}

	rootDiags, err := v.structural(g.Raw, schema.Game, g.Path, "")
	if err != nil {
		return nil, err
	}
	report.Add(rootDiags...)

	universe := ResolveIdentifiers(g)
	checker := NewChecker(g, universe, v.fs)
	log.Debug("resolved identifiers", "count", universe.Len())

	blocks := make([][]Diagnostic, len(g.Entries))
	var done atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(v.workers)
	for i, entry := range g.Entries {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			diags, err := v.checkEntry(checker, entry)
			if err != nil {
				return err
			}
			blocks[i] = diags
			log.Debug("checked station", "path", entry.Path, "diagnostics", len(diags))
			if v.progress != nil {
				v.progress.StationChecked(int(done.Add(1)), len(g.Entries), entry.Path)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	for _, block := range blocks {
		report.Add(block...)
	}

	report.Add(checker.CheckGlobalAssets()...)
	return report, nil
}

// checkEntry returns the diagnostics of one stationPaths entry.
func (v *Validator) checkEntry(checker *Checker, entry game.StationEntry) ([]Diagnostic, error) {
	if entry.Err != nil {
		return []Diagnostic{loadFailure(entry.Err)}, nil
	}

	s := entry.Station
	if entry.Duplicate {
		return []Diagnostic{{
			Code:      CodeDuplicateStation,
			Message:   fmt.Sprintf("station id %q is already used by another station; this file is ignored", s.ID),
			File:      entry.Path,
			StationID: s.ID,
			Path:      "id",
			Reference: s.ID,
		}}, nil
	}

	diags, err := v.structural(s.Raw, schema.Station, s.SourcePath, s.ID)
	if err != nil {
		return nil, err
	}
	for _, ev := range s.Events {
		diags = append(diags, checker.WalkEvent(s, ev)...)
	}
	diags = append(diags, checker.CheckStation(s)...)
	return diags, nil
}

// ValidateStationFile validates one station document on its own: schema
// violations, malformed events and the checks that need no other document.
// A missing file is returned as a *game.LoadError; a file that is not JSON
// becomes a diagnostic.
func (v *Validator) ValidateStationFile(ctx context.Context, path string) (*Report, error) {
	report := &Report{Target: path, Kind: TargetStation}

	s, err := game.LoadStation(path, v.fs)
	if err != nil {
		var loadErr *game.LoadError
		if errors.As(err, &loadErr) && loadErr.Kind == game.NotJSON {
			report.Add(loadFailure(loadErr))
			return report, nil
		}
		return nil, err
	}

	diags, err := v.structural(s.Raw, schema.Station, path, s.ID)
	if err != nil {
		return nil, err
	}
	report.Add(diags...)

	checker := NewStructuralChecker()
	for _, ev := range s.Events {
		report.Add(checker.WalkEvent(s, ev)...)
	}
	report.Add(checkHelpPairing(s)...)
	report.Add(checkProvenance(s)...)

	ctxlog.FromContext(ctx).Debug("checked station file", "path", path, "diagnostics", len(report.Diagnostics))
	return report, nil
}

// ValidateConfigFile checks the root document's structure without loading
// any station.
func (v *Validator) ValidateConfigFile(ctx context.Context, path string) (*Report, error) {
	g, err := game.LoadRoot(path, v.fs)
	if err != nil {
		return nil, err
	}

	report := &Report{Target: path, Kind: TargetConfig}
	diags, err := v.structural(g.Raw, schema.Game, path, "")
	if err != nil {
		return nil, err
	}
	report.Add(diags...)

	ctxlog.FromContext(ctx).Debug("checked game config", "path", path, "diagnostics", len(report.Diagnostics))
	return report, nil
}

// ValidateSchemaFile checks a schema document against the draft-07
// meta-schema.
func (v *Validator) ValidateSchemaFile(ctx context.Context, path string) (*Report, error) {
	if v.gate == nil {
		return nil, fmt.Errorf("schema checks are disabled")
	}

	data, err := v.fs.ReadFile(path)
	if err != nil {
		kind := game.Unreadable
		if game.IsNotFound(err) {
			kind = game.MissingFile
		}
		return nil, &game.LoadError{Kind: kind, Path: path, Err: err}
	}

	violations, err := v.gate.Check(data, schema.Meta)
	if err != nil {
		return nil, &game.LoadError{Kind: game.NotJSON, Path: path, Err: err}
	}

	report := &Report{Target: path, Kind: TargetSchema}
	report.Add(schemaDiagnostics(violations, path, "")...)

	ctxlog.FromContext(ctx).Debug("checked schema file", "path", path, "diagnostics", len(report.Diagnostics))
	return report, nil
}

// ValidateFolder validates every *.json file directly inside dir as a
// station, in name order. With exitOnErrors the scan stops after the first
// file that has diagnostics.
func (v *Validator) ValidateFolder(ctx context.Context, dir string, exitOnErrors bool) ([]*Report, error) {
	files, err := stationFiles(dir)
	if err != nil {
		return nil, err
	}

	log := ctxlog.FromContext(ctx)
	reports := make([]*Report, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := v.ValidateStationFile(ctx, path)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
		if exitOnErrors && report.HasDiagnostics() {
			log.Debug("stopping folder scan", "path", path, "diagnostics", len(report.Diagnostics))
			break
		}
	}
	return reports, nil
}

// NotADirectoryError is returned by ValidateFolder for a path that is not a
// directory.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("%s is not a directory", e.Path)
}

func stationFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading folder: %w", err)
	}
	if !info.IsDir() {
		return nil, &NotADirectoryError{Path: dir}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// structural runs the schema gate over document.
func (v *Validator) structural(document []byte, name schema.Name, file, stationID string) ([]Diagnostic, error) {
	if v.gate == nil {
		return nil, nil
	}
	violations, err := v.gate.Check(document, name)
	if err != nil {
		return nil, fmt.Errorf("checking %s against %s schema: %w", file, name, err)
	}
	return schemaDiagnostics(violations, file, stationID), nil
}

func schemaDiagnostics(violations []schema.Violation, file, stationID string) []Diagnostic {
	diags := make([]Diagnostic, 0, len(violations))
	for _, viol := range violations {
		diags = append(diags, Diagnostic{
			Code:      CodeSchemaViolation,
			Message:   viol.Message,
			File:      file,
			StationID: stationID,
			Path:      viol.Path,
			Rule:      viol.Rule,
		})
	}
	return diags
}

func loadFailure(err *game.LoadError) Diagnostic {
	code := CodeStationMissing
	if err.Kind == game.NotJSON {
		code = CodeStationNotJSON
	}
	return Diagnostic{
		Code:    code,
		Message: fmt.Sprintf("cannot load station file (%s): %s", err.Kind, causeOf(err)),
		File:    err.Path,
	}
}

func causeOf(err *game.LoadError) string {
	if err.Err == nil {
		return err.Kind.String()
	}
	return err.Err.Error()
}
