package validation

import (
	"fmt"
	"sort"

	"github.com/sagaworks/sagalint/internal/game"
)

// Checker runs the event-tree and station checks of one game. It only reads
// the game, the universe and the filesystem, so one Checker may serve
// several goroutines.
type Checker struct {
	game     *game.GameConfig
	universe *Universe
	fs       game.FS
}

// NewChecker creates a Checker for g. A nil fsys uses the OS filesystem.
func NewChecker(g *game.GameConfig, universe *Universe, fsys game.FS) *Checker {
	if fsys == nil {
		fsys = game.OSFS{}
	}
	return &Checker{game: g, universe: universe, fs: fsys}
}

// NewStructuralChecker creates a Checker for a station validated on its own.
// It reports malformed events and cycles only; references and assets need
// the whole game.
func NewStructuralChecker() *Checker {
	return &Checker{fs: game.OSFS{}}
}

// WalkEvent checks ev and every event nested under it, depth first, parent
// before children, branches before the "then" continuation. Diagnostics are
// returned in that order.
func (c *Checker) WalkEvent(station *game.Station, ev *game.Event) []Diagnostic {
	w := &walk{
		checker: c,
		station: station,
		onPath:  make(map[*game.Event]bool),
	}
	w.visit(ev)
	return w.diags
}

// walk is the state of one top-level traversal.
type walk struct {
	checker *Checker
	station *game.Station
	onPath  map[*game.Event]bool
	diags   []Diagnostic
}

func (w *walk) visit(ev *game.Event) {
	if ev == nil {
		return
	}
	if w.onPath[ev] {
		w.emit(CodeEventCycle, ev.Path, "", "event at %s is its own ancestor", ev.Path)
		return
	}
	w.onPath[ev] = true
	defer delete(w.onPath, ev)

	for _, p := range ev.Problems {
		w.malformed(ev, p)
	}

	if w.checker.universe != nil {
		w.checkTargets(ev)
	}
	if w.checker.game != nil {
		w.checkAudio(ev)
	}

	for _, child := range ev.Children() {
		w.visit(child)
	}
}

func (w *walk) malformed(ev *game.Event, p game.Problem) {
	path := ev.Path
	if p.Key != "" {
		path = ev.Path + "." + p.Key
	}
	tag := ev.Tag()
	if tag == "" {
		tag = "untagged"
	}
	d := w.diagnostic(CodeMalformedEvent, path, "", "%s event at %s: %s", tag, ev.Path, p.Message)
	d.Hint = "Compare the event with the keys its action requires"
	w.diags = append(w.diags, d)
}

func (w *walk) checkTargets(ev *game.Event) {
	for _, ref := range game.StationTargets(ev) {
		// Missing keys and empty entries were already reported as malformed events.
		if ref.Value == "" {
			continue
		}
		if !w.checker.universe.Contains(ref.Value) {
			w.emit(CodeMissingTarget, ev.Path+"."+ref.Key, ref.Value,
				"%s event references unknown station %q", ev.Tag(), ref.Value)
		}
	}
}

func (w *walk) checkAudio(ev *game.Event) {
	for _, ref := range audioRefs(ev) {
		if ref.Value == "" {
			continue
		}
		if !w.checker.fs.Exists(w.checker.game.Resolve(ref.Value)) {
			w.emit(CodeMissingAudio, ev.Path+"."+ref.Key, ref.Value,
				"%s event references missing audio file %q", ev.Tag(), ref.Value)
		}
	}
}

func (w *walk) emit(code Code, path, reference, format string, args ...any) {
	w.diags = append(w.diags, w.diagnostic(code, path, reference, format, args...))
}

func (w *walk) diagnostic(code Code, path, reference, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		File:      w.station.SourcePath,
		StationID: w.station.ID,
		Path:      path,
		Reference: reference,
	}
}

// audioRefs returns the audio files ev itself refers to.
func audioRefs(ev *game.Event) []game.NamedRef {
	switch v := ev.Kind.(type) {
	case *game.PlayAudio:
		refs := make([]game.NamedRef, 0, len(v.AudioFilenames))
		for i, name := range v.AudioFilenames {
			refs = append(refs, game.NamedRef{Key: fmt.Sprintf("audioFilenames[%d]", i), Value: name})
		}
		return refs
	case *game.PlayBackgroundAudio:
		return []game.NamedRef{{Key: "audioFilename", Value: v.AudioFilename}}
	case *game.PlayAudioBasedOnAdHocValue:
		keys := make([]string, 0, len(v.AudioFilenameMap))
		for k := range v.AudioFilenameMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		refs := make([]game.NamedRef, 0, len(keys))
		for _, k := range keys {
			refs = append(refs, game.NamedRef{Key: "audioFilenameMap." + k, Value: v.AudioFilenameMap[k]})
		}
		return refs
	case *game.PowerNameChoice:
		return v.AudioRefs()
	}
	return nil
}
