package history

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// Writer appends run entries to the history file and prunes old ones.
type Writer struct {
	mu sync.Mutex
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain. Zero keeps all.
	MaxEntries int
	// Warn receives non-fatal logging failures. Nil discards them.
	Warn io.Writer
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int, warn io.Writer) *Writer {
	return &Writer{StateDir: stateDir, MaxEntries: maxEntries, Warn: warn}
}

// LogRun records a finished run. Failures never fail the command; they are
// reported on Warn.
func (w *Writer) LogRun(entry RunEntry) {
	if err := w.append(entry); err != nil && w.Warn != nil {
		fmt.Fprintf(w.Warn, "Warning: failed to log history: %v\n", err)
	}
}

func (w *Writer) append(entry RunEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.ID == "" {
		id, err := GenerateID(entry.Timestamp)
		if err != nil {
			return fmt.Errorf("generating history ID: %w", err)
		}
		entry.ID = id
	}

	history, err := LoadHistory(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	// Prune oldest entries if over limit
	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := SaveHistory(w.StateDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// GenerateID returns an identifier of the form YYYYMMDD_HHMMSS_xxxxxx.
func GenerateID(at time.Time) (string, error) {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return fmt.Sprintf("%s_%s", at.Format("20060102_150405"), hex.EncodeToString(suffix)), nil
}

// StatusFor derives an entry status from a run outcome.
func StatusFor(diagnostics int, err error) string {
	switch {
	case err != nil:
		return StatusFailed
	case diagnostics > 0:
		return StatusDiagnostics
	default:
		return StatusClean
	}
}
