// Package history keeps a YAML log of validation runs in the state directory.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// HistoryFileName is the name of the history file.
	HistoryFileName = "history.yaml"
	// BackupSuffix is the suffix for backup files when corruption is detected.
	BackupSuffix = ".backup"
)

// Status constants for history entries.
const (
	// StatusClean means the run finished without diagnostics.
	StatusClean = "clean"
	// StatusDiagnostics means the run finished and reported diagnostics.
	StatusDiagnostics = "diagnostics"
	// StatusFailed means the run stopped on a fatal error.
	StatusFailed = "failed"
)

// RunEntry records one validation run.
type RunEntry struct {
	// ID is unique per run: YYYYMMDD_HHMMSS_<hex>.
	ID        string    `yaml:"id"`
	Timestamp time.Time `yaml:"timestamp"`
	// Command is the sagalint subcommand (game, station, folder, ...).
	Command string `yaml:"command"`
	// Target is the file or directory the command was run on.
	Target      string `yaml:"target"`
	Status      string `yaml:"status"`
	Files       int    `yaml:"files"`
	Diagnostics int    `yaml:"diagnostics"`
	ExitCode    int    `yaml:"exit_code"`
	// Duration is in Go duration format (e.g. "1.234s").
	Duration string `yaml:"duration"`
	// Error is the fatal error message of a failed run.
	Error string `yaml:"error,omitempty"`
}

// HistoryFile represents the YAML file containing all history entries.
type HistoryFile struct {
	// Entries is ordered oldest first.
	Entries []RunEntry `yaml:"entries"`
}

// LoadHistory loads the history file from the given state directory.
// Returns empty history if file doesn't exist.
// Handles corrupted files by backing them up and creating a fresh history.
func LoadHistory(stateDir string) (*HistoryFile, error) {
	historyPath := filepath.Join(stateDir, HistoryFileName)

	data, err := os.ReadFile(historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &HistoryFile{Entries: []RunEntry{}}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		if backupErr := backupCorruptedFile(historyPath); backupErr != nil {
			return nil, fmt.Errorf("backing up corrupted history file: %w", backupErr)
		}
		return &HistoryFile{Entries: []RunEntry{}}, nil
	}

	if history.Entries == nil {
		history.Entries = []RunEntry{}
	}

	return &history, nil
}

// backupCorruptedFile renames a corrupted file with a .backup suffix.
func backupCorruptedFile(path string) error {
	if err := os.Rename(path, path+BackupSuffix); err != nil {
		return fmt.Errorf("renaming corrupted file to backup: %w", err)
	}
	return nil
}

// SaveHistory saves the history file to the given state directory using atomic writes.
// Creates parent directories if needed.
func SaveHistory(stateDir string, history *HistoryFile) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	historyPath := filepath.Join(stateDir, HistoryFileName)
	tmpPath := historyPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp history file: %w", err)
	}

	if err := os.Rename(tmpPath, historyPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp history file: %w", err)
	}

	return nil
}

// ClearHistory removes all entries from the history file.
func ClearHistory(stateDir string) error {
	return SaveHistory(stateDir, &HistoryFile{Entries: []RunEntry{}})
}

// Last returns up to n most recent entries, newest first. n <= 0 returns all.
func (h *HistoryFile) Last(n int) []RunEntry {
	count := len(h.Entries)
	if n > 0 && n < count {
		count = n
	}
	out := make([]RunEntry, 0, count)
	for i := len(h.Entries) - 1; i >= 0 && len(out) < count; i-- {
		out = append(out, h.Entries[i])
	}
	return out
}
