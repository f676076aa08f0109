// Package testutil provides test utilities and helpers for sagalint tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// RootFileName is the file name used for fixture root documents.
const RootFileName = "game.json"

// GameFixture builds a content package on disk for a test.
type GameFixture struct {
	t    *testing.T
	Dir  string
	Root map[string]any
}

// NewGame creates a fixture in a fresh temp directory with a minimal valid
// root document: choice infix "-c-", choice names red and blue, no stations.
func NewGame(t *testing.T) *GameFixture {
	t.Helper()

	return &GameFixture{
		t:   t,
		Dir: t.TempDir(),
		Root: map[string]any{
			"name":                 "test saga",
			"baseUrl":              "https://example.com/saga/",
			"stationPaths":         []string{},
			"choiceInfix":          "-c-",
			"choiceNames":          []string{"red", "blue"},
			"globalAudioFilenames": map[string]string{},
		},
	}
}

// Set overrides a root document key.
func (f *GameFixture) Set(key string, value any) *GameFixture {
	f.Root[key] = value
	return f
}

// AddStation writes station to stations/<id>.json and lists it in
// stationPaths. It returns the station file path.
func (f *GameFixture) AddStation(station map[string]any) string {
	f.t.Helper()

	id, _ := station["id"].(string)
	return f.AddStationFile(filepath.ToSlash(filepath.Join("stations", id+".json")), station)
}

// AddStationFile writes station to rel and lists rel in stationPaths.
func (f *GameFixture) AddStationFile(rel string, station any) string {
	f.t.Helper()

	path := filepath.Join(f.Dir, filepath.FromSlash(rel))
	WriteJSON(f.t, path, station)
	f.ListStation(rel)
	return path
}

// ListStation appends rel to stationPaths without writing a file.
func (f *GameFixture) ListStation(rel string) {
	paths, _ := f.Root["stationPaths"].([]string)
	f.Root["stationPaths"] = append(paths, rel)
}

// AddAudio creates an empty audio file at rel.
func (f *GameFixture) AddAudio(rel string) string {
	f.t.Helper()

	path := filepath.Join(f.Dir, filepath.FromSlash(rel))
	WriteFile(f.t, path, "")
	return path
}

// Write writes the root document and returns its path.
func (f *GameFixture) Write() string {
	f.t.Helper()

	path := filepath.Join(f.Dir, RootFileName)
	WriteJSON(f.t, path, f.Root)
	return path
}

// WriteJSON marshals v and writes it to path, creating parent directories.
func WriteJSON(t *testing.T, path string, v any) {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal %s: %v", path, err)
	}
	WriteFile(t, path, string(data))
}

// WriteFile writes content to a file, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads and returns the content of a file.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(content)
}
