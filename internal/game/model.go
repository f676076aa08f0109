// Package game models a saga content package: the root game configuration,
// its station documents and the event trees inside each station.
package game

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// Station types with dedicated checks.
const (
	StationTypeStory  = "story"
	StationTypeChoice = "choice"
	StationTypeHelp   = "help"
)

// GameConfig is the root document plus every station it references.
// It is built once by LoadGame and not modified afterwards.
type GameConfig struct {
	Name                 string            `json:"name"`
	BaseURL              string            `json:"baseUrl"`
	StationPaths         []string          `json:"stationPaths"`
	ChoiceInfix          string            `json:"choiceInfix"`
	ChoiceNames          []string          `json:"choiceNames"`
	GlobalAudioFilenames map[string]string `json:"globalAudioFilenames"`

	// Path is the root document path as given; Dir is its directory and the
	// base for every relative station and asset path.
	Path string `json:"-"`
	Dir  string `json:"-"`
	// Raw is the root document content, kept for the schema gate.
	Raw []byte `json:"-"`

	// Entries has one element per stationPaths item, in order.
	Entries []StationEntry `json:"-"`
	// Stations indexes successfully loaded stations by identifier. The first
	// station loaded under an identifier wins.
	Stations map[string]*Station `json:"-"`
}

// StationEntry records the outcome of loading one stationPaths item.
type StationEntry struct {
	// Path is the resolved station file path.
	Path    string
	Station *Station
	// Err is set when the file could not be read or parsed.
	Err *LoadError
	// Duplicate is set when Station's identifier was already taken.
	Duplicate bool
}

// LoadedStations returns the stations registered in the graph, in
// stationPaths order.
func (g *GameConfig) LoadedStations() []*Station {
	stations := make([]*Station, 0, len(g.Stations))
	for _, entry := range g.Entries {
		if entry.Station != nil && !entry.Duplicate {
			stations = append(stations, entry.Station)
		}
	}
	return stations
}

// Resolve returns rel relative to the root document's directory.
func (g *GameConfig) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(g.Dir, filepath.FromSlash(rel))
}

// HasChoiceName reports whether name is one of the configured choice names.
func (g *GameConfig) HasChoiceName(name string) bool {
	for _, n := range g.ChoiceNames {
		if n == name {
			return true
		}
	}
	return false
}

// Station is one narrative node.
type Station struct {
	ID                 string            `json:"id"`
	Type               string            `json:"type"`
	Description        string            `json:"description,omitempty"`
	Tags               []string          `json:"tags,omitempty"`
	Opens              []string          `json:"opens,omitempty"`
	RawEvents          []json.RawMessage `json:"events,omitempty"`
	HelpAudioFilenames []string          `json:"helpAudioFilenames,omitempty"`
	HelpCost           *float64          `json:"helpCost,omitempty"`

	// Events are the decoded top-level event trees.
	Events []*Event `json:"-"`
	// SourcePath is the file the station was read from.
	SourcePath string `json:"-"`
	// Raw is the station document content, kept for the schema gate.
	Raw []byte `json:"-"`
}

// HasHelpAudio reports whether helpAudioFilenames is present.
func (s *Station) HasHelpAudio() bool {
	return s.HelpAudioFilenames != nil
}

// HasHelpCost reports whether helpCost is present.
func (s *Station) HasHelpCost() bool {
	return s.HelpCost != nil
}

// IsChoice reports whether the station is a choice station.
func (s *Station) IsChoice() bool {
	return s.Type == StationTypeChoice
}

// ChoiceSuffix returns the part of id after the last occurrence of infix.
// The whole identifier is returned when it does not contain infix.
func ChoiceSuffix(id, infix string) string {
	if infix == "" {
		return id
	}
	i := strings.LastIndex(id, infix)
	if i < 0 {
		return id
	}
	return id[i+len(infix):]
}
