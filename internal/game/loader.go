package game

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// LoadErrorKind classifies document loading failures.
type LoadErrorKind int

const (
	// MissingFile means the document does not exist.
	MissingFile LoadErrorKind = iota + 1
	// NotJSON means the document is not a JSON object.
	NotJSON
	// Unreadable means the document exists but could not be read.
	Unreadable
)

// String returns the string representation of a LoadErrorKind.
func (k LoadErrorKind) String() string {
	switch k {
	case MissingFile:
		return "missing file"
	case NotJSON:
		return "not JSON"
	case Unreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// LoadError reports a document that could not be loaded.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loading %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("loading %s: %s", e.Path, e.Kind)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// StationPolicy decides what a failing station file does to a game load.
type StationPolicy string

const (
	// PolicyContinue records the failure on the entry and keeps loading.
	PolicyContinue StationPolicy = "continue"
	// PolicyAbort fails the whole load with the station's LoadError.
	PolicyAbort StationPolicy = "abort"
)

// LoadOptions configures LoadGame.
type LoadOptions struct {
	FS     FS
	Policy StationPolicy
}

func (o LoadOptions) fs() FS {
	if o.FS == nil {
		return OSFS{}
	}
	return o.FS
}

// LoadGame reads the root document at rootPath and every station it lists.
// A broken root document always fails; failing stations follow opts.Policy.
func LoadGame(rootPath string, opts LoadOptions) (*GameConfig, error) {
	g, err := LoadRoot(rootPath, opts.fs())
	if err != nil {
		return nil, err
	}

	g.Entries = make([]StationEntry, 0, len(g.StationPaths))
	g.Stations = make(map[string]*Station, len(g.StationPaths))

	for _, rel := range g.StationPaths {
		path := g.Resolve(rel)
		entry := StationEntry{Path: path}

		station, err := LoadStation(path, opts.fs())
		if err != nil {
			loadErr, ok := err.(*LoadError)
			if !ok {
				return nil, err
			}
			if opts.Policy == PolicyAbort {
				return nil, loadErr
			}
			entry.Err = loadErr
			g.Entries = append(g.Entries, entry)
			continue
		}

		entry.Station = station
		// A station without an id cannot clash with another one.
		if station.ID != "" {
			if _, taken := g.Stations[station.ID]; taken {
				entry.Duplicate = true
			} else {
				g.Stations[station.ID] = station
			}
		}
		g.Entries = append(g.Entries, entry)
	}

	return g, nil
}

// LoadRoot reads only the root game-configuration document.
func LoadRoot(rootPath string, fsys FS) (*GameConfig, error) {
	data, err := readDocument(rootPath, fsys)
	if err != nil {
		return nil, err
	}

	fields, err := objectFields(rootPath, data)
	if err != nil {
		return nil, err
	}

	g := &GameConfig{
		Path: rootPath,
		Dir:  filepath.Dir(rootPath),
		Raw:  data,
	}
	decodeField(fields, "name", &g.Name)
	decodeField(fields, "baseUrl", &g.BaseURL)
	decodeField(fields, "stationPaths", &g.StationPaths)
	decodeField(fields, "choiceInfix", &g.ChoiceInfix)
	decodeField(fields, "choiceNames", &g.ChoiceNames)
	decodeField(fields, "globalAudioFilenames", &g.GlobalAudioFilenames)

	return g, nil
}

// LoadStation reads one station document and decodes its event trees.
// Fields of the wrong type are left empty; the schema gate reports them.
func LoadStation(path string, fsys FS) (*Station, error) {
	data, err := readDocument(path, fsys)
	if err != nil {
		return nil, err
	}

	fields, err := objectFields(path, data)
	if err != nil {
		return nil, err
	}

	s := &Station{SourcePath: path, Raw: data}
	decodeField(fields, "id", &s.ID)
	decodeField(fields, "type", &s.Type)
	decodeField(fields, "description", &s.Description)
	decodeField(fields, "tags", &s.Tags)
	decodeField(fields, "opens", &s.Opens)
	decodeField(fields, "events", &s.RawEvents)
	decodeField(fields, "helpAudioFilenames", &s.HelpAudioFilenames)
	decodeField(fields, "helpCost", &s.HelpCost)

	s.Events = DecodeEvents(s.RawEvents)
	return s, nil
}

func readDocument(path string, fsys FS) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if IsNotFound(err) {
			return nil, &LoadError{Kind: MissingFile, Path: path, Err: err}
		}
		return nil, &LoadError{Kind: Unreadable, Path: path, Err: err}
	}
	return data, nil
}

func objectFields(path string, data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &LoadError{Kind: NotJSON, Path: path, Err: err}
	}
	if fields == nil {
		return nil, &LoadError{Kind: NotJSON, Path: path, Err: fmt.Errorf("document is null")}
	}
	return fields, nil
}

// decodeField unmarshals fields[key] into dst. Absent keys are skipped and
// type errors ignored.
func decodeField(fields map[string]json.RawMessage, key string, dst any) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	_ = json.Unmarshal(raw, dst)
}
