// Package schema runs structural JSON Schema checks over game configuration,
// station and schema documents.
//
// The default schema set is embedded in the binary. A directory holding
// game.json, station.json and any schema they reference can replace it; $ref
// values resolve relative to the referencing schema's own location in both
// cases.
package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/*.json
var embedded embed.FS

// Name selects the schema a document is checked against.
type Name string

const (
	// Game is the root game-configuration schema.
	Game Name = "game"
	// Station is the station document schema.
	Station Name = "station"
	// Meta is the draft-07 meta-schema, used to check schema documents.
	Meta Name = "meta"
)

const (
	embeddedBaseURL = "https://schemas.sagaworks.dev/saga/"
	metaSchemaURL   = "http://json-schema.org/draft-07/schema"
)

// Violation is one failed schema rule.
type Violation struct {
	Rule    string `json:"rule" yaml:"rule"`       // failing keyword, e.g. "required"
	Path    string `json:"path" yaml:"path"`       // location inside the document, e.g. "events[0].toStation"
	Message string `json:"message" yaml:"message"` // human-readable description
}

// Options configures New.
type Options struct {
	// Dir replaces the embedded schemas when set.
	Dir string
}

// Gate holds compiled schemas. It is safe for concurrent use once built.
type Gate struct {
	schemas map[Name]*jsonschema.Schema
	printer *message.Printer
	source  string
}

// New compiles the game, station and meta schemas. Any failure to read, parse
// or compile a schema is returned as an error.
func New(opts Options) (*Gate, error) {
	var (
		files   map[string][]byte
		baseURL string
		source  string
		err     error
	)
	if opts.Dir == "" {
		files, err = readSchemas(embedded, "schemas")
		baseURL = embeddedBaseURL
		source = "embedded"
	} else {
		files, err = readSchemas(os.DirFS(opts.Dir), ".")
		if err == nil {
			baseURL, err = dirURL(opts.Dir)
		}
		source = opts.Dir
	}
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)

	for name, data := range files {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing schema %s: %w", name, err)
		}
		if err := c.AddResource(baseURL+name, doc); err != nil {
			return nil, fmt.Errorf("adding schema %s: %w", name, err)
		}
	}

	g := &Gate{
		schemas: make(map[Name]*jsonschema.Schema, 3),
		printer: message.NewPrinter(language.English),
		source:  source,
	}
	for _, name := range []Name{Game, Station} {
		file := string(name) + ".json"
		if _, ok := files[file]; !ok {
			return nil, fmt.Errorf("schema %s not found in %s", file, source)
		}
		sch, err := c.Compile(baseURL + file)
		if err != nil {
			return nil, fmt.Errorf("compiling %s schema: %w", name, err)
		}
		g.schemas[name] = sch
	}

	meta, err := c.Compile(metaSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling meta schema: %w", err)
	}
	g.schemas[Meta] = meta

	return g, nil
}

// Source returns "embedded" or the schema directory in use.
func (g *Gate) Source() string {
	return g.source
}

// Check validates document against the named schema. Rule failures are
// returned as violations sorted by path; the error is only set when document
// is not JSON or name is unknown.
func (g *Gate) Check(document []byte, name Name) ([]Violation, error) {
	sch, ok := g.schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil, nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, fmt.Errorf("validating against %s schema: %w", name, err)
	}

	var violations []Violation
	g.collect(verr, &violations)

	// Keyword evaluation order inside the validator is not stable.
	sort.SliceStable(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
	return violations, nil
}

// collect appends the leaf causes of e.
func (g *Gate) collect(e *jsonschema.ValidationError, out *[]Violation) {
	if len(e.Causes) == 0 {
		*out = append(*out, Violation{
			Rule:    ruleName(e.ErrorKind),
			Path:    instancePath(e.InstanceLocation),
			Message: e.ErrorKind.LocalizedString(g.printer),
		})
		return
	}
	for _, cause := range e.Causes {
		g.collect(cause, out)
	}
}

func ruleName(kind jsonschema.ErrorKind) string {
	keywords := kind.KeywordPath()
	if len(keywords) == 0 {
		return "schema"
	}
	return keywords[len(keywords)-1]
}

// instancePath renders a location as "events[0].then.toStation".
func instancePath(location []string) string {
	var sb strings.Builder
	for _, segment := range location {
		if _, err := strconv.Atoi(segment); err == nil {
			sb.WriteString("[" + segment + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(segment)
	}
	return sb.String()
}

// readSchemas returns every *.json file directly under dir in fsys.
func readSchemas(fsys fs.FS, dir string) (map[string][]byte, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading schema directory: %w", err)
	}

	files := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", entry.Name(), err)
		}
		files[entry.Name()] = data
	}
	return files, nil
}

// dirURL returns a file URL for dir ending in a slash.
func dirURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving schema directory: %w", err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: strings.TrimSuffix(p, "/") + "/"}
	return u.String(), nil
}
