package validation

import (
	"fmt"
	"strings"
)

// Code is a stable diagnostic identifier, rendered as "E" plus three digits.
type Code int

const (
	CodeSchemaViolation    Code = 100
	CodeStationMissing     Code = 200
	CodeStationNotJSON     Code = 201
	CodeDuplicateStation   Code = 202
	CodeMissingTarget      Code = 300
	CodeMissingOpens       Code = 301
	CodeMalformedChoiceRef Code = 302
	CodeMissingAudio       Code = 310
	CodeMalformedEvent     Code = 320
	CodeEventCycle         Code = 321
	CodeChoiceNaming       Code = 330
	CodeHelpPairing        Code = 340
	CodeMissingGlobalAsset Code = 350
	CodeProvenance         Code = 360
)

var codeTitles = map[Code]string{
	CodeSchemaViolation:    "schema violation",
	CodeStationMissing:     "station file missing",
	CodeStationNotJSON:     "station file not JSON",
	CodeDuplicateStation:   "duplicate station id",
	CodeMissingTarget:      "missing target station",
	CodeMissingOpens:       "missing opens reference",
	CodeMalformedChoiceRef: "malformed choice reference",
	CodeMissingAudio:       "missing audio file",
	CodeMalformedEvent:     "malformed event",
	CodeEventCycle:         "event cycle",
	CodeChoiceNaming:       "choice station naming",
	CodeHelpPairing:        "help option pairing",
	CodeMissingGlobalAsset: "missing global asset",
	CodeProvenance:         "provenance mismatch",
}

// String returns the code as "E300".
func (c Code) String() string {
	return fmt.Sprintf("E%03d", int(c))
}

// Title returns a short description of the code.
func (c Code) Title() string {
	if title, ok := codeTitles[c]; ok {
		return title
	}
	return "unknown"
}

// MarshalText renders the code as "E300" in JSON and YAML output.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses "E300".
func (c *Code) UnmarshalText(text []byte) error {
	var n int
	if _, err := fmt.Sscanf(string(text), "E%03d", &n); err != nil {
		return fmt.Errorf("invalid diagnostic code %q", text)
	}
	*c = Code(n)
	return nil
}

// Diagnostic is one reported problem. Diagnostics are values and are never
// modified after they are emitted.
type Diagnostic struct {
	Code    Code   `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	// File is the document the problem was found in.
	File string `json:"file" yaml:"file"`
	// StationID is the owning station, when known.
	StationID string `json:"station,omitempty" yaml:"station,omitempty"`
	// Path locates the problem inside File, e.g. "events[0].toStation".
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Rule is the violated schema keyword for schema diagnostics.
	Rule string `json:"rule,omitempty" yaml:"rule,omitempty"`
	// Reference is the offending station identifier or asset path.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`
	Hint      string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// String implements fmt.Stringer: "E300 stations/a.json events[0].toStation: message".
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Code.String())
	if d.File != "" {
		sb.WriteString(" " + d.File)
	}
	if d.Path != "" {
		sb.WriteString(" " + d.Path)
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	return sb.String()
}

// Report is the outcome of validating one target.
type Report struct {
	Target      string       `json:"target" yaml:"target"`
	Kind        TargetKind   `json:"kind" yaml:"kind"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// TargetKind names what a report validated.
type TargetKind string

const (
	TargetGame    TargetKind = "game"
	TargetStation TargetKind = "station"
	TargetConfig  TargetKind = "config"
	TargetSchema  TargetKind = "schema"
)

// HasDiagnostics returns true if the report holds any diagnostic.
func (r *Report) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}

// Add appends diagnostics in order.
func (r *Report) Add(diags ...Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, diags...)
}

// CountByCode returns how many diagnostics carry each code.
func (r *Report) CountByCode() map[Code]int {
	counts := make(map[Code]int)
	for _, d := range r.Diagnostics {
		counts[d.Code]++
	}
	return counts
}
