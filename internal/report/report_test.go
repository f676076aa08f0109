// Package report_test tests report rendering in every output format.
// Related: internal/report/report.go
// Tags: report, output, json, yaml

package report

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sagaworks/sagalint/internal/validation"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func sampleReports() []*validation.Report {
	return []*validation.Report{
		{
			Target: "saga/game.json",
			Kind:   validation.TargetGame,
			Diagnostics: []validation.Diagnostic{
				{
					Code:      validation.CodeMissingTarget,
					Message:   `goToStation event references unknown station "b"`,
					File:      "saga/stations/a.json",
					StationID: "a",
					Path:      "events[0].toStation",
					Reference: "b",
				},
				{
					Code:    validation.CodeSchemaViolation,
					Message: "minLength: got 0, want 1",
					File:    "saga/game.json",
					Path:    "name",
					Rule:    "minLength",
				},
				{
					Code:      validation.CodeMissingTarget,
					Message:   `openStation event references unknown station "c"`,
					File:      "saga/stations/a.json",
					StationID: "a",
					Path:      "events[1].toStation",
					Reference: "c",
					Hint:      "Check the spelling",
				},
			},
		},
		{Target: "saga/stations/clean.json", Kind: validation.TargetStation},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Format
		wantErr bool
	}{
		"text":          {input: "text", want: FormatText},
		"json":          {input: "json", want: FormatJSON},
		"yaml":          {input: "YAML", want: FormatYAML},
		"empty":         {input: "", want: FormatText},
		"padded":        {input: " json ", want: FormatJSON},
		"unknown value": {input: "xml", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tc.input)
			if tc.wantErr {
				assert.ErrorContains(t, err, "unknown output format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(sampleReports())

	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 1, s.FilesWithDiagnostics)
	assert.Equal(t, 3, s.Diagnostics)
	assert.Equal(t, map[string]int{"E100": 1, "E300": 2}, s.ByCode)
}

func TestWrite_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText).Write(sampleReports()))
	out := buf.String()

	assert.Contains(t, out, "saga/game.json has 3 diagnostic(s)")
	assert.Contains(t, out, "File: saga/stations/a.json:events[0].toStation")
	assert.Contains(t, out, "Station: a")
	assert.Contains(t, out, "Rule: minLength")
	assert.Contains(t, out, "Hint: Check the spelling")
	assert.Contains(t, out, "saga/stations/clean.json: no problems found")
	assert.Contains(t, out, "Summary: 3 diagnostic(s) in 1 of 2 file(s)")
	assert.Contains(t, out, "E300 missing target station: 2")

	// Emission order is preserved.
	first := strings.Index(out, `unknown station "b"`)
	second := strings.Index(out, "minLength: got 0")
	third := strings.Index(out, `unknown station "c"`)
	assert.True(t, first < second && second < third, "diagnostics out of order:\n%s", out)
}

func TestWrite_TextCleanSingleFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	reports := []*validation.Report{{Target: "game.json", Kind: validation.TargetGame}}
	require.NoError(t, New(&buf, "").Write(reports))

	assert.Contains(t, buf.String(), "game.json: no problems found")
	assert.NotContains(t, buf.String(), "Summary")
}

func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON).Write(sampleReports()))

	var doc struct {
		Reports []struct {
			Target      string `json:"target"`
			Kind        string `json:"kind"`
			Diagnostics []struct {
				Code      string `json:"code"`
				Station   string `json:"station"`
				Path      string `json:"path"`
				Reference string `json:"reference"`
			} `json:"diagnostics"`
		} `json:"reports"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Reports, 2)
	assert.Equal(t, "game", doc.Reports[0].Kind)
	require.Len(t, doc.Reports[0].Diagnostics, 3)
	assert.Equal(t, "E300", doc.Reports[0].Diagnostics[0].Code)
	assert.Equal(t, "a", doc.Reports[0].Diagnostics[0].Station)
	assert.Equal(t, "b", doc.Reports[0].Diagnostics[0].Reference)
	assert.NotNil(t, doc.Reports[1].Diagnostics)
	assert.Empty(t, doc.Reports[1].Diagnostics)
	assert.Equal(t, 3, doc.Summary.Diagnostics)
	assert.Contains(t, buf.String(), `"diagnostics": []`)
}

func TestWrite_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatYAML).Write(sampleReports()))

	var doc struct {
		Reports []struct {
			Target      string                  `yaml:"target"`
			Diagnostics []validation.Diagnostic `yaml:"diagnostics"`
		} `yaml:"reports"`
		Summary Summary `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Reports, 2)
	assert.Equal(t, sampleReports()[0].Diagnostics, doc.Reports[0].Diagnostics)
	assert.Equal(t, 2, doc.Summary.ByCode["E300"])
	assert.Contains(t, buf.String(), "code: E300")
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := New(&bytes.Buffer{}, Format("xml")).Write(nil)
	assert.ErrorContains(t, err, "unknown output format")
}
