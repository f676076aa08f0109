// Package report renders validation reports as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/sagaworks/sagalint/internal/validation"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat converts a flag or config value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// Summary tallies a set of reports.
type Summary struct {
	Files                int            `json:"files" yaml:"files"`
	FilesWithDiagnostics int            `json:"files_with_diagnostics" yaml:"files_with_diagnostics"`
	Diagnostics          int            `json:"diagnostics" yaml:"diagnostics"`
	ByCode               map[string]int `json:"by_code" yaml:"by_code"`
}

// Summarize counts diagnostics per report and per code.
func Summarize(reports []*validation.Report) Summary {
	s := Summary{Files: len(reports), ByCode: map[string]int{}}
	for _, r := range reports {
		if r.HasDiagnostics() {
			s.FilesWithDiagnostics++
		}
		s.Diagnostics += len(r.Diagnostics)
		for code, n := range r.CountByCode() {
			s.ByCode[code.String()] += n
		}
	}
	return s
}

// document is the machine-readable output shape.
type document struct {
	Reports []*validation.Report `json:"reports" yaml:"reports"`
	Summary Summary              `json:"summary" yaml:"summary"`
}

// Reporter writes reports in one format. It never drops or reorders
// diagnostics.
type Reporter struct {
	out    io.Writer
	format Format
}

// New creates a Reporter writing to out.
func New(out io.Writer, format Format) *Reporter {
	if format == "" {
		format = FormatText
	}
	return &Reporter{out: out, format: format}
}

// Write renders reports followed by their summary.
func (r *Reporter) Write(reports []*validation.Report) error {
	switch r.format {
	case FormatJSON:
		data, err := json.MarshalIndent(newDocument(reports), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON report: %w", err)
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(newDocument(reports))
		if err != nil {
			return fmt.Errorf("marshaling YAML report: %w", err)
		}
		_, err = r.out.Write(data)
		return err
	case FormatText:
		r.writeText(reports)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", r.format)
	}
}

func newDocument(reports []*validation.Report) document {
	normalized := make([]*validation.Report, 0, len(reports))
	for _, rep := range reports {
		if rep.Diagnostics == nil {
			copied := *rep
			copied.Diagnostics = []validation.Diagnostic{}
			rep = &copied
		}
		normalized = append(normalized, rep)
	}
	return document{Reports: normalized, Summary: Summarize(reports)}
}

func (r *Reporter) writeText(reports []*validation.Report) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, rep := range reports {
		if !rep.HasDiagnostics() {
			fmt.Fprintf(r.out, "%s %s: no problems found\n", green("✓"), rep.Target)
			continue
		}

		fmt.Fprintf(r.out, "%s %s has %d diagnostic(s)\n", red("✗"), rep.Target, len(rep.Diagnostics))
		for _, d := range rep.Diagnostics {
			fmt.Fprintf(r.out, "\n%s %s\n", yellow(d.Code.String()), d.Code.Title())
			fmt.Fprintf(r.out, "  File: %s\n", location(d))
			if d.StationID != "" {
				fmt.Fprintf(r.out, "  Station: %s\n", d.StationID)
			}
			if d.Rule != "" {
				fmt.Fprintf(r.out, "  Rule: %s\n", d.Rule)
			}
			fmt.Fprintf(r.out, "  Error: %s\n", d.Message)
			if d.Hint != "" {
				fmt.Fprintf(r.out, "  %s %s\n", dim("Hint:"), d.Hint)
			}
		}
		fmt.Fprintln(r.out)
	}

	r.writeSummary(Summarize(reports))
}

// location renders "file:path", or just the file.
func location(d validation.Diagnostic) string {
	if d.Path == "" {
		return d.File
	}
	return d.File + ":" + d.Path
}

func (r *Reporter) writeSummary(s Summary) {
	if s.Diagnostics == 0 && s.Files < 2 {
		return
	}

	fmt.Fprintf(r.out, "Summary: %d diagnostic(s) in %d of %d file(s)\n", s.Diagnostics, s.FilesWithDiagnostics, s.Files)

	codes := make([]string, 0, len(s.ByCode))
	for code := range s.ByCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, name := range codes {
		var code validation.Code
		title := ""
		if err := code.UnmarshalText([]byte(name)); err == nil {
			title = " " + code.Title()
		}
		fmt.Fprintf(r.out, "  %s%s: %d\n", name, title, s.ByCode[name])
	}
}
