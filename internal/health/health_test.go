// Package health_test tests the doctor checks for config, schemas and state.
// Related: internal/health/health.go
// Tags: health, doctor, config, schema

package health

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagaworks/sagalint/internal/testutil"
)

func writeConfig(t *testing.T, values map[string]any) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sagalint.json")
	testutil.WriteJSON(t, path, values)
	return path
}

func TestRunHealthChecks(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		config     func(t *testing.T) map[string]any
		wantPassed bool
		wantChecks []string
	}{
		"healthy": {
			config: func(t *testing.T) map[string]any {
				return map[string]any{"state_dir": filepath.Join(t.TempDir(), "state")}
			},
			wantPassed: true,
			wantChecks: []string{"Configuration", "Schema set", "State directory"},
		},
		"history disabled skips state": {
			config: func(t *testing.T) map[string]any {
				return map[string]any{"state_dir": t.TempDir(), "history_enabled": false}
			},
			wantPassed: true,
			wantChecks: []string{"Configuration", "Schema set"},
		},
		"invalid config stops early": {
			config: func(t *testing.T) map[string]any {
				return map[string]any{"workers": 0}
			},
			wantChecks: []string{"Configuration"},
		},
		"bad schema directory": {
			config: func(t *testing.T) map[string]any {
				return map[string]any{"state_dir": t.TempDir(), "schemas_dir": filepath.Join(t.TempDir(), "none")}
			},
			wantChecks: []string{"Configuration", "Schema set", "State directory"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			report := RunHealthChecks(writeConfig(t, tc.config(t)))

			assert.Equal(t, tc.wantPassed, report.Passed)
			var names []string
			for _, c := range report.Checks {
				names = append(names, c.Name)
			}
			assert.Equal(t, tc.wantChecks, names)
		})
	}
}

func TestCheckSchemas(t *testing.T) {
	t.Parallel()

	result := CheckSchemas("")
	assert.True(t, result.Passed)
	assert.Contains(t, result.Message, "embedded")

	result = CheckSchemas(filepath.Join(t.TempDir(), "missing"))
	assert.False(t, result.Passed)
	assert.NotEmpty(t, result.Message)
}

func TestCheckStateDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "state")
	result := CheckStateDir(dir)
	require.True(t, result.Passed, result.Message)
	assert.DirExists(t, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file should be removed")

	blocker := filepath.Join(t.TempDir(), "file")
	testutil.WriteFile(t, blocker, "x")
	result = CheckStateDir(filepath.Join(blocker, "state"))
	assert.False(t, result.Passed)
	assert.Contains(t, result.Message, "cannot create")
}

// TestFormatReport tests the report formatting
func TestFormatReport(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		report   *HealthReport
		expected []string
	}{
		"All checks pass": {
			report: &HealthReport{
				Checks: []CheckResult{
					{Name: "Configuration", Passed: true, Message: "configuration loaded"},
					{Name: "Schema set", Passed: true, Message: "schemas compiled (embedded)"},
				},
				Passed: true,
			},
			expected: []string{
				"✓ Configuration: configuration loaded",
				"✓ Schema set: schemas compiled (embedded)",
			},
		},
		"One check fails": {
			report: &HealthReport{
				Checks: []CheckResult{
					{Name: "Configuration", Passed: true, Message: "configuration loaded"},
					{Name: "Schema set", Passed: false, Message: "no schema files"},
				},
				Passed: false,
			},
			expected: []string{
				"✓ Configuration: configuration loaded",
				"✗ Schema set: no schema files",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			output := FormatReport(tt.report)
			for _, expected := range tt.expected {
				assert.Contains(t, output, expected, "Output should contain: %s", expected)
			}
			assert.Equal(t, len(tt.report.Checks), strings.Count(output, "\n"))
		})
	}
}
