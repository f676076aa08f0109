// Package progress_test tests terminal capability detection and symbol selection.
// Related: internal/progress/terminal.go
// Tags: progress, terminal, capabilities, env-vars, unicode
package progress_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagaworks/sagalint/internal/progress"
)

func TestDetectTerminalCapabilities_NotATerminal(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	caps := progress.DetectTerminalCapabilities(f)

	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
	assert.Zero(t, caps.Width)
}

func TestDetectTerminalCapabilities_Nil(t *testing.T) {
	t.Parallel()

	assert.False(t, progress.DetectTerminalCapabilities(nil).IsTTY)
}

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps          progress.TerminalCapabilities
		wantCheckmark string
		wantFailure   string
		wantSet       int
	}{
		"unicode": {
			caps:          progress.TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			wantCheckmark: "✓",
			wantFailure:   "✗",
			wantSet:       14,
		},
		"ascii": {
			caps:          progress.TerminalCapabilities{IsTTY: true},
			wantCheckmark: "[OK]",
			wantFailure:   "[FAIL]",
			wantSet:       9,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := progress.SelectSymbols(tc.caps)
			assert.Equal(t, tc.wantCheckmark, got.Checkmark)
			assert.Equal(t, tc.wantFailure, got.Failure)
			assert.Equal(t, tc.wantSet, got.SpinnerSet)
		})
	}
}
