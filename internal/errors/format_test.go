// Package errors_test tests rendering of CLI errors.
// Related: internal/errors/format.go
// Tags: errors, cli, output

package errors

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err     *CLIError
		want    []string
		notWant []string
	}{
		"message only": {
			err:     NewRuntimeError("validation interrupted"),
			want:    []string{"Runtime Error:", "validation interrupted"},
			notWant: []string{"Usage:", "To fix this:"},
		},
		"usage and remediation": {
			err:  NewArgumentErrorWithUsage("missing file argument", "sagalint station <file>", "pass a path"),
			want: []string{"Argument Error:", "Usage: sagalint station <file>", "To fix this:", "• pass a path"},
		},
		"nil": {
			err: nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := FormatErrorPlain(tc.err)
			if tc.err == nil {
				assert.Empty(t, got)
				return
			}
			for _, w := range tc.want {
				assert.Contains(t, got, w)
			}
			for _, w := range tc.notWant {
				assert.NotContains(t, got, w)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatError(nil))

	got := FormatError(NewConfigError("bad workers value", "set workers to 1 or more"))
	assert.Contains(t, got, "Configuration Error")
	assert.Contains(t, got, "bad workers value")
	assert.Contains(t, got, "To fix this:")
}

func TestFprintError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintError(&buf, nil)
	assert.Empty(t, buf.String())

	FprintError(&buf, NewPrerequisiteError("game.json not found"))
	assert.Contains(t, buf.String(), "game.json not found")
}

func TestPrintError(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PrintError(nil)
	})
}

func TestFormatSimpleError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatSimpleError(nil, Runtime))

	got := FormatSimpleError(errors.New("disk full"), Runtime)
	assert.Contains(t, got, "Runtime Error")
	assert.Contains(t, got, "disk full")

	got = FormatSimpleError(NewArgumentError("bad flag"), Runtime)
	assert.Contains(t, got, "Argument Error")
}
