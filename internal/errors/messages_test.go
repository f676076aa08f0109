// Package errors_test tests the canned sagalint error messages.
// Related: internal/errors/messages.go
// Tags: errors, cli, messages

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected end of JSON input")

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantMessage  string
		wantUsage    bool
	}{
		"missing target": {
			err:          MissingTarget("sagalint game <file>"),
			wantCategory: Argument,
			wantMessage:  "missing file argument",
			wantUsage:    true,
		},
		"file not found": {
			err:          FileNotFound("saga/game.json"),
			wantCategory: Prerequisite,
			wantMessage:  "file not found: saga/game.json",
		},
		"not a directory": {
			err:          NotADirectory("saga/game.json"),
			wantCategory: Argument,
			wantMessage:  "saga/game.json is not a directory",
		},
		"load failed": {
			err:          LoadFailed("saga/game.json", "not JSON"),
			wantCategory: Prerequisite,
			wantMessage:  "cannot load saga/game.json: not JSON",
		},
		"schema set invalid": {
			err:          SchemaSetInvalid("schemas", cause),
			wantCategory: Configuration,
			wantMessage:  "invalid schema set in schemas: unexpected end of JSON input",
		},
		"config parse error": {
			err:          ConfigParseError(".sagalint.json", cause),
			wantCategory: Configuration,
			wantMessage:  "failed to load config .sagalint.json: unexpected end of JSON input",
		},
		"invalid output format": {
			err:          InvalidOutputFormat("xml", []string{"text", "json"}),
			wantCategory: Argument,
			wantMessage:  `unknown output format "xml"`,
		},
		"invalid flag combination": {
			err:          InvalidFlagCombination("--clear --limit", "clear removes all entries"),
			wantCategory: Argument,
			wantMessage:  "invalid flag combination --clear --limit: clear removes all entries",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.NotNil(t, tc.err)
			assert.Equal(t, tc.wantCategory, tc.err.Category)
			assert.Equal(t, tc.wantMessage, tc.err.Message)
			assert.Equal(t, tc.wantUsage, tc.err.Usage != "")
			assert.NotEmpty(t, tc.err.Remediation)
		})
	}
}

func TestInvalidOutputFormat_ListsChoices(t *testing.T) {
	t.Parallel()

	err := InvalidOutputFormat("xml", []string{"text", "json", "yaml"})
	assert.Equal(t, []string{"Use one of: text, json, yaml"}, err.Remediation)
}
