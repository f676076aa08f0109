package errors

import (
	"fmt"
	"strings"
)

// MissingTarget reports a command called without its file argument.
func MissingTarget(usage string) *CLIError {
	return NewArgumentErrorWithUsage(
		"missing file argument",
		usage,
		"Pass the path of the document to validate",
	)
}

// FileNotFound reports a document path that does not exist.
func FileNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("file not found: %s", path),
		"Check the path for typos",
		"Paths are resolved relative to the current directory",
	)
}

// NotADirectory reports a folder argument that is a file.
func NotADirectory(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("%s is not a directory", path),
		"Use 'sagalint station' to validate a single file",
	)
}

// LoadFailed reports a document that stopped the run.
func LoadFailed(path, reason string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("cannot load %s: %s", path, reason),
		"Make sure the file exists and contains a single JSON object",
		"Station files are resolved relative to the game configuration's directory",
	)
}

// SchemaSetInvalid reports a schema directory that could not be compiled.
func SchemaSetInvalid(dir string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("invalid schema set in %s", dir),
		"Check that game.json and station.json exist in the schema directory",
		"Run 'sagalint schema <file>' on each schema to find the broken one",
		"Unset schemas_dir to use the built-in schemas",
	)
}

// ConfigParseError reports a configuration file that could not be loaded.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to load config %s", path),
		"Check the file is valid JSON",
		"Run 'sagalint config show' to see the effective configuration",
	)
}

// InvalidOutputFormat reports an unknown --format value.
func InvalidOutputFormat(value string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown output format %q", value),
		fmt.Sprintf("Use one of: %s", strings.Join(valid, ", ")),
	)
}

// InvalidFlagCombination reports flags that cannot be used together.
func InvalidFlagCombination(flags, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination %s: %s", flags, reason),
		"Run the command with --help to see valid flags",
	)
}
