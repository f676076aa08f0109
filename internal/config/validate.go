package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ValidationError represents a configuration file error with its location
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateJSONSyntax checks that a config file holds a single JSON object.
// A missing file is valid; defaults apply.
func ValidateJSONSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if os.IsPermission(err) {
			return &ValidationError{FilePath: filePath, Message: "permission denied"}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	return ValidateJSONSyntaxFromBytes(data, filePath)
}

// ValidateJSONSyntaxFromBytes checks data the way ValidateJSONSyntax does.
func ValidateJSONSyntaxFromBytes(data []byte, filePath string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return &ValidationError{FilePath: filePath, Message: "file is empty"}
	}

	var obj map[string]interface{}
	err := json.Unmarshal(data, &obj)
	if err == nil {
		if obj == nil {
			return &ValidationError{FilePath: filePath, Message: "expected a JSON object"}
		}
		return nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, column := lineColumn(data, syntaxErr.Offset)
		return &ValidationError{FilePath: filePath, Line: line, Column: column, Message: syntaxErr.Error()}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{FilePath: filePath, Message: "expected a JSON object"}
	}

	return &ValidationError{FilePath: filePath, Message: err.Error()}
}

// lineColumn converts a byte offset into a 1-based line and column.
func lineColumn(data []byte, offset int64) (line, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, column = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
