package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders err with colors: heading, message, usage and
// remediation steps.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	return render(err, red, yellow, cyan)
}

// FormatErrorPlain renders err without ANSI colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return render(err, plain, plain, plain)
}

func render(err *CLIError, heading, label, step func(a ...interface{}) string) string {
	var sb strings.Builder

	sb.WriteString(heading(err.Category.String() + ":"))
	sb.WriteString(" ")
	sb.WriteString(err.Message)
	sb.WriteString("\n")

	if err.Usage != "" {
		sb.WriteString("\n")
		sb.WriteString(label("Usage:"))
		sb.WriteString(" ")
		sb.WriteString(err.Usage)
		sb.WriteString("\n")
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(label("To fix this:"))
		sb.WriteString("\n")
		for _, r := range err.Remediation {
			sb.WriteString("  ")
			sb.WriteString(step("•"))
			sb.WriteString(" ")
			sb.WriteString(r)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// PrintError writes err to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError writes err to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FormatSimpleError renders any error under the given category heading.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return FormatError(cliErr)
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}
