// Package progress shows a spinner with station counts while a game is
// validated, and falls back to plain lines when stderr is not a terminal.
package progress

// TerminalCapabilities describes what the output terminal can render.
type TerminalCapabilities struct {
	// IsTTY is true when output goes to an interactive terminal
	IsTTY bool
	// SupportsColor is false when NO_COLOR is set or output is not a TTY
	SupportsColor bool
	// SupportsUnicode is false when SAGALINT_ASCII=1 or output is not a TTY
	SupportsUnicode bool
	// Width is the terminal width in columns, 0 when unknown
	Width int
}

// ProgressSymbols is the set of marks used by a Display.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}
