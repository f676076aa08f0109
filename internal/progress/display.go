package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Display renders the progress of one validation run. It is safe for
// concurrent use; the validator reports stations from several goroutines.
type Display struct {
	mu           sync.Mutex
	capabilities TerminalCapabilities
	out          io.Writer
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
	label        string
	started      time.Time
}

// NewDisplay creates a Display writing to out, normally stderr.
func NewDisplay(caps TerminalCapabilities, out io.Writer) *Display {
	return &Display{
		capabilities: caps,
		out:          out,
		symbols:      SelectSymbols(caps),
	}
}

// Start begins a run. On a TTY it starts the spinner; otherwise it prints
// one line.
func (d *Display) Start(label string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.label = label
	d.started = time.Now()

	if !d.capabilities.IsTTY {
		fmt.Fprintf(d.out, "Validating %s\n", label)
		return
	}

	writerOpt := spinner.WithWriter(d.out)
	if f, ok := d.out.(*os.File); ok {
		writerOpt = spinner.WithWriterFile(f)
	}
	d.spinner = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond, writerOpt)
	d.spinner.Suffix = " Validating " + label
	d.spinner.Start()
}

// StationChecked updates the spinner with the station count. Non-TTY output
// stays quiet to keep logs short.
func (d *Display) StationChecked(done, total int, path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinner == nil {
		return
	}
	d.spinner.Lock()
	d.spinner.Suffix = fmt.Sprintf(" Validating %s %s %s", d.label, formatCounter(done, total), filepath.Base(path))
	d.spinner.Unlock()
}

// Finish stops the spinner and prints the outcome line.
func (d *Display) Finish(diagnostics int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stop()

	elapsed := time.Since(d.started).Round(time.Millisecond)
	switch {
	case err != nil:
		fmt.Fprintf(d.out, "%s %s failed: %v\n", d.failureMark(), d.label, err)
	case diagnostics > 0:
		fmt.Fprintf(d.out, "%s %s: %d diagnostic(s) in %s\n", d.failureMark(), d.label, diagnostics, elapsed)
	default:
		fmt.Fprintf(d.out, "%s %s validated in %s\n", d.checkmark(), d.label, elapsed)
	}
}

// Stop stops the spinner without printing anything.
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stop()
}

func (d *Display) stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

func (d *Display) checkmark() string {
	if d.capabilities.SupportsColor {
		return color.New(color.FgGreen).Sprint(d.symbols.Checkmark)
	}
	return d.symbols.Checkmark
}

func (d *Display) failureMark() string {
	if d.capabilities.SupportsColor {
		return color.New(color.FgRed).Sprint(d.symbols.Failure)
	}
	return d.symbols.Failure
}

// formatCounter returns the [N/Total] counter string
func formatCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}
