// Package progress_test tests progress display output and spinner lifecycle.
// Related: internal/progress/display.go
// Tags: progress, display, spinner, tty
package progress_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagaworks/sagalint/internal/progress"
)

// syncBuffer guards a bytes.Buffer; the spinner writes from its own goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDisplay_NonTTY(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		diagnostics int
		err         error
		want        []string
	}{
		"clean run": {
			want: []string{"Validating saga/game.json\n", "[OK] saga/game.json validated in"},
		},
		"diagnostics": {
			diagnostics: 3,
			want:        []string{"[FAIL] saga/game.json: 3 diagnostic(s) in"},
		},
		"failure": {
			err:  errors.New("cannot load root"),
			want: []string{"[FAIL] saga/game.json failed: cannot load root"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			d := progress.NewDisplay(progress.TerminalCapabilities{}, &out)

			d.Start("saga/game.json")
			d.StationChecked(1, 2, "saga/stations/a.json")
			d.Finish(tc.diagnostics, tc.err)

			for _, w := range tc.want {
				assert.Contains(t, out.String(), w)
			}
			assert.NotContains(t, out.String(), "[1/2]")
		})
	}
}

func TestDisplay_TTYSpinner(t *testing.T) {
	t.Parallel()

	out := &syncBuffer{}
	d := progress.NewDisplay(progress.TerminalCapabilities{IsTTY: true, SupportsUnicode: true}, out)

	d.Start("game.json")
	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			d.StationChecked(n, 8, "stations/s.json")
		}(i)
	}
	wg.Wait()
	d.Finish(0, nil)

	assert.Contains(t, out.String(), "✓ game.json validated in")
	assert.NotPanics(t, d.Stop)
}
