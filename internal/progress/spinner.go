// Package progress renders a single-line spinner for long copies. It is
// driven synchronously by the caller's callbacks and never spawns a
// goroutine, so it cannot interleave with other terminal output.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner implements scaffold.Observer.
type Spinner struct {
	w        io.Writer
	label    string
	interval time.Duration
	now      func() time.Time

	frame int
	files int
	last  time.Time
}

// NewSpinner returns a spinner writing to w. Redraws are limited to one per
// interval; a zero interval redraws on every file.
func NewSpinner(w io.Writer, label string, interval time.Duration) *Spinner {
	return &Spinner{w: w, label: label, interval: interval, now: time.Now}
}

// OnStart draws the first frame.
func (s *Spinner) OnStart(_, _ string) {
	s.files = 0
	s.frame = 0
	s.last = s.now()
	s.draw()
}

// OnFile advances the spinner.
func (s *Spinner) OnFile(string) {
	s.files++
	if t := s.now(); t.Sub(s.last) >= s.interval {
		s.last = t
		s.frame = (s.frame + 1) % len(frames)
		s.draw()
	}
}

// OnDone replaces the spinner line with the final status.
func (s *Spinner) OnDone(files int, err error) {
	fmt.Fprint(s.w, "\r\033[K")
	if err != nil {
		fmt.Fprintf(s.w, "%s %s failed after %d files\n", color.RedString("✖"), s.label, files)
		return
	}
	fmt.Fprintf(s.w, "%s %s (%d files)\n", color.GreenString("✔"), s.label, files)
}

func (s *Spinner) draw() {
	fmt.Fprintf(s.w, "\r\033[K%s %s... %d files", color.CyanString(frames[s.frame]), s.label, s.files)
}
