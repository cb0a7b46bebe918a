package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides feedback while a long generation call runs.
type Reporter interface {
	Start(description string)
	Step(message string)
	Finish(message string)
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter(out io.Writer) Reporter {
	if out == nil {
		out = os.Stderr
	}
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{out: out}
	}
	return &TerminalReporter{out: out}
}

// TerminalReporter displays a spinner in the terminal. The length of a
// generation call is unknown, so there is no total.
type TerminalReporter struct {
	out  io.Writer
	bar  *progressbar.ProgressBar
	done chan struct{}
}

func (r *TerminalReporter) Start(description string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
	r.done = make(chan struct{})
	go func(bar *progressbar.ProgressBar, done <-chan struct{}) {
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				_ = bar.Add(1)
			}
		}
	}(r.bar, r.done)
}

func (r *TerminalReporter) Step(message string) {
	if r.bar != nil {
		r.bar.Describe(message)
	}
}

func (r *TerminalReporter) Finish(message string) {
	if r.bar == nil {
		return
	}
	close(r.done)
	_ = r.bar.Finish()
	r.bar = nil
	if message != "" {
		fmt.Fprintln(r.out, message)
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	out   io.Writer
	start time.Time
}

func (r *CIReporter) Start(description string) {
	r.start = time.Now()
	fmt.Fprintln(r.out, description)
}

func (r *CIReporter) Step(message string) {
	fmt.Fprintf(r.out, "  %s\n", message)
}

func (r *CIReporter) Finish(message string) {
	fmt.Fprintf(r.out, "%s (%s)\n", message, time.Since(r.start).Round(time.Millisecond))
}
