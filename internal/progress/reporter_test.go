package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{out: &buf}
	r.Start("Rebranding")
	r.Step("Generating copy")
	r.Finish("Done")

	out := buf.String()
	for _, want := range []string{"Rebranding\n", "  Generating copy\n", "Done ("} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter(nil).(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestTerminalReporterFinishWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{out: &buf}
	r.Step("ignored")
	r.Finish("ignored")
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}
