package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgress_Done(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 3)

	p.Done("task A")
	p.Done("task B")
	p.Done("task C")

	out := buf.String()
	if !strings.Contains(out, "[1/3] task A") {
		t.Errorf("missing progress line for task A: %s", out)
	}
	if !strings.Contains(out, "[2/3] task B") {
		t.Errorf("missing progress line for task B: %s", out)
	}
	if !strings.Contains(out, "[3/3] task C") {
		t.Errorf("missing progress line for task C: %s", out)
	}
}

func TestProgress_Report(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 2)

	p.Report(0, "foo", "Fetched", "abc1234")
	p.Report(1, "bar", "OK", "")
	p.Report(0, "baz", "FAILED", "clone failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "[1/2] foo: ") || !strings.Contains(lines[0], "Fetched") || !strings.Contains(lines[0], "(abc1234)") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  └ bar: ") {
		t.Errorf("nested line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "[2/2] baz: ") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if p.Completed() != 2 {
		t.Errorf("Completed() = %d, want 2", p.Completed())
	}
}

func TestProgress_Log(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 1)

	p.Log("hello %s", "world")

	out := buf.String()
	if !strings.Contains(out, "hello world") {
		t.Errorf("missing log message: %s", out)
	}
}

func TestStatus_keepsLabel(t *testing.T) {
	for _, s := range []string{"OK", "Fetched", "UPDATED", "FAILED", "NOT FOUND", "other"} {
		if got := Status(s); !strings.Contains(got, s) {
			t.Errorf("Status(%q) = %q, lost label", s, got)
		}
	}
}
