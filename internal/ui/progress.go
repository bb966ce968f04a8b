package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// Progress tracks completion of dependency tasks with a simple counter
// display. Nested results are indented under their parent and do not
// advance the counter.
type Progress struct {
	out       io.Writer
	total     int
	completed atomic.Int32
	mu        sync.Mutex
}

// NewProgress creates a progress tracker for n top level tasks.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Done marks one task as completed and prints the current progress.
func (p *Progress) Done(label string) {
	n := int(p.completed.Add(1))
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", n, p.total, label)
}

// Report prints a dependency result with a styled status. depth 0 counts
// as a completed task.
func (p *Progress) Report(depth int, name, status, detail string) {
	label := fmt.Sprintf("%s: %s", name, Status(status))
	if detail != "" {
		label += " (" + detail + ")"
	}
	if depth == 0 {
		p.Done(label)
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "%s└ %s\n", strings.Repeat("  ", depth), label)
}

// Completed returns the number of top level tasks reported so far.
func (p *Progress) Completed() int { return int(p.completed.Load()) }

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
