// Package logbuf provides a bounded ring buffer for live log lines.
// A stream goroutine appends while the render loop snapshots; both are
// safe under a single lock. On overflow the oldest line is dropped.
package logbuf

import (
	"sync"

	"stackwatch/internal/dockerd"
)

// Ring is a fixed-capacity buffer of the most recent log lines.
type Ring struct {
	mu    sync.Mutex
	lines []dockerd.LogLine
	head  int
	count int
	total uint64
}

// New creates a ring holding at most capacity lines.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{lines: make([]dockerd.LogLine, capacity)}
}

// Append adds a line, evicting the oldest when full.
func (r *Ring) Append(line dockerd.LogLine) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := (r.head + r.count) % len(r.lines)
	if r.count == len(r.lines) {
		r.head = (r.head + 1) % len(r.lines)
	} else {
		r.count++
	}
	r.lines[idx] = line
	r.total++
}

// Snapshot copies the buffered lines in arrival order, oldest first.
func (r *Ring) Snapshot() []dockerd.LogLine {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]dockerd.LogLine, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.lines[(r.head+i)%len(r.lines)]
	}
	return out
}

// Len returns the number of buffered lines.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Total returns the number of lines ever appended, including evicted ones.
func (r *Ring) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
