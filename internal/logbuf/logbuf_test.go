package logbuf

import (
	"fmt"
	"testing"

	"stackwatch/internal/dockerd"
)

func line(text string) dockerd.LogLine {
	return dockerd.LogLine{Text: text}
}

func TestAppendAndSnapshotOrder(t *testing.T) {
	r := New(4)
	r.Append(line("one"))
	r.Append(line("two"))
	r.Append(line("three"))

	got := r.Snapshot()
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("Snapshot len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Fatalf("Snapshot[%d] = %q, want %q", i, got[i].Text, want[i])
		}
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
}

func TestOverflowEvictsOldest(t *testing.T) {
	const capacity = 500
	r := New(capacity)
	for i := 1; i <= capacity+1; i++ {
		r.Append(line(fmt.Sprintf("line %d", i)))
	}

	if r.Len() != capacity {
		t.Fatalf("Len = %d, want %d", r.Len(), capacity)
	}
	got := r.Snapshot()
	if got[0].Text != "line 2" {
		t.Fatalf("oldest = %q, want line 2 (line 1 evicted)", got[0].Text)
	}
	if got[capacity-1].Text != fmt.Sprintf("line %d", capacity+1) {
		t.Fatalf("newest = %q", got[capacity-1].Text)
	}
	if r.Total() != capacity+1 {
		t.Fatalf("Total = %d, want %d", r.Total(), capacity+1)
	}
}

func TestZeroCapacityClamped(t *testing.T) {
	r := New(0)
	r.Append(line("a"))
	r.Append(line("b"))
	got := r.Snapshot()
	if len(got) != 1 || got[0].Text != "b" {
		t.Fatalf("Snapshot = %v, want just b", got)
	}
}
