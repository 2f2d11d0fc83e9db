package state

import (
	"slices"

	"stackwatch/internal/dockerd"
)

// Set is a set of container ids.
type Set map[string]struct{}

// Contains reports whether id is in the set.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) add(id string) { s[id] = struct{}{} }

// Result partitions the ids of two consecutive snapshots. Every id seen in
// either snapshot lands in exactly one set. It lives for one render cycle.
type Result struct {
	Added     Set
	Removed   Set
	Changed   Set
	Unchanged Set
}

// Diff classifies each container as added, removed, changed, or unchanged
// between prev and curr. A nil prev (first poll) classifies everything as
// added. "Changed" compares the (status, health, ports) tuple only; other
// field drift is not tracked. Pure function, no I/O.
func Diff(prev *Snapshot, curr Snapshot) Result {
	res := Result{
		Added:     make(Set),
		Removed:   make(Set),
		Changed:   make(Set),
		Unchanged: make(Set),
	}

	currByID := make(map[string]dockerd.Container, curr.Len())
	for _, c := range curr.Flatten() {
		currByID[c.ID] = c
	}

	if prev == nil {
		for id := range currByID {
			res.Added.add(id)
		}
		return res
	}

	prevByID := make(map[string]dockerd.Container, prev.Len())
	for _, c := range prev.Flatten() {
		prevByID[c.ID] = c
	}

	for id, cur := range currByID {
		old, existed := prevByID[id]
		switch {
		case !existed:
			res.Added.add(id)
		case sameState(old, cur):
			res.Unchanged.add(id)
		default:
			res.Changed.add(id)
		}
	}
	for id := range prevByID {
		if _, still := currByID[id]; !still {
			res.Removed.add(id)
		}
	}
	return res
}

// sameState compares the tuple that drives the "changed" classification.
func sameState(a, b dockerd.Container) bool {
	return a.Status == b.Status &&
		a.Health == b.Health &&
		slices.Equal(a.Ports, b.Ports)
}
