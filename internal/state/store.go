package state

import (
	"fmt"
	"sync"
	"time"
)

// View is the latest data available to the UI: the most recent good
// snapshot plus poll-failure bookkeeping for the degraded banner.
type View struct {
	Snapshot            Snapshot
	HasSnapshot         bool
	LastError           error
	LastUpdated         time.Time
	LastSuccess         time.Time
	ConsecutiveFailures int
}

// Degraded reports whether the most recent poll failed. The previous
// snapshot stays visible while degraded.
func (v View) Degraded() bool {
	return v.LastError != nil
}

// Offline reports whether the daemon has been unreachable for multiple
// polls in a row.
func (v View) Offline() bool {
	return v.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates between the poller and the UI.
// Single writer (poller), multiple readers (render loop).
type Store struct {
	mu   sync.RWMutex
	view View
}

// Publish replaces the stored snapshot and clears any failure state.
func (s *Store) Publish(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.view.Snapshot = snap
	s.view.HasSnapshot = true
	s.view.LastError = nil
	s.view.LastUpdated = now
	s.view.LastSuccess = now
	s.view.ConsecutiveFailures = 0
}

// Fail records a poll failure. The previous snapshot is kept so the UI can
// show stale data with its age rather than a blank screen.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.LastError = err
	s.view.LastUpdated = time.Now()
	s.view.ConsecutiveFailures++
}

// View returns a copy of the current view. The snapshot's groups are
// cloned so readers never share slices with a later Publish.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.view
	v.Snapshot = cloneSnapshot(s.view.Snapshot)
	if s.view.LastError != nil {
		v.LastError = fmt.Errorf("%w", s.view.LastError)
	}
	return v
}

func cloneSnapshot(snap Snapshot) Snapshot {
	if len(snap.Groups) == 0 {
		return Snapshot{Taken: snap.Taken}
	}
	groups := make([]Group, len(snap.Groups))
	for i, g := range snap.Groups {
		groups[i] = Group{
			Project:    g.Project,
			Containers: append(g.Containers[:0:0], g.Containers...),
		}
	}
	return Snapshot{Taken: snap.Taken, Groups: groups}
}
