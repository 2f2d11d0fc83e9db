package state

import (
	"sort"
	"time"

	"stackwatch/internal/dockerd"
)

// UngroupedProject is the display group for containers that carry no
// compose project label. It always sorts last.
const UngroupedProject = "(ungrouped)"

// Group is one project's containers in display order.
type Group struct {
	Project    string
	Containers []dockerd.Container
}

// Snapshot is one consistent, timestamped view of all tracked containers,
// grouped by project. It is never mutated after construction; each poll
// replaces it wholesale.
type Snapshot struct {
	Taken  time.Time
	Groups []Group
}

// New builds a snapshot from raw records: containers grouped by project,
// projects sorted alphabetically with the ungrouped bucket last, and
// containers within a group sorted by name.
func New(taken time.Time, records []dockerd.Container) Snapshot {
	byProject := make(map[string][]dockerd.Container)
	for _, rec := range records {
		project := rec.Project
		if project == "" {
			project = UngroupedProject
		}
		byProject[project] = append(byProject[project], rec)
	}

	names := make([]string, 0, len(byProject))
	for name := range byProject {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == UngroupedProject {
			return false
		}
		if names[j] == UngroupedProject {
			return true
		}
		return names[i] < names[j]
	})

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		containers := byProject[name]
		sort.Slice(containers, func(i, j int) bool {
			return containers[i].Name < containers[j].Name
		})
		groups = append(groups, Group{Project: name, Containers: containers})
	}
	return Snapshot{Taken: taken, Groups: groups}
}

// Len returns the number of containers across all groups.
func (s Snapshot) Len() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Containers)
	}
	return n
}

// Flatten returns all containers in display order: group by group, each
// name-sorted. Cursor movement operates on this order.
func (s Snapshot) Flatten() []dockerd.Container {
	out := make([]dockerd.Container, 0, s.Len())
	for _, g := range s.Groups {
		out = append(out, g.Containers...)
	}
	return out
}

// ByID looks up a container by id.
func (s Snapshot) ByID(id string) (dockerd.Container, bool) {
	for _, g := range s.Groups {
		for _, c := range g.Containers {
			if c.ID == id {
				return c, true
			}
		}
	}
	return dockerd.Container{}, false
}
