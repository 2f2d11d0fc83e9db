package state

import (
	"testing"
	"time"

	"stackwatch/internal/dockerd"
)

func snap(records ...dockerd.Container) Snapshot {
	return New(time.Now(), records)
}

func running(id, name string) dockerd.Container {
	return dockerd.Container{
		ID:     id,
		Name:   name,
		Status: dockerd.StatusRunning,
		Health: dockerd.HealthNone,
	}
}

func TestDiffFirstPollAllAdded(t *testing.T) {
	curr := snap(running("a", "web_a"), running("b", "web_b"))

	res := Diff(nil, curr)
	if len(res.Added) != 2 || !res.Added.Contains("a") || !res.Added.Contains("b") {
		t.Fatalf("Added = %v, want {a b}", res.Added)
	}
	if len(res.Removed)+len(res.Changed)+len(res.Unchanged) != 0 {
		t.Fatalf("first poll produced non-added classifications: %+v", res)
	}
}

func TestDiffIdenticalSnapshots(t *testing.T) {
	s := snap(running("a", "web_a"), running("b", "web_b"))

	res := Diff(&s, s)
	if len(res.Added) != 0 || len(res.Removed) != 0 || len(res.Changed) != 0 {
		t.Fatalf("Diff(S, S) = %+v, want everything unchanged", res)
	}
	if len(res.Unchanged) != 2 {
		t.Fatalf("Unchanged = %v, want both ids", res.Unchanged)
	}
}

func TestDiffClassifications(t *testing.T) {
	prev := snap(
		running("stays", "web_a"),
		running("goes", "web_b"),
		dockerd.Container{ID: "flips", Name: "cache", Status: dockerd.StatusRestarting, Health: dockerd.HealthNone},
	)
	curr := snap(
		running("stays", "web_a"),
		running("arrives", "web_c"),
		running("flips", "cache"),
	)

	res := Diff(&prev, curr)
	if !res.Added.Contains("arrives") || len(res.Added) != 1 {
		t.Fatalf("Added = %v, want {arrives}", res.Added)
	}
	if !res.Removed.Contains("goes") || len(res.Removed) != 1 {
		t.Fatalf("Removed = %v, want {goes}", res.Removed)
	}
	if !res.Changed.Contains("flips") || len(res.Changed) != 1 {
		t.Fatalf("Changed = %v, want {flips}", res.Changed)
	}
	if !res.Unchanged.Contains("stays") || len(res.Unchanged) != 1 {
		t.Fatalf("Unchanged = %v, want {stays}", res.Unchanged)
	}
}

// Every id from either snapshot lands in exactly one set.
func TestDiffPartition(t *testing.T) {
	prev := snap(running("a", "a"), running("b", "b"), running("c", "c"))
	curr := snap(
		running("b", "b"),
		dockerd.Container{ID: "c", Name: "c", Status: dockerd.StatusExited, Health: dockerd.HealthNone},
		running("d", "d"),
	)

	res := Diff(&prev, curr)
	all := []string{"a", "b", "c", "d"}
	for _, id := range all {
		hits := 0
		for _, set := range []Set{res.Added, res.Removed, res.Changed, res.Unchanged} {
			if set.Contains(id) {
				hits++
			}
		}
		if hits != 1 {
			t.Fatalf("id %q classified %d times, want exactly once", id, hits)
		}
	}
	if got := len(res.Added) + len(res.Removed) + len(res.Changed) + len(res.Unchanged); got != len(all) {
		t.Fatalf("total classified = %d, want %d", got, len(all))
	}
}

func TestDiffIgnoresNonStateFields(t *testing.T) {
	a := running("a", "web_a")
	a.Image = "nginx:1.26"
	a.CPUPercent = 10

	b := running("a", "web_a")
	b.Image = "nginx:1.27"
	b.CPUPercent = 90
	b.StartedAt = time.Now()

	prev := snap(a)
	curr := snap(b)
	res := Diff(&prev, curr)
	if !res.Unchanged.Contains("a") {
		t.Fatalf("stats/image drift classified as changed: %+v", res)
	}
}

func TestDiffDetectsPortChange(t *testing.T) {
	a := running("a", "web_a")
	a.Ports = []dockerd.PortMapping{{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"}}

	b := running("a", "web_a")
	b.Ports = []dockerd.PortMapping{{HostPort: 9090, ContainerPort: 80, Protocol: "tcp"}}

	prev := snap(a)
	curr := snap(b)
	if res := Diff(&prev, curr); !res.Changed.Contains("a") {
		t.Fatalf("port change not classified as changed: %+v", res)
	}
}

func TestDiffDetectsHealthChange(t *testing.T) {
	a := running("a", "web_a")
	a.Health = dockerd.HealthStarting

	b := running("a", "web_a")
	b.Health = dockerd.HealthHealthy

	prev := snap(a)
	curr := snap(b)
	if res := Diff(&prev, curr); !res.Changed.Contains("a") {
		t.Fatalf("health change not classified as changed: %+v", res)
	}
}
