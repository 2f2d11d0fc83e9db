package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"stackwatch/internal/dockerd"
	"stackwatch/internal/state"
)

// fakeDaemon scripts ListContainers responses for poller tests.
type fakeDaemon struct {
	listCalls atomic.Int64
	records   []dockerd.Container
	listErr   error
}

func (f *fakeDaemon) Ping(context.Context) error { return nil }

func (f *fakeDaemon) ListContainers(context.Context) ([]dockerd.Container, error) {
	f.listCalls.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeDaemon) StreamLogs(context.Context, string, int) (*dockerd.LogStream, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDaemon) RestartContainer(context.Context, string) error { return nil }
func (f *fakeDaemon) StopContainer(context.Context, string) error    { return nil }

func TestRefreshPublishesSnapshot(t *testing.T) {
	daemon := &fakeDaemon{records: []dockerd.Container{
		{ID: "1", Name: "web_a", Project: "web", Status: dockerd.StatusRunning},
		{ID: "2", Name: "cache", Status: dockerd.StatusExited},
	}}
	store := &state.Store{}

	refresh(context.Background(), store, daemon)

	v := store.View()
	if !v.HasSnapshot || v.Degraded() {
		t.Fatalf("view after success = %+v", v)
	}
	if v.Snapshot.Len() != 2 {
		t.Fatalf("snapshot len = %d, want 2", v.Snapshot.Len())
	}
	if v.Snapshot.Groups[0].Project != "web" {
		t.Fatalf("first group = %q, want web", v.Snapshot.Groups[0].Project)
	}
}

func TestRefreshFailureKeepsLastGood(t *testing.T) {
	daemon := &fakeDaemon{records: []dockerd.Container{{ID: "1", Name: "web_a"}}}
	store := &state.Store{}

	refresh(context.Background(), store, daemon)
	daemon.listErr = errors.New("connection refused")
	refresh(context.Background(), store, daemon)

	v := store.View()
	if !v.Degraded() {
		t.Fatal("view not degraded after failed poll")
	}
	if v.Snapshot.Len() != 1 {
		t.Fatalf("stale snapshot dropped: %+v", v.Snapshot)
	}
}

func TestStartPollerTicksAndStops(t *testing.T) {
	daemon := &fakeDaemon{}
	store := &state.Store{}
	ctx, cancel := context.WithCancel(context.Background())

	StartPoller(ctx, store, daemon, 10*time.Millisecond)

	deadline := time.After(2 * time.Second)
	for daemon.listCalls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("poller made %d calls, want >= 3", daemon.listCalls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	time.Sleep(30 * time.Millisecond)
	settled := daemon.listCalls.Load()
	time.Sleep(50 * time.Millisecond)
	if daemon.listCalls.Load() != settled {
		t.Fatal("poller kept polling after context cancel")
	}
}
