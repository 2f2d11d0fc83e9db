package state

import (
	"errors"
	"testing"
	"time"

	"stackwatch/internal/dockerd"
)

func TestStorePublishAndViewClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Publish(New(before, []dockerd.Container{record("1", "web_a", "web")}))

	v := s.View()
	if !v.HasSnapshot {
		t.Fatal("HasSnapshot = false after Publish")
	}
	if v.LastError != nil {
		t.Fatalf("LastError = %v, want nil", v.LastError)
	}
	if v.LastSuccess.Before(before) {
		t.Fatalf("LastSuccess = %v, want >= %v", v.LastSuccess, before)
	}

	// Returned view must be independent of the stored snapshot.
	v.Snapshot.Groups[0].Containers[0].Name = "mutated"
	v2 := s.View()
	if v2.Snapshot.Groups[0].Containers[0].Name != "web_a" {
		t.Fatalf("View should clone groups; got %q", v2.Snapshot.Groups[0].Containers[0].Name)
	}
}

func TestStoreFailKeepsPreviousSnapshot(t *testing.T) {
	var s Store

	s.Publish(New(time.Now(), []dockerd.Container{record("1", "web_a", "web")}))
	lastGood := s.View().LastSuccess

	s.Fail(errors.New("connection refused"))

	v := s.View()
	if !v.Degraded() {
		t.Fatal("Degraded() = false after Fail")
	}
	if !v.HasSnapshot || v.Snapshot.Len() != 1 {
		t.Fatalf("snapshot dropped on failure: %+v", v.Snapshot)
	}
	if !v.LastSuccess.Equal(lastGood) {
		t.Fatalf("LastSuccess = %v, want unchanged %v", v.LastSuccess, lastGood)
	}
	if v.LastError == nil || v.LastError.Error() != "connection refused" {
		t.Fatalf("LastError = %v", v.LastError)
	}
}

func TestStoreConsecutiveFailures(t *testing.T) {
	var s Store

	if s.View().Offline() {
		t.Fatal("Offline() = true on fresh store")
	}

	s.Fail(errors.New("one"))
	if v := s.View(); v.ConsecutiveFailures != 1 || v.Offline() {
		t.Fatalf("after 1 failure: %+v", v)
	}

	s.Fail(errors.New("two"))
	if v := s.View(); v.ConsecutiveFailures != 2 || !v.Offline() {
		t.Fatalf("after 2 failures: %+v", v)
	}

	s.Publish(New(time.Now(), nil))
	if v := s.View(); v.ConsecutiveFailures != 0 || v.Degraded() {
		t.Fatalf("after recovery: %+v", v)
	}
}
