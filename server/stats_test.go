package server

import (
	"testing"
)

func TestStatsRecord(t *testing.T) {
	stats := NewStatsTracker()

	stats.Record("add", true)
	stats.Record("add", true)
	stats.Record("search_google", false)

	snapshot := stats.Snapshot()

	if snapshot.CallsTotal != 3 {
		t.Errorf("expected 3 calls, got %d", snapshot.CallsTotal)
	}
	if snapshot.ErrorsTotal != 1 {
		t.Errorf("expected 1 error, got %d", snapshot.ErrorsTotal)
	}
	if snapshot.CallsByName["add"] != 2 {
		t.Errorf("expected 2 add calls, got %d", snapshot.CallsByName["add"])
	}
	if snapshot.ErrorsByName["search_google"] != 1 {
		t.Errorf("expected 1 search error, got %d", snapshot.ErrorsByName["search_google"])
	}
	if snapshot.ErrorsByName["add"] != 0 {
		t.Errorf("expected no add errors, got %d", snapshot.ErrorsByName["add"])
	}
}

func TestStatsSnapshotIsCopy(t *testing.T) {
	stats := NewStatsTracker()
	stats.Record("add", true)

	snapshot := stats.Snapshot()
	snapshot.CallsByName["add"] = 99

	if stats.Snapshot().CallsByName["add"] != 1 {
		t.Error("mutating a snapshot should not affect the tracker")
	}
}
