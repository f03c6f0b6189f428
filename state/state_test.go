package state

import (
	"errors"
	"fmt"
	"testing"

	"trendscout/types"
)

func TestBeginRunRejectsConcurrentRun(t *testing.T) {
	tr := NewTracker()
	if !tr.BeginRun([]string{"budgeting"}) {
		t.Fatal("first BeginRun returned false")
	}
	if tr.BeginRun([]string{"wealth"}) {
		t.Error("second BeginRun succeeded while a run was in progress")
	}

	tr.CompleteRun(nil)
	if !tr.BeginRun([]string{"wealth"}) {
		t.Error("BeginRun failed after previous run completed")
	}
}

func TestCompleteRunSnapshot(t *testing.T) {
	tr := NewTracker()
	tr.BeginRun([]string{"budgeting"})
	tr.AddDiscovered(40)
	tr.SetTrending(7)
	tr.CompleteRun([]*types.Video{{ID: "a"}, {ID: "b"}})

	s := tr.GetStatus()
	if s.State != StateComplete {
		t.Errorf("state = %q; want complete", s.State)
	}
	if s.DiscoveredCount != 40 || s.TrendingCount != 7 || s.ExportedCount != 2 {
		t.Errorf("counts = %d/%d/%d; want 40/7/2", s.DiscoveredCount, s.TrendingCount, s.ExportedCount)
	}
	if s.FinishedAt == nil {
		t.Error("FinishedAt not set on completion")
	}
	if len(tr.LatestVideos()) != 2 {
		t.Errorf("LatestVideos = %d; want 2", len(tr.LatestVideos()))
	}
}

func TestFailRunSurfacesError(t *testing.T) {
	tr := NewTracker()
	tr.BeginRun([]string{"budgeting"})
	tr.FailRun(errors.New("gateway unreachable"))

	s := tr.GetStatus()
	if s.State != StateError {
		t.Errorf("state = %q; want error", s.State)
	}
	if s.Error != "gateway unreachable" {
		t.Errorf("error = %q; want gateway unreachable", s.Error)
	}
	if tr.Running() {
		t.Error("Running() = true after failure")
	}
}

func TestLogRingBuffer(t *testing.T) {
	tr := NewTracker()
	for i := 0; i < 80; i++ {
		tr.AddLog(fmt.Sprintf("line %d", i))
	}

	logs := tr.GetStatus().Logs
	if len(logs) != 50 {
		t.Fatalf("got %d log entries; want 50", len(logs))
	}
	if logs[len(logs)-1].Message != "line 79" {
		t.Errorf("last entry = %q; want line 79", logs[len(logs)-1].Message)
	}
	if logs[0].Message != "line 30" {
		t.Errorf("first entry = %q; want line 30", logs[0].Message)
	}
}
