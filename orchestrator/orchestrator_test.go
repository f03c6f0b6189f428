package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"trendscout/config"
	"trendscout/export"
	"trendscout/state"
	"trendscout/types"
)

type fakeDiscoverer struct {
	mu      sync.Mutex
	records map[string][]types.RawVideoRecord
	errs    map[string]error
	calls   []string
}

func (d *fakeDiscoverer) Discover(_ context.Context, keyword string, _ int) ([]types.RawVideoRecord, error) {
	d.mu.Lock()
	d.calls = append(d.calls, keyword)
	d.mu.Unlock()
	if err := d.errs[keyword]; err != nil {
		return nil, err
	}
	return d.records[keyword], nil
}

type captureSink struct {
	mu     sync.Mutex
	result *types.ScrapeResult
}

func (s *captureSink) Name() string { return "capture" }

func (s *captureSink) Export(_ context.Context, result *types.ScrapeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	return nil
}

func rawRecord(id string, views, likes int64) types.RawVideoRecord {
	return types.RawVideoRecord{
		"id":     id,
		"desc":   "test video #testing",
		"author": map[string]interface{}{"uniqueId": "creator"},
		"stats": map[string]interface{}{
			"playCount":    views,
			"diggCount":    likes,
			"commentCount": int64(0),
			"shareCount":   int64(0),
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Keywords:            []string{"budgeting"},
		MaxVideosPerKeyword: 10,
		MaxTotalVideos:      20,
		ConcurrentKeywords:  2,
		MinVideosRequired:   1,
		TrendingOnly:        true,
		MinViews:            10000,
		MinEngagementRate:   0.05,
		SortByPerformance:   true,
		WeightLikes:         1,
		WeightComments:      2,
		WeightShares:        3,
	}
}

func TestRunOnceFiltersAndRanks(t *testing.T) {
	d := &fakeDiscoverer{records: map[string][]types.RawVideoRecord{
		"budgeting": {
			rawRecord("1", 50000, 5000),  // trending, rate 0.10
			rawRecord("2", 50000, 20000), // trending, rate 0.40
			rawRecord("3", 500, 400),     // below view floor
			rawRecord("4", 50000, 100),   // rate 0.002, below rate floor
		},
	}}
	sink := &captureSink{}
	tracker := state.NewTracker()

	r := NewRunnerWithDiscoverer(testConfig(), tracker, d, export.NewExporter(sink))
	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}

	if sink.result == nil {
		t.Fatal("exporter never received the run")
	}
	videos := sink.result.Videos
	if len(videos) != 2 {
		t.Fatalf("got %d exported videos; want 2 trending", len(videos))
	}
	// Higher engagement ranks first; views are equal.
	if videos[0].Statistics.Likes != 20000 {
		t.Errorf("top video likes = %d; want the higher-engagement video first", videos[0].Statistics.Likes)
	}
	for _, v := range videos {
		if !v.IsTrending {
			t.Errorf("exported video %s not marked trending", v.ID)
		}
		if v.PerformanceScore <= 0 {
			t.Errorf("video %s has no performance score", v.ID)
		}
	}

	if s := tracker.GetStatus(); s.State != state.StateComplete || s.ExportedCount != 2 {
		t.Errorf("tracker state = %q exported = %d; want complete/2", s.State, s.ExportedCount)
	}
}

func TestRunOnceMergesKeywordsAndCapsTotal(t *testing.T) {
	shared := rawRecord("shared", 90000, 9000)
	shared["url"] = "https://www.tiktok.com/@creator/video/shared"
	sharedCopy := types.RawVideoRecord{}
	for k, v := range shared {
		sharedCopy[k] = v
	}

	d := &fakeDiscoverer{records: map[string][]types.RawVideoRecord{
		"budgeting": {shared, rawRecord("b1", 40000, 4000)},
		"wealth":    {sharedCopy, rawRecord("w1", 60000, 6000), rawRecord("w2", 30000, 3000)},
	}}

	cfg := testConfig()
	cfg.Keywords = []string{"budgeting", "wealth"}
	cfg.MaxTotalVideos = 3

	sink := &captureSink{}
	r := NewRunnerWithDiscoverer(cfg, state.NewTracker(), d, export.NewExporter(sink))
	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}

	videos := sink.result.Videos
	if len(videos) != 3 {
		t.Fatalf("got %d videos; want cap of 3", len(videos))
	}
	urls := map[string]int{}
	for _, v := range videos {
		urls[v.URL]++
	}
	if urls["https://www.tiktok.com/@creator/video/shared"] > 1 {
		t.Error("video found under both keywords exported twice")
	}
}

func TestRunOnceSurvivesPartialKeywordFailure(t *testing.T) {
	d := &fakeDiscoverer{
		records: map[string][]types.RawVideoRecord{
			"wealth": {rawRecord("w1", 60000, 6000)},
		},
		errs: map[string]error{"budgeting": fmt.Errorf("gateway unreachable")},
	}

	cfg := testConfig()
	cfg.Keywords = []string{"budgeting", "wealth"}

	sink := &captureSink{}
	tracker := state.NewTracker()
	r := NewRunnerWithDiscoverer(cfg, tracker, d, export.NewExporter(sink))
	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if len(sink.result.Videos) != 1 {
		t.Errorf("got %d videos; want 1 from the surviving keyword", len(sink.result.Videos))
	}
}

func TestRunOnceAllKeywordsFailed(t *testing.T) {
	d := &fakeDiscoverer{errs: map[string]error{
		"budgeting": fmt.Errorf("gateway unreachable"),
	}}

	tracker := state.NewTracker()
	r := NewRunnerWithDiscoverer(testConfig(), tracker, d, export.NewExporter(&captureSink{}))
	if err := r.RunOnce(context.Background()); err == nil {
		t.Fatal("RunOnce returned nil error; want failure when every keyword failed")
	}
	if tracker.GetState() != state.StateError {
		t.Errorf("tracker state = %q; want error", tracker.GetState())
	}
}

func TestRunOnceRejectsOverlappingRuns(t *testing.T) {
	tracker := state.NewTracker()
	tracker.BeginRun([]string{"other"})

	r := NewRunnerWithDiscoverer(testConfig(), tracker, &fakeDiscoverer{}, export.NewExporter(&captureSink{}))
	if err := r.RunOnce(context.Background()); err == nil {
		t.Fatal("RunOnce started while another run was in progress")
	}
}

func TestRunOnceSetsRunWindow(t *testing.T) {
	d := &fakeDiscoverer{records: map[string][]types.RawVideoRecord{
		"budgeting": {rawRecord("1", 50000, 5000)},
	}}
	sink := &captureSink{}
	r := NewRunnerWithDiscoverer(testConfig(), state.NewTracker(), d, export.NewExporter(sink))

	before := time.Now()
	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
	if sink.result.StartedAt.Before(before.Add(-time.Second)) {
		t.Errorf("StartedAt %v predates the run", sink.result.StartedAt)
	}
	if sink.result.FinishedAt.Before(sink.result.StartedAt) {
		t.Error("FinishedAt precedes StartedAt")
	}
}
