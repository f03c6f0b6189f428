package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trendscout/types"
)

func sampleResult() *types.ScrapeResult {
	finished := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	videos := []*types.Video{
		{
			ID:          "abc123",
			URL:         "https://www.tiktok.com/@budgetqueen/video/1",
			Author:      "budgetqueen",
			Description: "How I budget my salary #budgeting",
			Hashtags:    []string{"budgeting"},
			Hook:        "How I budget my salary",
			Timestamp:   finished.Add(-24 * time.Hour),
			Statistics: types.Statistics{
				Views: 50000, Likes: 4000, Comments: 300, Shares: 150,
			},
			EngagementRate:   0.089,
			PerformanceScore: 55.9,
			IsTrending:       true,
			Keyword:          "budgeting",
			ScrapedAt:        finished,
		},
		{
			ID:        "def456",
			URL:       "https://www.tiktok.com/@wealthtips/video/2",
			Author:    "wealthtips",
			Timestamp: finished.Add(-48 * time.Hour),
			Keyword:   "wealth",
			ScrapedAt: finished,
		},
	}
	return &types.ScrapeResult{
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
		Keywords:   []string{"budgeting", "wealth"},
		VideoCount: len(videos),
		Videos:     videos,
	}
}

func TestJSONSinkWritesRun(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()

	if err := NewJSONSink(dir).Export(context.Background(), result); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	path := filepath.Join(dir, "trending_videos_20260301_123000.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}

	var got types.ScrapeResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.VideoCount != 2 || len(got.Videos) != 2 {
		t.Errorf("got %d videos; want 2", len(got.Videos))
	}
	if got.Videos[0].URL != result.Videos[0].URL {
		t.Errorf("first video url = %q; want %q", got.Videos[0].URL, result.Videos[0].URL)
	}
}

func TestCSVSinkColumnOrder(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()

	if err := NewCSVSink(dir).Export(context.Background(), result); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "trending_videos_20260301_123000.csv"))
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows; want header + 2 videos", len(rows))
	}

	if got := strings.Join(rows[0][:5], ","); got != "url,author,keyword,performance_score,engagement_rate" {
		t.Errorf("leading columns = %q; want decision fields first", got)
	}

	first := rows[1]
	if first[0] != "https://www.tiktok.com/@budgetqueen/video/1" {
		t.Errorf("row 1 url = %q", first[0])
	}
	if first[3] != "55.90" {
		t.Errorf("row 1 performance_score = %q; want 55.90", first[3])
	}
	if first[7] != "50000" {
		t.Errorf("row 1 stats_views = %q; want 50000", first[7])
	}

	// A video with zero stats still produces a complete row.
	if rows[2][7] != "0" {
		t.Errorf("row 2 stats_views = %q; want 0", rows[2][7])
	}
}

func TestExporterContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	ex := NewExporter(&failingSink{}, NewJSONSink(dir))

	err := ex.Export(context.Background(), sampleResult())
	if err == nil {
		t.Fatal("Export returned nil error; want failure report")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q does not name the failed sink", err)
	}

	// The healthy sink still ran.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("got %d files from healthy sink; want 1", len(entries))
	}
}

type failingSink struct{}

func (failingSink) Name() string { return "broken" }
func (failingSink) Export(context.Context, *types.ScrapeResult) error {
	return os.ErrPermission
}
