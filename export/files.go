package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"trendscout/config"
	"trendscout/types"
)

// csvColumns is the fixed column order. Decision-relevant fields come
// first so the file is scannable in a spreadsheet without rearranging.
var csvColumns = []string{
	"url",
	"author",
	"keyword",
	"performance_score",
	"engagement_rate",
	"scraped_at",
	"timestamp",
	"stats_views",
	"stats_likes",
	"stats_comments",
	"stats_shares",
	"stats_favorites",
	"id",
	"description",
	"hashtags",
	"hook",
	"music",
	"is_trending",
	"defaulted_fields",
}

// JSONSink writes the full run, wrapper included, to a timestamped file
// under dir.
type JSONSink struct {
	dir string
}

func NewJSONSink(dir string) *JSONSink { return &JSONSink{dir: dir} }

func (s *JSONSink) Name() string { return "json" }

func (s *JSONSink) Export(_ context.Context, result *types.ScrapeResult) error {
	path := runFilePath(s.dir, result.FinishedAt, "json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CSVSink writes one row per video to a timestamped file under dir.
type CSVSink struct {
	dir string
}

func NewCSVSink(dir string) *CSVSink { return &CSVSink{dir: dir} }

func (s *CSVSink) Name() string { return "csv" }

func (s *CSVSink) Export(_ context.Context, result *types.ScrapeResult) error {
	path := runFilePath(s.dir, result.FinishedAt, "csv")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, v := range result.Videos {
		if err := w.Write(csvRow(v)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func csvRow(v *types.Video) []string {
	return []string{
		v.URL,
		v.Author,
		v.Keyword,
		strconv.FormatFloat(v.PerformanceScore, 'f', 2, 64),
		strconv.FormatFloat(v.EngagementRate, 'f', 4, 64),
		v.ScrapedAt.UTC().Format(time.RFC3339),
		v.Timestamp.UTC().Format(time.RFC3339),
		strconv.FormatInt(v.Statistics.Views, 10),
		strconv.FormatInt(v.Statistics.Likes, 10),
		strconv.FormatInt(v.Statistics.Comments, 10),
		strconv.FormatInt(v.Statistics.Shares, 10),
		strconv.FormatInt(v.Statistics.Favorites, 10),
		v.ID,
		v.Description,
		strings.Join(v.Hashtags, " "),
		v.Hook,
		v.Music,
		strconv.FormatBool(v.IsTrending),
		strings.Join(v.DefaultedFields, " "),
	}
}

// runFilePath builds "<dir>/trending_videos_20060102_150405.<ext>".
func runFilePath(dir string, at time.Time, ext string) string {
	name := fmt.Sprintf("%s_%s.%s", config.OutputFilePrefix, at.UTC().Format("20060102_150405"), ext)
	return filepath.Join(dir, name)
}
