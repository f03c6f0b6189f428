// Package orchestrator drives a full scrape run: discover raw records per
// keyword, normalize, rank, filter already-seen videos, and export.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"trendscout/common"
	"trendscout/config"
	"trendscout/discovery"
	"trendscout/export"
	"trendscout/normalizer"
	"trendscout/ranker"
	"trendscout/seen"
	"trendscout/state"
	"trendscout/types"
)

// Discoverer is the slice of discovery.Discoverer the runner needs.
type Discoverer interface {
	Discover(ctx context.Context, keyword string, max int) ([]types.RawVideoRecord, error)
}

// FreshFilter drops videos already exported by an earlier run.
type FreshFilter interface {
	FilterFresh(videos []*types.Video) []*types.Video
}

// Runner executes scrape runs. It is safe to reuse across runs but not to
// run concurrently; the state tracker rejects overlapping runs.
type Runner struct {
	cfg        *config.Config
	discoverer Discoverer
	tracker    *state.Tracker
	fresh      FreshFilter
	exporter   *export.Exporter

	thresholds ranker.Thresholds
	weights    ranker.Weights

	// stagger inserts randomized pauses between gateway bursts. Off for
	// injected discoverers, which do not hit a network.
	stagger bool
}

// NewRunner wires a runner from configuration: discovery sources in the
// configured order, the optional Redis seen filter, and the output sinks.
func NewRunner(ctx context.Context, cfg *config.Config, tracker *state.Tracker) (*Runner, error) {
	d := discovery.NewDiscoverer(buildSources(cfg), cfg.MaxRetries, cfg.RetryDelay)

	var fresh FreshFilter
	if cfg.RedisAddr != "" {
		store, err := seen.New(seen.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Key:      cfg.SeenKey,
			TTL:      cfg.SeenTTL,
		})
		if err != nil {
			log.Printf("Warning: seen filter disabled: %v", err)
		} else {
			fresh = store
		}
	}

	exporter, err := buildExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:        cfg,
		discoverer: d,
		tracker:    tracker,
		fresh:      fresh,
		exporter:   exporter,
		thresholds: ranker.Thresholds{MinViews: cfg.MinViews, MinEngagementRate: cfg.MinEngagementRate},
		weights:    ranker.Weights{Likes: cfg.WeightLikes, Comments: cfg.WeightComments, Shares: cfg.WeightShares},
		stagger:    true,
	}, nil
}

// NewRunnerWithDiscoverer injects the discoverer and exporter, for tests.
func NewRunnerWithDiscoverer(cfg *config.Config, tracker *state.Tracker, d Discoverer, exporter *export.Exporter) *Runner {
	return &Runner{
		cfg:        cfg,
		discoverer: d,
		tracker:    tracker,
		exporter:   exporter,
		thresholds: ranker.Thresholds{MinViews: cfg.MinViews, MinEngagementRate: cfg.MinEngagementRate},
		weights:    ranker.Weights{Likes: cfg.WeightLikes, Comments: cfg.WeightComments, Shares: cfg.WeightShares},
	}
}

// Tracker exposes the shared run tracker.
func (r *Runner) Tracker() *state.Tracker { return r.tracker }

// RunOnce executes a single end-to-end cycle: discover per keyword,
// normalize, rank, drop already-seen videos, export, summary.
func (r *Runner) RunOnce(ctx context.Context) error {
	if !r.tracker.BeginRun(r.cfg.Keywords) {
		return fmt.Errorf("a run is already in progress")
	}

	log.Println("=== TrendScout Run ===")
	log.Printf("Scraping %d keyword(s), up to %d video(s) each", len(r.cfg.Keywords), r.cfg.MaxVideosPerKeyword)

	perKeyword, err := r.scrapeKeywords(ctx)
	if err != nil {
		r.tracker.FailRun(err)
		return err
	}

	r.tracker.SetState(state.StateRanking)
	merged := ranker.DeduplicateByURL(perKeyword...)
	final := ranker.RankAndLimit(merged, r.cfg.MaxTotalVideos, r.cfg.SortByPerformance)
	r.tracker.SetTrending(len(final))

	if r.fresh != nil {
		before := len(final)
		final = r.fresh.FilterFresh(final)
		if dropped := before - len(final); dropped > 0 {
			log.Printf("Seen filter dropped %d video(s) exported by earlier runs", dropped)
			r.tracker.AddLog(fmt.Sprintf("Dropped %d already-seen video(s)", dropped))
		}
	}

	result := &types.ScrapeResult{
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Keywords:   r.cfg.Keywords,
		VideoCount: len(final),
		Videos:     final,
	}
	if s := r.tracker.GetStatus(); s.StartedAt != nil {
		result.StartedAt = *s.StartedAt
	}

	r.tracker.SetState(state.StateExporting)
	if r.exporter != nil {
		if err := r.exporter.Export(ctx, result); err != nil {
			log.Printf("Warning: %v", err)
			r.tracker.AddLog(err.Error())
		}
	}

	r.tracker.CompleteRun(final)
	r.summarize(perKeyword, final)
	return nil
}

// scrapeKeywords runs the per-keyword pipelines in batches of
// ConcurrentKeywords, with randomized pauses so request bursts do not look
// mechanical to the gateway.
func (r *Runner) scrapeKeywords(ctx context.Context) ([][]*types.Video, error) {
	r.tracker.SetState(state.StateDiscovering)

	keywords := r.cfg.Keywords
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords configured")
	}

	batchSize := r.cfg.ConcurrentKeywords
	if batchSize < 1 {
		batchSize = 1
	}

	var mu sync.Mutex
	results := make([][]*types.Video, 0, len(keywords))
	succeeded := 0

	for start := 0; start < len(keywords); start += batchSize {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		end := start + batchSize
		if end > len(keywords) {
			end = len(keywords)
		}
		batch := keywords[start:end]

		var wg sync.WaitGroup
		for _, kw := range batch {
			wg.Add(1)
			go func(keyword string) {
				defer wg.Done()

				// Stagger the requests inside a batch.
				if r.stagger && rand.Float64() < 0.7 {
					sleepCtx(ctx, time.Duration(1+rand.Intn(4))*time.Second)
				}

				videos, err := r.scrapeKeyword(ctx, keyword)
				if err != nil {
					log.Printf("Warning: keyword %q failed: %v", keyword, err)
					r.tracker.AddLog(fmt.Sprintf("Keyword %q failed: %v", keyword, err))
					return
				}

				mu.Lock()
				results = append(results, videos)
				if len(videos) >= r.cfg.MinVideosRequired {
					succeeded++
				}
				mu.Unlock()
			}(kw)
		}
		wg.Wait()

		if r.stagger && end < len(keywords) {
			sleepCtx(ctx, time.Duration(5+rand.Intn(10))*time.Second)
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("every keyword failed")
	}
	log.Printf("%d/%d keyword(s) met the %d-video minimum", succeeded, len(keywords), r.cfg.MinVideosRequired)
	return results, nil
}

// scrapeKeyword runs the full pipeline for one keyword.
func (r *Runner) scrapeKeyword(ctx context.Context, keyword string) ([]*types.Video, error) {
	records, err := r.discoverer.Discover(ctx, keyword, r.cfg.MaxVideosPerKeyword)
	if err != nil {
		return nil, err
	}
	r.tracker.AddDiscovered(len(records))
	r.tracker.AddLog(fmt.Sprintf("Keyword %q: %d raw record(s)", keyword, len(records)))

	r.tracker.SetState(state.StateNormalizing)
	videos := make([]*types.Video, 0, len(records))
	for _, rec := range records {
		v := normalizer.Normalize(rec, keyword)
		ranker.Enrich(v, r.thresholds, r.weights)
		if r.cfg.TrendingOnly && !v.IsTrending {
			continue
		}
		videos = append(videos, v)
	}

	kept := ranker.RankAndLimit(videos, r.cfg.MaxVideosPerKeyword, r.cfg.SortByPerformance)
	log.Printf("Keyword %q: %d raw, %d trending, %d kept", keyword, len(records), len(videos), len(kept))
	return kept, nil
}

func (r *Runner) summarize(perKeyword [][]*types.Video, final []*types.Video) {
	total := 0
	for _, vs := range perKeyword {
		total += len(vs)
	}

	log.Println("\n=== Run Summary ===")
	log.Printf("Keywords scraped:  %d", len(perKeyword))
	log.Printf("Trending videos:   %d", total)
	log.Printf("Exported videos:   %d", len(final))
	log.Println("===================")
}

// buildSources maps the configured discovery methods onto sources, in
// order. USE_MOCK_DATA short-circuits to the mock source alone.
func buildSources(cfg *config.Config) []discovery.Source {
	if cfg.UseMockData {
		return []discovery.Source{discovery.NewMockSource(0)}
	}

	gateway := discovery.NewGateway(cfg.GatewayURL, config.DefaultRequestTimeout)
	var sources []discovery.Source
	for _, method := range cfg.DiscoveryMethods {
		switch method {
		case "search":
			sources = append(sources, discovery.NewSearchSource(gateway))
		case "hashtag":
			sources = append(sources, discovery.NewHashtagSource(gateway))
		case "explore":
			sources = append(sources, discovery.NewExploreSource(gateway))
		case "feed":
			sources = append(sources, discovery.NewFeedSource(cfg.FeedBridgeTemplate))
		default:
			log.Printf("Warning: unknown discovery method %q ignored", method)
		}
	}
	if len(sources) == 0 {
		sources = append(sources, discovery.NewSearchSource(gateway))
	}
	return sources
}

// buildExporter assembles the sinks named by OUTPUT_FORMATS plus any
// destination with enough configuration to be usable.
func buildExporter(ctx context.Context, cfg *config.Config) (*export.Exporter, error) {
	var sinks []export.Sink

	for _, format := range cfg.OutputFormats {
		switch format {
		case "json":
			sinks = append(sinks, export.NewJSONSink(cfg.OutputDir))
		case "csv":
			sinks = append(sinks, export.NewCSVSink(cfg.OutputDir))
		default:
			log.Printf("Warning: unknown output format %q ignored", format)
		}
	}

	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentialsFile != "" {
		sink, err := export.NewSheetsSink(ctx, cfg.SheetsCredentialsFile, cfg.SheetsSpreadsheetID, cfg.SheetsWorksheet)
		if err != nil {
			log.Printf("Warning: sheets sink disabled: %v", err)
		} else {
			sinks = append(sinks, sink)
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		sink, err := export.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Printf("Warning: kafka sink disabled: %v", err)
		} else {
			sinks = append(sinks, sink)
		}
	}

	if cfg.S3Bucket != "" {
		sink, err := export.NewS3Sink(ctx, common.S3Config{
			Region:       cfg.S3Region,
			Profile:      cfg.S3Profile,
			UsePathStyle: cfg.S3UsePathStyle,
		}, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			log.Printf("Warning: s3 sink disabled: %v", err)
		} else {
			sinks = append(sinks, sink)
		}
	}

	if len(sinks) == 0 {
		return nil, fmt.Errorf("no output sinks configured")
	}
	return export.NewExporter(sinks...), nil
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
