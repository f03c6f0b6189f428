package discovery

import (
	"context"
	"fmt"
	"log"
	"time"

	"trendscout/types"
)

// Discoverer runs the configured sources in preference order and merges
// their results. A later source is only consulted when the earlier ones
// produced fewer than half of the requested records.
type Discoverer struct {
	sources    []Source
	maxRetries int
	retryDelay time.Duration
}

// NewDiscoverer builds a discoverer over the given sources in preference
// order.
func NewDiscoverer(sources []Source, maxRetries int, retryDelay time.Duration) *Discoverer {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Discoverer{
		sources:    sources,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// Discover fetches up to max raw records for keyword. Records are merged
// across sources with first-seen-wins on the "url" field; records without a
// URL are always kept. Returns an error only when every source failed.
func (d *Discoverer) Discover(ctx context.Context, keyword string, max int) ([]types.RawVideoRecord, error) {
	if len(d.sources) == 0 {
		return nil, fmt.Errorf("no discovery sources configured")
	}

	var merged []types.RawVideoRecord
	seenURLs := make(map[string]bool)
	failures := 0

	for _, src := range d.sources {
		if len(merged) >= max/2 && len(merged) > 0 {
			break
		}

		records, err := d.fetchWithRetry(ctx, src, keyword, max)
		if err != nil {
			log.Printf("Warning: %s source failed for %q: %v", src.Name(), keyword, err)
			failures++
			continue
		}

		added := 0
		for _, rec := range records {
			if u, ok := rec["url"].(string); ok && u != "" {
				if seenURLs[u] {
					continue
				}
				seenURLs[u] = true
			}
			merged = append(merged, rec)
			added++
			if len(merged) >= max {
				break
			}
		}
		log.Printf("%s source returned %d records for %q (%d new)", src.Name(), len(records), keyword, added)

		if len(merged) >= max {
			break
		}
	}

	if len(merged) == 0 && failures == len(d.sources) {
		return nil, fmt.Errorf("all %d discovery sources failed for %q", failures, keyword)
	}
	return merged, nil
}

// fetchWithRetry calls src.Fetch up to maxRetries times, sleeping
// retryDelay between attempts. Context cancellation aborts the retry loop.
func (d *Discoverer) fetchWithRetry(ctx context.Context, src Source, keyword string, max int) ([]types.RawVideoRecord, error) {
	var lastErr error
	for attempt := 1; attempt <= d.maxRetries; attempt++ {
		records, err := src.Fetch(ctx, keyword, max)
		if err == nil {
			return records, nil
		}
		lastErr = err

		if attempt < d.maxRetries {
			log.Printf("Warning: %s fetch attempt %d/%d failed for %q: %v", src.Name(), attempt, d.maxRetries, keyword, err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(d.retryDelay):
			}
		}
	}
	return nil, lastErr
}
