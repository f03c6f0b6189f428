// Package ranker derives trending status and a sortable performance score
// from canonical video statistics, and reduces result collections to a
// configured top-N. All operations are pure functions over already
// normalized data; thresholds and weights arrive as explicit arguments.
package ranker

import (
	"math"
	"sort"

	"trendscout/types"
)

// Thresholds are the trending criteria supplied by configuration.
type Thresholds struct {
	MinViews          int64
	MinEngagementRate float64
}

// Weights scale the per-view engagement term of the performance score.
// Comments and shares are costlier user actions than a like and are
// weighted accordingly.
type Weights struct {
	Likes    float64
	Comments float64
	Shares   float64
}

// DefaultWeights are the tuned defaults; exact constants are tunable, only
// relative order within a batch is meaningful.
var DefaultWeights = Weights{Likes: 1, Comments: 2, Shares: 3}

const (
	viewTermScale       = 10
	engagementTermScale = 100
)

// EngagementRate returns (likes + comments + shares) / views, guarded
// against division by zero.
func EngagementRate(s types.Statistics) float64 {
	views := s.Views
	if views < 1 {
		views = 1
	}
	return float64(s.Engagement()) / float64(views)
}

// ClassifyTrending reports whether the statistics satisfy both trending
// criteria. Zero views is a terminal "not trending" signal regardless of
// thresholds, so no-data records never classify as trending.
func ClassifyTrending(s types.Statistics, t Thresholds) bool {
	if s.Views <= 0 {
		return false
	}
	if s.Views < t.MinViews {
		return false
	}
	return EngagementRate(s) >= t.MinEngagementRate
}

// Score combines a log-scaled view-volume term with a per-view weighted
// engagement term. The log10 transform keeps score growth sublinear in raw
// view count so one viral outlier cannot drown the engagement signal; the
// engagement term is scaled into the same order of magnitude. The result is
// a ranking key, not an absolute metric.
func Score(s types.Statistics, w Weights) float64 {
	views := s.Views
	if views < 1 {
		views = 1
	}

	viewTerm := viewTermScale * math.Log10(float64(s.Views)+1)
	weighted := float64(s.Likes)*w.Likes + float64(s.Comments)*w.Comments + float64(s.Shares)*w.Shares
	engagementTerm := engagementTermScale * (weighted / float64(views))

	return round2(viewTerm + engagementTerm)
}

// Enrich computes the derived fields of a video from its final statistics.
// It is the single place derived values are written, so they can never be
// stale relative to the statistics.
func Enrich(v *types.Video, t Thresholds, w Weights) {
	v.EngagementRate = round4(EngagementRate(v.Statistics))
	v.PerformanceScore = Score(v.Statistics, w)
	v.IsTrending = ClassifyTrending(v.Statistics, t)
}

// RankAndLimit orders videos by descending performance score and truncates
// to max. The sort is stable: equal scores keep their input order, so
// output is reproducible. When sorting is disabled only the truncation
// applies, preserving discovery order. The input slice is not modified.
func RankAndLimit(videos []*types.Video, max int, sortEnabled bool) []*types.Video {
	out := make([]*types.Video, len(videos))
	copy(out, videos)

	if sortEnabled {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PerformanceScore > out[j].PerformanceScore
		})
	}
	if max >= 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// DeduplicateByURL merges collections from multiple discovery attempts.
// First seen wins: a later collection only contributes videos whose URL has
// not appeared yet. Videos without a URL are always kept since nothing
// identifies them as duplicates.
func DeduplicateByURL(collections ...[]*types.Video) []*types.Video {
	seen := make(map[string]struct{})
	var merged []*types.Video
	for _, collection := range collections {
		for _, v := range collection {
			if v.URL != "" {
				if _, ok := seen[v.URL]; ok {
					continue
				}
				seen[v.URL] = struct{}{}
			}
			merged = append(merged, v)
		}
	}
	return merged
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
