package types

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// RawVideoRecord is an untyped video payload as returned by a discovery
// source. Field names and nesting vary by discovery path (search result
// items, hashtag item lists, profile feeds), so no schema is assumed here;
// the normalizer resolves known candidate paths in priority order.
type RawVideoRecord map[string]interface{}

// Statistics holds the engagement counters for a single video. All fields
// default to zero when the source record does not carry them.
type Statistics struct {
	Views     int64 `json:"views"`
	Likes     int64 `json:"likes"`
	Comments  int64 `json:"comments"`
	Shares    int64 `json:"shares"`
	Favorites int64 `json:"favorites"`
}

// Engagement returns the interaction total used for the engagement rate.
// Favorites are excluded; they are collected but not part of the rate.
func (s Statistics) Engagement() int64 {
	return s.Likes + s.Comments + s.Shares
}

// Video is the canonical record for a short video, independent of which
// discovery path produced it. It is created once by the normalizer,
// enriched in place by the ranker, and treated as immutable afterwards.
type Video struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	Author      string     `json:"author"`
	Description string     `json:"description"`
	Hashtags    []string   `json:"hashtags,omitempty"`
	Hook        string     `json:"hook,omitempty"`
	Music       string     `json:"music,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	Statistics  Statistics `json:"statistics"`

	// Derived by the ranker from the final statistics.
	EngagementRate   float64 `json:"engagement_rate"`
	PerformanceScore float64 `json:"performance_score"`
	IsTrending       bool    `json:"is_trending"`

	// Provenance, not identity.
	Keyword   string    `json:"keyword"`
	ScrapedAt time.Time `json:"scraped_at"`

	// Names of logical fields that fell back to their documented default
	// during normalization. Kept on the record so recovered states stay
	// visible instead of being swallowed.
	DefaultedFields []string `json:"defaulted_fields,omitempty"`
}

// UnknownAuthor is the sentinel handle used when no author can be resolved.
const UnknownAuthor = "unknown"

// ScrapeResult is the top-level wrapper for a full run's JSON output.
type ScrapeResult struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Keywords   []string  `json:"keywords"`
	VideoCount int       `json:"video_count"`
	Videos     []*Video  `json:"videos"`
}

// GenerateID creates a short, stable ID by hashing the provided string input.
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// FallbackID derives a deterministic ID from the raw record itself, for
// records that carry no usable identifier. json.Marshal sorts map keys, so
// the same record always hashes to the same ID.
func FallbackID(raw RawVideoRecord) string {
	b, err := json.Marshal(raw)
	if err != nil || len(b) == 0 {
		return GenerateID("empty-record")
	}
	return GenerateID(string(b))
}
