// Package normalizer converts heterogeneous raw video records into the
// canonical Video type. Discovery sources disagree about field names and
// nesting, so each logical attribute is resolved through an ordered list of
// candidate key paths; the first present, coercible value wins and
// everything else falls back to a documented default. A malformed record
// never fails a batch.
package normalizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"trendscout/types"
)

// Candidate key paths per logical statistic, in priority order. Dotted
// segments traverse nested objects (`stats.playCount`). The tables cover the
// shapes seen across discovery paths: direct fields, a nested `stats` block,
// the itemInfo/itemStruct wrapper of item detail responses, and the
// `videoData` wrapper of embedded page state.
var (
	viewPaths = []string{
		"playCount",
		"stats.playCount",
		"stats.viewCount",
		"videoData.playCount",
		"itemInfo.itemStruct.stats.playCount",
	}
	likePaths = []string{
		"diggCount",
		"stats.diggCount",
		"stats.likeCount",
		"itemInfo.itemStruct.stats.diggCount",
	}
	commentPaths = []string{
		"commentCount",
		"stats.commentCount",
		"itemInfo.itemStruct.stats.commentCount",
	}
	sharePaths = []string{
		"shareCount",
		"stats.shareCount",
		"itemInfo.itemStruct.stats.shareCount",
	}
	favoritePaths = []string{
		"collectCount",
		"stats.collectCount",
		"stats.favoriteCount",
		"itemInfo.itemStruct.stats.collectCount",
	}
	idPaths = []string{
		"id",
		"itemInfo.itemStruct.id",
		"videoData.id",
	}
	descriptionPaths = []string{
		"desc",
		"description",
		"itemInfo.itemStruct.desc",
	}
	authorPaths = []string{
		"author.uniqueId",
		"itemInfo.itemStruct.author.uniqueId",
		"author",
		"authorId",
	}
	timestampPaths = []string{
		"createTime",
		"create_time",
		"timestamp",
		"itemInfo.itemStruct.createTime",
	}
	urlPaths = []string{
		"url",
		"shareUrl",
	}
	// Free-text fields scanned for "<n>K views"-style counts when no
	// structured statistics are present.
	textPaths = []string{
		"text",
		"desc",
		"description",
	}
)

// Normalize maps one raw record to a canonical Video. It never returns an
// error: unresolvable fields fall back to defaults and are recorded in
// DefaultedFields. A nil or empty record yields a minimal video with zeroed
// statistics and a hash-derived ID.
func Normalize(raw types.RawVideoRecord, keyword string) *types.Video {
	v := &types.Video{
		Keyword:   keyword,
		ScrapedAt: time.Now(),
	}

	if len(raw) == 0 {
		v.ID = types.FallbackID(raw)
		v.Author = types.UnknownAuthor
		v.Timestamp = time.Now()
		v.DefaultedFields = []string{"id", "url", "author", "description", "timestamp", "statistics"}
		return v
	}

	defaulted := make([]string, 0, 4)

	// Identity.
	if id, ok := lookupString(raw, idPaths); ok && id != "" {
		v.ID = id
	} else {
		v.ID = types.FallbackID(raw)
		defaulted = append(defaulted, "id")
	}

	// Author handle. Scraped records sometimes carry a "@handle" string.
	if author, ok := lookupString(raw, authorPaths); ok && author != "" {
		v.Author = strings.TrimPrefix(author, "@")
	} else {
		v.Author = types.UnknownAuthor
		defaulted = append(defaulted, "author")
	}

	// URL: prefer a direct field, otherwise construct from handle + id.
	if u, ok := lookupString(raw, urlPaths); ok && u != "" {
		v.URL = u
	} else if v.Author != types.UnknownAuthor {
		v.URL = fmt.Sprintf("https://www.tiktok.com/@%s/video/%s", v.Author, v.ID)
	} else {
		defaulted = append(defaulted, "url")
	}

	// Description and the text derived from it.
	if desc, ok := lookupString(raw, descriptionPaths); ok {
		v.Description = strings.TrimSpace(desc)
	} else {
		defaulted = append(defaulted, "description")
	}
	v.Hashtags = ExtractHashtags(v.Description)
	v.Hook = ExtractHook(v.Description)

	// Music: "title - artist" when both parts resolve.
	if title, ok := lookupString(raw, []string{"music.title", "itemInfo.itemStruct.music.title"}); ok && title != "" {
		if artist, ok := lookupString(raw, []string{"music.authorName", "itemInfo.itemStruct.music.authorName"}); ok && artist != "" {
			v.Music = title + " - " + artist
		} else {
			v.Music = title
		}
	}

	// Timestamp. Unparseable input defaults to now so a bad record never
	// blocks the pipeline.
	if ts, ok := resolveTimestamp(raw, timestampPaths); ok {
		v.Timestamp = ts
	} else {
		v.Timestamp = time.Now()
		defaulted = append(defaulted, "timestamp")
	}

	// Statistics: structured fields first, then the free-text fallback.
	stats, resolvedAny := extractStatistics(raw)
	if !resolvedAny {
		if textStats, ok := statisticsFromText(raw, textPaths); ok {
			stats = textStats
		} else {
			defaulted = append(defaulted, "statistics")
		}
	}
	v.Statistics = stats

	if len(defaulted) > 0 {
		v.DefaultedFields = defaulted
	}
	return v
}

// extractStatistics resolves each counter through its candidate paths.
// The second return reports whether at least one counter was found in a
// structured field, which decides whether the text fallback runs.
func extractStatistics(raw types.RawVideoRecord) (types.Statistics, bool) {
	var stats types.Statistics
	resolved := false

	if n, ok := lookupInt(raw, viewPaths); ok {
		stats.Views = n
		resolved = true
	}
	if n, ok := lookupInt(raw, likePaths); ok {
		stats.Likes = n
		resolved = true
	}
	if n, ok := lookupInt(raw, commentPaths); ok {
		stats.Comments = n
		resolved = true
	}
	if n, ok := lookupInt(raw, sharePaths); ok {
		stats.Shares = n
		resolved = true
	}
	if n, ok := lookupInt(raw, favoritePaths); ok {
		stats.Favorites = n
		resolved = true
	}
	return stats, resolved
}

// lookup traverses a dotted path through nested map[string]interface{}
// values and returns the value at the leaf.
func lookup(raw map[string]interface{}, path string) (interface{}, bool) {
	current := raw
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		value, ok := current[seg]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// lookupInt returns the first candidate path holding an integer-coercible
// value. Negative values are clamped to zero; non-coercible values fall
// through to the next candidate.
func lookupInt(raw map[string]interface{}, paths []string) (int64, bool) {
	for _, path := range paths {
		value, ok := lookup(raw, path)
		if !ok {
			continue
		}
		n, ok := coerceInt(value)
		if !ok {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, true
	}
	return 0, false
}

// lookupString returns the first candidate path holding a string value.
func lookupString(raw map[string]interface{}, paths []string) (string, bool) {
	for _, path := range paths {
		value, ok := lookup(raw, path)
		if !ok {
			continue
		}
		if s, ok := value.(string); ok {
			return s, true
		}
	}
	return "", false
}

// coerceInt casts the dynamic value types JSON decoding produces into an
// int64. Strings are parsed as integers or floats.
func coerceInt(value interface{}) (int64, bool) {
	switch n := value.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}
