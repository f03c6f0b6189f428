package normalizer

import (
	"strconv"
	"strings"
	"time"

	"trendscout/types"
)

// Unix values above this are treated as milliseconds rather than seconds.
const millisThreshold = int64(1e12)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// resolveTimestamp returns the first candidate path that parses to a point
// in time. Sources hand back unix seconds, unix milliseconds, numeric
// strings, and ISO-ish strings interchangeably.
func resolveTimestamp(raw types.RawVideoRecord, paths []string) (time.Time, bool) {
	for _, path := range paths {
		value, ok := lookup(raw, path)
		if !ok {
			continue
		}
		if ts, ok := CoerceTimestamp(value); ok {
			return ts, true
		}
	}
	return time.Time{}, false
}

// CoerceTimestamp converts a raw timestamp value into a time.Time. Numeric
// values (and digit-only strings) are unix seconds, or milliseconds when
// larger than millisThreshold, so 1700000000 and 1700000000000 normalize to
// the same instant.
func CoerceTimestamp(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case int:
		return fromUnix(int64(v)), true
	case int64:
		return fromUnix(v), true
	case float64:
		return fromUnix(int64(v)), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromUnix(n), true
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func fromUnix(n int64) time.Time {
	if n > millisThreshold {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}
