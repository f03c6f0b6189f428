package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"trendscout/types"
)

const (
	hookMaxWords = 15
	hookMaxLen   = 120
)

var (
	hashtagRe       = regexp.MustCompile(`#(\w+)`)
	firstSentenceRe = regexp.MustCompile(`^(.*?[.!?])\s`)
	// Matches "1.2K views", "300 likes", "45 comments", "12 shares" in
	// free text; the suffix multiplies the leading number.
	textCountRe = regexp.MustCompile(`(?i)([\d]+(?:\.\d+)?)\s*([KM]?)\s*(views|likes|comments|shares)`)
	nonNumericRe = regexp.MustCompile(`[^\d.]`)
)

// ExtractHashtags returns the deduplicated, case-preserving #tokens of the
// text, in order of first appearance, without the leading '#'.
func ExtractHashtags(text string) []string {
	if text == "" {
		return nil
	}
	matches := hashtagRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		tags = append(tags, m[1])
	}
	return tags
}

// ExtractHook returns the attention-grabbing lead of a description: the
// first sentence when one is terminated early, otherwise the first
// hookMaxWords words, capped at hookMaxLen runes either way.
func ExtractHook(description string) string {
	cleaned := strings.TrimSpace(description)
	if cleaned == "" {
		return ""
	}
	// A newline ends the hook before any sentence punctuation does.
	if i := strings.IndexByte(cleaned, '\n'); i >= 0 {
		cleaned = strings.TrimSpace(cleaned[:i])
	}

	hook := cleaned
	if m := firstSentenceRe.FindStringSubmatch(cleaned); m != nil {
		hook = m[1]
	} else {
		words := strings.Fields(cleaned)
		if len(words) > hookMaxWords {
			words = words[:hookMaxWords]
		}
		hook = strings.Join(words, " ")
	}

	runes := []rune(hook)
	if len(runes) > hookMaxLen {
		hook = string(runes[:hookMaxLen])
	}
	return hook
}

// statisticsFromText scans the first present free-text candidate field for
// suffixed counts ("1.2K views, 300 likes") and builds statistics from
// them. Returns false when no candidate text mentions any count.
func statisticsFromText(raw types.RawVideoRecord, paths []string) (types.Statistics, bool) {
	for _, path := range paths {
		value, ok := lookup(raw, path)
		if !ok {
			continue
		}
		text, ok := value.(string)
		if !ok || text == "" {
			continue
		}
		if stats, found := parseTextCounts(text); found {
			return stats, true
		}
	}
	return types.Statistics{}, false
}

func parseTextCounts(text string) (types.Statistics, bool) {
	var stats types.Statistics
	found := false
	for _, m := range textCountRe.FindAllStringSubmatch(text, -1) {
		count := ParseCount(m[1] + m[2])
		switch strings.ToLower(m[3]) {
		case "views":
			stats.Views = count
		case "likes":
			stats.Likes = count
		case "comments":
			stats.Comments = count
		case "shares":
			stats.Shares = count
		}
		found = true
	}
	return stats, found
}

// ParseCount converts a display count like "1.5M", "1.2K" or "12,345" into
// an integer. Unparseable input yields 0.
func ParseCount(text string) int64 {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0
	}

	multiplier := int64(1)
	switch {
	case strings.Contains(s, "k"):
		multiplier = 1_000
		s = strings.ReplaceAll(s, "k", "")
	case strings.Contains(s, "m"):
		multiplier = 1_000_000
		s = strings.ReplaceAll(s, "m", "")
	}

	s = nonNumericRe.ReplaceAllString(s, "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f * float64(multiplier))
}
