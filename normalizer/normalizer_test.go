package normalizer

import (
	"testing"
	"time"

	"trendscout/types"
)

func TestNormalizeStructuredStats(t *testing.T) {
	raw := types.RawVideoRecord{
		"id":   "7312345",
		"desc": "How I budget my salary #budgeting #finance",
		"author": map[string]interface{}{
			"uniqueId": "budgetqueen",
		},
		"stats": map[string]interface{}{
			"playCount":    float64(20000),
			"diggCount":    float64(1000),
			"commentCount": float64(200),
			"shareCount":   float64(50),
		},
		"createTime": float64(1700000000),
	}

	v := Normalize(raw, "budgeting")

	if v.ID != "7312345" {
		t.Errorf("ID = %q; want %q", v.ID, "7312345")
	}
	if v.Author != "budgetqueen" {
		t.Errorf("Author = %q; want %q", v.Author, "budgetqueen")
	}
	wantURL := "https://www.tiktok.com/@budgetqueen/video/7312345"
	if v.URL != wantURL {
		t.Errorf("URL = %q; want %q", v.URL, wantURL)
	}
	if v.Statistics.Views != 20000 || v.Statistics.Likes != 1000 ||
		v.Statistics.Comments != 200 || v.Statistics.Shares != 50 {
		t.Errorf("Statistics = %+v; want 20000/1000/200/50", v.Statistics)
	}
	if v.Keyword != "budgeting" {
		t.Errorf("Keyword = %q; want %q", v.Keyword, "budgeting")
	}
	if len(v.DefaultedFields) != 0 {
		t.Errorf("DefaultedFields = %v; want none", v.DefaultedFields)
	}
}

func TestNormalizeFieldCandidates(t *testing.T) {
	cases := []struct {
		name      string
		raw       types.RawVideoRecord
		wantViews int64
		wantLikes int64
	}{
		{
			name:      "direct fields",
			raw:       types.RawVideoRecord{"playCount": 100, "diggCount": 10},
			wantViews: 100,
			wantLikes: 10,
		},
		{
			name: "stats alternate names",
			raw: types.RawVideoRecord{
				"stats": map[string]interface{}{"viewCount": 250, "likeCount": 25},
			},
			wantViews: 250,
			wantLikes: 25,
		},
		{
			name: "itemInfo wrapper",
			raw: types.RawVideoRecord{
				"itemInfo": map[string]interface{}{
					"itemStruct": map[string]interface{}{
						"stats": map[string]interface{}{"playCount": 300, "diggCount": 30},
					},
				},
			},
			wantViews: 300,
			wantLikes: 30,
		},
		{
			name: "direct beats nested",
			raw: types.RawVideoRecord{
				"playCount": 400,
				"stats":     map[string]interface{}{"playCount": 999},
			},
			wantViews: 400,
			wantLikes: 0,
		},
		{
			name: "numeric strings coerce",
			raw: types.RawVideoRecord{
				"stats": map[string]interface{}{"playCount": "500", "diggCount": "50"},
			},
			wantViews: 500,
			wantLikes: 50,
		},
		{
			name: "non-coercible falls through to next candidate",
			raw: types.RawVideoRecord{
				"playCount": "a lot",
				"stats":     map[string]interface{}{"playCount": 600},
			},
			wantViews: 600,
			wantLikes: 0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := Normalize(c.raw, "kw")
			if v.Statistics.Views != c.wantViews {
				t.Errorf("Views = %d; want %d", v.Statistics.Views, c.wantViews)
			}
			if v.Statistics.Likes != c.wantLikes {
				t.Errorf("Likes = %d; want %d", v.Statistics.Likes, c.wantLikes)
			}
		})
	}
}

func TestNormalizeNoStatsDefaultsToZero(t *testing.T) {
	raw := types.RawVideoRecord{
		"id":   "123",
		"desc": "no numbers here",
	}

	v := Normalize(raw, "kw")

	if v.Statistics != (types.Statistics{}) {
		t.Errorf("Statistics = %+v; want all zero", v.Statistics)
	}
	if v.IsTrending {
		t.Error("IsTrending = true on zeroed statistics; want false")
	}
	if !contains(v.DefaultedFields, "statistics") {
		t.Errorf("DefaultedFields = %v; want to include statistics", v.DefaultedFields)
	}
}

func TestNormalizeTextFallback(t *testing.T) {
	raw := types.RawVideoRecord{
		"url":  "https://www.tiktok.com/@someone/video/42",
		"text": "1.2K views, 300 likes",
	}

	v := Normalize(raw, "kw")

	if v.Statistics.Views != 1200 {
		t.Errorf("Views = %d; want 1200", v.Statistics.Views)
	}
	if v.Statistics.Likes != 300 {
		t.Errorf("Likes = %d; want 300", v.Statistics.Likes)
	}
	if v.Statistics.Comments != 0 {
		t.Errorf("Comments = %d; want 0", v.Statistics.Comments)
	}
}

func TestNormalizeEmptyRecord(t *testing.T) {
	v := Normalize(nil, "kw")

	if v.ID == "" {
		t.Error("ID should be derived from fallback hash, got empty")
	}
	if v.Author != types.UnknownAuthor {
		t.Errorf("Author = %q; want sentinel %q", v.Author, types.UnknownAuthor)
	}
	if v.Statistics != (types.Statistics{}) {
		t.Errorf("Statistics = %+v; want all zero", v.Statistics)
	}

	// Fallback ID is deterministic for the same record.
	again := Normalize(nil, "kw")
	if v.ID != again.ID {
		t.Errorf("fallback ID not deterministic: %q vs %q", v.ID, again.ID)
	}
}

func TestNormalizeAuthorVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  types.RawVideoRecord
		want string
	}{
		{"nested uniqueId", types.RawVideoRecord{"author": map[string]interface{}{"uniqueId": "maker"}}, "maker"},
		{"plain string", types.RawVideoRecord{"author": "maker"}, "maker"},
		{"at-prefixed string", types.RawVideoRecord{"author": "@maker"}, "maker"},
		{"missing", types.RawVideoRecord{"id": "1"}, types.UnknownAuthor},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Normalize(c.raw, "kw").Author; got != c.want {
				t.Errorf("Author = %q; want %q", got, c.want)
			}
		})
	}
}

func TestNormalizeMusic(t *testing.T) {
	raw := types.RawVideoRecord{
		"id": "9",
		"music": map[string]interface{}{
			"title":      "original sound",
			"authorName": "creator",
		},
	}
	if got := Normalize(raw, "kw").Music; got != "original sound - creator" {
		t.Errorf("Music = %q; want %q", got, "original sound - creator")
	}
}

func TestNormalizeTimestampDefaultsToNow(t *testing.T) {
	before := time.Now().Add(-time.Second)
	v := Normalize(types.RawVideoRecord{"id": "1", "createTime": "not a time"}, "kw")
	after := time.Now().Add(time.Second)

	if v.Timestamp.Before(before) || v.Timestamp.After(after) {
		t.Errorf("Timestamp = %v; want within [%v, %v]", v.Timestamp, before, after)
	}
	if !contains(v.DefaultedFields, "timestamp") {
		t.Errorf("DefaultedFields = %v; want to include timestamp", v.DefaultedFields)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
