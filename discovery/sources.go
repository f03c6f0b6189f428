package discovery

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"trendscout/types"
)

// Source is one way of finding videos for a keyword. Implementations may
// return fewer records than max, or none; the caller merges across sources.
type Source interface {
	Name() string
	Fetch(ctx context.Context, keyword string, max int) ([]types.RawVideoRecord, error)
}

// SearchSource queries the gateway's general search endpoint. Search
// responses wrap each video in {"type":1,"item":{...}} entries under "data".
type SearchSource struct {
	gateway *Gateway
}

func NewSearchSource(g *Gateway) *SearchSource { return &SearchSource{gateway: g} }

func (s *SearchSource) Name() string { return "search" }

func (s *SearchSource) Fetch(ctx context.Context, keyword string, max int) ([]types.RawVideoRecord, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("count", strconv.Itoa(max))

	payload, err := s.gateway.getJSON(ctx, "/api/search/general/full/", q)
	if err != nil {
		return nil, err
	}
	return itemsFromSearch(payload, max), nil
}

// HashtagSource queries the hashtag (challenge) item list, using the
// keyword with spaces and '#' stripped as the tag name. Item lists carry
// videos directly under "itemList".
type HashtagSource struct {
	gateway *Gateway
}

func NewHashtagSource(g *Gateway) *HashtagSource { return &HashtagSource{gateway: g} }

func (s *HashtagSource) Name() string { return "hashtag" }

func (s *HashtagSource) Fetch(ctx context.Context, keyword string, max int) ([]types.RawVideoRecord, error) {
	q := url.Values{}
	q.Set("challengeName", tagName(keyword))
	q.Set("count", strconv.Itoa(max))

	payload, err := s.gateway.getJSON(ctx, "/api/challenge/item_list/", q)
	if err != nil {
		return nil, err
	}
	return itemsFromList(payload, max), nil
}

// ExploreSource queries the recommendation feed. It ignores the keyword for
// fetching and relies on the caller to filter relevance downstream, which
// matches how the platform's explore surface behaves.
type ExploreSource struct {
	gateway *Gateway
}

func NewExploreSource(g *Gateway) *ExploreSource { return &ExploreSource{gateway: g} }

func (s *ExploreSource) Name() string { return "explore" }

func (s *ExploreSource) Fetch(ctx context.Context, keyword string, max int) ([]types.RawVideoRecord, error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(max))

	payload, err := s.gateway.getJSON(ctx, "/api/recommend/item_list/", q)
	if err != nil {
		return nil, err
	}
	return itemsFromList(payload, max), nil
}

// itemsFromSearch unwraps {"data":[{"type":1,"item":{...}}, ...]}.
func itemsFromSearch(payload map[string]interface{}, max int) []types.RawVideoRecord {
	data, ok := payload["data"].([]interface{})
	if !ok {
		return nil
	}
	records := make([]types.RawVideoRecord, 0, len(data))
	for _, entry := range data {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		item, ok := m["item"].(map[string]interface{})
		if !ok {
			// Some gateways return the video fields inline.
			item = m
		}
		records = append(records, types.RawVideoRecord(item))
		if len(records) >= max {
			break
		}
	}
	return records
}

// itemsFromList unwraps {"itemList":[{...}, ...]}.
func itemsFromList(payload map[string]interface{}, max int) []types.RawVideoRecord {
	list, ok := payload["itemList"].([]interface{})
	if !ok {
		return nil
	}
	records := make([]types.RawVideoRecord, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		records = append(records, types.RawVideoRecord(m))
		if len(records) >= max {
			break
		}
	}
	return records
}

func tagName(keyword string) string {
	return strings.ReplaceAll(strings.ReplaceAll(keyword, "#", ""), " ", "")
}
