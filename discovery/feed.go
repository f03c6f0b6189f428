package discovery

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mmcdole/gofeed"

	"trendscout/types"
)

// FeedSource discovers videos through an RSS bridge (RSSHub-style) that
// republishes platform content as a feed. Feed items have no structured
// statistics; counts arrive, if at all, as free text in the item
// description, which the normalizer's text fallback handles.
type FeedSource struct {
	// urlTemplate formats the keyword into a feed URL, e.g.
	// "https://rsshub.app/tiktok/keyword/%s".
	urlTemplate string
	parser      *gofeed.Parser
}

func NewFeedSource(urlTemplate string) *FeedSource {
	return &FeedSource{
		urlTemplate: urlTemplate,
		parser:      gofeed.NewParser(),
	}
}

func (s *FeedSource) Name() string { return "feed" }

func (s *FeedSource) Fetch(ctx context.Context, keyword string, max int) ([]types.RawVideoRecord, error) {
	feedURL := fmt.Sprintf(s.urlTemplate, url.QueryEscape(keyword))

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bridge feed: %w", err)
	}

	count := len(feed.Items)
	if count > max {
		count = max
	}

	records := make([]types.RawVideoRecord, 0, count)
	for i := 0; i < count; i++ {
		item := feed.Items[i]

		record := types.RawVideoRecord{
			"url":  item.Link,
			"desc": item.Title,
			// Bridge feeds embed view/like counts in the description text.
			"text": item.Description,
		}
		if item.PublishedParsed != nil {
			record["createTime"] = item.PublishedParsed.Unix()
		}
		if item.Author != nil && item.Author.Name != "" {
			record["author"] = item.Author.Name
		}
		records = append(records, record)
	}
	return records, nil
}
