package discovery

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"trendscout/types"
)

// MockSource generates plausible video records without touching the
// network. Used for development and demos (USE_MOCK_DATA=true).
type MockSource struct {
	rng *rand.Rand
}

// NewMockSource creates a mock source. Pass a fixed seed for reproducible
// output in tests; pass 0 to seed from the clock.
func NewMockSource(seed int64) *MockSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *MockSource) Name() string { return "mock" }

type mockContent struct {
	descriptions []string
	authors      []string
}

var mockContentByNiche = map[string]mockContent{
	"budget": {
		descriptions: []string{
			"How I budget my $3000 salary #budgeting #finance",
			"This budgeting method saved me $500 last month #budgeting #savemoney",
			"3 budgeting tips that changed my financial life #budgeting #personalfinance",
		},
		authors: []string{"budgetqueen", "financebro", "moneytips"},
	},
	"wealth": {
		descriptions: []string{
			"How to build wealth in your 20s #wealth #investing",
			"5 wealth building habits millionaires follow #wealth #millionaire",
			"Start your wealth journey with these simple steps #wealth #finance",
		},
		authors: []string{"wealthtips", "millionairemindset", "financefreedom"},
	},
	"fitness": {
		descriptions: []string{
			"Do this every morning for 30 days #fitness #workout",
			"The only 3 exercises you need at home #fitness #homeworkout",
		},
		authors: []string{"coachdaily", "homefitclub"},
	},
}

func (s *MockSource) Fetch(_ context.Context, keyword string, max int) ([]types.RawVideoRecord, error) {
	content := mockContent{
		descriptions: []string{
			fmt.Sprintf("Amazing tips about %s #trending", keyword),
			fmt.Sprintf("How to use %s effectively #tips", keyword),
		},
		authors: []string{"creator1", "creator2", "trendsetter"},
	}
	for niche, c := range mockContentByNiche {
		if strings.Contains(strings.ToLower(keyword), niche) {
			content = c
			break
		}
	}

	count := max
	if count > 15 {
		count = 15
	}

	records := make([]types.RawVideoRecord, 0, count)
	for i := 0; i < count; i++ {
		views := int64(s.rng.Intn(999000) + 1000)
		likes := s.rng.Int63n(views/10 + 1)
		comments := s.rng.Int63n(likes/5 + 1)
		shares := s.rng.Int63n(likes/10 + 1)

		createTime := time.Now().
			Add(-time.Duration(s.rng.Intn(30*24)) * time.Hour).
			Unix()

		records = append(records, types.RawVideoRecord{
			"id":   fmt.Sprintf("%d", s.rng.Intn(9000000)+1000000),
			"desc": content.descriptions[s.rng.Intn(len(content.descriptions))],
			"author": map[string]interface{}{
				"uniqueId": content.authors[s.rng.Intn(len(content.authors))],
			},
			"createTime": createTime,
			"stats": map[string]interface{}{
				"playCount":    views,
				"diggCount":    likes,
				"commentCount": comments,
				"shareCount":   shares,
			},
		})
	}
	return records, nil
}
