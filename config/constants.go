package config

import "time"

// Scraping Constants
const (
	// DefaultMaxVideosPerKeyword caps the videos collected per keyword
	DefaultMaxVideosPerKeyword = 50

	// DefaultMaxTotalVideos caps the videos kept per scraping session
	DefaultMaxTotalVideos = 100

	// DefaultConcurrentKeywords is how many keywords are scraped at once
	DefaultConcurrentKeywords = 2

	// DefaultMinVideosRequired marks a keyword as successful when met
	DefaultMinVideosRequired = 5

	// DefaultMaxRetries is the retry count per discovery method
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the wait between discovery retries
	DefaultRetryDelay = 5 * time.Second
)

// Trending Constants
const (
	// DefaultMinViews is the minimum view count for a trending video
	DefaultMinViews = 10000

	// DefaultMinEngagementRate is (likes+comments+shares)/views floor
	DefaultMinEngagementRate = 0.05
)

// Score weight defaults; comments and shares cost the viewer more than a like
const (
	DefaultWeightLikes    = 1.0
	DefaultWeightComments = 2.0
	DefaultWeightShares   = 3.0
)

// Output Constants
const (
	// DefaultOutputDir is where JSON/CSV run files land
	DefaultOutputDir = "data"

	// OutputFilePrefix prefixes timestamped run files
	OutputFilePrefix = "trending_videos"
)

// Discovery Constants
const (
	// DefaultGatewayURL is the base URL of the scrape gateway
	DefaultGatewayURL = "https://www.tiktok.com"

	// DefaultFeedBridgeTemplate formats a keyword into an RSS bridge URL
	DefaultFeedBridgeTemplate = "https://rsshub.app/tiktok/keyword/%s"

	// DefaultRequestTimeout bounds a single gateway request
	DefaultRequestTimeout = 30 * time.Second
)

// Scheduler Constants
const (
	// DefaultScheduleSpec runs the scraper daily at 03:00
	DefaultScheduleSpec = "0 3 * * *"
)
