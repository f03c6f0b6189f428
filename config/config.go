package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable the pipeline consumes. It is loaded once
// from the environment in main and passed down explicitly; no package reads
// globals on its own.
type Config struct {
	// Keywords/niches to scrape.
	Keywords []string

	// Scraping limits.
	MaxVideosPerKeyword int
	MaxTotalVideos      int
	ConcurrentKeywords  int
	MinVideosRequired   int
	MaxRetries          int
	RetryDelay          time.Duration

	// Trending filter.
	TrendingOnly      bool
	MinViews          int64
	MinEngagementRate float64
	SortByPerformance bool

	// Score weights.
	WeightLikes    float64
	WeightComments float64
	WeightShares   float64

	// Discovery.
	GatewayURL         string
	FeedBridgeTemplate string
	DiscoveryMethods   []string
	UseMockData        bool

	// Output sinks.
	OutputFormats []string
	OutputDir     string

	// Google Sheets sink.
	SheetsCredentialsFile string
	SheetsSpreadsheetID   string
	SheetsWorksheet       string

	// Kafka sink.
	KafkaBrokers []string
	KafkaTopic   string

	// S3 sink.
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	// Cross-run seen filter (disabled when RedisAddr is empty).
	RedisAddr     string
	RedisPassword string
	SeenKey       string
	SeenTTL       time.Duration

	// Scheduler.
	ScheduleSpec string
}

// Load builds a Config from environment variables, falling back to the
// package defaults. Call godotenv.Load first when a .env file should apply.
func Load() *Config {
	return &Config{
		Keywords: ResolveKeywords(getEnv("KEYWORDS", "")),

		MaxVideosPerKeyword: getEnvInt("MAX_VIDEOS_PER_KEYWORD", DefaultMaxVideosPerKeyword),
		MaxTotalVideos:      getEnvInt("MAX_TOTAL_VIDEOS", DefaultMaxTotalVideos),
		ConcurrentKeywords:  getEnvInt("CONCURRENT_KEYWORDS", DefaultConcurrentKeywords),
		MinVideosRequired:   getEnvInt("MIN_VIDEOS_REQUIRED", DefaultMinVideosRequired),
		MaxRetries:          getEnvInt("MAX_RETRIES", DefaultMaxRetries),
		RetryDelay:          getEnvDuration("RETRY_DELAY_SECONDS", DefaultRetryDelay),

		TrendingOnly:      getEnvBool("TRENDING_ONLY", true),
		MinViews:          int64(getEnvInt("MIN_VIEWS", DefaultMinViews)),
		MinEngagementRate: getEnvFloat("MIN_ENGAGEMENT_RATE", DefaultMinEngagementRate),
		SortByPerformance: getEnvBool("SORT_BY_PERFORMANCE", true),

		WeightLikes:    getEnvFloat("WEIGHT_LIKES", DefaultWeightLikes),
		WeightComments: getEnvFloat("WEIGHT_COMMENTS", DefaultWeightComments),
		WeightShares:   getEnvFloat("WEIGHT_SHARES", DefaultWeightShares),

		GatewayURL:         getEnv("GATEWAY_URL", DefaultGatewayURL),
		FeedBridgeTemplate: getEnv("FEED_BRIDGE_TEMPLATE", DefaultFeedBridgeTemplate),
		DiscoveryMethods:   splitList(getEnv("DISCOVERY_METHODS", "search,hashtag,explore")),
		UseMockData:        getEnvBool("USE_MOCK_DATA", false),

		OutputFormats: splitList(getEnv("OUTPUT_FORMATS", "json,csv")),
		OutputDir:     getEnv("OUTPUT_DIR", DefaultOutputDir),

		SheetsCredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
		SheetsSpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsWorksheet:       getEnv("SHEETS_WORKSHEET", "Sheet1"),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "trending-videos"),

		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", ""),
		S3Profile:      getEnv("S3_PROFILE", ""),
		S3Prefix:       getEnv("S3_PREFIX", ""),
		S3UsePathStyle: getEnvBool("S3_USE_PATH_STYLE", false),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASS", ""),
		SeenKey:       getEnv("SEEN_KEY", "videos:seen"),
		SeenTTL:       getEnvDuration("SEEN_TTL_SECONDS", 7*24*time.Hour),

		ScheduleSpec: getEnv("SCHEDULE_SPEC", DefaultScheduleSpec),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
