package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"trendscout/common"
	"trendscout/config"
	"trendscout/types"
)

// S3Sink uploads the run as a JSON object. Keys are
// "<prefix>/trending_videos_20060102_150405.json" so runs sort
// chronologically in a bucket listing.
type S3Sink struct {
	store  *common.S3
	bucket string
	prefix string
}

// NewS3Sink creates the sink using the default AWS credential chain.
func NewS3Sink(ctx context.Context, cfg common.S3Config, bucket, prefix string) (*S3Sink, error) {
	store, err := common.NewS3(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	return &S3Sink{store: store, bucket: bucket, prefix: prefix}, nil
}

func (s *S3Sink) Name() string { return "s3" }

func (s *S3Sink) Export(ctx context.Context, result *types.ScrapeResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	key := fmt.Sprintf("%s_%s.json", config.OutputFilePrefix, result.FinishedAt.UTC().Format("20060102_150405"))
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}

	if err := s.store.Put(ctx, s.bucket, key, bytes.NewReader(body), "application/json"); err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}
