// Package export writes a finished scrape run to its configured
// destinations: local JSON/CSV files, a Google Sheet, an S3 bucket, and a
// Kafka topic. Sinks are independent; one failing does not stop the others.
package export

import (
	"context"
	"fmt"
	"log"
	"strings"

	"trendscout/types"
)

// Sink delivers a completed run to one destination.
type Sink interface {
	Name() string
	Export(ctx context.Context, result *types.ScrapeResult) error
}

// Exporter fans a run out to every configured sink and collects failures.
type Exporter struct {
	sinks []Sink
}

func NewExporter(sinks ...Sink) *Exporter {
	return &Exporter{sinks: sinks}
}

// Export runs every sink. It returns an error naming the failed sinks when
// at least one failed, but always attempts all of them first.
func (e *Exporter) Export(ctx context.Context, result *types.ScrapeResult) error {
	var failed []string
	for _, sink := range e.sinks {
		if err := sink.Export(ctx, result); err != nil {
			log.Printf("Warning: %s export failed: %v", sink.Name(), err)
			failed = append(failed, sink.Name())
			continue
		}
		log.Printf("Exported %d videos via %s", result.VideoCount, sink.Name())
	}
	if len(failed) > 0 {
		return fmt.Errorf("export failed for: %s", strings.Join(failed, ", "))
	}
	return nil
}
