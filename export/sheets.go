package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"trendscout/types"
)

// SheetsSink replaces the contents of one worksheet with the latest run.
// The sheet always reflects the most recent run; history lives in the
// file and S3 sinks.
type SheetsSink struct {
	service       *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewSheetsSink authenticates with a service account credentials file.
func NewSheetsSink(ctx context.Context, credentialsFile, spreadsheetID, worksheet string) (*SheetsSink, error) {
	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	if worksheet == "" {
		worksheet = "Sheet1"
	}
	return &SheetsSink{service: svc, spreadsheetID: spreadsheetID, worksheet: worksheet}, nil
}

func (s *SheetsSink) Name() string { return "sheets" }

func (s *SheetsSink) Export(ctx context.Context, result *types.ScrapeResult) error {
	values := make([][]interface{}, 0, len(result.Videos)+1)

	header := make([]interface{}, len(csvColumns))
	for i, c := range csvColumns {
		header[i] = c
	}
	values = append(values, header)

	for _, v := range result.Videos {
		values = append(values, sheetRow(v))
	}

	clearRange := fmt.Sprintf("%s!A:Z", s.worksheet)
	if _, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear worksheet: %w", err)
	}

	body := &sheets.ValueRange{Values: values}
	_, err := s.service.Spreadsheets.Values.
		Update(s.spreadsheetID, fmt.Sprintf("%s!A1", s.worksheet), body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update worksheet: %w", err)
	}
	return nil
}

// sheetRow mirrors csvRow but keeps numbers numeric so the sheet can sort
// and chart them.
func sheetRow(v *types.Video) []interface{} {
	return []interface{}{
		v.URL,
		v.Author,
		v.Keyword,
		v.PerformanceScore,
		v.EngagementRate,
		v.ScrapedAt.UTC().Format(time.RFC3339),
		v.Timestamp.UTC().Format(time.RFC3339),
		v.Statistics.Views,
		v.Statistics.Likes,
		v.Statistics.Comments,
		v.Statistics.Shares,
		v.Statistics.Favorites,
		v.ID,
		v.Description,
		strings.Join(v.Hashtags, " "),
		v.Hook,
		v.Music,
		v.IsTrending,
		strings.Join(v.DefaultedFields, " "),
	}
}
