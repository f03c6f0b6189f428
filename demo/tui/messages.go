package tui

import (
	"time"

	"trendscout/state"
)

// Messages for the tea program (polling-based)

// StatusUpdateMsg is sent when we receive status from the scraper
type StatusUpdateMsg struct {
	Status *state.StatusResponse
	Err    error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}

// RunStartedMsg is sent after the user triggers a run
type RunStartedMsg struct {
	Err error
}
