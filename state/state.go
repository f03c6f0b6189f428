// Package state tracks the progress of the current scrape run for the API
// and the demo TUI. A single Tracker is shared between the runner, which
// writes, and the HTTP handlers, which read snapshots.
package state

import (
	"fmt"
	"sync"
	"time"

	"trendscout/types"
)

// State is the coarse phase of the current (or last) run.
type State string

const (
	StateIdle        State = "idle"
	StateDiscovering State = "discovering"
	StateNormalizing State = "normalizing"
	StateRanking     State = "ranking"
	StateExporting   State = "exporting"
	StateComplete    State = "complete"
	StateError       State = "error"
)

// LogEntry is one progress line with its timestamp.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// StatusResponse is the snapshot served by GET /api/scrape/status.
type StatusResponse struct {
	State           State      `json:"state"`
	Keywords        []string   `json:"keywords,omitempty"`
	DiscoveredCount int        `json:"discovered_count"`
	TrendingCount   int        `json:"trending_count"`
	ExportedCount   int        `json:"exported_count"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	Logs            []LogEntry `json:"logs"`
	Error           string     `json:"error,omitempty"`
}

// Tracker holds run progress with thread-safe access.
type Tracker struct {
	mu sync.RWMutex

	current  State
	keywords []string

	discovered int
	trending   int
	exported   int

	startedAt  *time.Time
	finishedAt *time.Time

	videos []*types.Video

	// Logs (ring buffer)
	logs    []LogEntry
	maxLogs int
	lastErr error
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{
		current: StateIdle,
		logs:    make([]LogEntry, 0),
		maxLogs: 50, // Keep last 50 log entries
	}
}

// BeginRun resets counters and transitions to discovering. Returns false if
// a run is already in progress.
func (t *Tracker) BeginRun(keywords []string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running() {
		return false
	}

	now := time.Now()
	t.current = StateDiscovering
	t.keywords = append([]string{}, keywords...)
	t.discovered = 0
	t.trending = 0
	t.exported = 0
	t.startedAt = &now
	t.finishedAt = nil
	t.lastErr = nil
	t.logs = t.logs[:0]
	t.appendLog(fmt.Sprintf("Run started for %d keyword(s)", len(keywords)))
	return true
}

// SetState sets the current state (thread-safe).
func (t *Tracker) SetState(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = s
}

// GetState gets the current state (thread-safe).
func (t *Tracker) GetState() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Running reports whether a run is in progress.
func (t *Tracker) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running()
}

// running must be called with the lock held.
func (t *Tracker) running() bool {
	switch t.current {
	case StateIdle, StateComplete, StateError:
		return false
	}
	return true
}

// AddLog adds a progress line (thread-safe).
func (t *Tracker) AddLog(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.appendLog(message)
}

// appendLog must be called with the lock held.
func (t *Tracker) appendLog(message string) {
	t.logs = append(t.logs, LogEntry{Timestamp: time.Now(), Message: message})
	if len(t.logs) > t.maxLogs {
		t.logs = t.logs[len(t.logs)-t.maxLogs:]
	}
}

// AddDiscovered accumulates the raw record count across keywords.
func (t *Tracker) AddDiscovered(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.discovered += n
}

// SetTrending records how many videos passed the trending filter.
func (t *Tracker) SetTrending(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trending = n
}

// CompleteRun stores the final videos and transitions to complete.
func (t *Tracker) CompleteRun(videos []*types.Video) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.current = StateComplete
	t.finishedAt = &now
	t.videos = videos
	t.exported = len(videos)
	t.appendLog(fmt.Sprintf("Run complete: %d video(s) exported", len(videos)))
}

// FailRun records the error and transitions to error state.
func (t *Tracker) FailRun(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.current = StateError
	t.finishedAt = &now
	t.lastErr = err
	t.appendLog(fmt.Sprintf("Error: %v", err))
}

// LatestVideos returns the videos from the most recent completed run.
func (t *Tracker) LatestVideos() []*types.Video {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.videos
}

// GetStatus returns a snapshot of the current state (thread-safe).
func (t *Tracker) GetStatus() StatusResponse {
	t.mu.RLock()
	defer t.mu.RUnlock()

	resp := StatusResponse{
		State:           t.current,
		Keywords:        append([]string{}, t.keywords...),
		DiscoveredCount: t.discovered,
		TrendingCount:   t.trending,
		ExportedCount:   t.exported,
		StartedAt:       t.startedAt,
		FinishedAt:      t.finishedAt,
		Logs:            append([]LogEntry{}, t.logs...), // Copy slice
	}
	if t.lastErr != nil {
		resp.Error = t.lastErr.Error()
	}
	return resp
}
