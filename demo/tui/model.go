package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"trendscout/state"
)

// Model represents the TUI monitor state (thin client)
type Model struct {
	// Scraper client
	Client *ScraperClient

	// Last status snapshot from the scraper
	Status *state.StatusResponse
	Err    error

	// Connection status
	Connected bool
}

// NewModel creates a new TUI model
func NewModel(scraperURL string) Model {
	return Model{
		Client:    NewScraperClient(scraperURL),
		Connected: false,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	// Start polling immediately
	return tea.Batch(
		pollStatus(m.Client),
		tickCmd(),
	)
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	if !m.Connected {
		return ErrorStyle.Render("❌ Not connected to scraper")
	}
	if m.Status == nil {
		return InfoStyle.Render("Waiting for first status...")
	}

	switch m.Status.State {
	case state.StateIdle:
		return HighlightStyle.Render("👋 Ready to scrape!") + "\n\n" +
			InfoStyle.Render("Press 'r' to start a run")
	case state.StateDiscovering:
		return StatusStyle.Render("🔎 Discovering videos...")
	case state.StateNormalizing:
		return StatusStyle.Render("🧮 Normalizing records...")
	case state.StateRanking:
		return StatusStyle.Render("📈 Ranking by performance...")
	case state.StateExporting:
		return StatusStyle.Render("📤 Exporting results...")
	case state.StateComplete:
		return HighlightStyle.Render("✅ RUN COMPLETE")
	case state.StateError:
		errMsg := m.Status.Error
		if errMsg == "" {
			errMsg = "Unknown error"
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %s", errMsg))
	default:
		return ""
	}
}
