package tui

import (
	"fmt"
	"strings"
	"time"

	"trendscout/state"
)

const timeResolution = 100 * time.Millisecond

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("📱 TrendScout Monitor"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Statistics
	if m.Status != nil && len(m.Status.Keywords) > 0 {
		stats := fmt.Sprintf("🔑 Keywords: %s", strings.Join(m.Status.Keywords, ", "))
		b.WriteString(InfoStyle.Render(stats))
		b.WriteString("\n")
	}

	if m.Status != nil && m.Status.DiscoveredCount > 0 {
		stats := fmt.Sprintf("   Discovered: %d | Trending: %d | Exported: %d",
			m.Status.DiscoveredCount, m.Status.TrendingCount, m.Status.ExportedCount)
		b.WriteString(InfoStyle.Render(stats))
		b.WriteString("\n")
	}

	// Logs
	if m.Status != nil && len(m.Status.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		logs := m.Status.Logs
		if len(logs) > 10 {
			logs = logs[len(logs)-10:]
		}
		for _, entry := range logs {
			line := fmt.Sprintf("   [%s] %s", entry.Timestamp.Format("15:04:05"), entry.Message)
			b.WriteString(InfoStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Run window
	if m.Status != nil && m.Status.State == state.StateComplete && m.Status.StartedAt != nil && m.Status.FinishedAt != nil {
		summary := fmt.Sprintf("Run finished in %s\nExported %d video(s)",
			m.Status.FinishedAt.Sub(*m.Status.StartedAt).Round(timeResolution),
			m.Status.ExportedCount)
		b.WriteString(BoxStyle.Render(summary))
		b.WriteString("\n\n")
	}

	// Help text
	if m.Status == nil || !isRunning(m.Status.State) {
		b.WriteString(InfoStyle.Render("Press 'r' to start a run | Press 'q' or Ctrl+C to quit"))
	} else {
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit (run continues on the server)"))
	}

	return b.String()
}
