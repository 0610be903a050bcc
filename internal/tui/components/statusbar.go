package components

import (
	"strings"

	"github.com/theirongolddev/allot/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the bottom bar reports about the allocation.
type StatusInfo struct {
	AmountMode string
	Strictness string
	Allocated  string // formatted percentage total
	Balanced   bool
	Flash      string // transient message from the last action
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	flashStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	if !info.Balanced {
		totalStyle = totalStyle.Foreground(t.Orange)
	}

	left := base.Render(" [?]help  [q]uit")
	if info.Flash != "" {
		left += base.Render("  ") + flashStyle.Render(info.Flash)
	}

	right := base.Render(info.AmountMode+" · "+info.Strictness+" · ") +
		totalStyle.Render(info.Allocated) + base.Render(" ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return left + base.Render(strings.Repeat(" ", padding)) + right
}
