package components

import (
	"github.com/theirongolddev/allot/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForShare picks the slider fill for a category's share of the budget.
// Focused rows always use the accent.
func ColorForShare(pct float64, focused bool) lipgloss.Color {
	t := theme.Active
	switch {
	case focused:
		return t.AccentBright
	case pct <= 0:
		return t.TextDim
	case pct >= 50:
		return t.Orange
	case pct >= 25:
		return t.Yellow
	default:
		return t.Cyan
	}
}

// Slider renders a 0-100 percentage as a horizontal track of width cells.
func Slider(pct float64, width int, focused bool) string {
	t := theme.Active

	if width < 4 {
		width = 4
	}
	frac := pct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(ColorForShare(pct, focused))),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithFillCharacters('━', '─'),
	)
	bar.EmptyColor = string(t.Border)

	return bar.ViewAs(frac)
}
