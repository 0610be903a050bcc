package tui

import (
	"strings"

	"github.com/theirongolddev/allot/internal/allocation"
	"github.com/theirongolddev/allot/internal/cli"
	"github.com/theirongolddev/allot/internal/model"
	"github.com/theirongolddev/allot/internal/tui/components"
	"github.com/theirongolddev/allot/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderSummary renders the monthly/annual breakdown card.
func renderSummary(sum model.Summary, outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	base := lipgloss.NewStyle().Background(t.Surface)
	headStyle := base.Foreground(t.TextDim)
	nameStyle := base.Foreground(t.TextPrimary)
	numStyle := base.Foreground(t.TextMuted)
	totalStyle := base.Foreground(t.TextPrimary).Bold(true)
	sepStyle := base.Foreground(t.Border)

	const colW = 12
	nameCol := innerW - 2*colW
	if nameCol < 10 {
		nameCol = 10
	}

	row := func(style lipgloss.Style, name, monthly, annual string) string {
		return style.Render(padRight(truncStr(name, nameCol), nameCol)) +
			style.Render(padLeft(monthly, colW)) +
			style.Render(padLeft(annual, colW))
	}

	var b strings.Builder
	b.WriteString(row(headStyle, "Category", "Monthly", "Annual"))
	b.WriteString("\n")

	for _, l := range sum.Lines {
		label := strings.TrimSpace(l.Emoji + " " + l.Name)
		b.WriteString(nameStyle.Render(padRight(truncStr(label, nameCol), nameCol)) +
			numStyle.Render(padLeft(cli.FormatDollars(l.Monthly), colW)) +
			numStyle.Render(padLeft(cli.FormatDollars(l.Annual), colW)))
		b.WriteString("\n")
	}

	b.WriteString(sepStyle.Render(strings.Repeat("─", nameCol+2*colW)))
	b.WriteString("\n")
	b.WriteString(row(totalStyle, "Allocated", cli.FormatDollars(sum.AllocatedMonthly), cli.FormatDollars(sum.AllocatedAnnual)))
	b.WriteString("\n")
	b.WriteString(row(numStyle, "Budget", cli.FormatDollars(sum.Budget), cli.FormatDollars(sum.BudgetAnnual)))
	b.WriteString("\n")

	unallocStyle := numStyle
	if !sum.Balanced {
		unallocStyle = base.Foreground(t.Orange)
	}
	b.WriteString(row(unallocStyle, "Unallocated",
		cli.FormatSignedDollars(sum.Unallocated),
		cli.FormatSignedDollars(sum.Unallocated*allocation.MonthsPerYear)))

	return components.ContentCard("Summary ▼", b.String(), outerW)
}

// renderSummaryCollapsed is the one-line stand-in when the panel is hidden.
func renderSummaryCollapsed(cw int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	line := style.Render(" Summary ▲ ") + hint.Render("[s] show")
	return fillStyled(line, cw, t.Surface)
}
