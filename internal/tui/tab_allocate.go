package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/allot/internal/allocation"
	"github.com/theirongolddev/allot/internal/cli"
	"github.com/theirongolddev/allot/internal/tui/components"
	"github.com/theirongolddev/allot/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Nudge steps for h/l and H/L.
const (
	pctStep       = 1.0
	pctBigStep    = 5.0
	budgetStep    = 100.0
	budgetBigStep = 1000.0
)

const (
	flashNotANumber = "ignored: not a number"
	flashNoBudget   = "ignored: budget is 0"
)

// allocateState tracks the allocate tab. Row 0 is the budget, row i+1 is
// category i.
type allocateState struct {
	cursor   int
	editing  bool
	editKind allocation.EditKind
	input    textinput.Model
	flash    string
}

func newAllocateState() allocateState {
	return allocateState{input: newNumberInput()}
}

func newNumberInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 12
	ti.Prompt = ""
	return ti
}

func (s *allocateState) moveCursor(delta, categories int) {
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor > categories {
		s.cursor = categories
	}
}

// categoryIndex returns the category under the cursor, or -1 on the budget row.
func (s allocateState) categoryIndex() int {
	return s.cursor - 1
}

func (a App) updateAllocate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.alloc.flash = ""

	switch msg.String() {
	case "j", "down":
		a.alloc.moveCursor(1, a.engine.Len())
	case "k", "up":
		a.alloc.moveCursor(-1, a.engine.Len())
	case "g", "home":
		a.alloc.cursor = 0
	case "G", "end":
		a.alloc.cursor = a.engine.Len()
	case "h", "left":
		a.nudge(-pctStep, -budgetStep)
	case "l", "right":
		a.nudge(pctStep, budgetStep)
	case "H":
		a.nudge(-pctBigStep, -budgetBigStep)
	case "L":
		a.nudge(pctBigStep, budgetBigStep)
	case "enter", "$":
		if a.alloc.categoryIndex() < 0 {
			return a.startEdit(allocation.EditBudget)
		}
		return a.startEdit(allocation.EditAmount)
	case "%":
		if a.alloc.categoryIndex() < 0 {
			return a.startEdit(allocation.EditBudget)
		}
		return a.startEdit(allocation.EditPercentage)
	case "s":
		a.showSummary = !a.showSummary
	case "m":
		if a.engine.AmountMode() == allocation.Direct {
			a.engine.SetAmountMode(allocation.Redistributive)
		} else {
			a.engine.SetAmountMode(allocation.Direct)
		}
		a.alloc.flash = "amount edits: " + a.engine.AmountMode().String()
	case "n":
		if a.engine.Strictness() == allocation.Renormalize {
			a.engine.SetStrictness(allocation.Lenient)
		} else {
			a.engine.SetStrictness(allocation.Renormalize)
		}
		a.alloc.flash = "redistribution: " + a.engine.Strictness().String()
	case "r":
		a.state = a.engine.Reset()
		a.alloc.flash = "reset"
	}
	return a, nil
}

// nudge moves the focused row by pct points, or the budget by dollars.
func (a *App) nudge(pct, dollars float64) {
	idx := a.alloc.categoryIndex()
	if idx < 0 {
		a.apply(allocation.Edit{Kind: allocation.EditBudget, Value: math.Max(0, a.state.Budget+dollars)})
		return
	}
	a.apply(allocation.Edit{Kind: allocation.EditPercentage, Index: idx, Value: a.state.Categories[idx].Percentage + pct})
}

func (a *App) apply(ed allocation.Edit) {
	a.state = a.engine.Apply(ed)
	a.log.Debug().Stringer("edit", ed).Float64("allocated", a.state.PercentTotal()).Msg("edit applied")
}

func (a App) startEdit(kind allocation.EditKind) (tea.Model, tea.Cmd) {
	ti := newNumberInput()
	switch kind {
	case allocation.EditBudget:
		ti.Placeholder = fmt.Sprintf("%.0f", a.state.Budget)
	case allocation.EditAmount:
		ti.Placeholder = fmt.Sprintf("%.0f", a.state.Categories[a.alloc.categoryIndex()].Amount)
	case allocation.EditPercentage:
		ti.Placeholder = fmt.Sprintf("%.1f", a.state.Categories[a.alloc.categoryIndex()].Percentage)
	}
	ti.Focus()

	a.alloc.editing = true
	a.alloc.editKind = kind
	a.alloc.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateAllocateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.commitEdit()
		a.alloc.editing = false
		return a, nil
	case "esc":
		a.alloc.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.alloc.input, cmd = a.alloc.input.Update(msg)
	return a, cmd
}

// commitEdit applies the typed value. Category edits the engine would
// ignore get a flash so the user knows nothing happened.
func (a *App) commitEdit() {
	raw := a.alloc.input.Value()
	v := cli.ParseNumber(raw)
	ed := allocation.Edit{Kind: a.alloc.editKind, Index: a.alloc.categoryIndex(), Value: v}

	switch {
	case ed.Kind != allocation.EditBudget && math.IsNaN(v):
		a.alloc.flash = flashNotANumber
		a.log.Debug().Str("input", raw).Stringer("kind", ed.Kind).Msg("edit ignored")
		return
	case ed.Kind == allocation.EditAmount && a.state.Budget == 0:
		a.alloc.flash = flashNoBudget
		return
	}
	a.apply(ed)
}

func (a App) renderAllocateTab(cw int) string {
	if a.isCompactLayout() {
		list := a.renderCategoryList(cw)
		if !a.showSummary {
			return list + "\n" + renderSummaryCollapsed(cw)
		}
		return list + "\n" + renderSummary(allocation.Summarize(a.state), cw)
	}

	metrics := a.renderTotals(cw)
	if !a.showSummary {
		return metrics + "\n" + a.renderCategoryList(cw) + "\n" + renderSummaryCollapsed(cw)
	}
	leftW, rightW := components.SplitRow(cw, 58, 40)
	return metrics + "\n" + components.CardRow([]string{
		a.renderCategoryList(leftW),
		renderSummary(allocation.Summarize(a.state), rightW),
	})
}

// renderTotals renders the headline figures above the list.
func (a App) renderTotals(cw int) string {
	t := theme.Active
	sum := allocation.Summarize(a.state)

	allocated := components.Metric{
		Label: "Allocated",
		Value: cli.FormatPercent(sum.AllocatedPercent, 1),
		Note:  "balanced",
		Color: t.GreenBright,
	}
	unallocated := components.Metric{
		Label: "Unallocated",
		Value: cli.FormatSignedDollars(sum.Unallocated),
		Note:  "per month",
	}
	if !sum.Balanced {
		allocated.Note = "off balance"
		allocated.Color = t.Orange
		unallocated.Color = t.Orange
	}

	return components.MetricCardRow([]components.Metric{
		{Label: "Monthly budget", Value: cli.FormatMoney(sum.Budget), Note: a.engine.AmountMode().String() + " amounts"},
		{Label: "Annual budget", Value: cli.FormatMoney(sum.BudgetAnnual), Note: "12 months"},
		allocated,
		unallocated,
	}, cw)
}

// Row column widths, excluding the slider which takes what is left.
const (
	markerW  = 2
	emojiW   = 3
	nameW    = 15
	pctW     = 7
	amountW  = 11
	minSlide = 6
)

func (a App) renderCategoryList(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)
	sliderW := innerW - (markerW + emojiW + nameW + 1 + 1 + pctW + 1 + amountW)
	if sliderW < minSlide {
		sliderW = minSlide
	}

	base := lipgloss.NewStyle().Background(t.Surface)
	labelStyle := base.Foreground(t.TextMuted)
	valueStyle := base.Foreground(t.TextPrimary)
	focusStyle := lipgloss.NewStyle().Background(t.SurfaceBright).Foreground(t.TextPrimary).Bold(true)
	markerStyle := lipgloss.NewStyle().Background(t.SurfaceBright).Foreground(t.AccentBright)
	mutedStyle := base.Foreground(t.TextDim)

	var b strings.Builder

	// Budget row
	budgetValue := cli.FormatMoney(a.state.Budget)
	if a.alloc.editing && a.alloc.cursor == 0 {
		budgetValue = "$" + a.alloc.input.View()
	}
	if a.alloc.cursor == 0 {
		line := markerStyle.Render("▸ ") + focusStyle.Render("Monthly budget  ") + focusStyle.Render(budgetValue)
		b.WriteString(fillStyled(line, innerW, t.SurfaceBright))
	} else {
		b.WriteString(base.Render("  ") + labelStyle.Render("Monthly budget  ") + valueStyle.Render(budgetValue))
	}
	b.WriteString("\n\n")

	for i, c := range a.state.Categories {
		focused := a.alloc.cursor == i+1

		pct := cli.FormatPercent(c.Percentage, 1)
		amount := cli.FormatDollars(c.Amount)
		if focused && a.alloc.editing {
			switch a.alloc.editKind {
			case allocation.EditPercentage:
				pct = a.alloc.input.View() + "%"
			case allocation.EditAmount:
				amount = "$" + a.alloc.input.View()
			}
		}

		emoji := padRight(c.Emoji, emojiW)
		name := padRight(truncStr(c.Name, nameW), nameW)
		slider := components.Slider(c.Percentage, sliderW, focused)

		if focused {
			line := markerStyle.Render("▸ ") +
				focusStyle.Render(emoji+name+" ") +
				slider +
				focusStyle.Render(" "+padLeft(pct, pctW)+" "+padLeft(amount, amountW))
			b.WriteString(fillStyled(line, innerW, t.SurfaceBright))
		} else {
			b.WriteString(base.Render("  "+emoji) + valueStyle.Render(name) + base.Render(" ") +
				slider +
				labelStyle.Render(" "+padLeft(pct, pctW)) + valueStyle.Render(" "+padLeft(amount, amountW)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderBalanceLine(a.state))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("[j/k] move  [h/l] ±1%  [enter] amount  [%] percent  [s] summary"))

	return components.ContentCard("Allocation", b.String(), outerW)
}

func renderBalanceLine(s allocation.State) string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)
	okStyle := base.Foreground(t.GreenBright).Bold(true)
	warnStyle := base.Foreground(t.Orange).Bold(true)
	labelStyle := base.Foreground(t.TextMuted)

	total := cli.FormatPercent(s.PercentTotal(), 1)
	if s.Balanced() {
		return labelStyle.Render("Allocated ") + okStyle.Render(total) + labelStyle.Render("  balanced")
	}
	return labelStyle.Render("Allocated ") + warnStyle.Render(total) +
		labelStyle.Render("  unallocated ") + warnStyle.Render(cli.FormatSignedDollars(s.Unallocated()))
}

// fillStyled pads a rendered line to w cells with bg so highlighted rows
// span the whole card.
func fillStyled(line string, w int, bg lipgloss.Color) string {
	gap := w - lipgloss.Width(line)
	if gap <= 0 {
		return line
	}
	return line + lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", gap))
}
