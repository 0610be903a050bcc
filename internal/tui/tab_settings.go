package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/allot/internal/allocation"
	"github.com/theirongolddev/allot/internal/cli"
	"github.com/theirongolddev/allot/internal/config"
	"github.com/theirongolddev/allot/internal/tui/components"
	"github.com/theirongolddev/allot/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldAmountMode = iota
	settingsFieldStrictness
	settingsFieldTheme
	settingsFieldSummary
	settingsFieldCompactWidth
	settingsFieldBudget
	settingsFieldCount // sentinel
)

const minCompactWidth = minTerminalWidth

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	flash   string
}

func (a App) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter", " ":
		return a.settingsActivate()
	}
	return a, nil
}

// settingsActivate cycles choice fields in place and opens an editor for
// numeric ones. Only the changed field reaches the live session.
func (a App) settingsActivate() (tea.Model, tea.Cmd) {
	a.settings.flash = ""

	switch a.settings.cursor {
	case settingsFieldAmountMode:
		mode := allocation.Direct
		if a.cfg.Allocation.AmountMode == allocation.Direct.String() {
			mode = allocation.Redistributive
		}
		a.cfg.Allocation.AmountMode = mode.String()
		a.engine.SetAmountMode(mode)
	case settingsFieldStrictness:
		strict := allocation.Renormalize
		if a.cfg.Allocation.Strictness == allocation.Renormalize.String() {
			strict = allocation.Lenient
		}
		a.cfg.Allocation.Strictness = strict.String()
		a.engine.SetStrictness(strict)
	case settingsFieldTheme:
		a.cfg.Appearance.Theme = theme.Next(a.cfg.Appearance.Theme)
		theme.SetActive(a.cfg.Appearance.Theme)
	case settingsFieldSummary:
		a.cfg.Appearance.ShowSummary = !a.cfg.Appearance.ShowSummary
		a.showSummary = a.cfg.Appearance.ShowSummary
	case settingsFieldCompactWidth, settingsFieldBudget:
		ti := newSettingsInput()
		if a.settings.cursor == settingsFieldCompactWidth {
			ti.Placeholder = "columns, at least " + strconv.Itoa(minCompactWidth)
			ti.SetValue(strconv.Itoa(a.cfg.Appearance.CompactWidth))
		} else {
			ti.Placeholder = "monthly budget for new sessions"
			ti.SetValue(strconv.FormatFloat(a.cfg.General.MonthlyBudget, 'f', -1, 64))
		}
		ti.Focus()
		a.settings.editing = true
		a.settings.input = ti
		return a, ti.Cursor.BlinkCmd()
	}

	a.saveSettings()
	return a, nil
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 20
	return ti
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.editing = false
		if a.settingsCommit() {
			a.saveSettings()
		}
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsCommit validates the typed value into a.cfg. It reports false
// and flashes when the value is rejected.
func (a *App) settingsCommit() bool {
	v := cli.ParseNumber(a.settings.input.Value())
	switch a.settings.cursor {
	case settingsFieldCompactWidth:
		if math.IsNaN(v) || v < minCompactWidth {
			a.settings.flash = fmt.Sprintf("ignored: width must be at least %d", minCompactWidth)
			return false
		}
		a.cfg.Appearance.CompactWidth = int(v)
	case settingsFieldBudget:
		if math.IsNaN(v) || v < 0 {
			a.settings.flash = flashNotANumber
			return false
		}
		a.cfg.General.MonthlyBudget = v
	}
	return true
}

// saveSettings writes a.cfg. The current session's budget and categories
// are never part of what gets saved.
func (a *App) saveSettings() {
	if err := config.Save(a.cfg); err != nil {
		a.log.Error().Err(err).Msg("saving settings")
		a.settings.flash = "save failed: " + err.Error()
		return
	}
	a.log.Info().Str("path", config.Path()).Msg("settings saved")
	a.settings.flash = "saved"
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	fields := []struct{ label, value string }{
		{"Amount edits", a.cfg.Allocation.AmountMode},
		{"Redistribution", a.cfg.Allocation.Strictness},
		{"Theme", a.cfg.Appearance.Theme},
		{"Summary panel", map[bool]string{true: "shown", false: "hidden"}[a.cfg.Appearance.ShowSummary]},
		{"Compact below", strconv.Itoa(a.cfg.Appearance.CompactWidth) + " cols"},
		{"Default budget", cli.FormatMoney(a.cfg.General.MonthlyBudget)},
	}

	innerW := components.CardInnerWidth(cw)

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			line := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")) +
				selectedStyle.Render(f.value)
			formBody.WriteString(fillStyled(line, innerW, t.SurfaceBright))
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	formBody.WriteString("\n")
	formBody.WriteString(dimStyle.Render("[j/k] navigate  [Enter] change  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.Path()) + "\n")
	infoBody.WriteString(labelStyle.Render("Categories:   ") + valueStyle.Render(strconv.Itoa(len(a.cfg.Categories))) + "\n")
	infoBody.WriteString(dimStyle.Render("Budgets edited on the Allocate tab are not saved."))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
