// Package tui provides the interactive Bubble Tea allocation screen for allot.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/allot/internal/allocation"
	"github.com/theirongolddev/allot/internal/cli"
	"github.com/theirongolddev/allot/internal/config"
	"github.com/theirongolddev/allot/internal/tui/components"
	"github.com/theirongolddev/allot/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// App is the root Bubble Tea model.
type App struct {
	// Allocation
	engine *allocation.Engine
	state  allocation.State

	// Preferences, saved from the settings tab
	cfg config.Config
	log zerolog.Logger

	// UI state
	width       int
	height      int
	activeTab   int
	showHelp    bool
	showSummary bool

	// Per-tab state
	alloc    allocateState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	tabAllocate = 0
	tabSettings = 1

	minTerminalWidth = 60
	maxContentWidth  = 180
	minContentHeight = 5
)

// NewApp creates the TUI model around an engine built from cfg. firstRun
// opens the setup form before the allocation screen.
func NewApp(cfg config.Config, engine *allocation.Engine, log zerolog.Logger, firstRun bool) App {
	a := App{
		engine:      engine,
		state:       engine.State(),
		cfg:         cfg,
		log:         log,
		showSummary: cfg.Appearance.ShowSummary,
		alloc:       newAllocateState(),
		needSetup:   firstRun,
	}
	if firstRun {
		a.setupVals = NewSetupValues(cfg)
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Inline editors own the keyboard until enter or esc
		if a.activeTab == tabAllocate && a.alloc.editing {
			return a.updateAllocateInput(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		}
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case tabAllocate:
			return a.updateAllocate(msg)
		case tabSettings:
			return a.updateSettings(msg)
		}
		return a, nil
	}

	// Forward unhandled messages to the active form or editor (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.alloc.editing {
		var cmd tea.Cmd
		a.alloc.input, cmd = a.alloc.input.Update(msg)
		return a, cmd
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabAllocate && !a.alloc.editing {
			a.alloc.moveCursor(-1, a.engine.Len())
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabAllocate && !a.alloc.editing {
			a.alloc.moveCursor(1, a.engine.Len())
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.finishSetup()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// finishSetup saves the setup answers and applies them to the session,
// which has not been edited yet.
func (a *App) finishSetup() {
	cfg, err := a.setupVals.Apply(a.cfg)
	if err != nil {
		a.alloc.flash = "setup not saved: " + err.Error()
		return
	}
	a.cfg = cfg
	a.applyPreferences()
	a.engine.SetBudget(cfg.General.MonthlyBudget)
	a.engine.Rebase()
	a.state = a.engine.State()

	if err := config.Save(cfg); err != nil {
		a.log.Error().Err(err).Msg("saving setup config")
		a.alloc.flash = "setup not saved: " + err.Error()
		return
	}
	a.log.Info().Str("path", config.Path()).Msg("setup saved")
	a.alloc.flash = "saved " + config.Path()
}

// applyPreferences pushes the preference part of a.cfg into the live session.
func (a *App) applyPreferences() {
	for _, opt := range a.cfg.EngineOptions() {
		opt(a.engine)
	}
	theme.SetActive(a.cfg.Appearance.Theme)
	a.showSummary = a.cfg.Appearance.ShowSummary
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// isCompactLayout reports whether the summary stacks under the list.
func (a App) isCompactLayout() bool {
	return a.contentWidth() < a.cfg.Appearance.CompactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  allot needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"a x", "Allocate / Settings tab"},
			{"tab", "Next tab"},
			{"j k", "Move between rows"},
		}},
		{"Allocate", []struct{ key, desc string }{
			{"h l", "Nudge share by 1% (budget by $100)"},
			{"H L", "Nudge share by 5% (budget by $1,000)"},
			{"Enter $", "Type an amount (the budget on its row)"},
			{"%", "Type a percentage"},
			{"s", "Show / hide summary"},
			{"m", "Toggle redistributive / direct amounts"},
			{"n", "Toggle lenient / renormalize"},
			{"r", "Reset to starting allocation"},
		}},
		{"General", []struct{ key, desc string }{
			{"Esc", "Cancel edit"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + mode pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	pill := pillStyle.Render(" ") +
		pillAccentStyle.Render(cli.FormatDollars(a.state.Budget)+"/mo") +
		pillStyle.Render(" │ ") + pillAccentStyle.Render(a.engine.AmountMode().String()) +
		pillStyle.Render(" │ ") + pillAccentStyle.Render(a.engine.Strictness().String()) +
		pillStyle.Render(" ")

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		AmountMode: a.engine.AmountMode().String(),
		Strictness: a.engine.Strictness().String(),
		Allocated:  cli.FormatPercent(a.state.PercentTotal(), 1),
		Balanced:   a.state.Balanced(),
		Flash:      a.flash(),
	})

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabAllocate:
		content = a.renderAllocateTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Exactly contentH lines, each filled to width
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// flash returns the transient message for the active tab.
func (a App) flash() string {
	if a.activeTab == tabSettings {
		return a.settings.flash
	}
	return a.alloc.flash
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// padRight pads s with spaces to visual width w, measuring with lipgloss so
// emoji count as two cells.
func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards have no unstyled cells.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
