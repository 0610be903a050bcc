package tui

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/allot/internal/allocation"
	"github.com/theirongolddev/allot/internal/config"
	"github.com/theirongolddev/allot/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

func newTestApp(t *testing.T, width int) App {
	t.Helper()
	t.Setenv("ALLOT_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	cfg := config.DefaultConfig()
	e, err := cfg.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	a := NewApp(cfg, e, zerolog.Nop(), false)
	return send(a, tea.WindowSizeMsg{Width: width, Height: 40})
}

func send(a App, msgs ...tea.Msg) App {
	for _, msg := range msgs {
		next, _ := a.Update(msg)
		a = next.(App)
	}
	return a
}

// typed turns s into one key message per rune.
func typed(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func category(a App, name string) allocation.Category {
	return a.state.Categories[a.state.Index(name)]
}

func assertTotal(t *testing.T, a App, want float64) {
	t.Helper()
	if got := a.state.PercentTotal(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("percent total = %v, want %v", got, want)
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := 0; active < 2; active++ {
		a := App{activeTab: active}
		pos := 0

		for i := 0; i < 2; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < 1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("active=%d past last tab -> %d, want -1", active, got)
		}
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	nameWidths := []int{len("Allocate"), len("Settings")}

	w := nameWidths[tabIdx] + 2 // horizontal padding in tab renderer
	if tabIdx != activeIdx {
		w += 2 // brackets around the shortcut
		if tabIdx == 1 {
			w++ // inactive Settings appends "x"
		}
	}
	return w
}

func TestMouseClickSwitchesTab(t *testing.T) {
	a := newTestApp(t, 140)
	a = send(a, tea.MouseMsg{X: 15, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if a.activeTab != tabSettings {
		t.Fatalf("activeTab = %d, want settings", a.activeTab)
	}
}

func TestAllocate_NudgeCategory(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, typed("j")...)
	if a.alloc.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.alloc.cursor)
	}

	a = send(a, typed("l")...)
	if got := category(a, "Housing").Percentage; got != 36 {
		t.Fatalf("Housing after l = %v, want 36", got)
	}
	assertTotal(t, a, 100)

	a = send(a, typed("HH")...)
	if got := category(a, "Housing").Percentage; got != 26 {
		t.Fatalf("Housing after HH = %v, want 26", got)
	}
	assertTotal(t, a, 100)
}

func TestAllocate_NudgeBudget(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, typed("L")...)
	if a.state.Budget != 6000 {
		t.Fatalf("budget = %v, want 6000", a.state.Budget)
	}
	a = send(a, typed("h")...)
	if a.state.Budget != 5900 {
		t.Fatalf("budget = %v, want 5900", a.state.Budget)
	}
	if got := category(a, "Housing").Amount; got != 2065 {
		t.Fatalf("Housing amount = %v, want 2065", got)
	}
}

func TestAllocate_CursorBounds(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, typed("k")...)
	if a.alloc.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", a.alloc.cursor)
	}
	a = send(a, typed("G")...)
	a = send(a, typed("j")...)
	if want := a.engine.Len(); a.alloc.cursor != want {
		t.Fatalf("cursor = %d, want %d", a.alloc.cursor, want)
	}
}

func TestAllocate_EditAmount(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, typed("jj$")...)
	if !a.alloc.editing || a.alloc.editKind != allocation.EditAmount {
		t.Fatalf("editing=%v kind=%v, want amount editor", a.alloc.editing, a.alloc.editKind)
	}
	a = send(a, typed("577")...)
	a = send(a, enter)

	if a.alloc.editing {
		t.Fatal("editor still open after enter")
	}
	if got := category(a, "Food").Amount; got != 577 {
		t.Fatalf("Food amount = %v, want 577", got)
	}
	assertTotal(t, a, 100)
}

func TestAllocate_EditPercentage(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, typed("j%50")...)
	a = send(a, enter)

	housing := category(a, "Housing")
	if housing.Percentage != 50 || housing.Amount != 2500 {
		t.Fatalf("Housing = %v%% / %v, want 50%% / 2500", housing.Percentage, housing.Amount)
	}
	assertTotal(t, a, 100)
}

func TestAllocate_EditBudget(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, enter)
	if a.alloc.editKind != allocation.EditBudget {
		t.Fatalf("kind = %v, want budget", a.alloc.editKind)
	}
	a = send(a, typed("$8,000")...)
	a = send(a, enter)

	if a.state.Budget != 8000 {
		t.Fatalf("budget = %v, want 8000", a.state.Budget)
	}
	if got := category(a, "Housing").Amount; got != 2800 {
		t.Fatalf("Housing amount = %v, want 2800", got)
	}
}

func TestAllocate_RejectedEdits(t *testing.T) {
	t.Run("not a number", func(t *testing.T) {
		a := newTestApp(t, 140)
		before := a.state

		a = send(a, typed("j$abc")...)
		a = send(a, enter)

		if a.alloc.flash != flashNotANumber {
			t.Fatalf("flash = %q, want %q", a.alloc.flash, flashNotANumber)
		}
		if a.state.Categories[0] != before.Categories[0] {
			t.Fatal("state changed after rejected edit")
		}
	})

	t.Run("zero budget", func(t *testing.T) {
		a := newTestApp(t, 140)

		a = send(a, enter)
		a = send(a, typed("0")...)
		a = send(a, enter)
		a = send(a, typed("j$100")...)
		a = send(a, enter)

		if a.alloc.flash != flashNoBudget {
			t.Fatalf("flash = %q, want %q", a.alloc.flash, flashNoBudget)
		}
		if got := category(a, "Housing").Percentage; got != 35 {
			t.Fatalf("Housing = %v, want 35", got)
		}
	})

	t.Run("escape cancels", func(t *testing.T) {
		a := newTestApp(t, 140)
		before := a.state

		a = send(a, typed("j$1")...)
		a = send(a, esc)

		if a.alloc.editing {
			t.Fatal("editor still open after esc")
		}
		if a.state.Categories[0] != before.Categories[0] {
			t.Fatal("state changed after cancelled edit")
		}
	})

	t.Run("flash clears on next key", func(t *testing.T) {
		a := newTestApp(t, 140)
		a = send(a, typed("j$x")...)
		a = send(a, enter)
		a = send(a, typed("j")...)
		if a.alloc.flash != "" {
			t.Fatalf("flash = %q, want empty", a.alloc.flash)
		}
	})
}

func TestAllocate_Toggles(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, typed("m")...)
	if a.engine.AmountMode() != allocation.Direct {
		t.Fatalf("amount mode = %v, want direct", a.engine.AmountMode())
	}
	a = send(a, typed("n")...)
	if a.engine.Strictness() != allocation.Renormalize {
		t.Fatalf("strictness = %v, want renormalize", a.engine.Strictness())
	}

	// Direct amount edit leaves the others alone.
	a = send(a, typed("j$0")...)
	a = send(a, enter)
	assertTotal(t, a, 65)

	a = send(a, typed("mn")...)
	if a.engine.AmountMode() != allocation.Redistributive || a.engine.Strictness() != allocation.Lenient {
		t.Fatal("toggles did not return to defaults")
	}
}

func TestAllocate_Reset(t *testing.T) {
	a := newTestApp(t, 140)
	initial := a.state

	a = send(a, typed("LLjlll")...)
	a = send(a, typed("r")...)

	if a.state.Budget != initial.Budget {
		t.Fatalf("budget = %v, want %v", a.state.Budget, initial.Budget)
	}
	for i := range initial.Categories {
		if a.state.Categories[i] != initial.Categories[i] {
			t.Fatalf("category %d = %+v, want %+v", i, a.state.Categories[i], initial.Categories[i])
		}
	}
}

func TestAllocate_SummaryToggle(t *testing.T) {
	for _, width := range []int{140, 90} {
		a := newTestApp(t, width)

		view := a.View()
		if !strings.Contains(view, "Summary ▼") || !strings.Contains(view, "Category") {
			t.Fatalf("width %d: summary panel missing", width)
		}

		a = send(a, typed("s")...)
		if a.showSummary {
			t.Fatal("s did not hide the summary")
		}
		view = a.View()
		if !strings.Contains(view, "Summary ▲") || strings.Contains(view, "Category") {
			t.Fatalf("width %d: collapsed summary not rendered", width)
		}
	}
}

func TestTabsAndHelp(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, typed("x")...)
	if a.activeTab != tabSettings {
		t.Fatalf("activeTab = %d, want settings", a.activeTab)
	}
	a = send(a, typed("a")...)
	if a.activeTab != tabAllocate {
		t.Fatalf("activeTab = %d, want allocate", a.activeTab)
	}
	a = send(a, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeTab != tabSettings {
		t.Fatalf("tab key: activeTab = %d, want settings", a.activeTab)
	}

	a = send(a, typed("?")...)
	if !a.showHelp || !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not shown")
	}
	a = send(a, typed("j")...)
	if a.showHelp {
		t.Fatal("any key should dismiss help")
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t, 40)
	if !strings.Contains(a.View(), "too narrow") {
		t.Fatal("narrow terminal message missing")
	}
}

func TestSettings_CycleAndSave(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, typed("x")...)
	a = send(a, enter)

	if a.cfg.Allocation.AmountMode != "direct" {
		t.Fatalf("config amount mode = %q, want direct", a.cfg.Allocation.AmountMode)
	}
	if a.engine.AmountMode() != allocation.Direct {
		t.Fatal("live engine did not pick up the new amount mode")
	}
	if a.settings.flash != "saved" {
		t.Fatalf("flash = %q, want saved", a.settings.flash)
	}

	loaded, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Allocation.AmountMode != "direct" {
		t.Fatalf("saved amount mode = %q, want direct", loaded.Allocation.AmountMode)
	}

	a = send(a, typed("jjj")...)
	a = send(a, enter)
	if a.showSummary {
		t.Fatal("summary preference did not apply to the session")
	}
}

func TestSettings_ThemeChangeKeepsSessionToggles(t *testing.T) {
	a := newTestApp(t, 140)
	t.Cleanup(func() { theme.SetActive(config.DefaultConfig().Appearance.Theme) })

	a = send(a, typed("ms")...)
	a = send(a, typed("xjj")...)
	a = send(a, enter)

	if a.cfg.Appearance.Theme == config.DefaultConfig().Appearance.Theme {
		t.Fatal("theme did not change")
	}
	if theme.Active.Name != a.cfg.Appearance.Theme {
		t.Fatalf("active theme = %q, want %q", theme.Active.Name, a.cfg.Appearance.Theme)
	}
	if a.engine.AmountMode() != allocation.Direct {
		t.Fatalf("amount mode = %v, want direct to survive the theme change", a.engine.AmountMode())
	}
	if a.showSummary {
		t.Fatal("hidden summary came back after the theme change")
	}
}

func TestSettings_DefaultBudget(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, typed("xjjjjj")...)
	a = send(a, enter)
	if !a.settings.editing {
		t.Fatal("budget field should open an editor")
	}
	a = send(a, tea.KeyMsg{Type: tea.KeyCtrlU})
	a = send(a, typed("4000")...)
	a = send(a, enter)

	if a.cfg.General.MonthlyBudget != 4000 {
		t.Fatalf("default budget = %v, want 4000", a.cfg.General.MonthlyBudget)
	}
	if a.state.Budget != 5000 {
		t.Fatalf("session budget = %v, want it untouched at 5000", a.state.Budget)
	}
}

func TestSettings_RejectsNarrowCompactWidth(t *testing.T) {
	a := newTestApp(t, 140)

	a = send(a, typed("xjjjj")...)
	a = send(a, enter)
	a = send(a, tea.KeyMsg{Type: tea.KeyCtrlU})
	a = send(a, typed("30")...)
	a = send(a, enter)

	if a.cfg.Appearance.CompactWidth != 110 {
		t.Fatalf("compact width = %d, want 110", a.cfg.Appearance.CompactWidth)
	}
	if !strings.HasPrefix(a.settings.flash, "ignored") {
		t.Fatalf("flash = %q, want an ignored message", a.settings.flash)
	}
}

func TestFinishSetupMovesResetPoint(t *testing.T) {
	a := newTestApp(t, 140)
	a.setupVals = NewSetupValues(a.cfg)
	a.setupVals.Budget = "7000"
	a.finishSetup()

	if a.state.Budget != 7000 {
		t.Fatalf("budget after setup = %v, want 7000", a.state.Budget)
	}

	a = send(a, typed("Ljl")...)
	a = send(a, typed("r")...)
	if a.state.Budget != 7000 {
		t.Fatalf("budget after reset = %v, want the setup budget 7000", a.state.Budget)
	}
	if got := category(a, "Housing").Amount; got != 2450 {
		t.Fatalf("Housing after reset = %v, want 2450", got)
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := NewSetupValues(cfg)

	got, err := vals.Apply(cfg)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.General.MonthlyBudget != cfg.General.MonthlyBudget || got.Appearance.Theme != cfg.Appearance.Theme {
		t.Fatal("round trip through setup values changed the config")
	}

	vals.Budget = "2,500"
	vals.AmountMode = "direct"
	vals.Theme = "tokyo-night"
	got, err = vals.Apply(cfg)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.General.MonthlyBudget != 2500 || got.Allocation.AmountMode != "direct" || got.Appearance.Theme != "tokyo-night" {
		t.Fatalf("Apply = %+v", got)
	}

	vals.Budget = "lots"
	if _, err := vals.Apply(cfg); err == nil {
		t.Fatal("expected an error for a non-numeric budget")
	}

	if NewSetupForm(vals) == nil {
		t.Fatal("NewSetupForm returned nil")
	}
}
