package tui

import (
	"errors"
	"math"
	"strconv"

	"github.com/theirongolddev/allot/internal/allocation"
	"github.com/theirongolddev/allot/internal/cli"
	"github.com/theirongolddev/allot/internal/config"
	"github.com/theirongolddev/allot/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup form. The form
// writes into it through pointers, so it must outlive the form.
type SetupValues struct {
	Budget      string
	AmountMode  string
	Strictness  string
	Theme       string
	ShowSummary bool
}

// NewSetupValues seeds the form with the current configuration.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Budget:      strconv.FormatFloat(cfg.General.MonthlyBudget, 'f', -1, 64),
		AmountMode:  cfg.Allocation.AmountMode,
		Strictness:  cfg.Allocation.Strictness,
		Theme:       cfg.Appearance.Theme,
		ShowSummary: cfg.Appearance.ShowSummary,
	}
}

// NewSetupForm builds the first-run form. The same form backs `allot setup`.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to allot").
				Description("Split a monthly budget across categories.\nThese preferences are saved to "+config.Path()+"."),
			huh.NewInput().
				Title("Monthly budget").
				Description("Starting total for each new session").
				Value(&vals.Budget).
				Validate(validateBudget),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Typing an amount should").
				Options(
					huh.NewOption("rebalance the other categories", allocation.Redistributive.String()),
					huh.NewOption("change only that category", allocation.Direct.String()),
				).
				Value(&vals.AmountMode),
			huh.NewSelect[string]().
				Title("When shares floor at 0").
				Options(
					huh.NewOption("leave the total under 100%", allocation.Lenient.String()),
					huh.NewOption("scale the others back to 100%", allocation.Renormalize.String()),
				).
				Value(&vals.Strictness),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Show the summary panel?").
				Value(&vals.ShowSummary),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateBudget(s string) error {
	v := cli.ParseNumber(s)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("enter a number")
	}
	if v < 0 {
		return errors.New("budget cannot be negative")
	}
	return nil
}

// Apply returns cfg updated with the answers.
func (v SetupValues) Apply(cfg config.Config) (config.Config, error) {
	if err := validateBudget(v.Budget); err != nil {
		return cfg, err
	}
	cfg.General.MonthlyBudget = cli.ParseNumber(v.Budget)
	cfg.Allocation.AmountMode = v.AmountMode
	cfg.Allocation.Strictness = v.Strictness
	cfg.Appearance.Theme = v.Theme
	cfg.Appearance.ShowSummary = v.ShowSummary
	return cfg, cfg.Validate()
}
