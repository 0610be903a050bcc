package cmd

import (
	"fmt"

	"github.com/theirongolddev/allot/internal/allocation"
	"github.com/theirongolddev/allot/internal/config"
	"github.com/theirongolddev/allot/internal/tui"
	"github.com/theirongolddev/allot/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive allocation screen",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	saved, session, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so only a log file gets output.
	log, closeLog, err := newLogger(session, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	engine, err := session.NewEngine(allocation.WithLogger(log))
	if err != nil {
		return err
	}

	theme.SetActive(session.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	log.Info().
		Float64("budget", engine.Budget()).
		Stringer("amount_mode", engine.AmountMode()).
		Stringer("strictness", engine.Strictness()).
		Msg("starting tui")

	app := tui.NewApp(saved, engine, log, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
