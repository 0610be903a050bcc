// Package cmd implements the allot CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/allot/internal/cli"
	"github.com/theirongolddev/allot/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Fprintln(w, "  Status: loaded")
	} else {
		fmt.Fprintln(w, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [General]")
	fmt.Fprintf(w, "    Monthly budget: %s\n", cli.FormatMoney(cfg.General.MonthlyBudget))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Allocation]")
	fmt.Fprintf(w, "    Amount edits:   %s\n", cfg.Allocation.AmountMode)
	fmt.Fprintf(w, "    Redistribution: %s\n", cfg.Allocation.Strictness)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Categories]")
	var total float64
	for i, c := range cfg.Categories {
		fmt.Fprintf(w, "    %2d  %-2s %-16s %7s\n", i, c.Emoji, c.Name, cli.FormatPercent(c.Percentage, 1))
		total += c.Percentage
	}
	fmt.Fprintf(w, "        %-19s %7s\n", "total", cli.FormatPercent(total, 1))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Appearance]")
	fmt.Fprintf(w, "    Theme:          %s\n", cfg.Appearance.Theme)
	fmt.Fprintf(w, "    Summary panel:  %v\n", cfg.Appearance.ShowSummary)
	fmt.Fprintf(w, "    Compact below:  %d cols\n", cfg.Appearance.CompactWidth)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Log]")
	fmt.Fprintf(w, "    Level: %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, "    File:  %s\n", cfg.Log.File)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Run `allot setup` to reconfigure.")
	return nil
}
