package cmd

import (
	"io"
	"os"

	"github.com/theirongolddev/allot/internal/allocation"
	"github.com/theirongolddev/allot/internal/config"
	"github.com/theirongolddev/allot/internal/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagBudget      float64
	flagMode        string
	flagRenormalize bool
	flagLogLevel    string
	flagLogFile     string
)

var rootCmd = &cobra.Command{
	Use:          "allot",
	Short:        "Split a monthly budget across categories",
	Long:         "Allocate a monthly budget across spending categories by percentage or amount.\nEditing one category rebalances the others in proportion.",
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Float64VarP(&flagBudget, "budget", "b", allocation.DefaultBudget, "Starting monthly budget (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagMode, "mode", "m", "", "Amount edits: redistributive or direct (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagRenormalize, "renormalize", false, "Scale other categories back to 100% after flooring (--renormalize=false for lenient)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append JSON logs to this file")
}

// loadConfig returns the config file as saved and the session config, which
// is the file with command-line overrides applied. Only the former is ever
// written back.
func loadConfig(cmd *cobra.Command) (saved, session config.Config, err error) {
	saved, err = config.Load()
	if err != nil {
		return saved, saved, err
	}

	session = saved
	flags := cmd.Flags()
	if flags.Changed("budget") {
		session.General.MonthlyBudget = flagBudget
	}
	if flags.Changed("mode") {
		session.Allocation.AmountMode = flagMode
	}
	if flags.Changed("renormalize") {
		session.Allocation.Strictness = allocation.Lenient.String()
		if flagRenormalize {
			session.Allocation.Strictness = allocation.Renormalize.String()
		}
	}
	if flags.Changed("log-level") {
		session.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		session.Log.File = flagLogFile
	}

	if err := session.Validate(); err != nil {
		return saved, session, err
	}
	return saved, session, nil
}

// newLogger builds the logger for a command. A configured log file wins;
// otherwise logs go to fallback, or nowhere when fallback is nil. The
// returned func closes the log file, if any.
func newLogger(cfg config.Config, fallback io.Writer) (zerolog.Logger, func() error, error) {
	noClose := func() error { return nil }

	if cfg.Log.File != "" {
		l, f, err := logging.OpenFile(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return zerolog.Nop(), noClose, err
		}
		return l, f.Close, nil
	}
	if fallback == nil {
		return zerolog.Nop(), noClose, nil
	}
	l, err := logging.New(cfg.Log.Level, fallback, true)
	if err != nil {
		return zerolog.Nop(), noClose, err
	}
	return l, noClose, nil
}
