package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/allot/internal/allocation"
	"github.com/theirongolddev/allot/internal/cli"
	"github.com/theirongolddev/allot/internal/model"

	"github.com/spf13/cobra"
)

var flagEdits []string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the monthly and annual allocation",
	Long: "Print the allocation table after applying edits in order.\n\n" +
		"Edits are budget=V, pct:C=V or amount:C=V where C is a category\n" +
		"name or zero-based index, e.g. --edit budget=6000 --edit amount:food=600",
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringArrayVarP(&flagEdits, "edit", "e", nil, "Edit to apply before printing (repeatable)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	_, session, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(session, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	engine, err := session.NewEngine(allocation.WithLogger(log))
	if err != nil {
		return err
	}

	state := engine.State()
	names := make([]string, len(state.Categories))
	for i, c := range state.Categories {
		names[i] = c.Name
	}

	edits, err := cli.ParseEdits(flagEdits, names)
	if err != nil {
		return err
	}
	for _, ed := range edits {
		state = engine.Apply(ed)
		log.Debug().Stringer("edit", ed).Float64("allocated", state.PercentTotal()).Msg("edit applied")
	}

	printSummary(cmd.OutOrStdout(), allocation.Summarize(state), engine)
	return nil
}

func printSummary(w io.Writer, sum model.Summary, engine *allocation.Engine) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(fmt.Sprintf("BUDGET  %s / month", cli.FormatDollars(sum.Budget))))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(sum.Lines)+4)
	for _, l := range sum.Lines {
		rows = append(rows, []string{
			strings.TrimSpace(l.Emoji + " " + l.Name),
			cli.RenderShareBar(l.Percentage, 20),
			cli.FormatPercent(l.Percentage, 1),
			cli.FormatMoney(l.Monthly),
			cli.FormatMoney(l.Annual),
		})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Allocated", "", cli.FormatPercent(sum.AllocatedPercent, 1), cli.FormatMoney(sum.AllocatedMonthly), cli.FormatMoney(sum.AllocatedAnnual)},
		[]string{"Budget", "", "", cli.FormatMoney(sum.Budget), cli.FormatMoney(sum.BudgetAnnual)},
	)

	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Share", "Percent", "Monthly", "Annual"},
		Rows:    rows,
	}))
	fmt.Fprintln(w, cli.RenderBalance(sum.AllocatedPercent, sum.Unallocated, sum.Balanced))
	fmt.Fprintln(w, cli.RenderMuted(fmt.Sprintf("  amount edits: %s · redistribution: %s",
		engine.AmountMode(), engine.Strictness())))
}
