package allocation

import (
	"math"

	"github.com/theirongolddev/allot/internal/model"
)

// MonthsPerYear converts monthly amounts into the annual column.
const MonthsPerYear = 12

// Summarize builds the monthly/annual breakdown for s.
func Summarize(s State) model.Summary {
	sum := model.Summary{
		Lines:        make([]model.SummaryLine, 0, len(s.Categories)),
		Budget:       s.Budget,
		BudgetAnnual: s.Budget * MonthsPerYear,
	}

	for _, c := range s.Categories {
		monthly := math.Round(c.Amount)
		sum.Lines = append(sum.Lines, model.SummaryLine{
			Name:       c.Name,
			Emoji:      c.Emoji,
			Percentage: c.Percentage,
			Monthly:    monthly,
			Annual:     math.Round(c.Amount * MonthsPerYear),
		})
		sum.AllocatedMonthly += monthly
		sum.AllocatedPercent += c.Percentage
	}

	sum.AllocatedAnnual = sum.AllocatedMonthly * MonthsPerYear
	sum.Unallocated = s.Budget - sum.AllocatedMonthly
	sum.Balanced = s.Balanced()
	return sum
}
