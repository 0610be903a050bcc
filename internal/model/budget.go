// Package model defines the plain summary types shared by the allocation
// engine and the renderers.
package model

// SummaryLine holds one category's row in the budget summary.
type SummaryLine struct {
	Name       string
	Emoji      string
	Percentage float64
	Monthly    float64
	Annual     float64
}

// Summary holds per-category monthly/annual amounts and the totals.
type Summary struct {
	Lines []SummaryLine

	Budget       float64 // monthly total the user entered
	BudgetAnnual float64

	AllocatedMonthly float64 // sum of category amounts
	AllocatedAnnual  float64
	AllocatedPercent float64
	Unallocated      float64 // Budget - AllocatedMonthly; negative when over
	Balanced         bool
}
