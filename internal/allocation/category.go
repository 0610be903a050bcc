// Package allocation implements the budget allocation engine: a total monthly
// budget split across an ordered set of categories, kept consistent as single
// categories are edited by percentage or by amount.
package allocation

import "math"

// DefaultBudget is the monthly total a fresh session starts with.
const DefaultBudget = 5000

// BalanceTolerance is how far the percentage total may sit from 100 and
// still be reported as balanced.
const BalanceTolerance = 0.01

// Category is one budget line. Identity is its position in the set, not Name.
type Category struct {
	Name       string
	Emoji      string  // cosmetic
	Percentage float64 // share of the budget, 0-100
	Amount     float64 // round(budget * Percentage / 100)
}

// DefaultCategories returns the reference category set. The slice is fresh
// on every call.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Housing", Emoji: "🏠", Percentage: 35},
		{Name: "Food", Emoji: "🍳", Percentage: 15},
		{Name: "Transportation", Emoji: "🚗", Percentage: 10},
		{Name: "Utilities", Emoji: "💡", Percentage: 10},
		{Name: "Healthcare", Emoji: "🏥", Percentage: 10},
		{Name: "Entertainment", Emoji: "🎮", Percentage: 5},
		{Name: "Savings", Emoji: "💰", Percentage: 10},
		{Name: "Other", Emoji: "📦", Percentage: 5},
	}
}

// State is a snapshot of the engine returned by every operation. It never
// aliases engine memory.
type State struct {
	Budget     float64
	Categories []Category
}

// PercentTotal returns the sum of all category percentages.
func (s State) PercentTotal() float64 {
	var total float64
	for _, c := range s.Categories {
		total += c.Percentage
	}
	return total
}

// AmountTotal returns the sum of all category amounts.
func (s State) AmountTotal() float64 {
	var total float64
	for _, c := range s.Categories {
		total += c.Amount
	}
	return total
}

// Unallocated is the part of the budget not assigned to any category.
// Negative when categories are over-allocated.
func (s State) Unallocated() float64 {
	return s.Budget - s.AmountTotal()
}

// Balanced reports whether percentages sum to 100 within BalanceTolerance.
func (s State) Balanced() bool {
	return math.Abs(s.PercentTotal()-100) <= BalanceTolerance
}

// Index returns the position of the category with the given name, or -1.
func (s State) Index(name string) int {
	for i, c := range s.Categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func cloneCategories(cats []Category) []Category {
	out := make([]Category, len(cats))
	copy(out, cats)
	return out
}

// amountFor derives a category amount from its share of the budget.
func amountFor(budget, percentage float64) float64 {
	return math.Round(budget * percentage / 100)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampPercentage(p float64) float64 {
	return math.Min(100, math.Max(0, p))
}
