package allocation

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	// ErrNoCategories is returned by New for an empty category set.
	ErrNoCategories = errors.New("allocation needs at least one category")
	// ErrInvalidPercentage is returned by New for a NaN, infinite or negative share.
	ErrInvalidPercentage = errors.New("invalid category percentage")
)

// Engine owns one session's category set and budget. Every operation either
// rebuilds a consistent set or leaves the state untouched.
//
// An Engine is not safe for concurrent use; callers serialize edits the way
// a UI event loop does.
type Engine struct {
	budget     float64
	categories []Category

	initialBudget     float64
	initialCategories []Category

	amountMode AmountMode
	strictness Strictness
	log        zerolog.Logger
}

// New creates an engine over a copy of categories. Amounts are recomputed
// from the percentages against budget, so callers only need to fill in
// Name, Emoji and Percentage.
func New(budget float64, categories []Category, opts ...Option) (*Engine, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	for i, c := range categories {
		if !finite(c.Percentage) || c.Percentage < 0 {
			return nil, fmt.Errorf("category %d (%s): %w: %v", i, c.Name, ErrInvalidPercentage, c.Percentage)
		}
	}

	e := &Engine{
		categories: cloneCategories(categories),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.SetBudget(budget)
	e.initialBudget = e.budget
	e.initialCategories = cloneCategories(e.categories)
	return e, nil
}

// Reset restores the budget and categories the engine was created with.
// Modes are left as they are.
func (e *Engine) Reset() State {
	e.budget = e.initialBudget
	e.categories = cloneCategories(e.initialCategories)
	return e.State()
}

// Rebase makes the current budget and categories the state Reset returns.
func (e *Engine) Rebase() {
	e.initialBudget = e.budget
	e.initialCategories = cloneCategories(e.categories)
}

// AmountMode reports how SetAmount currently behaves.
func (e *Engine) AmountMode() AmountMode { return e.amountMode }

// SetAmountMode switches amount editing between direct and redistributive.
func (e *Engine) SetAmountMode(m AmountMode) { e.amountMode = m }

// Strictness reports the current post-redistribution policy.
func (e *Engine) Strictness() Strictness { return e.strictness }

// SetStrictness switches between lenient and renormalizing redistribution.
func (e *Engine) SetStrictness(s Strictness) { e.strictness = s }

// Len returns the number of categories.
func (e *Engine) Len() int { return len(e.categories) }

// Budget returns the current total.
func (e *Engine) Budget() float64 { return e.budget }

// State returns a copy of the current budget and categories.
func (e *Engine) State() State {
	return State{Budget: e.budget, Categories: cloneCategories(e.categories)}
}

// SetBudget replaces the total. Negative and non-finite values become 0.
// Percentages are kept and every amount is recomputed against the new total.
func (e *Engine) SetBudget(total float64) State {
	if !finite(total) || total < 0 {
		e.log.Debug().Float64("budget", total).Msg("budget clamped to 0")
		total = 0
	}

	e.budget = total
	for i := range e.categories {
		e.categories[i].Amount = amountFor(total, e.categories[i].Percentage)
	}
	return e.State()
}

// SetPercentage sets category index to value percent and rebalances the
// others in proportion to their current shares. Non-finite values and
// unknown indices are ignored.
func (e *Engine) SetPercentage(index int, value float64) State {
	if !e.validIndex(index) {
		e.log.Debug().Int("index", index).Msg("percentage edit rejected: index out of range")
		return e.State()
	}
	if !finite(value) {
		e.log.Debug().Int("index", index).Float64("value", value).Msg("percentage edit rejected")
		return e.State()
	}

	e.categories = redistribute(e.categories, index, clampPercentage(value), e.budget, e.strictness)
	return e.State()
}

// SetAmount sets category index to amount. The amount is converted to a
// share of the budget; with a zero budget there is no share and the edit is
// ignored. The AmountMode decides whether the other categories rebalance.
// Only redistributing edits clamp the derived share to 100.
func (e *Engine) SetAmount(index int, amount float64) State {
	if !e.validIndex(index) {
		e.log.Debug().Int("index", index).Msg("amount edit rejected: index out of range")
		return e.State()
	}
	if !finite(amount) {
		e.log.Debug().Int("index", index).Float64("amount", amount).Msg("amount edit rejected")
		return e.State()
	}
	if amount < 0 {
		amount = 0
	}

	pct := amount / e.budget * 100
	if !finite(pct) {
		e.log.Debug().Int("index", index).Float64("amount", amount).Float64("budget", e.budget).
			Msg("amount edit rejected: no budget to take a share of")
		return e.State()
	}

	switch e.amountMode {
	case Direct:
		// Drift is allowed here, so an amount above the budget keeps its
		// share above 100.
		next := cloneCategories(e.categories)
		next[index].Percentage = pct
		next[index].Amount = amountFor(e.budget, pct)
		e.categories = next
	default:
		e.categories = redistribute(e.categories, index, clampPercentage(pct), e.budget, e.strictness)
	}
	return e.State()
}

func (e *Engine) validIndex(i int) bool {
	return i >= 0 && i < len(e.categories)
}
