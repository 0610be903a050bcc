package allocation

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// AmountMode selects how an amount edit affects the other categories.
type AmountMode int

const (
	// Redistributive converts the amount to a percentage and rebalances the
	// other categories exactly like a percentage edit.
	Redistributive AmountMode = iota
	// Direct changes only the edited category; the percentage total may drift.
	Direct
)

func (m AmountMode) String() string {
	switch m {
	case Redistributive:
		return "redistributive"
	case Direct:
		return "direct"
	default:
		return fmt.Sprintf("AmountMode(%d)", int(m))
	}
}

// ParseAmountMode maps a config/flag value to an AmountMode.
// The empty string selects the default.
func ParseAmountMode(s string) (AmountMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "redistributive":
		return Redistributive, nil
	case "direct":
		return Direct, nil
	}
	return Redistributive, fmt.Errorf("unknown amount mode %q (want redistributive or direct)", s)
}

// Strictness controls what happens when flooring at 0 leaves the percentage
// total short of 100.
type Strictness int

const (
	// Lenient leaves floored totals as they are.
	Lenient Strictness = iota
	// Renormalize rescales the untouched categories so the total returns to 100.
	Renormalize
)

func (s Strictness) String() string {
	switch s {
	case Lenient:
		return "lenient"
	case Renormalize:
		return "renormalize"
	default:
		return fmt.Sprintf("Strictness(%d)", int(s))
	}
}

// ParseStrictness maps a config/flag value to a Strictness.
// The empty string selects the default.
func ParseStrictness(s string) (Strictness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return Lenient, nil
	case "renormalize":
		return Renormalize, nil
	}
	return Lenient, fmt.Errorf("unknown strictness %q (want lenient or renormalize)", s)
}

// Option configures an Engine.
type Option func(*Engine)

// WithAmountMode sets how SetAmount behaves.
func WithAmountMode(m AmountMode) Option {
	return func(e *Engine) { e.amountMode = m }
}

// WithStrictness sets the post-redistribution policy.
func WithStrictness(s Strictness) Option {
	return func(e *Engine) { e.strictness = s }
}

// WithLogger routes rejected-edit diagnostics to l.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}
