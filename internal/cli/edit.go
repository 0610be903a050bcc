package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/allot/internal/allocation"
)

// ErrBadEdit is wrapped by every ParseEdit failure.
var ErrBadEdit = errors.New("bad edit expression")

// ParseEdit parses a command-line edit expression:
//
//	budget=8000
//	pct:Housing=40     (or pct:0=40)
//	amount:food=650    (or amount:1=650)
//
// Categories are addressed by zero-based index or case-insensitive name,
// resolved against names.
func ParseEdit(expr string, names []string) (allocation.Edit, error) {
	lhs, rhs, ok := strings.Cut(strings.TrimSpace(expr), "=")
	if !ok {
		return allocation.Edit{}, fmt.Errorf("%w %q: missing '='", ErrBadEdit, expr)
	}

	value := ParseNumber(rhs)
	if math.IsNaN(value) {
		return allocation.Edit{}, fmt.Errorf("%w %q: %q is not a number", ErrBadEdit, expr, strings.TrimSpace(rhs))
	}

	kindStr, target, hasTarget := strings.Cut(strings.TrimSpace(lhs), ":")
	var kind allocation.EditKind
	switch strings.ToLower(kindStr) {
	case "budget":
		if hasTarget {
			return allocation.Edit{}, fmt.Errorf("%w %q: budget takes no category", ErrBadEdit, expr)
		}
		return allocation.Edit{Kind: allocation.EditBudget, Value: value}, nil
	case "pct", "percent", "percentage":
		kind = allocation.EditPercentage
	case "amount", "amt":
		kind = allocation.EditAmount
	default:
		return allocation.Edit{}, fmt.Errorf("%w %q: unknown field %q (want budget, pct or amount)", ErrBadEdit, expr, kindStr)
	}
	if !hasTarget {
		return allocation.Edit{}, fmt.Errorf("%w %q: %s needs a category, e.g. %s:Food=...", ErrBadEdit, expr, kindStr, kindStr)
	}

	idx, err := resolveCategory(strings.TrimSpace(target), names)
	if err != nil {
		return allocation.Edit{}, fmt.Errorf("%w %q: %w", ErrBadEdit, expr, err)
	}
	return allocation.Edit{Kind: kind, Index: idx, Value: value}, nil
}

// ParseEdits parses every expression, stopping at the first failure.
func ParseEdits(exprs []string, names []string) ([]allocation.Edit, error) {
	edits := make([]allocation.Edit, 0, len(exprs))
	for _, expr := range exprs {
		ed, err := ParseEdit(expr, names)
		if err != nil {
			return nil, err
		}
		edits = append(edits, ed)
	}
	return edits, nil
}

func resolveCategory(target string, names []string) (int, error) {
	if i, err := strconv.Atoi(target); err == nil {
		if i < 0 || i >= len(names) {
			return 0, fmt.Errorf("category index %d out of range 0..%d", i, len(names)-1)
		}
		return i, nil
	}
	for i, n := range names {
		if strings.EqualFold(n, target) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no category named %q", target)
}
