package allocation

import "fmt"

// EditKind names which field an Edit changes.
type EditKind int

const (
	EditBudget EditKind = iota
	EditPercentage
	EditAmount
)

func (k EditKind) String() string {
	switch k {
	case EditBudget:
		return "budget"
	case EditPercentage:
		return "pct"
	case EditAmount:
		return "amount"
	default:
		return fmt.Sprintf("EditKind(%d)", int(k))
	}
}

// Edit is a single user change. Index is ignored for EditBudget.
type Edit struct {
	Kind  EditKind
	Index int
	Value float64
}

func (ed Edit) String() string {
	if ed.Kind == EditBudget {
		return fmt.Sprintf("budget=%g", ed.Value)
	}
	return fmt.Sprintf("%s:%d=%g", ed.Kind, ed.Index, ed.Value)
}

// Apply routes ed to SetBudget, SetPercentage or SetAmount.
// Unknown kinds leave the state unchanged.
func (e *Engine) Apply(ed Edit) State {
	switch ed.Kind {
	case EditBudget:
		return e.SetBudget(ed.Value)
	case EditPercentage:
		return e.SetPercentage(ed.Index, ed.Value)
	case EditAmount:
		return e.SetAmount(ed.Index, ed.Value)
	}
	e.log.Debug().Stringer("kind", ed.Kind).Msg("edit rejected: unknown kind")
	return e.State()
}

// ApplyAll applies edits in order and returns the final state.
func (e *Engine) ApplyAll(edits []Edit) State {
	for _, ed := range edits {
		e.Apply(ed)
	}
	return e.State()
}
