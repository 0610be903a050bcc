package allocation

import "math"

// redistribute returns a new category set in which cats[index] holds
// target percent. The difference is taken from (or given to) every other
// category in proportion to its share of the others' pre-edit total, floored
// at 0. If the others hold nothing there is nobody to rebalance and only the
// target moves.
func redistribute(cats []Category, index int, target, budget float64, strictness Strictness) []Category {
	next := cloneCategories(cats)
	diff := target - cats[index].Percentage

	var others float64
	for j, c := range cats {
		if j != index {
			others += c.Percentage
		}
	}

	if others > 0 {
		for j, c := range cats {
			if j == index {
				continue
			}
			share := c.Percentage / others
			p := math.Max(0, c.Percentage-diff*share)
			next[j].Percentage = p
			next[j].Amount = amountFor(budget, p)
		}
	}

	next[index].Percentage = target
	next[index].Amount = amountFor(budget, target)

	if strictness == Renormalize {
		renormalize(next, index, budget)
	}
	return next
}

// renormalize brings the set back to a total of 100 without touching
// cats[index]. The others are scaled by a common factor. If they all sit at
// 0 there is no ratio left to preserve, so the remainder is split evenly.
func renormalize(cats []Category, index int, budget float64) {
	if len(cats) < 2 {
		return
	}
	want := math.Max(0, 100-cats[index].Percentage)

	var have float64
	for j, c := range cats {
		if j != index {
			have += c.Percentage
		}
	}
	if math.Abs(have-want) < 1e-9 {
		return
	}

	even := want / float64(len(cats)-1)
	for j := range cats {
		if j == index {
			continue
		}
		if have == 0 {
			cats[j].Percentage = even
		} else {
			cats[j].Percentage *= want / have
		}
		cats[j].Amount = amountFor(budget, cats[j].Percentage)
	}
}
