package allocation

// SubBudgets holds the amount assigned to each category.
type SubBudgets [numCategories]Money

// SplitBudget assigns budget*weight/100 to each category, truncated to the
// currency minor unit so that the sub-budgets never add up to more than the
// budget. This departs on purpose from rounding to the nearest minor unit,
// which can overshoot the budget by a cent: 0.99 split 50/50 gives 0.49 twice,
// not 0.50. The truncation dust is reported as unallocated.
func SplitBudget(budget Money, w Weights) SubBudgets {
	var s SubBudgets
	for _, c := range Categories {
		s[c] = budget.Percent(w[c])
	}
	return s
}

// Sum of all sub-budgets.
func (s SubBudgets) Sum() Money {
	var total Money
	for _, m := range s {
		total = total.Add(m)
	}
	return total
}
