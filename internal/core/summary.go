package core

import "sort"

// TopExpenses is how many entries Summary.Top holds.
const TopExpenses = 3

// Summary is the dashboard view over a list of expenses.
type Summary struct {
	Count int
	Total Money
	Top   []Expense // highest amounts first
}

// Summarize computes the dashboard summary. Ties in Top keep input order.
func Summarize(items []Expense) Summary {
	s := Summary{Count: len(items)}
	for _, e := range items {
		s.Total = s.Total.Add(e.Money())
	}

	sorted := append([]Expense(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Money().Cents > sorted[j].Money().Cents
	})
	if len(sorted) > TopExpenses {
		sorted = sorted[:TopExpenses]
	}
	s.Top = sorted
	return s
}
