// Package analytics derives the dashboard's aggregate structures from raw
// ledger records. Every function is a pure fold over a caller-supplied
// snapshot: no database access, no shared state, safe to call concurrently
// as long as each call gets its own snapshot.
package analytics

import "grana/internal/models"

// Snapshot is one calendar year of a user's ledger.
type Snapshot struct {
	Year     int
	Expenses []models.Expense
	Incomes  []models.Income
}

// MonthExpenses returns the expenses filed under the given zero-based month.
func (s Snapshot) MonthExpenses(month int) []models.Expense {
	var out []models.Expense
	for _, e := range s.Expenses {
		if e.Month == month {
			out = append(out, e)
		}
	}
	return out
}

// MonthIncomes returns the incomes filed under the given zero-based month.
func (s Snapshot) MonthIncomes(month int) []models.Income {
	var out []models.Income
	for _, i := range s.Incomes {
		if i.Month == month {
			out = append(out, i)
		}
	}
	return out
}

// FilterMode selects which growth series the dashboard displays.
type FilterMode string

const (
	FilterAll      FilterMode = "all"
	FilterTop5     FilterMode = "top5"
	FilterPositive FilterMode = "positive"
	FilterSingle   FilterMode = "single"
)

// FilterState is the caller-owned display filter for the growth chart.
// There is deliberately no package-level filter singleton.
type FilterState struct {
	Mode     FilterMode
	Category string
}
