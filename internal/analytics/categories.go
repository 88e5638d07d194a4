package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"grana/internal/models"
)

// Chart category caps. Overflow beyond the cap is merged into a synthetic
// "Outros" bucket so the axis stays readable.
const (
	TopFlatCategories    = 10
	TopStackedCategories = 12
)

// CategoryTotals sums each expense's real amount grouped by normalized
// category. Every expense lands in exactly one category.
func CategoryTotals(expenses []models.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		category := e.NormalizedCategory()
		totals[category] = totals[category].Add(e.RealAmount())
	}
	return totals
}

// CompactTop caps a category map at limit distinct entries. The categories
// with the highest totals are kept; everything below the cut is merged into
// "Outros". Ties break alphabetically so the result is deterministic.
func CompactTop(totals map[string]decimal.Decimal, limit int) map[string]decimal.Decimal {
	if limit <= 0 || len(totals) <= limit {
		out := make(map[string]decimal.Decimal, len(totals))
		for k, v := range totals {
			out[k] = v
		}
		return out
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := totals[names[i]], totals[names[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return names[i] < names[j]
	})

	out := make(map[string]decimal.Decimal, limit)
	overflow := decimal.Zero
	for rank, name := range names {
		if rank < limit-1 {
			out[name] = totals[name]
			continue
		}
		overflow = overflow.Add(totals[name])
	}
	out[models.CategoryOther] = out[models.CategoryOther].Add(overflow)
	return out
}
