package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Growth values are clamped to this band to suppress division-near-zero
// explosions on the chart.
var (
	growthFloor = decimal.NewFromInt(-100)
	growthCeil  = decimal.NewFromInt(500)
	hundred     = decimal.NewFromInt(100)
)

// FilterAllMaxCategories is the volatility cut applied in "all" mode when
// too many categories would crowd the chart.
const FilterAllMaxCategories = 10

// MonthlyCategoryTotals folds a year into per-category monthly series using
// the same real-amount resolution as the category totals. Categories whose
// yearly total is zero are dropped.
func MonthlyCategoryTotals(snap Snapshot) map[string][12]decimal.Decimal {
	series := make(map[string][12]decimal.Decimal)
	yearly := make(map[string]decimal.Decimal)

	for _, e := range snap.Expenses {
		if e.Month < 0 || e.Month > 11 {
			continue
		}
		category := e.NormalizedCategory()
		values := series[category]
		amount := e.RealAmount()
		values[e.Month] = values[e.Month].Add(amount)
		series[category] = values
		yearly[category] = yearly[category].Add(amount)
	}

	for category, total := range yearly {
		if !total.IsPositive() {
			delete(series, category)
		}
	}
	return series
}

// GrowthSeries computes the month-over-month percentage change of a
// twelve-value series. When the previous month is zero and the current is
// positive the growth is pinned to 100; when both are zero (or the series
// shrinks to zero from zero) it is 0. Results are clamped to [-100, 500].
func GrowthSeries(values [12]decimal.Decimal) [11]decimal.Decimal {
	var out [11]decimal.Decimal
	for i := 1; i < 12; i++ {
		prev, cur := values[i-1], values[i]
		switch {
		case prev.IsPositive():
			growth := cur.Sub(prev).Div(prev).Mul(hundred)
			out[i-1] = clampGrowth(growth)
		case cur.IsPositive():
			out[i-1] = hundred
		default:
			out[i-1] = decimal.Zero
		}
	}
	return out
}

func clampGrowth(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(growthFloor) {
		return growthFloor
	}
	if v.GreaterThan(growthCeil) {
		return growthCeil
	}
	return v
}

// ApplyFilter reduces a map of per-category growth series according to the
// caller's display filter. Filters only select among the already-computed
// series; nothing is recomputed.
func ApplyFilter(series map[string][11]decimal.Decimal, f FilterState) map[string][11]decimal.Decimal {
	switch f.Mode {
	case FilterSingle:
		out := make(map[string][11]decimal.Decimal, 1)
		if s, ok := series[f.Category]; ok {
			out[f.Category] = s
		}
		return out

	case FilterTop5:
		return topByMetric(series, 5, averageGrowth)

	case FilterPositive:
		out := make(map[string][11]decimal.Decimal)
		for category, s := range series {
			if averageGrowth(s).IsPositive() {
				out[category] = s
			}
		}
		return out

	default:
		// "all" still caps the category count, keeping the series with the
		// widest swing to surface volatility.
		if len(series) <= FilterAllMaxCategories {
			return copySeries(series)
		}
		return topByMetric(series, FilterAllMaxCategories, growthRange)
	}
}

func copySeries(series map[string][11]decimal.Decimal) map[string][11]decimal.Decimal {
	out := make(map[string][11]decimal.Decimal, len(series))
	for k, v := range series {
		out[k] = v
	}
	return out
}

func averageGrowth(s [11]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range s {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(s))))
}

func growthRange(s [11]decimal.Decimal) decimal.Decimal {
	min, max := s[0], s[0]
	for _, v := range s[1:] {
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}
	return max.Sub(min)
}

func topByMetric(series map[string][11]decimal.Decimal, n int, metric func([11]decimal.Decimal) decimal.Decimal) map[string][11]decimal.Decimal {
	type ranked struct {
		category string
		score    decimal.Decimal
	}
	all := make([]ranked, 0, len(series))
	for category, s := range series {
		all = append(all, ranked{category, metric(s)})
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].score.Equal(all[j].score) {
			return all[i].score.GreaterThan(all[j].score)
		}
		return all[i].category < all[j].category
	})

	if n > len(all) {
		n = len(all)
	}
	out := make(map[string][11]decimal.Decimal, n)
	for _, r := range all[:n] {
		out[r.category] = series[r.category]
	}
	return out
}
