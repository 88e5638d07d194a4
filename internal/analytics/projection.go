package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"grana/internal/models"
)

// DefaultProjectionMonths is how far ahead the dashboard projects committed
// installment spending.
const DefaultProjectionMonths = 6

var monthShortNames = [12]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// Projection is the forward-looking installment commitment series: one
// label, total, and category map per projected month.
type Projection struct {
	Labels     []string                     `json:"labels"`
	Totals     []decimal.Decimal            `json:"totals"`
	ByCategory []map[string]decimal.Decimal `json:"by_category"`
}

// InstallmentProjection walks horizon months forward from (fromMonth,
// fromYear), wrapping year boundaries, and sums the scheduled amount of
// every unsettled installment parcel due in each month. Snapshots for years
// outside the horizon are ignored; a missing year simply contributes zero.
func InstallmentProjection(snapshots []Snapshot, fromMonth, fromYear, horizon int) Projection {
	if horizon <= 0 {
		horizon = DefaultProjectionMonths
	}

	byYear := make(map[int]Snapshot, len(snapshots))
	for _, s := range snapshots {
		byYear[s.Year] = s
	}

	proj := Projection{
		Labels:     make([]string, 0, horizon),
		Totals:     make([]decimal.Decimal, 0, horizon),
		ByCategory: make([]map[string]decimal.Decimal, 0, horizon),
	}

	month, year := fromMonth, fromYear
	for i := 0; i < horizon; i++ {
		total := decimal.Zero
		byCategory := make(map[string]decimal.Decimal)

		for _, e := range byYear[year].MonthExpenses(month) {
			if !e.HasInstallment() || e.Settled {
				continue
			}
			total = total.Add(e.Amount)
			category := e.NormalizedCategory()
			byCategory[category] = byCategory[category].Add(e.Amount)
		}

		proj.Labels = append(proj.Labels, fmt.Sprintf("%s/%d", monthShortNames[month], year))
		proj.Totals = append(proj.Totals, total)
		proj.ByCategory = append(proj.ByCategory, byCategory)

		month++
		if month > 11 {
			month = 0
			year++
		}
	}

	return proj
}
