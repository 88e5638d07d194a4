package analytics

import (
	"github.com/shopspring/decimal"

	"grana/internal/installments"
	"grana/internal/models"
)

// InterestBreakdown is the interest paid within one month, total and per
// normalized category.
type InterestBreakdown struct {
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
}

// MonthInterest sums the interest attributable to each expense. Non-positive
// results are treated as zero and excluded from the category map.
func MonthInterest(expenses []models.Expense) InterestBreakdown {
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		interest := ExpenseInterest(e)
		if !interest.IsPositive() {
			continue
		}
		total = total.Add(interest)
		category := e.NormalizedCategory()
		byCategory[category] = byCategory[category].Add(interest)
	}

	return InterestBreakdown{Total: total, ByCategory: byCategory}
}

// ExpenseInterest resolves one expense's interest through a priority
// cascade; the first rule that yields a value wins, later rules are never
// summed on top:
//
//  1. the explicit interest field, when positive
//  2. amount paid minus scheduled amount, when overpaid
//  3. for installment parcels, this parcel's share of the financing cost
//  4. principal surcharge: the financed total (or, failing that, the
//     scheduled amount) minus the original amount
func ExpenseInterest(e models.Expense) decimal.Decimal {
	if e.Interest.Valid && e.Interest.Decimal.IsPositive() {
		return e.Interest.Decimal
	}

	if e.AmountPaid.Valid && e.AmountPaid.Decimal.GreaterThan(e.Amount) {
		return e.AmountPaid.Decimal.Sub(e.Amount)
	}

	if e.HasInstallment() && e.TotalWithInterest.Valid && e.OriginalAmount.Valid {
		return installments.InterestPerParcel(
			e.TotalWithInterest.Decimal, e.OriginalAmount.Decimal, *e.InstallmentTotal)
	}

	if e.OriginalAmount.Valid {
		base := e.Amount
		if e.TotalWithInterest.Valid {
			base = e.TotalWithInterest.Decimal
		}
		if diff := base.Sub(e.OriginalAmount.Decimal); diff.IsPositive() {
			return diff
		}
	}

	return decimal.Zero
}
