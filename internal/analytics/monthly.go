package analytics

import (
	"github.com/shopspring/decimal"

	"grana/internal/models"
)

// MonthAggregate is one month's derived totals for the dashboard.
type MonthAggregate struct {
	Month           int                                  `json:"month"`
	Income          decimal.Decimal                      `json:"income"`
	Expense         decimal.Decimal                      `json:"expense"`
	Balance         decimal.Decimal                      `json:"balance"`
	Interest        decimal.Decimal                      `json:"interest"`
	ByCategory      map[string]decimal.Decimal           `json:"by_category"`
	ByPaymentMethod map[models.PaymentMethod]decimal.Decimal `json:"by_payment_method"`
}

// MonthlyTotals folds one year of records into twelve aggregates. A month's
// income includes the previous month's balance when that balance was
// positive; a negative balance never rolls forward.
func MonthlyTotals(snap Snapshot) [12]MonthAggregate {
	var out [12]MonthAggregate
	carry := decimal.Zero

	for month := 0; month < 12; month++ {
		income := decimal.Zero
		for _, in := range snap.MonthIncomes(month) {
			income = income.Add(in.Amount)
		}
		if carry.IsPositive() {
			income = income.Add(carry)
		}

		expenses := snap.MonthExpenses(month)
		expense := decimal.Zero
		byMethod := make(map[models.PaymentMethod]decimal.Decimal)
		for _, e := range expenses {
			amount := e.RealAmount()
			expense = expense.Add(amount)
			if e.PaymentMethod != "" {
				byMethod[e.PaymentMethod] = byMethod[e.PaymentMethod].Add(amount)
			}
		}

		balance := income.Sub(expense)
		out[month] = MonthAggregate{
			Month:           month,
			Income:          income,
			Expense:         expense,
			Balance:         balance,
			Interest:        MonthInterest(expenses).Total,
			ByCategory:      CategoryTotals(expenses),
			ByPaymentMethod: byMethod,
		}
		carry = balance
	}

	return out
}
