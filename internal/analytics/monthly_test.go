package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"grana/internal/models"
)

func TestMonthlyTotals(t *testing.T) {
	t.Run("positive_balance_carries_forward", func(t *testing.T) {
		snap := Snapshot{
			Year: 2025,
			Incomes: []models.Income{
				{Amount: d("3000"), Month: 0},
			},
			Expenses: []models.Expense{
				{Category: "Mercado", Amount: d("1000"), Month: 0},
				{Category: "Mercado", Amount: d("500"), Month: 1},
			},
		}

		out := MonthlyTotals(snap)
		if !out[0].Balance.Equal(d("2000")) {
			t.Errorf("expected January balance 2000, got %s", out[0].Balance)
		}
		// February income is January's leftover.
		if !out[1].Income.Equal(d("2000")) {
			t.Errorf("expected February income 2000, got %s", out[1].Income)
		}
		if !out[1].Balance.Equal(d("1500")) {
			t.Errorf("expected February balance 1500, got %s", out[1].Balance)
		}
	})

	t.Run("negative_balance_does_not_carry", func(t *testing.T) {
		snap := Snapshot{
			Year: 2025,
			Incomes: []models.Income{
				{Amount: d("1000"), Month: 0},
				{Amount: d("1000"), Month: 1},
			},
			Expenses: []models.Expense{
				{Category: "Mercado", Amount: d("1500"), Month: 0},
			},
		}

		out := MonthlyTotals(snap)
		if !out[0].Balance.Equal(d("-500")) {
			t.Errorf("expected January balance -500, got %s", out[0].Balance)
		}
		if !out[1].Income.Equal(d("1000")) {
			t.Errorf("expected February income 1000 (no negative carry), got %s", out[1].Income)
		}
	})

	t.Run("settled_amount_wins_over_scheduled", func(t *testing.T) {
		snap := Snapshot{
			Year: 2025,
			Expenses: []models.Expense{
				{
					Category:   "Mercado",
					Amount:     d("100"),
					AmountPaid: decimal.NewNullDecimal(d("110")),
					Month:      2,
				},
			},
		}

		out := MonthlyTotals(snap)
		if !out[2].Expense.Equal(d("110")) {
			t.Errorf("expected expense 110, got %s", out[2].Expense)
		}
	})

	t.Run("payment_method_breakdown", func(t *testing.T) {
		snap := Snapshot{
			Year: 2025,
			Expenses: []models.Expense{
				{Category: "Mercado", PaymentMethod: models.PaymentMethodPix, Amount: d("30"), Month: 0},
				{Category: "Mercado", PaymentMethod: models.PaymentMethodPix, Amount: d("20"), Month: 0},
				{Category: "Lazer", PaymentMethod: models.PaymentMethodCredit, Amount: d("50"), Month: 0},
			},
		}

		out := MonthlyTotals(snap)
		if !out[0].ByPaymentMethod[models.PaymentMethodPix].Equal(d("50")) {
			t.Errorf("expected pix total 50, got %s", out[0].ByPaymentMethod[models.PaymentMethodPix])
		}
		if !out[0].ByPaymentMethod[models.PaymentMethodCredit].Equal(d("50")) {
			t.Errorf("expected credit total 50, got %s", out[0].ByPaymentMethod[models.PaymentMethodCredit])
		}
	})

	t.Run("category_totals_match_month_expense", func(t *testing.T) {
		snap := Snapshot{
			Year: 2025,
			Expenses: []models.Expense{
				{Category: "Mercado", Amount: d("120.50"), Month: 5},
				{Category: "Transporte", Amount: d("80.25"), Month: 5},
				{Category: "", Amount: d("10"), Month: 5},
			},
		}

		out := MonthlyTotals(snap)
		sum := decimal.Zero
		for _, v := range out[5].ByCategory {
			sum = sum.Add(v)
		}
		if !sum.Equal(out[5].Expense) {
			t.Errorf("category totals %s do not add up to month expense %s", sum, out[5].Expense)
		}
	})
}
