package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"grana/internal/models"
)

func TestExpenseInterest(t *testing.T) {
	t.Run("explicit_field_wins", func(t *testing.T) {
		e := models.Expense{
			Amount:     d("100"),
			Interest:   decimal.NewNullDecimal(d("7.50")),
			AmountPaid: decimal.NewNullDecimal(d("120")),
		}
		if got := ExpenseInterest(e); !got.Equal(d("7.50")) {
			t.Errorf("expected 7.50, got %s", got)
		}
	})

	t.Run("overpayment_difference", func(t *testing.T) {
		e := models.Expense{
			Amount:     d("100"),
			AmountPaid: decimal.NewNullDecimal(d("112.30")),
		}
		if got := ExpenseInterest(e); !got.Equal(d("12.30")) {
			t.Errorf("expected 12.30, got %s", got)
		}
	})

	t.Run("parcel_share_of_financing_cost", func(t *testing.T) {
		current, total := 1, 10
		groupID := "group-1"
		e := models.Expense{
			Amount:             d("110"),
			TotalWithInterest:  decimal.NewNullDecimal(d("1100")),
			OriginalAmount:     decimal.NewNullDecimal(d("1000")),
			InstallmentCurrent: &current,
			InstallmentTotal:   &total,
			InstallmentGroupID: &groupID,
		}
		if got := ExpenseInterest(e); !got.Equal(d("10")) {
			t.Errorf("expected 10, got %s", got)
		}
	})

	t.Run("principal_surcharge_without_installment", func(t *testing.T) {
		e := models.Expense{
			Amount:         d("100"),
			OriginalAmount: decimal.NewNullDecimal(d("90")),
		}
		if got := ExpenseInterest(e); !got.Equal(d("10")) {
			t.Errorf("expected 10, got %s", got)
		}
	})

	t.Run("exact_payment_is_zero", func(t *testing.T) {
		e := models.Expense{
			Amount:     d("100"),
			AmountPaid: decimal.NewNullDecimal(d("100")),
		}
		if got := ExpenseInterest(e); !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})

	t.Run("discount_is_zero", func(t *testing.T) {
		e := models.Expense{
			Amount:         d("80"),
			OriginalAmount: decimal.NewNullDecimal(d("90")),
		}
		if got := ExpenseInterest(e); !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})
}

func TestMonthInterest(t *testing.T) {
	t.Run("sums_and_groups_by_category", func(t *testing.T) {
		expenses := []models.Expense{
			{Category: "Mercado", Amount: d("100"), Interest: decimal.NewNullDecimal(d("5"))},
			{Category: "Mercado", Amount: d("50"), AmountPaid: decimal.NewNullDecimal(d("52"))},
			{Category: "Lazer", Amount: d("200"), Interest: decimal.NewNullDecimal(d("10"))},
			{Category: "Transporte", Amount: d("30")},
		}

		breakdown := MonthInterest(expenses)
		if !breakdown.Total.Equal(d("17")) {
			t.Errorf("expected total 17, got %s", breakdown.Total)
		}
		if !breakdown.ByCategory["Mercado"].Equal(d("7")) {
			t.Errorf("expected Mercado 7, got %s", breakdown.ByCategory["Mercado"])
		}
		if _, ok := breakdown.ByCategory["Transporte"]; ok {
			t.Error("expected interest-free category to be excluded")
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		breakdown := MonthInterest(nil)
		if !breakdown.Total.IsZero() {
			t.Errorf("expected zero total, got %s", breakdown.Total)
		}
		if len(breakdown.ByCategory) != 0 {
			t.Errorf("expected empty map, got %v", breakdown.ByCategory)
		}
	})
}
