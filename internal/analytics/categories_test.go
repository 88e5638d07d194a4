package analytics

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	"grana/internal/models"
)

func TestCategoryTotals(t *testing.T) {
	t.Run("normalizes_card_aliases", func(t *testing.T) {
		expenses := []models.Expense{
			{Category: models.CategoryCard, CardCategory: "Lazer", Amount: d("100")},
			{Category: "Lazer", Amount: d("50")},
			{Category: models.CategoryCreditCard, PaymentMethod: models.PaymentMethodCredit, Amount: d("30")},
		}

		totals := CategoryTotals(expenses)
		if !totals["Lazer"].Equal(d("150")) {
			t.Errorf("expected Lazer 150, got %s", totals["Lazer"])
		}
		if !totals[models.CategoryCreditCard].Equal(d("30")) {
			t.Errorf("expected %s 30, got %s", models.CategoryCreditCard, totals[models.CategoryCreditCard])
		}
	})

	t.Run("empty_category_falls_back_to_outros", func(t *testing.T) {
		totals := CategoryTotals([]models.Expense{{Amount: d("25")}})
		if !totals[models.CategoryOther].Equal(d("25")) {
			t.Errorf("expected Outros 25, got %s", totals[models.CategoryOther])
		}
	})
}

func TestNormalizedCategoryIdempotent(t *testing.T) {
	inputs := []models.Expense{
		{Category: models.CategoryCard, CardCategory: "Lazer"},
		{Category: models.CategoryCreditCard, PaymentMethod: models.PaymentMethodCredit},
		{Category: "Mercado"},
		{Category: ""},
	}

	for i, e := range inputs {
		once := e.NormalizedCategory()
		e.Category = once
		twice := e.NormalizedCategory()
		if once != twice {
			t.Errorf("case %d: normalization not idempotent: %q then %q", i, once, twice)
		}
	}
}

func TestCompactTop(t *testing.T) {
	t.Run("under_limit_unchanged", func(t *testing.T) {
		totals := map[string]decimal.Decimal{
			"A": d("10"),
			"B": d("20"),
		}
		out := CompactTop(totals, 10)
		if len(out) != 2 {
			t.Errorf("expected 2 entries, got %d", len(out))
		}
	})

	t.Run("overflow_merged_into_outros", func(t *testing.T) {
		totals := make(map[string]decimal.Decimal)
		for i := 0; i < 15; i++ {
			totals["cat"+strconv.Itoa(i)] = decimal.NewFromInt(int64(100 - i))
		}

		out := CompactTop(totals, 10)
		if len(out) != 10 {
			t.Fatalf("expected 10 entries, got %d", len(out))
		}
		if _, ok := out[models.CategoryOther]; !ok {
			t.Fatal("expected an Outros bucket")
		}

		// Nothing is lost in the merge.
		sumIn, sumOut := decimal.Zero, decimal.Zero
		for _, v := range totals {
			sumIn = sumIn.Add(v)
		}
		for _, v := range out {
			sumOut = sumOut.Add(v)
		}
		if !sumIn.Equal(sumOut) {
			t.Errorf("expected preserved sum %s, got %s", sumIn, sumOut)
		}
	})

	t.Run("existing_outros_absorbs_overflow", func(t *testing.T) {
		totals := map[string]decimal.Decimal{
			"A":                  d("100"),
			"B":                  d("90"),
			"C":                  d("80"),
			models.CategoryOther: d("5"),
		}

		out := CompactTop(totals, 3)
		if !out[models.CategoryOther].Equal(d("85")) {
			t.Errorf("expected Outros 85, got %s", out[models.CategoryOther])
		}
	})
}
