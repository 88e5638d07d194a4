package analytics

import (
	"testing"

	"grana/internal/models"
)

func installmentExpense(month, year int, amount string) models.Expense {
	current, total := 1, 12
	groupID := "group-1"
	return models.Expense{
		Category:           "Eletrodomésticos",
		Amount:             d(amount),
		Month:              month,
		Year:               year,
		InstallmentCurrent: &current,
		InstallmentTotal:   &total,
		InstallmentGroupID: &groupID,
	}
}

func TestInstallmentProjection(t *testing.T) {
	t.Run("sums_unsettled_parcels", func(t *testing.T) {
		snap := Snapshot{
			Year: 2025,
			Expenses: []models.Expense{
				installmentExpense(0, 2025, "100"),
				installmentExpense(0, 2025, "50"),
				{Category: "Mercado", Amount: d("999"), Month: 0, Year: 2025}, // not a parcel
			},
		}

		proj := InstallmentProjection([]Snapshot{snap}, 0, 2025, 3)
		if len(proj.Totals) != 3 {
			t.Fatalf("expected 3 months, got %d", len(proj.Totals))
		}
		if !proj.Totals[0].Equal(d("150")) {
			t.Errorf("expected January total 150, got %s", proj.Totals[0])
		}
		if !proj.Totals[1].IsZero() {
			t.Errorf("expected February total 0, got %s", proj.Totals[1])
		}
	})

	t.Run("settled_parcels_excluded", func(t *testing.T) {
		settled := installmentExpense(0, 2025, "100")
		settled.Settled = true

		proj := InstallmentProjection([]Snapshot{{Year: 2025, Expenses: []models.Expense{settled}}}, 0, 2025, 1)
		if !proj.Totals[0].IsZero() {
			t.Errorf("expected 0, got %s", proj.Totals[0])
		}
	})

	t.Run("wraps_year_boundary", func(t *testing.T) {
		snapshots := []Snapshot{
			{Year: 2025, Expenses: []models.Expense{installmentExpense(11, 2025, "100")}},
			{Year: 2026, Expenses: []models.Expense{installmentExpense(0, 2026, "200")}},
		}

		proj := InstallmentProjection(snapshots, 11, 2025, 2)
		if proj.Labels[0] != "dez/2025" || proj.Labels[1] != "jan/2026" {
			t.Errorf("unexpected labels: %v", proj.Labels)
		}
		if !proj.Totals[0].Equal(d("100")) || !proj.Totals[1].Equal(d("200")) {
			t.Errorf("unexpected totals: %v", proj.Totals)
		}
	})

	t.Run("missing_year_contributes_zero", func(t *testing.T) {
		proj := InstallmentProjection(nil, 5, 2025, 2)
		if len(proj.Totals) != 2 {
			t.Fatalf("expected 2 months, got %d", len(proj.Totals))
		}
		for i, v := range proj.Totals {
			if !v.IsZero() {
				t.Errorf("month %d: expected 0, got %s", i, v)
			}
		}
	})

	t.Run("default_horizon", func(t *testing.T) {
		proj := InstallmentProjection(nil, 0, 2025, 0)
		if len(proj.Labels) != DefaultProjectionMonths {
			t.Errorf("expected %d months, got %d", DefaultProjectionMonths, len(proj.Labels))
		}
	})

	t.Run("category_breakdown", func(t *testing.T) {
		snap := Snapshot{Year: 2025, Expenses: []models.Expense{installmentExpense(0, 2025, "100")}}
		proj := InstallmentProjection([]Snapshot{snap}, 0, 2025, 1)
		if !proj.ByCategory[0]["Eletrodomésticos"].Equal(d("100")) {
			t.Errorf("unexpected category breakdown: %v", proj.ByCategory[0])
		}
	})
}
