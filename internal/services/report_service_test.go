package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"grana/internal/analytics"
	"grana/internal/models"
	"grana/internal/testutil"
)

func TestMonthlySummary(t *testing.T) {
	t.Run("aggregates_year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, time.Minute)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestIncome(t, db, user.ID, 0, 2025, decimal.NewFromInt(3000))
		testutil.CreateTestExpense(t, db, user.ID, 0, 2025, decimal.NewFromInt(1000))

		summary, err := svc.MonthlySummary(user.ID, 2025)
		testutil.AssertNoError(t, err)
		if len(summary) != 12 {
			t.Fatalf("expected 12 months, got %d", len(summary))
		}
		if !summary[0].Balance.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected January balance 2000, got %s", summary[0].Balance)
		}
		// February inherits January's positive leftover.
		if !summary[1].Income.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected February income 2000, got %s", summary[1].Income)
		}
	})

	t.Run("serves_stale_snapshot_until_invalidated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, time.Minute)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestExpense(t, db, user.ID, 0, 2025, decimal.NewFromInt(100))

		first, err := svc.MonthlySummary(user.ID, 2025)
		testutil.AssertNoError(t, err)
		if !first[0].Expense.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("expected expense 100, got %s", first[0].Expense)
		}

		// A write the cache does not know about yet.
		testutil.CreateTestExpense(t, db, user.ID, 0, 2025, decimal.NewFromInt(50))

		cached, err := svc.MonthlySummary(user.ID, 2025)
		testutil.AssertNoError(t, err)
		if !cached[0].Expense.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected cached expense 100, got %s", cached[0].Expense)
		}

		svc.InvalidateYear(user.ID, 2025)

		fresh, err := svc.MonthlySummary(user.ID, 2025)
		testutil.AssertNoError(t, err)
		if !fresh[0].Expense.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected fresh expense 150, got %s", fresh[0].Expense)
		}
	})
}

func TestReportInterest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(db, time.Minute)
	user := testutil.CreateTestUser(t, db)

	expense := testutil.CreateTestExpense(t, db, user.ID, 3, 2025, decimal.NewFromInt(100))
	if err := db.Model(expense).Update("interest", decimal.RequireFromString("12.50")).Error; err != nil {
		t.Fatalf("failed to set interest: %v", err)
	}

	breakdown, err := svc.Interest(user.ID, 2025, 3)
	testutil.AssertNoError(t, err)
	if !breakdown.Total.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("expected total 12.50, got %s", breakdown.Total)
	}
}

func TestReportCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(db, time.Minute)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestExpense(t, db, user.ID, 0, 2025, decimal.NewFromInt(40))

	totals, err := svc.Categories(user.ID, 2025, 0, 0)
	testutil.AssertNoError(t, err)
	if !totals[models.CategoryOther].Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected Outros 40, got %s", totals[models.CategoryOther])
	}
}

func TestReportProjection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(db, time.Minute)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestInstallmentGroup(t, db, user.ID, "Sofa", 6, 10, 2025, decimal.NewFromInt(100))

	// Horizon spans the year boundary; parcels land in 2025 and 2026.
	proj, err := svc.Projection(user.ID, 10, 2025, 6)
	testutil.AssertNoError(t, err)
	if len(proj.Totals) != 6 {
		t.Fatalf("expected 6 months, got %d", len(proj.Totals))
	}
	for i, total := range proj.Totals {
		if !total.Equal(decimal.NewFromInt(100)) {
			t.Errorf("month %d: expected 100, got %s", i, total)
		}
	}
}

func TestReportGrowth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(db, time.Minute)
	user := testutil.CreateTestUser(t, db)

	jan := testutil.CreateTestExpense(t, db, user.ID, 0, 2025, decimal.NewFromInt(100))
	feb := testutil.CreateTestExpense(t, db, user.ID, 1, 2025, decimal.NewFromInt(150))
	for _, e := range []*models.Expense{jan, feb} {
		if err := db.Model(e).Update("category", "Mercado").Error; err != nil {
			t.Fatalf("failed to set category: %v", err)
		}
	}

	series, err := svc.Growth(user.ID, 2025, analytics.FilterState{Mode: analytics.FilterAll})
	testutil.AssertNoError(t, err)
	mercado, ok := series["Mercado"]
	if !ok {
		t.Fatal("expected Mercado series")
	}
	if !mercado[0].Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected January-to-February growth 50, got %s", mercado[0])
	}
}
