package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"grana/internal/pagination"
	"grana/internal/testutil"
)

func TestCreateIncome(t *testing.T) {
	t.Run("valid_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		inv := newRecordingInvalidator()
		svc := NewIncomeService(db, inv)
		user := testutil.CreateTestUser(t, db)

		income, err := svc.CreateIncome(user.ID, "Salário", decimal.NewFromInt(4500), time.Time{}, 0, 2025)
		testutil.AssertNoError(t, err)
		if income.ReceivedDate.IsZero() {
			t.Error("expected received date to default to now")
		}
		if inv.count(user.ID, 2025) != 1 {
			t.Errorf("expected 1 cache invalidation, got %d", inv.count(user.ID, 2025))
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, nil)

		_, err := svc.CreateIncome("some-user", "Salário", decimal.Zero, time.Now(), 0, 2025)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, nil)

		_, err := svc.CreateIncome("some-user", "Salário", decimal.NewFromInt(100), time.Now(), 12, 2025)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserIncomes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewIncomeService(db, nil)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestIncome(t, db, user.ID, 0, 2025, decimal.NewFromInt(100))
	testutil.CreateTestIncome(t, db, user.ID, 1, 2025, decimal.NewFromInt(200))
	testutil.CreateTestIncome(t, db, user.ID, 0, 2024, decimal.NewFromInt(300))

	page := pagination.PageRequest{Page: 1, PageSize: 10}
	result, err := svc.GetUserIncomes(user.ID, 2025, nil, page)
	testutil.AssertNoError(t, err)
	if len(result.Data) != 2 {
		t.Fatalf("expected 2 incomes, got %d", len(result.Data))
	}

	month := 1
	result, err = svc.GetUserIncomes(user.ID, 2025, &month, page)
	testutil.AssertNoError(t, err)
	if len(result.Data) != 1 {
		t.Fatalf("expected 1 income, got %d", len(result.Data))
	}
}

func TestDeleteIncome(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewIncomeService(db, nil)
	user := testutil.CreateTestUser(t, db)
	income := testutil.CreateTestIncome(t, db, user.ID, 0, 2025, decimal.NewFromInt(100))

	testutil.AssertNoError(t, svc.DeleteIncome(user.ID, income.ID))

	_, err := svc.GetIncomeByID(user.ID, income.ID)
	testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
}
