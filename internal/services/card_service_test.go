package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"grana/internal/models"
	"grana/internal/testutil"
)

func TestCreateCard(t *testing.T) {
	t.Run("valid_card", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)

		card, err := svc.CreateCard(user.ID, 1, "Nubank", decimal.NewFromInt(3000))
		testutil.AssertNoError(t, err)
		if card.Number != 1 {
			t.Errorf("expected slot 1, got %d", card.Number)
		}
	})

	t.Run("invalid_slot_number", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCard(user.ID, 4, "X", decimal.NewFromInt(1000))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("max_cards_enforced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)
		for n := 1; n <= models.MaxCardsPerUser; n++ {
			testutil.CreateTestCard(t, db, user.ID, n)
		}

		_, err := svc.CreateCard(user.ID, 1, "Extra", decimal.NewFromInt(1000))
		testutil.AssertAppError(t, err, "CARD_LIMIT_REACHED")
	})

	t.Run("duplicate_slot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCard(t, db, user.ID, 2)

		_, err := svc.CreateCard(user.ID, 2, "Dup", decimal.NewFromInt(1000))
		testutil.AssertAppError(t, err, "DUPLICATE_CARD_NUMBER")
	})
}

func TestLimitUsage(t *testing.T) {
	t.Run("unsettled_credit_spending_over_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, user.ID, 1) // limit 5000

		n := card.Number
		expense := testutil.CreateTestExpense(t, db, user.ID, 0, 2025, decimal.NewFromInt(1000))
		if err := db.Model(expense).Updates(map[string]interface{}{
			"payment_method": models.PaymentMethodCredit,
			"card_number":    n,
		}).Error; err != nil {
			t.Fatalf("failed to attach expense to card: %v", err)
		}

		settledExpense := testutil.CreateTestExpense(t, db, user.ID, 0, 2025, decimal.NewFromInt(9999))
		if err := db.Model(settledExpense).Updates(map[string]interface{}{
			"payment_method": models.PaymentMethodCredit,
			"card_number":    n,
			"settled":        true,
		}).Error; err != nil {
			t.Fatalf("failed to settle expense: %v", err)
		}

		usage, err := svc.LimitUsage(user.ID, 0, 2025)
		testutil.AssertNoError(t, err)
		if len(usage) != 1 {
			t.Fatalf("expected 1 card, got %d", len(usage))
		}
		if !usage[0].Spent.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected spent 1000 (settled excluded), got %s", usage[0].Spent)
		}
		if !usage[0].UsagePct.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected 20%% usage, got %s", usage[0].UsagePct)
		}
	})

	t.Run("zero_limit_yields_zero_pct", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)

		card, err := svc.CreateCard(user.ID, 1, "Sem limite", decimal.Zero)
		testutil.AssertNoError(t, err)

		n := card.Number
		expense := testutil.CreateTestExpense(t, db, user.ID, 0, 2025, decimal.NewFromInt(100))
		if err := db.Model(expense).Updates(map[string]interface{}{
			"payment_method": models.PaymentMethodCredit,
			"card_number":    n,
		}).Error; err != nil {
			t.Fatalf("failed to attach expense to card: %v", err)
		}

		usage, err := svc.LimitUsage(user.ID, 0, 2025)
		testutil.AssertNoError(t, err)
		if !usage[0].UsagePct.IsZero() {
			t.Errorf("expected 0%% usage, got %s", usage[0].UsagePct)
		}
	})
}

func TestDeleteCard(t *testing.T) {
	t.Run("removes_card", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCard(t, db, user.ID, 1)

		testutil.AssertNoError(t, svc.DeleteCard(user.ID, 1))

		_, err := svc.GetCardByNumber(user.ID, 1)
		testutil.AssertAppError(t, err, "CARD_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.AssertAppError(t, svc.DeleteCard(user.ID, 2), "CARD_NOT_FOUND")
	})
}
