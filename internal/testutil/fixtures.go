package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"grana/internal/installments"
	"grana/internal/models"
	"grana/internal/uuid"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCard creates a card in the given slot with a R$5000 limit.
func CreateTestCard(t *testing.T, db *gorm.DB, userID string, number int) *models.Card {
	t.Helper()

	card := &models.Card{
		UserID: userID,
		Number: number,
		Label:  fmt.Sprintf("Test Card %d", nextID()),
		Limit:  decimal.NewFromInt(5000),
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateTestExpense creates a single (non-installment) expense.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, month, year int, amount decimal.Decimal) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:       userID,
		Description:  fmt.Sprintf("Test Expense %d", nextID()),
		Category:     models.CategoryOther,
		Amount:       amount,
		PurchaseDate: time.Date(year, time.Month(month+1), 10, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(year, time.Month(month+1), 15, 0, 0, 0, 0, time.UTC),
		Month:        month,
		Year:         year,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome creates an income entry.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID string, month, year int, amount decimal.Decimal) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID:       userID,
		Description:  fmt.Sprintf("Test Income %d", nextID()),
		Amount:       amount,
		ReceivedDate: time.Date(year, time.Month(month+1), 5, 0, 0, 0, 0, time.UTC),
		Month:        month,
		Year:         year,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestInstallmentGroup creates a fully numbered installment group of
// total parcels starting at (startMonth, startYear), one parcel per month,
// and returns them in parcel order.
func CreateTestInstallmentGroup(t *testing.T, db *gorm.DB, userID, description string, total, startMonth, startYear int, parcelAmount decimal.Decimal) []models.Expense {
	t.Helper()

	groupID := uuid.New()
	parcels := make([]models.Expense, 0, total)

	month, year := startMonth, startYear
	for i := 1; i <= total; i++ {
		current := i
		totalCopy := total
		parcel := models.Expense{
			UserID:             userID,
			Description:        description,
			Category:           models.CategoryCreditCard,
			PaymentMethod:      models.PaymentMethodCredit,
			Amount:             parcelAmount,
			PurchaseDate:       time.Date(startYear, time.Month(startMonth+1), 10, 0, 0, 0, 0, time.UTC),
			DueDate:            time.Date(year, time.Month(month+1), 15, 0, 0, 0, 0, time.UTC),
			Month:              month,
			Year:               year,
			InstallmentCurrent: &current,
			InstallmentTotal:   &totalCopy,
			InstallmentLabel:   installments.Label(i, total),
			InstallmentGroupID: &groupID,
		}
		if err := db.Create(&parcel).Error; err != nil {
			t.Fatalf("failed to create test installment parcel: %v", err)
		}
		parcels = append(parcels, parcel)

		month++
		if month > 11 {
			month = 0
			year++
		}
	}
	return parcels
}
