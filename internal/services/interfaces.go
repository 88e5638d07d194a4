package services

import (
	"time"

	"github.com/shopspring/decimal"

	"grana/internal/analytics"
	"grana/internal/installments"
	"grana/internal/models"
	"grana/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CardUsage is one card's spending against its limit for a month.
type CardUsage struct {
	CardNumber int             `json:"card_number"`
	Label      string          `json:"label"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	UsagePct   decimal.Decimal `json:"usage_pct"`
}

// CardServicer defines the contract for card-related business logic.
type CardServicer interface {
	CreateCard(userID string, number int, label string, limit decimal.Decimal) (*models.Card, error)
	GetUserCards(userID string) ([]models.Card, error)
	GetCardByNumber(userID string, number int) (*models.Card, error)
	UpdateCard(userID string, number int, label string, limit *decimal.Decimal) (*models.Card, error)
	DeleteCard(userID string, number int) error
	LimitUsage(userID string, month, year int) ([]CardUsage, error)
}

// CreateExpenseInput carries the fields of a new expense. When
// InstallmentTotal is greater than one the purchase is expanded into that
// many monthly parcel records sharing a freshly allocated group ID.
type CreateExpenseInput struct {
	Description       string
	Category          string
	CardCategory      string
	PaymentMethod     models.PaymentMethod
	CardNumber        *int
	Amount            decimal.Decimal
	OriginalAmount    decimal.NullDecimal
	TotalWithInterest decimal.NullDecimal
	PurchaseDate      time.Time
	DueDate           time.Time
	Month             int
	Year              int
	Recurring         bool
	InstallmentTotal  int
}

// UpdateExpenseInput carries the patchable fields of an expense. Nil fields
// are left untouched.
type UpdateExpenseInput struct {
	Description   *string
	Category      *string
	CardCategory  *string
	PaymentMethod *models.PaymentMethod
	CardNumber    *int
	Amount        *decimal.Decimal
	DueDate       *time.Time
	Recurring     *bool
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Category      *string
	PaymentMethod *models.PaymentMethod
	Settled       *bool
	CardNumber    *int
	OnlyParcels   bool
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID string, in CreateExpenseInput) ([]models.Expense, error)
	GetUserExpenses(userID string, year int, month *int, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, in UpdateExpenseInput) (*models.Expense, error)
	SettleExpense(userID, expenseID string, amountPaid decimal.NullDecimal, paymentDate time.Time) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(userID, description string, amount decimal.Decimal, receivedDate time.Time, month, year int) (*models.Income, error)
	GetUserIncomes(userID string, year int, month *int, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	GetIncomeByID(userID, incomeID string) (*models.Income, error)
	UpdateIncome(userID, incomeID string, description *string, amount *decimal.Decimal, receivedDate *time.Time) (*models.Income, error)
	DeleteIncome(userID, incomeID string) error
}

// BulkResult reports which records a multi-record operation touched. Callers
// can distinguish partial from full success instead of inferring it from a
// bare boolean.
type BulkResult struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// Any reports whether at least one record was affected, the legacy success
// criterion for best-effort bulk deletes.
func (r *BulkResult) Any() bool {
	return len(r.Succeeded) > 0
}

// InstallmentServicer keeps installment groups numerically consistent as
// their members are added, edited, or removed. Operations on missing groups
// or records are no-ops, never errors.
type InstallmentServicer interface {
	ValidateGroup(userID, groupID string, ref *models.Expense) (*installments.Validation, error)
	SynchronizeGroup(userID, groupID string, ref *models.Expense) (bool, error)
	ReindexAfterDeletion(userID, groupID, description string, window installments.Window) error
	DeleteMember(userID, expenseID string) (*BulkResult, error)
	DeleteFuture(userID, expenseID string) (*BulkResult, error)
	DeleteGroup(userID, groupID, description, category string) (*BulkResult, error)
	FindOrphanGroups(userID string, window installments.Window) ([]installments.Orphan, error)
	WindowFor(referenceYear int) installments.Window
}

// ReportServicer derives dashboard aggregates from a user's ledger. Fetched
// year snapshots are cached with a short TTL and invalidated on every
// mutation touching the same (user, year).
type ReportServicer interface {
	MonthlySummary(userID string, year int) ([]analytics.MonthAggregate, error)
	Interest(userID string, year, month int) (*analytics.InterestBreakdown, error)
	Categories(userID string, year, month, limit int) (map[string]decimal.Decimal, error)
	Projection(userID string, fromMonth, fromYear, horizon int) (*analytics.Projection, error)
	Growth(userID string, year int, filter analytics.FilterState) (map[string][11]decimal.Decimal, error)
	InvalidateYear(userID string, year int)
}

// CacheInvalidator is the slice of ReportServicer that mutating services
// need: dropping cached snapshots for a (user, year) they just changed.
type CacheInvalidator interface {
	InvalidateYear(userID string, year int)
}
