package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/installments"
	"grana/internal/models"
	"grana/internal/pagination"
	"grana/internal/uuid"
)

// expenseService handles expense-related business logic, delegating group
// maintenance to the installment engine.
type expenseService struct {
	db          *gorm.DB
	engine      InstallmentServicer
	invalidator CacheInvalidator
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, engine InstallmentServicer, invalidator CacheInvalidator) ExpenseServicer {
	return &expenseService{db: db, engine: engine, invalidator: invalidator}
}

// CreateExpense creates a single expense, or expands an installment purchase
// into InstallmentTotal monthly parcel records sharing a new group ID. The
// per-parcel amount is the financed total split evenly and rounded to cents;
// the rounding remainder is not redistributed.
func (s *expenseService) CreateExpense(userID string, in CreateExpenseInput) ([]models.Expense, error) {
	if in.Description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if in.Month < 0 || in.Month > 11 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 0 and 11")
	}
	if in.CardNumber != nil && in.PaymentMethod != models.PaymentMethodCredit {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card number is only valid for credit payments")
	}
	if in.PurchaseDate.IsZero() {
		in.PurchaseDate = time.Now()
	}

	if in.InstallmentTotal > 1 {
		return s.createInstallmentPurchase(userID, in)
	}

	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	expense := &models.Expense{
		UserID:         userID,
		Description:    in.Description,
		Category:       in.Category,
		CardCategory:   in.CardCategory,
		PaymentMethod:  in.PaymentMethod,
		CardNumber:     in.CardNumber,
		Amount:         in.Amount,
		OriginalAmount: in.OriginalAmount,
		PurchaseDate:   in.PurchaseDate,
		DueDate:        in.DueDate,
		Month:          in.Month,
		Year:           in.Year,
		Recurring:      in.Recurring,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(userID, in.Year)
	return []models.Expense{*expense}, nil
}

// createInstallmentPurchase expands one purchase into its parcels. Every
// parcel carries the full financed total and principal so interest can be
// derived per parcel later without re-reading its siblings.
func (s *expenseService) createInstallmentPurchase(userID string, in CreateExpenseInput) ([]models.Expense, error) {
	total := in.InstallmentTotal

	financed := in.Amount
	if in.TotalWithInterest.Valid {
		financed = in.TotalWithInterest.Decimal
	}
	if !financed.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}

	parcelAmount := installments.SplitAmount(financed, total)
	groupID := uuid.New()

	baseDue := in.DueDate
	if baseDue.IsZero() {
		baseDue = in.PurchaseDate
	}

	parcels := make([]models.Expense, 0, total)
	month, year := in.Month, in.Year
	for i := 0; i < total; i++ {
		current := i + 1
		parcelTotal := total
		gid := groupID
		parcels = append(parcels, models.Expense{
			UserID:             userID,
			Description:        in.Description,
			Category:           in.Category,
			CardCategory:       in.CardCategory,
			PaymentMethod:      in.PaymentMethod,
			CardNumber:         in.CardNumber,
			Amount:             parcelAmount,
			OriginalAmount:     in.OriginalAmount,
			TotalWithInterest:  decimal.NewNullDecimal(financed),
			PurchaseDate:       in.PurchaseDate,
			DueDate:            baseDue.AddDate(0, i, 0),
			Month:              month,
			Year:               year,
			Recurring:          in.Recurring,
			InstallmentCurrent: &current,
			InstallmentTotal:   &parcelTotal,
			InstallmentLabel:   installments.Label(current, total),
			InstallmentGroupID: &gid,
		})

		month++
		if month > 11 {
			month = 0
			year++
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range parcels {
			if err := tx.Create(&parcels[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for y := in.Year; y <= year; y++ {
		s.invalidate(userID, y)
	}
	return parcels, nil
}

// GetUserExpenses retrieves a paginated, filtered list of expenses for a
// year, optionally narrowed to one month.
func (s *expenseService) GetUserExpenses(userID string, year int, month *int, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ? AND year = ?", userID, year)
	if month != nil {
		base = base.Where("month = ?", *month)
	}
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("due_date ASC, purchase_date ASC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.PaymentMethod != nil {
		q = q.Where("payment_method = ?", *f.PaymentMethod)
	}
	if f.Settled != nil {
		q = q.Where("settled = ?", *f.Settled)
	}
	if f.CardNumber != nil {
		q = q.Where("card_number = ?", *f.CardNumber)
	}
	if f.OnlyParcels {
		q = q.Where("installment_group_id IS NOT NULL")
	}
	return q
}

// GetExpenseByID retrieves an expense by ID for a specific user.
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense patches an expense's editable fields. Changing dates or
// amounts on a grouped parcel may desynchronize its siblings; the caller is
// expected to run a group synchronization afterwards.
func (s *expenseService) UpdateExpense(userID, expenseID string, in UpdateExpenseInput) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.CardCategory != nil {
		updates["card_category"] = *in.CardCategory
	}
	if in.PaymentMethod != nil {
		updates["payment_method"] = *in.PaymentMethod
	}
	if in.CardNumber != nil {
		updates["card_number"] = *in.CardNumber
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *in.Amount
	}
	if in.DueDate != nil {
		updates["due_date"] = *in.DueDate
	}
	if in.Recurring != nil {
		updates["recurring"] = *in.Recurring
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.invalidate(userID, expense.Year)
	}
	return expense, nil
}

// SettleExpense marks an expense as paid. When no paid amount is given the
// scheduled amount is assumed; a zero payment date defaults to now so that
// settled always implies a payment date.
func (s *expenseService) SettleExpense(userID, expenseID string, amountPaid decimal.NullDecimal, paymentDate time.Time) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	paid := expense.Amount
	if amountPaid.Valid {
		if !amountPaid.Decimal.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount paid must be greater than zero")
		}
		paid = amountPaid.Decimal
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	updates := map[string]interface{}{
		"amount_paid":  paid,
		"payment_date": paymentDate,
		"settled":      true,
	}
	if err := s.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(userID, expense.Year)
	return expense, nil
}

// DeleteExpense deletes an expense. Grouped parcels go through the
// installment engine so the surviving siblings are renumbered.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if expense.InstallmentGroupID != nil {
		_, err := s.engine.DeleteMember(userID, expenseID)
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(userID, expense.Year)
	return nil
}

func (s *expenseService) invalidate(userID string, year int) {
	if s.invalidator != nil {
		s.invalidator.InvalidateYear(userID, year)
	}
}
