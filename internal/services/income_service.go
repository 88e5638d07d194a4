package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/models"
	"grana/internal/pagination"
)

// incomeService handles income-related business logic.
type incomeService struct {
	db          *gorm.DB
	invalidator CacheInvalidator
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, invalidator CacheInvalidator) IncomeServicer {
	return &incomeService{db: db, invalidator: invalidator}
}

// CreateIncome records money received in a given month.
func (s *incomeService) CreateIncome(userID, description string, amount decimal.Decimal, receivedDate time.Time, month, year int) (*models.Income, error) {
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if month < 0 || month > 11 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 0 and 11")
	}
	if receivedDate.IsZero() {
		receivedDate = time.Now()
	}

	income := &models.Income{
		UserID:       userID,
		Description:  description,
		Amount:       amount,
		ReceivedDate: receivedDate,
		Month:        month,
		Year:         year,
	}
	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(userID, year)
	return income, nil
}

// GetUserIncomes retrieves a paginated list of incomes for a year,
// optionally narrowed to one month.
func (s *incomeService) GetUserIncomes(userID string, year int, month *int, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	base := s.db.Model(&models.Income{}).Where("user_id = ? AND year = ?", userID, year)
	if month != nil {
		base = base.Where("month = ?", *month)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	if err := base.Scopes(pagination.Paginate(page)).
		Order("received_date ASC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeByID retrieves an income by ID for a specific user.
func (s *incomeService) GetIncomeByID(userID, incomeID string) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// UpdateIncome patches an income's editable fields.
func (s *incomeService) UpdateIncome(userID, incomeID string, description *string, amount *decimal.Decimal, receivedDate *time.Time) (*models.Income, error) {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if description != nil {
		updates["description"] = *description
	}
	if amount != nil {
		if !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if receivedDate != nil {
		updates["received_date"] = *receivedDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(income).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.invalidate(userID, income.Year)
	}
	return income, nil
}

// DeleteIncome soft-deletes an income.
func (s *incomeService) DeleteIncome(userID, incomeID string) error {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(income).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(userID, income.Year)
	return nil
}

func (s *incomeService) invalidate(userID string, year int) {
	if s.invalidator != nil {
		s.invalidator.InvalidateYear(userID, year)
	}
}
