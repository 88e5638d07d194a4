package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/models"
)

// cardService handles credit-card business logic.
type cardService struct {
	db *gorm.DB
}

// NewCardService creates a new CardServicer.
func NewCardService(db *gorm.DB) CardServicer {
	return &cardService{db: db}
}

// CreateCard registers a credit card in one of the user's numbered slots.
func (s *cardService) CreateCard(userID string, number int, label string, limit decimal.Decimal) (*models.Card, error) {
	if number < 1 || number > models.MaxCardsPerUser {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card number must be between 1 and 3")
	}
	if limit.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card limit cannot be negative")
	}

	var count int64
	s.db.Model(&models.Card{}).Where("user_id = ?", userID).Count(&count)
	if count >= models.MaxCardsPerUser {
		return nil, apperrors.ErrCardLimitReached
	}

	var existing int64
	s.db.Model(&models.Card{}).Where("user_id = ? AND number = ?", userID, number).Count(&existing)
	if existing > 0 {
		return nil, apperrors.ErrDuplicateCardNumber
	}

	card := &models.Card{
		UserID: userID,
		Number: number,
		Label:  label,
		Limit:  limit,
	}
	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return card, nil
}

// GetUserCards lists the user's cards ordered by slot number.
func (s *cardService) GetUserCards(userID string) ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.Where("user_id = ?", userID).Order("number ASC").Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cards, nil
}

// GetCardByNumber returns the card in the given slot.
func (s *cardService) GetCardByNumber(userID string, number int) (*models.Card, error) {
	var card models.Card
	if err := s.db.Where("user_id = ? AND number = ?", userID, number).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &card, nil
}

// UpdateCard updates a card's label and limit.
func (s *cardService) UpdateCard(userID string, number int, label string, limit *decimal.Decimal) (*models.Card, error) {
	card, err := s.GetCardByNumber(userID, number)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if label != "" {
		updates["label"] = label
	}
	if limit != nil {
		if limit.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card limit cannot be negative")
		}
		updates["limit"] = *limit
	}

	if len(updates) > 0 {
		if err := s.db.Model(card).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return card, nil
}

// DeleteCard soft-deletes the card in the given slot.
func (s *cardService) DeleteCard(userID string, number int) error {
	card, err := s.GetCardByNumber(userID, number)
	if err != nil {
		return err
	}
	if err := s.db.Delete(card).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// LimitUsage computes each card's unsettled credit spending for a month as a
// percentage of its limit. A zero limit yields zero usage rather than a
// division error.
func (s *cardService) LimitUsage(userID string, month, year int) ([]CardUsage, error) {
	cards, err := s.GetUserCards(userID)
	if err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := s.db.
		Where("user_id = ? AND month = ? AND year = ? AND payment_method = ? AND card_number IS NOT NULL",
			userID, month, year, models.PaymentMethodCredit).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spentByNumber := make(map[int]decimal.Decimal)
	for _, e := range expenses {
		if e.Settled {
			continue
		}
		spentByNumber[*e.CardNumber] = spentByNumber[*e.CardNumber].Add(e.Amount)
	}

	usage := make([]CardUsage, 0, len(cards))
	for _, card := range cards {
		spent := spentByNumber[card.Number]
		pct := decimal.Zero
		if card.Limit.IsPositive() {
			pct = spent.Div(card.Limit).Mul(decimal.NewFromInt(100)).Round(2)
		}
		usage = append(usage, CardUsage{
			CardNumber: card.Number,
			Label:      card.Label,
			Limit:      card.Limit,
			Spent:      spent,
			UsagePct:   pct,
		})
	}
	return usage, nil
}
