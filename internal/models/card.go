package models

import "github.com/shopspring/decimal"

// MaxCardsPerUser is the number of credit cards a user may register.
// Card slots are numbered 1..MaxCardsPerUser and expenses reference the slot
// number rather than the card row, matching the statement layout of the
// dashboard.
const MaxCardsPerUser = 3

// Card represents one of the user's credit cards.
type Card struct {
	Base
	UserID string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Number int             `gorm:"not null" json:"number"`
	Label  string          `json:"label"`
	Limit  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"limit"`
}
