package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income represents money received in a given month. Incomes have no
// installment concept.
type Income struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Description  string          `gorm:"not null" json:"description"`
	Amount       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	ReceivedDate time.Time       `gorm:"not null" json:"received_date"`
	Month        int             `gorm:"not null" json:"month"`
	Year         int             `gorm:"not null" json:"year"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
