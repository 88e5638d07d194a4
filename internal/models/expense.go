package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod represents how an expense was paid
type PaymentMethod string

const (
	PaymentMethodPix      PaymentMethod = "pix"
	PaymentMethodDebit    PaymentMethod = "debit"
	PaymentMethodCredit   PaymentMethod = "credit"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Category labels with special normalization rules. Legacy records filed
// card purchases under a generic "Cartão" category with the real category
// stashed in CardCategory.
const (
	CategoryCard       = "Cartão"
	CategoryCreditCard = "Cartão de Crédito"
	CategoryOther      = "Outros"
)

// Expense represents one ledger line. An installment purchase is stored as
// InstallmentTotal independent rows sharing an InstallmentGroupID, one per
// month, each carrying its own due date and per-parcel amount.
type Expense struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Description   string          `gorm:"not null" json:"description"`
	Category      string          `json:"category"`
	CardCategory  string          `json:"card_category,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CardNumber    *int            `json:"card_number,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`

	// OriginalAmount is the principal before interest; TotalWithInterest the
	// full financed price. Both only meaningful for installment purchases,
	// except that a lone expense may still carry OriginalAmount when it was
	// paid with surcharge.
	OriginalAmount    decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"original_amount,omitempty"`
	TotalWithInterest decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"total_with_interest,omitempty"`
	AmountPaid        decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"amount_paid,omitempty"`
	Interest          decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"interest,omitempty"`

	PurchaseDate time.Time  `gorm:"not null" json:"purchase_date"`
	DueDate      time.Time  `json:"due_date"`
	PaymentDate  *time.Time `json:"payment_date,omitempty"`

	// Month is zero-based (0 = January), mirroring the dashboard's axis.
	Month int `gorm:"not null" json:"month"`
	Year  int `gorm:"not null" json:"year"`

	Settled   bool `gorm:"default:false" json:"settled"`
	Recurring bool `gorm:"default:false" json:"recurring"`

	InstallmentCurrent *int    `json:"installment_current,omitempty"`
	InstallmentTotal   *int    `json:"installment_total,omitempty"`
	InstallmentLabel   string  `json:"installment_label,omitempty"`
	InstallmentGroupID *string `gorm:"type:uuid;index" json:"installment_group_id,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// HasInstallment reports whether this expense is one parcel of a purchase
// split across multiple months.
func (e *Expense) HasInstallment() bool {
	return e.InstallmentGroupID != nil && e.InstallmentTotal != nil && *e.InstallmentTotal >= 1
}

// RealAmount returns what was actually charged: the settled amount when one
// was recorded, otherwise the scheduled amount.
func (e *Expense) RealAmount() decimal.Decimal {
	if e.AmountPaid.Valid && e.AmountPaid.Decimal.IsPositive() {
		return e.AmountPaid.Decimal
	}
	return e.Amount
}

// NormalizedCategory resolves legacy card sub-categories into the canonical
// category label. Idempotent: normalizing an already-normalized record
// returns the same label.
func (e *Expense) NormalizedCategory() string {
	category := strings.TrimSpace(e.Category)

	if category == CategoryCard || category == CategoryCreditCard {
		if e.PaymentMethod == "" {
			if sub := strings.TrimSpace(e.CardCategory); sub != "" {
				return sub
			}
			return CategoryOther
		}
		return CategoryCreditCard
	}

	if category == "" {
		return CategoryOther
	}
	return category
}
