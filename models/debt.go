package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DebtStatus is a closed enumeration; callers are expected to switch
// exhaustively over these values.
type DebtStatus string

const (
	DebtPending        DebtStatus = "pending"
	DebtPartiallyPaid  DebtStatus = "partially_paid"
	DebtPaid           DebtStatus = "paid"
	DebtOverdue        DebtStatus = "overdue"
	DebtPaymentClaimed DebtStatus = "payment_claimed"
)

func (s DebtStatus) Valid() bool {
	switch s {
	case DebtPending, DebtPartiallyPaid, DebtPaid, DebtOverdue, DebtPaymentClaimed:
		return true
	default:
		return false
	}
}

type Debt struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_account_invoice,priority:1"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	InvoiceNumber string `gorm:"not null;uniqueIndex:idx_account_invoice,priority:2"`
	Description   string
	Amount        float64    `gorm:"type:decimal(10,2);not null"`
	PaidAmount    float64    `gorm:"type:decimal(10,2);default:0.0"`
	DueDate       time.Time  `gorm:"not null"`
	Status        DebtStatus `gorm:"type:varchar(20);default:'pending'"`

	// Per-debt channel override; empty means the account default applies.
	Channel Channel `gorm:"type:varchar(20)"`

	Reminders []Reminder `gorm:"foreignKey:DebtID"`

	gorm.Model
}

func (d *Debt) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// Outstanding returns the unpaid remainder, never negative.
func (d *Debt) Outstanding() float64 {
	if d.PaidAmount >= d.Amount {
		return 0
	}
	return d.Amount - d.PaidAmount
}
