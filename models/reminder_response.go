package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResponseType string

const (
	ResponsePaid  ResponseType = "paid"
	ResponseHelp  ResponseType = "help"
	ResponseIssue ResponseType = "issue"
)

func (t ResponseType) Valid() bool {
	switch t {
	case ResponsePaid, ResponseHelp, ResponseIssue:
		return true
	default:
		return false
	}
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// ReminderResponse is a customer reply staged for human verification.
// The token doubles as the idempotency key: replays for the same token
// update this row instead of creating a duplicate.
type ReminderResponse struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Token      string    `gorm:"uniqueIndex;not null"`
	ReminderID uuid.UUID `gorm:"type:uuid;index;not null"`
	DebtID     uuid.UUID `gorm:"type:uuid;index;not null"`

	ResponseType ResponseType `gorm:"type:varchar(20);not null"`
	PaidAmount   *float64     `gorm:"type:decimal(10,2)"`
	PaidDate     *time.Time
	Notes        string `gorm:"type:text"`

	Verification VerificationStatus `gorm:"type:varchar(20);default:'pending'"`

	gorm.Model
}

func (r *ReminderResponse) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
