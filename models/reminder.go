package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderStatus lifecycle: queued -> sent -> delivered -> read, with
// failed reachable from queued/sent. queued marks a dispatch claimed but
// not yet acknowledged by the provider; it exists so the dedup row can be
// inserted atomically before any provider call.
type ReminderStatus string

const (
	ReminderQueued    ReminderStatus = "queued"
	ReminderSent      ReminderStatus = "sent"
	ReminderDelivered ReminderStatus = "delivered"
	ReminderRead      ReminderStatus = "read"
	ReminderFailed    ReminderStatus = "failed"
)

func (s ReminderStatus) Valid() bool {
	switch s {
	case ReminderQueued, ReminderSent, ReminderDelivered, ReminderRead, ReminderFailed:
		return true
	default:
		return false
	}
}

// Rank orders delivery progress; status updates from provider callbacks
// are monotonic and never downgrade (no read back to sent).
func (s ReminderStatus) Rank() int {
	switch s {
	case ReminderQueued:
		return 0
	case ReminderSent:
		return 1
	case ReminderDelivered:
		return 2
	case ReminderRead:
		return 3
	default:
		return -1
	}
}

// Reminder is a Delivery Ledger entry: one dispatch attempt per
// (debt, offset bucket). The unique index on that pair is the dedup key;
// a failed attempt is reclaimed in place on the next cycle, so at most
// one non-failed reminder can ever exist per trigger point.
type Reminder struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID  uuid.UUID `gorm:"type:uuid;index;not null"`
	DebtID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_debt_offset,priority:1"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null"`

	Channel      Channel        `gorm:"type:varchar(20);not null"`
	OffsetBucket int            `gorm:"not null;uniqueIndex:idx_debt_offset,priority:2"`
	Status       ReminderStatus `gorm:"type:varchar(20);default:'queued'"`
	FailReason   string
	SentAt       time.Time

	// Provider message id, used to map asynchronous delivery callbacks
	// back to this row.
	ProviderMessageID string `gorm:"index"`

	// Unguessable token embedded in the outbound message; inbound
	// customer responses are correlated through it.
	ResponseToken string `gorm:"uniqueIndex;not null"`

	// Free-text echo of the customer's reply, attached once a response
	// arrives.
	Response string `gorm:"type:text"`

	gorm.Model
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
