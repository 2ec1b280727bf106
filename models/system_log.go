package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LogLevel string

const (
	LogInfo    LogLevel = "info"
	LogWarning LogLevel = "warning"
	LogError   LogLevel = "error"
)

// SystemLog is append-only; rows are written by the scheduler, the
// response correlator and settings changes, and read by the admin logs
// view.
type SystemLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`

	Timestamp time.Time `gorm:"index;not null"`
	Action    string    `gorm:"index;not null"`
	// Empty means the entry was written by the system, not a user.
	UserEmail string
	Details   string   `gorm:"type:text"`
	Level     LogLevel `gorm:"type:varchar(10);index;default:'info'"`
}

func (l *SystemLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
