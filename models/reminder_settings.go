package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OffsetList holds reminder day offsets relative to the due date.
// Negative offsets fire before the due date, positive after.
type OffsetList []int

func (o OffsetList) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *OffsetList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, o)
}

// Sorted returns the offsets ascending, deduplicated. The scheduler
// relies on this ordering for first-match-wins offset selection.
func (o OffsetList) Sorted() []int {
	seen := make(map[int]bool, len(o))
	out := make([]int, 0, len(o))
	for _, d := range o {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// ReminderSettings is the single active scheduling configuration per
// account.
type ReminderSettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Enabled           bool       `gorm:"default:true"`
	ReminderDays      OffsetList `gorm:"type:jsonb;default:'[]'"`
	DefaultTemplateID *uuid.UUID `gorm:"type:uuid"`
	DefaultChannel    Channel    `gorm:"type:varchar(20);default:'email'"`

	gorm.Model
}

func (s *ReminderSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
