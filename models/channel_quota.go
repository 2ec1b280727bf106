package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChannelQuota counts sends per account, channel and calendar month.
// Consumption is an atomic check-and-increment against Limit so
// concurrent dispatches cannot overshoot the plan.
type ChannelQuota struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_quota_period,priority:1"`

	Channel     Channel   `gorm:"type:varchar(20);not null;uniqueIndex:idx_quota_period,priority:2"`
	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_quota_period,priority:3"`
	Used        int       `gorm:"default:0"`
	Limit       int       `gorm:"column:quota_limit;not null"`
}

func (q *ChannelQuota) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}
