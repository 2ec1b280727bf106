package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_account_phone,priority:1"`

	Name  string `gorm:"not null"`
	Email string
	Phone string `gorm:"uniqueIndex:idx_account_phone,priority:2"`
	Notes string

	Debts []Debt `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
