package models

import (
	"debtflow-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountPlan string

const (
	PlanFree     AccountPlan = "free"
	PlanStarter  AccountPlan = "starter"
	PlanBusiness AccountPlan = "business"
)

// NormalizePlan maps unknown plan strings to the free tier.
func NormalizePlan(plan string) AccountPlan {
	switch AccountPlan(plan) {
	case PlanStarter:
		return PlanStarter
	case PlanBusiness:
		return PlanBusiness
	default:
		return PlanFree
	}
}

type Account struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	CompanyName string    `gorm:"not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	Password    string    `gorm:"not null" json:"-"`
	Phone       string

	Plan     AccountPlan `gorm:"type:varchar(20);default:'free'"`
	IsActive bool        `gorm:"default:true"`

	LastLogin *time.Time

	gorm.Model
}

// Initialize UUID and hash password before creating
func (a *Account) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return
}
