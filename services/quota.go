package services

import (
	"context"
	"time"

	"debtflow-backend/models"
	"debtflow-backend/repository"
	"debtflow-backend/utils"

	"github.com/google/uuid"
)

// PlanQuota returns the monthly send allowance per channel for a plan.
func PlanQuota(plan models.AccountPlan, channel models.Channel) int {
	switch plan {
	case models.PlanBusiness:
		if channel == models.ChannelWhatsApp {
			return 2000
		}
		return 10000
	case models.PlanStarter:
		if channel == models.ChannelWhatsApp {
			return 300
		}
		return 1500
	default:
		if channel == models.ChannelWhatsApp {
			return 25
		}
		return 100
	}
}

// QuotaGate is the check-and-decrement the scheduler consults before any
// provider call.
type QuotaGate interface {
	Consume(ctx context.Context, accountID uuid.UUID, plan models.AccountPlan, channel models.Channel, now time.Time) error
	Remaining(ctx context.Context, accountID uuid.UUID, plan models.AccountPlan, channel models.Channel, now time.Time) (int, error)
}

type QuotaManager struct {
	repo repository.QuotaRepository
}

func NewQuotaManager(repo repository.QuotaRepository) *QuotaManager {
	return &QuotaManager{repo: repo}
}

func (m *QuotaManager) Consume(ctx context.Context, accountID uuid.UUID, plan models.AccountPlan, channel models.Channel, now time.Time) error {
	limit := PlanQuota(plan, channel)
	period := utils.BeginningOfMonth(now)

	ok, err := m.repo.TryConsume(ctx, accountID, channel, period, limit, 1)
	if err != nil {
		return err
	}
	if !ok {
		return ErrQuotaExceeded
	}
	return nil
}

func (m *QuotaManager) Remaining(ctx context.Context, accountID uuid.UUID, plan models.AccountPlan, channel models.Channel, now time.Time) (int, error) {
	limit := PlanQuota(plan, channel)
	used, err := m.repo.Used(ctx, accountID, channel, utils.BeginningOfMonth(now))
	if err != nil {
		return 0, err
	}
	if used >= limit {
		return 0, nil
	}
	return limit - used, nil
}
