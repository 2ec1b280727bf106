package repository

import (
	"context"
	"errors"
	"time"

	"debtflow-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type quotaRepository struct {
	db *gorm.DB
}

func NewQuotaRepository(db *gorm.DB) QuotaRepository {
	return &quotaRepository{db: db}
}

func (r *quotaRepository) TryConsume(ctx context.Context, accountID uuid.UUID, channel models.Channel, periodStart time.Time, limit, n int) (bool, error) {
	// Make sure the period row exists, then check-and-increment in one
	// statement so concurrent dispatches cannot overshoot the limit.
	row := models.ChannelQuota{
		AccountID:   accountID,
		Channel:     channel,
		PeriodStart: periodStart,
		Limit:       limit,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}, {Name: "channel"}, {Name: "period_start"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).Model(&models.ChannelQuota{}).
		Where("account_id = ? AND channel = ? AND period_start = ? AND used + ? <= quota_limit",
			accountID, channel, periodStart, n).
		Update("used", gorm.Expr("used + ?", n))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *quotaRepository) Used(ctx context.Context, accountID uuid.UUID, channel models.Channel, periodStart time.Time) (int, error) {
	var quota models.ChannelQuota
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND channel = ? AND period_start = ?", accountID, channel, periodStart).
		First(&quota).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return quota.Used, nil
}

type systemLogRepository struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) SystemLogRepository {
	return &systemLogRepository{db: db}
}

func (r *systemLogRepository) Append(ctx context.Context, entry *models.SystemLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
