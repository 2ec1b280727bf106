package repository

import (
	"context"
	"errors"

	"debtflow-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) FindByID(ctx context.Context, accountID, id uuid.UUID) (*models.MessageTemplate, error) {
	var template models.MessageTemplate
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) DefaultForChannel(ctx context.Context, accountID uuid.UUID, channel models.Channel) (*models.MessageTemplate, error) {
	var template models.MessageTemplate
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND channel = ? AND is_default = ?", accountID, channel, true).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) ForAccount(ctx context.Context, accountID uuid.UUID) (*models.ReminderSettings, error) {
	var settings models.ReminderSettings
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}
