package repository

import (
	"context"
	"errors"

	"debtflow-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) FindByToken(ctx context.Context, token string) (*models.ReminderResponse, error) {
	var response models.ReminderResponse
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&response).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByID(ctx context.Context, accountID, id uuid.UUID) (*models.ReminderResponse, error) {
	var response models.ReminderResponse
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&response).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) Save(ctx context.Context, response *models.ReminderResponse) error {
	return r.db.WithContext(ctx).Save(response).Error
}
