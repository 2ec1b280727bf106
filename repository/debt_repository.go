package repository

import (
	"context"
	"errors"

	"debtflow-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type debtRepository struct {
	db *gorm.DB
}

func NewDebtRepository(db *gorm.DB) DebtRepository {
	return &debtRepository{db: db}
}

func (r *debtRepository) OpenDebts(ctx context.Context, accountID uuid.UUID) ([]models.Debt, error) {
	var debts []models.Debt
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND status <> ?", accountID, models.DebtPaid).
		Order("due_date ASC").
		Find(&debts).Error
	return debts, err
}

func (r *debtRepository) FindByID(ctx context.Context, accountID, id uuid.UUID) (*models.Debt, error) {
	var debt models.Debt
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &debt, nil
}

func (r *debtRepository) Save(ctx context.Context, debt *models.Debt) error {
	return r.db.WithContext(ctx).Save(debt).Error
}
