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

type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) ClaimOffset(ctx context.Context, reminder *models.Reminder) (bool, error) {
	reminder.Status = models.ReminderQueued

	// Insert-if-absent on the dedup key. ON CONFLICT DO NOTHING closes
	// the race between "check for existing reminder" and "insert".
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "debt_id"}, {Name: "offset_bucket"}},
		DoNothing: true,
	}).Create(reminder)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	// A row already exists. Only a failed attempt may be reclaimed; the
	// guarded UPDATE keeps two concurrent cycles from both reclaiming it.
	res = r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("debt_id = ? AND offset_bucket = ? AND status = ?",
			reminder.DebtID, reminder.OffsetBucket, models.ReminderFailed).
		Updates(map[string]interface{}{
			"status":      models.ReminderQueued,
			"fail_reason": "",
			"template_id": reminder.TemplateID,
			"channel":     reminder.Channel,
			"sent_at":     reminder.SentAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	var existing models.Reminder
	if err := r.db.WithContext(ctx).
		Where("debt_id = ? AND offset_bucket = ?", reminder.DebtID, reminder.OffsetBucket).
		First(&existing).Error; err != nil {
		return false, err
	}
	*reminder = existing
	return true, nil
}

func (r *reminderRepository) MarkOutcome(ctx context.Context, id uuid.UUID, status models.ReminderStatus, providerMessageID, failReason string, sentAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":              status,
			"provider_message_id": providerMessageID,
			"fail_reason":         failReason,
			"sent_at":             sentAt,
		}).Error
}

func (r *reminderRepository) UpdateDeliveryStatus(ctx context.Context, providerMessageID string, status models.ReminderStatus) error {
	if status == models.ReminderFailed {
		return r.db.WithContext(ctx).Model(&models.Reminder{}).
			Where("provider_message_id = ? AND status NOT IN ?",
				providerMessageID,
				[]models.ReminderStatus{models.ReminderDelivered, models.ReminderRead}).
			Update("status", status).Error
	}

	// Monotonic: a callback may only advance delivery progress.
	rank := status.Rank()
	if rank < 0 {
		return errors.New("invalid delivery status")
	}
	lower := make([]models.ReminderStatus, 0, 3)
	for _, s := range []models.ReminderStatus{models.ReminderQueued, models.ReminderSent, models.ReminderDelivered} {
		if s.Rank() < rank {
			lower = append(lower, s)
		}
	}
	return r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("provider_message_id = ? AND status IN ?", providerMessageID, lower).
		Update("status", status).Error
}

func (r *reminderRepository) FindByToken(ctx context.Context, token string) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.WithContext(ctx).Where("response_token = ?", token).First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) AttachResponse(ctx context.Context, id uuid.UUID, response string) error {
	return r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("id = ?", id).
		Update("response", response).Error
}
