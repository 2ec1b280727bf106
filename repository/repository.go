// Package repository holds the storage collaborator interfaces consumed
// by the scheduling engine and the response correlator, plus their gorm
// implementations. The engine only ever sees these interfaces so it can
// run against mocks with an injected clock.
package repository

import (
	"context"
	"time"

	"debtflow-backend/models"

	"github.com/google/uuid"
)

type AccountRepository interface {
	Active(ctx context.Context) ([]models.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

type CustomerRepository interface {
	FindByID(ctx context.Context, accountID, id uuid.UUID) (*models.Customer, error)
}

type DebtRepository interface {
	// OpenDebts returns every debt not in paid status, ordered by due
	// date ascending so the most urgent are attempted first.
	OpenDebts(ctx context.Context, accountID uuid.UUID) ([]models.Debt, error)
	FindByID(ctx context.Context, accountID, id uuid.UUID) (*models.Debt, error)
	Save(ctx context.Context, debt *models.Debt) error
}

type TemplateRepository interface {
	FindByID(ctx context.Context, accountID, id uuid.UUID) (*models.MessageTemplate, error)
	DefaultForChannel(ctx context.Context, accountID uuid.UUID, channel models.Channel) (*models.MessageTemplate, error)
}

type SettingsRepository interface {
	// ForAccount returns nil without error when no settings row exists.
	ForAccount(ctx context.Context, accountID uuid.UUID) (*models.ReminderSettings, error)
}

// ReminderRepository is the Delivery Ledger.
type ReminderRepository interface {
	// ClaimOffset atomically claims the (debtID, offsetBucket) dedup key
	// with a compare-and-insert. A previously failed attempt for the same
	// key is reclaimed in place. Returns false when the offset was
	// already handled by a non-failed reminder; on success the passed
	// reminder reflects the persisted row.
	ClaimOffset(ctx context.Context, reminder *models.Reminder) (bool, error)
	MarkOutcome(ctx context.Context, id uuid.UUID, status models.ReminderStatus, providerMessageID, failReason string, sentAt time.Time) error
	// UpdateDeliveryStatus applies an asynchronous provider callback,
	// keyed by provider message id. Transitions are monotonic.
	UpdateDeliveryStatus(ctx context.Context, providerMessageID string, status models.ReminderStatus) error
	FindByToken(ctx context.Context, token string) (*models.Reminder, error)
	AttachResponse(ctx context.Context, id uuid.UUID, response string) error
}

type ResponseRepository interface {
	FindByToken(ctx context.Context, token string) (*models.ReminderResponse, error)
	FindByID(ctx context.Context, accountID, id uuid.UUID) (*models.ReminderResponse, error)
	Save(ctx context.Context, response *models.ReminderResponse) error
}

type QuotaRepository interface {
	// TryConsume atomically increments usage by n for the given period,
	// refusing when the limit would be exceeded.
	TryConsume(ctx context.Context, accountID uuid.UUID, channel models.Channel, periodStart time.Time, limit, n int) (bool, error)
	Used(ctx context.Context, accountID uuid.UUID, channel models.Channel, periodStart time.Time) (int, error)
}

type SystemLogRepository interface {
	Append(ctx context.Context, entry *models.SystemLog) error
}
