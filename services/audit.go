package services

import (
	"context"
	"time"

	"debtflow-backend/models"
	"debtflow-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditSink records domain-visible events for the admin logs view.
type AuditSink interface {
	Record(ctx context.Context, accountID uuid.UUID, level models.LogLevel, action, details string)
	RecordUser(ctx context.Context, accountID uuid.UUID, userEmail string, level models.LogLevel, action, details string)
}

// AuditLogger appends to the system log table and mirrors every entry to
// the structured logger.
type AuditLogger struct {
	repo   repository.SystemLogRepository
	logger *zap.Logger
}

func NewAuditLogger(repo repository.SystemLogRepository, logger *zap.Logger) *AuditLogger {
	return &AuditLogger{repo: repo, logger: logger}
}

func (a *AuditLogger) Record(ctx context.Context, accountID uuid.UUID, level models.LogLevel, action, details string) {
	a.RecordUser(ctx, accountID, "", level, action, details)
}

func (a *AuditLogger) RecordUser(ctx context.Context, accountID uuid.UUID, userEmail string, level models.LogLevel, action, details string) {
	entry := &models.SystemLog{
		AccountID: accountID,
		Timestamp: time.Now(),
		Action:    action,
		UserEmail: userEmail,
		Details:   details,
		Level:     level,
	}

	fields := []zap.Field{
		zap.String("account_id", accountID.String()),
		zap.String("action", action),
		zap.String("details", details),
	}
	switch level {
	case models.LogError:
		a.logger.Error("audit", fields...)
	case models.LogWarning:
		a.logger.Warn("audit", fields...)
	default:
		a.logger.Info("audit", fields...)
	}

	if err := a.repo.Append(ctx, entry); err != nil {
		a.logger.Error("failed to append system log", zap.Error(err), zap.String("action", action))
	}
}
