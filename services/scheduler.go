// services/scheduler.go
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"debtflow-backend/models"
	"debtflow-backend/repository"
	"debtflow-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CycleSummary is the outcome count of one scheduler run for one account.
type CycleSummary struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type dispatchOutcome int

const (
	outcomeSent dispatchOutcome = iota
	outcomeFailed
	outcomeSkipped
)

// SchedulerDeps wires the scheduler to its collaborators. Everything is
// an interface so cycles run against mocks with an injected clock.
type SchedulerDeps struct {
	Accounts  repository.AccountRepository
	Customers repository.CustomerRepository
	Debts     repository.DebtRepository
	Templates repository.TemplateRepository
	Settings  repository.SettingsRepository
	Ledger    repository.ReminderRepository
	Quota     QuotaGate
	Audit     AuditSink
	Senders   map[models.Channel]ChannelSender
	Logger    *zap.Logger

	CompanyName     string
	ResponseBaseURL string
	DispatchTimeout time.Duration
}

type ReminderScheduler struct {
	deps SchedulerDeps

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewReminderScheduler(deps SchedulerDeps) *ReminderScheduler {
	if deps.DispatchTimeout <= 0 {
		deps.DispatchTimeout = 30 * time.Second
	}
	return &ReminderScheduler{
		deps:  deps,
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// StartScheduler wires the recurring trigger. The cron expression comes
// from REMINDER_CRON, defaulting to a daily 9 AM run.
func (s *ReminderScheduler) StartScheduler() (*cron.Cron, error) {
	spec := os.Getenv("REMINDER_CRON")
	if spec == "" {
		spec = "0 9 * * *"
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		s.RunAllAccounts(context.Background(), time.Now())
	}); err != nil {
		return nil, err
	}
	c.Start()
	s.deps.Logger.Info("reminder scheduler started", zap.String("cron", spec))
	return c, nil
}

// RunAllAccounts runs one cycle per active account. A skipped cycle
// (lock contention) is not an error; anything else is logged and the
// remaining accounts still run.
func (s *ReminderScheduler) RunAllAccounts(ctx context.Context, now time.Time) {
	accounts, err := s.deps.Accounts.Active(ctx)
	if err != nil {
		s.deps.Logger.Error("failed to fetch accounts for reminder run", zap.Error(err))
		return
	}

	for _, account := range accounts {
		if _, err := s.RunCycle(ctx, account, now); err != nil &&
			!errors.Is(err, ErrLockContention) && !errors.Is(err, context.Canceled) {
			s.deps.Logger.Error("reminder cycle failed",
				zap.String("account_id", account.ID.String()),
				zap.Error(err))
		}
	}
}

// RunCycle scans the account's open debts and dispatches every reminder
// that is due at the injected now. At most one cycle runs per account at
// a time; a contended cycle is skipped entirely and left to the next
// trigger.
func (s *ReminderScheduler) RunCycle(ctx context.Context, account models.Account, now time.Time) (CycleSummary, error) {
	var summary CycleSummary

	lock := s.accountLock(account.ID)
	if !lock.TryLock() {
		s.deps.Logger.Info("reminder cycle already running, skipping",
			zap.String("account_id", account.ID.String()))
		s.deps.Audit.Record(ctx, account.ID, models.LogInfo,
			"reminder_cycle_skipped", "previous cycle still running")
		return summary, ErrLockContention
	}
	defer lock.Unlock()

	settings, err := s.deps.Settings.ForAccount(ctx, account.ID)
	if err != nil {
		return summary, err
	}
	if settings == nil || !settings.Enabled {
		s.deps.Audit.Record(ctx, account.ID, models.LogInfo,
			"reminder_cycle_disabled", "reminders disabled for account")
		return summary, nil
	}

	offsets := settings.ReminderDays.Sorted()
	if len(offsets) == 0 {
		s.deps.Audit.Record(ctx, account.ID, models.LogInfo,
			"reminder_cycle_completed", "no reminder offsets configured")
		return summary, nil
	}

	debts, err := s.deps.Debts.OpenDebts(ctx, account.ID)
	if err != nil {
		return summary, err
	}

	for _, debt := range debts {
		select {
		case <-ctx.Done():
			// Already-written reminder rows are valid sends; just stop
			// and leave the rest to the next cycle.
			s.deps.Audit.Record(context.WithoutCancel(ctx), account.ID, models.LogInfo,
				"reminder_cycle_cancelled",
				fmt.Sprintf("stopped early: sent=%d failed=%d skipped=%d",
					summary.Sent, summary.Failed, summary.Skipped))
			return summary, ctx.Err()
		default:
		}

		daysFromDue := utils.DaysBetween(debt.DueDate, now)
		offset, ok := matchOffset(offsets, daysFromDue)
		if !ok {
			continue
		}

		switch s.processDebt(ctx, account, settings, debt, offset, now) {
		case outcomeSent:
			summary.Sent++
		case outcomeFailed:
			summary.Failed++
		case outcomeSkipped:
			summary.Skipped++
		}
	}

	s.deps.Audit.Record(ctx, account.ID, models.LogInfo, "reminder_cycle_completed",
		fmt.Sprintf("sent=%d failed=%d skipped=%d", summary.Sent, summary.Failed, summary.Skipped))
	return summary, nil
}

// matchOffset picks the first matching entry of the ascending offset
// list, so a debt matching overlapping windows fires at most once.
func matchOffset(offsets []int, daysFromDue int) (int, bool) {
	for _, offset := range offsets {
		if offset == daysFromDue {
			return offset, true
		}
	}
	return 0, false
}

func (s *ReminderScheduler) processDebt(ctx context.Context, account models.Account, settings *models.ReminderSettings, debt models.Debt, offset int, now time.Time) dispatchOutcome {
	customer, err := s.deps.Customers.FindByID(ctx, account.ID, debt.CustomerID)
	if err != nil || customer == nil {
		s.deps.Audit.Record(ctx, account.ID, models.LogError, "reminder_dispatch_failed",
			fmt.Sprintf("debt %s: customer not found", debt.InvoiceNumber))
		return outcomeFailed
	}

	channel := settings.DefaultChannel
	if debt.Channel != "" {
		channel = debt.Channel
	}
	sender, ok := s.deps.Senders[channel]
	if !ok {
		s.deps.Audit.Record(ctx, account.ID, models.LogError, "reminder_dispatch_failed",
			fmt.Sprintf("debt %s: no sender configured for channel %s", debt.InvoiceNumber, channel))
		return outcomeFailed
	}

	template, err := s.resolveTemplate(ctx, account.ID, settings, channel)
	if err != nil || template == nil {
		s.deps.Audit.Record(ctx, account.ID, models.LogError, "reminder_dispatch_failed",
			fmt.Sprintf("debt %s: no template for channel %s", debt.InvoiceNumber, channel))
		return outcomeFailed
	}

	reminder := &models.Reminder{
		AccountID:     account.ID,
		DebtID:        debt.ID,
		CustomerID:    customer.ID,
		TemplateID:    template.ID,
		Channel:       channel,
		OffsetBucket:  offset,
		SentAt:        now,
		ResponseToken: utils.GenerateResponseToken(),
	}
	claimed, err := s.deps.Ledger.ClaimOffset(ctx, reminder)
	if err != nil {
		s.deps.Logger.Error("failed to claim reminder offset",
			zap.String("debt_id", debt.ID.String()), zap.Int("offset", offset), zap.Error(err))
		return outcomeFailed
	}
	if !claimed {
		// Offset already handled by a non-failed reminder.
		return outcomeSkipped
	}

	if err := s.deps.Quota.Consume(ctx, account.ID, account.Plan, channel, now); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			s.markFailed(ctx, reminder.ID, "quota_exceeded", now)
			s.deps.Audit.Record(ctx, account.ID, models.LogWarning, "reminder_quota_exceeded",
				fmt.Sprintf("debt %s: %s quota exhausted", debt.InvoiceNumber, channel))
			return outcomeFailed
		}
		s.markFailed(ctx, reminder.ID, "quota_check_failed", now)
		s.deps.Logger.Error("quota check failed", zap.Error(err))
		return outcomeFailed
	}

	data := PlaceholderData(*customer, debt, s.deps.CompanyName)
	body := RenderTemplate(template.Body, data)
	if s.deps.ResponseBaseURL != "" {
		body += "\n\n" + s.deps.ResponseBaseURL + "/r/" + reminder.ResponseToken
	}

	dispatch := Dispatch{
		To:       customer.Phone,
		Subject:  RenderTemplate(template.Subject, data),
		Body:     body,
		Template: template,
	}
	if channel == models.ChannelEmail {
		dispatch.To = customer.Email
	}

	providerMessageID, err := s.send(ctx, sender, dispatch)
	if err != nil {
		reason := failReason(err)
		s.markFailed(ctx, reminder.ID, reason, now)
		s.deps.Audit.Record(ctx, account.ID, models.LogError, "reminder_dispatch_failed",
			fmt.Sprintf("debt %s offset %d via %s: %s", debt.InvoiceNumber, offset, channel, reason))
		return outcomeFailed
	}

	if err := s.deps.Ledger.MarkOutcome(ctx, reminder.ID, models.ReminderSent, providerMessageID, "", now); err != nil {
		s.deps.Logger.Error("failed to record reminder outcome",
			zap.String("reminder_id", reminder.ID.String()), zap.Error(err))
	}
	return outcomeSent
}

// send enforces the per-dispatch timeout; a provider call that overruns
// is recorded as failed(timeout) rather than left in flight forever.
func (s *ReminderScheduler) send(ctx context.Context, sender ChannelSender, d Dispatch) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.deps.DispatchTimeout)
	defer cancel()

	type result struct {
		id  string
		err error
	}
	done := make(chan result, 1)
	go func() {
		id, err := sender.Send(ctx, d)
		done <- result{id: id, err: err}
	}()

	select {
	case r := <-done:
		return r.id, r.err
	case <-ctx.Done():
		return "", &ChannelError{Channel: sender.Channel(), Reason: "timeout", Err: ctx.Err()}
	}
}

func (s *ReminderScheduler) resolveTemplate(ctx context.Context, accountID uuid.UUID, settings *models.ReminderSettings, channel models.Channel) (*models.MessageTemplate, error) {
	if settings.DefaultTemplateID != nil {
		template, err := s.deps.Templates.FindByID(ctx, accountID, *settings.DefaultTemplateID)
		if err != nil {
			return nil, err
		}
		// The configured template only applies when it matches the
		// resolved channel; otherwise fall back to the channel default.
		if template != nil && template.Channel == channel {
			return template, nil
		}
	}
	return s.deps.Templates.DefaultForChannel(ctx, accountID, channel)
}

func (s *ReminderScheduler) markFailed(ctx context.Context, reminderID uuid.UUID, reason string, now time.Time) {
	if err := s.deps.Ledger.MarkOutcome(ctx, reminderID, models.ReminderFailed, "", reason, now); err != nil {
		s.deps.Logger.Error("failed to record reminder failure",
			zap.String("reminder_id", reminderID.String()), zap.Error(err))
	}
}

func failReason(err error) string {
	if errors.Is(err, ErrTemplateNotApproved) {
		return "template_not_approved"
	}
	var channelErr *ChannelError
	if errors.As(err, &channelErr) {
		return channelErr.Reason
	}
	return "send_failed"
}

func (s *ReminderScheduler) accountLock(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}
