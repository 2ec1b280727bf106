// services/correlator.go
package services

import (
	"context"
	"fmt"
	"time"

	"debtflow-backend/models"
	"debtflow-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResponseInput is the payload of the public response intake endpoint.
// Token possession is the only authentication.
type ResponseInput struct {
	Type       models.ResponseType
	PaidAmount *float64
	PaidDate   *time.Time
	Notes      string
}

// ResponseCorrelator matches inbound customer replies to the reminder
// that invited them and stages them for human verification.
type ResponseCorrelator struct {
	ledger    repository.ReminderRepository
	responses repository.ResponseRepository
	debts     repository.DebtRepository
	audit     AuditSink
	logger    *zap.Logger
}

func NewResponseCorrelator(
	ledger repository.ReminderRepository,
	responses repository.ResponseRepository,
	debts repository.DebtRepository,
	audit AuditSink,
	logger *zap.Logger,
) *ResponseCorrelator {
	return &ResponseCorrelator{
		ledger:    ledger,
		responses: responses,
		debts:     debts,
		audit:     audit,
		logger:    logger,
	}
}

// Receive resolves a token to its reminder and upserts the response
// keyed by that token: a replay updates the existing row instead of
// creating a duplicate. A paid claim moves the debt to payment_claimed
// exactly once; help/issue replies touch no debt state.
func (c *ResponseCorrelator) Receive(ctx context.Context, token string, input ResponseInput) (*models.ReminderResponse, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("invalid response type %q", input.Type)
	}

	reminder, err := c.ledger.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if reminder == nil {
		c.logger.Warn("response with unknown token rejected")
		return nil, ErrInvalidToken
	}

	response, err := c.responses.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if response == nil {
		response = &models.ReminderResponse{
			AccountID:    reminder.AccountID,
			Token:        token,
			ReminderID:   reminder.ID,
			DebtID:       reminder.DebtID,
			ResponseType: input.Type,
			Verification: models.VerificationPending,
		}
	} else if response.Verification == models.VerificationPending {
		// Replay: update in place, never duplicate.
		response.ResponseType = input.Type
	}

	if input.PaidAmount != nil {
		response.PaidAmount = input.PaidAmount
	}
	if input.PaidDate != nil {
		response.PaidDate = input.PaidDate
	}
	if input.Notes != "" {
		response.Notes = input.Notes
	}

	if err := c.responses.Save(ctx, response); err != nil {
		return nil, err
	}

	if err := c.ledger.AttachResponse(ctx, reminder.ID, string(input.Type)+": "+input.Notes); err != nil {
		c.logger.Error("failed to attach response to reminder",
			zap.String("reminder_id", reminder.ID.String()), zap.Error(err))
	}

	if input.Type == models.ResponsePaid {
		if err := c.claimPayment(ctx, reminder.AccountID, reminder.DebtID); err != nil {
			return nil, err
		}
	}

	c.audit.Record(ctx, reminder.AccountID, models.LogInfo, "response_received",
		fmt.Sprintf("reminder %s: %s response", reminder.ID, input.Type))
	return response, nil
}

// claimPayment applies the payment_claimed overlay; the status guard
// keeps replays from transitioning more than once and never skips the
// human verification step.
func (c *ResponseCorrelator) claimPayment(ctx context.Context, accountID, debtID uuid.UUID) error {
	debt, err := c.debts.FindByID(ctx, accountID, debtID)
	if err != nil {
		return err
	}
	if debt == nil {
		return fmt.Errorf("debt %s not found for response", debtID)
	}
	if debt.Status == models.DebtPaymentClaimed || debt.Status == models.DebtPaid {
		return nil
	}
	debt.Status = models.DebtPaymentClaimed
	return c.debts.Save(ctx, debt)
}

// Verify applies the human decision on a staged response. Confirming a
// paid claim credits the claimed amount (the verifier may override it;
// no amount means payment in full) and re-derives the debt status.
// Rejecting clears the overlay and reverts to the derived status.
func (c *ResponseCorrelator) Verify(ctx context.Context, accountID, responseID uuid.UUID, approve bool, amountOverride *float64, verifierEmail string, now time.Time) (*models.ReminderResponse, error) {
	response, err := c.responses.FindByID(ctx, accountID, responseID)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, fmt.Errorf("response %s not found", responseID)
	}
	if response.Verification != models.VerificationPending {
		return nil, ErrAlreadyVerified
	}

	debt, err := c.debts.FindByID(ctx, accountID, response.DebtID)
	if err != nil {
		return nil, err
	}
	if debt == nil {
		return nil, fmt.Errorf("debt %s not found for response", response.DebtID)
	}

	action := "response_rejected"
	if approve && response.ResponseType == models.ResponsePaid {
		amount := debt.Outstanding()
		if amountOverride != nil {
			amount = *amountOverride
		} else if response.PaidAmount != nil {
			amount = *response.PaidAmount
		}
		if amount < 0 {
			amount = 0
		}
		debt.PaidAmount += amount
		if debt.PaidAmount > debt.Amount {
			debt.PaidAmount = debt.Amount
		}
		response.Verification = models.VerificationVerified
		action = "response_verified"
	} else if approve {
		response.Verification = models.VerificationVerified
		action = "response_verified"
	} else {
		response.Verification = models.VerificationRejected
	}

	// Clear the claim overlay and re-derive from amounts and due date.
	if debt.Status == models.DebtPaymentClaimed {
		debt.Status = models.DebtPending
	}
	debt.Status = EvaluateDebtStatus(*debt, now)

	if err := c.debts.Save(ctx, debt); err != nil {
		return nil, err
	}
	if err := c.responses.Save(ctx, response); err != nil {
		return nil, err
	}

	c.audit.RecordUser(ctx, accountID, verifierEmail, models.LogInfo, action,
		fmt.Sprintf("response %s on debt %s, new status %s", response.ID, debt.InvoiceNumber, debt.Status))
	return response, nil
}
