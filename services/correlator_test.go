package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"debtflow-backend/models"
	"debtflow-backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- in-memory response store ----

type memoryResponses struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.ReminderResponse
}

func newMemoryResponses() *memoryResponses {
	return &memoryResponses{rows: make(map[uuid.UUID]*models.ReminderResponse)}
}

func (m *memoryResponses) FindByToken(_ context.Context, token string) (*models.ReminderResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Token == token {
			found := *row
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryResponses) FindByID(_ context.Context, accountID, id uuid.UUID) (*models.ReminderResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[id]; ok && row.AccountID == accountID {
		found := *row
		return &found, nil
	}
	return nil, nil
}

func (m *memoryResponses) Save(_ context.Context, response *models.ReminderResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if response.ID == uuid.Nil {
		response.ID = uuid.New()
	}
	stored := *response
	m.rows[response.ID] = &stored
	return nil
}

func (m *memoryResponses) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// ---- fixture ----

type correlatorFixture struct {
	accountID uuid.UUID
	debt      models.Debt
	token     string
	ledger    *memoryLedger
	responses *memoryResponses
	debts     *stubDebts
	audit     *recordingAudit
	corr      *services.ResponseCorrelator
}

func newCorrelatorFixture(t *testing.T, debt models.Debt) *correlatorFixture {
	t.Helper()

	f := &correlatorFixture{
		accountID: uuid.New(),
		token:     "tok-" + uuid.NewString(),
		ledger:    newMemoryLedger(),
		responses: newMemoryResponses(),
		audit:     &recordingAudit{},
	}

	debt.ID = uuid.New()
	debt.AccountID = f.accountID
	f.debt = debt
	f.debts = newStubDebts(debt)

	reminder := &models.Reminder{
		AccountID:     f.accountID,
		DebtID:        debt.ID,
		CustomerID:    uuid.New(),
		TemplateID:    uuid.New(),
		Channel:       models.ChannelEmail,
		OffsetBucket:  0,
		ResponseToken: f.token,
	}
	claimed, err := f.ledger.ClaimOffset(context.Background(), reminder)
	require.NoError(t, err)
	require.True(t, claimed)

	f.corr = services.NewResponseCorrelator(f.ledger, f.responses, f.debts, f.audit, zap.NewNop())
	return f
}

func (f *correlatorFixture) currentDebt(t *testing.T) *models.Debt {
	t.Helper()
	debt, err := f.debts.FindByID(context.Background(), f.accountID, f.debt.ID)
	require.NoError(t, err)
	require.NotNil(t, debt)
	return debt
}

func amount(v float64) *float64 { return &v }

// ---- tests ----

func TestReceiveInvalidToken(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	f := newCorrelatorFixture(t, models.Debt{
		InvoiceNumber: "INV-2001", Amount: 250, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending,
	})

	_, err := f.corr.Receive(context.Background(), "no-such-token", services.ResponseInput{
		Type: models.ResponsePaid,
	})

	assert.ErrorIs(t, err, services.ErrInvalidToken)
	assert.Equal(t, 0, f.responses.count())
	assert.Equal(t, models.DebtPending, f.currentDebt(t).Status)
}

func TestReceivePaidClaimsDebt(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	f := newCorrelatorFixture(t, models.Debt{
		InvoiceNumber: "INV-2001", Amount: 250, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending,
	})

	response, err := f.corr.Receive(context.Background(), f.token, services.ResponseInput{
		Type:       models.ResponsePaid,
		PaidAmount: amount(250),
		Notes:      "transferred this morning",
	})
	require.NoError(t, err)

	assert.Equal(t, models.VerificationPending, response.Verification)
	assert.Equal(t, models.DebtPaymentClaimed, f.currentDebt(t).Status)
	assert.True(t, f.audit.has("response_received"))

	reminder, err := f.ledger.FindByToken(context.Background(), f.token)
	require.NoError(t, err)
	assert.Contains(t, reminder.Response, "paid")
}

func TestReceiveReplayUpdatesExistingResponse(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	f := newCorrelatorFixture(t, models.Debt{
		InvoiceNumber: "INV-2001", Amount: 250, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending,
	})

	_, err := f.corr.Receive(context.Background(), f.token, services.ResponseInput{
		Type: models.ResponsePaid, PaidAmount: amount(100),
	})
	require.NoError(t, err)

	replay, err := f.corr.Receive(context.Background(), f.token, services.ResponseInput{
		Type: models.ResponseIssue, Notes: "amount is wrong",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.responses.count())
	assert.Equal(t, models.ResponseIssue, replay.ResponseType)
	// The earlier claim overlay is not silently undone by the replay.
	assert.Equal(t, models.DebtPaymentClaimed, f.currentDebt(t).Status)
}

func TestReceiveHelpLeavesDebtUntouched(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	f := newCorrelatorFixture(t, models.Debt{
		InvoiceNumber: "INV-2001", Amount: 250, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending,
	})

	_, err := f.corr.Receive(context.Background(), f.token, services.ResponseInput{
		Type: models.ResponseHelp, Notes: "please resend the invoice",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DebtPending, f.currentDebt(t).Status)
	assert.Equal(t, 1, f.responses.count())
}

func TestVerifyConfirmPaymentInFull(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	f := newCorrelatorFixture(t, models.Debt{
		InvoiceNumber: "INV-2001", Amount: 250, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending,
	})

	// Claim without a stated amount means payment in full.
	response, err := f.corr.Receive(context.Background(), f.token, services.ResponseInput{
		Type: models.ResponsePaid,
	})
	require.NoError(t, err)

	verified, err := f.corr.Verify(context.Background(), f.accountID, response.ID,
		true, nil, "admin@debtflow.test", now)
	require.NoError(t, err)

	assert.Equal(t, models.VerificationVerified, verified.Verification)
	debt := f.currentDebt(t)
	assert.Equal(t, models.DebtPaid, debt.Status)
	assert.Equal(t, 250.0, debt.PaidAmount)
	assert.True(t, f.audit.has("response_verified"))
}

func TestVerifyConfirmClaimedAmount(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	f := newCorrelatorFixture(t, models.Debt{
		InvoiceNumber: "INV-2001", Amount: 250, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending,
	})

	response, err := f.corr.Receive(context.Background(), f.token, services.ResponseInput{
		Type: models.ResponsePaid, PaidAmount: amount(100),
	})
	require.NoError(t, err)

	_, err = f.corr.Verify(context.Background(), f.accountID, response.ID,
		true, nil, "admin@debtflow.test", now)
	require.NoError(t, err)

	debt := f.currentDebt(t)
	assert.Equal(t, 100.0, debt.PaidAmount)
	assert.Equal(t, models.DebtPartiallyPaid, debt.Status)
}

func TestVerifyOverrideCappedAtTotal(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	f := newCorrelatorFixture(t, models.Debt{
		InvoiceNumber: "INV-2001", Amount: 250, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending,
	})

	response, err := f.corr.Receive(context.Background(), f.token, services.ResponseInput{
		Type: models.ResponsePaid, PaidAmount: amount(100),
	})
	require.NoError(t, err)

	_, err = f.corr.Verify(context.Background(), f.accountID, response.ID,
		true, amount(500), "admin@debtflow.test", now)
	require.NoError(t, err)

	debt := f.currentDebt(t)
	assert.Equal(t, 250.0, debt.PaidAmount)
	assert.Equal(t, models.DebtPaid, debt.Status)
}

func TestVerifyRejectRevertsClaim(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	f := newCorrelatorFixture(t, models.Debt{
		InvoiceNumber: "INV-2001", Amount: 250, DueDate: now.AddDate(0, 0, -10), Status: models.DebtOverdue,
	})

	response, err := f.corr.Receive(context.Background(), f.token, services.ResponseInput{
		Type: models.ResponsePaid,
	})
	require.NoError(t, err)
	require.Equal(t, models.DebtPaymentClaimed, f.currentDebt(t).Status)

	rejected, err := f.corr.Verify(context.Background(), f.accountID, response.ID,
		false, nil, "admin@debtflow.test", now)
	require.NoError(t, err)

	assert.Equal(t, models.VerificationRejected, rejected.Verification)
	debt := f.currentDebt(t)
	assert.Equal(t, models.DebtOverdue, debt.Status)
	assert.Equal(t, 0.0, debt.PaidAmount)
	assert.True(t, f.audit.has("response_rejected"))
}

func TestVerifyTwiceRejected(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	f := newCorrelatorFixture(t, models.Debt{
		InvoiceNumber: "INV-2001", Amount: 250, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending,
	})

	response, err := f.corr.Receive(context.Background(), f.token, services.ResponseInput{
		Type: models.ResponsePaid,
	})
	require.NoError(t, err)

	_, err = f.corr.Verify(context.Background(), f.accountID, response.ID,
		true, nil, "admin@debtflow.test", now)
	require.NoError(t, err)

	_, err = f.corr.Verify(context.Background(), f.accountID, response.ID,
		true, nil, "admin@debtflow.test", now)
	assert.ErrorIs(t, err, services.ErrAlreadyVerified)
}
