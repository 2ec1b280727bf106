package services_test

import (
	"testing"
	"time"

	"debtflow-backend/models"
	"debtflow-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateDebtStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		debt models.Debt
		want models.DebtStatus
	}{
		{
			name: "unpaid before due date is pending",
			debt: models.Debt{Amount: 100, PaidAmount: 0, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending},
			want: models.DebtPending,
		},
		{
			name: "partial payment before due date",
			debt: models.Debt{Amount: 100, PaidAmount: 40, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending},
			want: models.DebtPartiallyPaid,
		},
		{
			name: "past due date is overdue",
			debt: models.Debt{Amount: 100, PaidAmount: 0, DueDate: now.AddDate(0, 0, -10), Status: models.DebtPending},
			want: models.DebtOverdue,
		},
		{
			name: "partial payment past due date is still overdue",
			debt: models.Debt{Amount: 100, PaidAmount: 40, DueDate: now.AddDate(0, 0, -1), Status: models.DebtPartiallyPaid},
			want: models.DebtOverdue,
		},
		{
			name: "full payment is paid regardless of due date",
			debt: models.Debt{Amount: 100, PaidAmount: 100, DueDate: now.AddDate(0, 0, -30), Status: models.DebtOverdue},
			want: models.DebtPaid,
		},
		{
			name: "overpayment is paid",
			debt: models.Debt{Amount: 100, PaidAmount: 120, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPending},
			want: models.DebtPaid,
		},
		{
			name: "payment claim overlay survives evaluation",
			debt: models.Debt{Amount: 100, PaidAmount: 0, DueDate: now.AddDate(0, 0, -10), Status: models.DebtPaymentClaimed},
			want: models.DebtPaymentClaimed,
		},
		{
			name: "full payment beats the claim overlay",
			debt: models.Debt{Amount: 100, PaidAmount: 100, DueDate: now.AddDate(0, 0, 5), Status: models.DebtPaymentClaimed},
			want: models.DebtPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.EvaluateDebtStatus(tt.debt, now)
			assert.Equal(t, tt.want, got)

			// Re-evaluating the result must not change it.
			tt.debt.Status = got
			assert.Equal(t, got, services.EvaluateDebtStatus(tt.debt, now))
		})
	}
}

func TestOutstanding(t *testing.T) {
	assert.Equal(t, 60.0, (&models.Debt{Amount: 100, PaidAmount: 40}).Outstanding())
	assert.Equal(t, 0.0, (&models.Debt{Amount: 100, PaidAmount: 100}).Outstanding())
	assert.Equal(t, 0.0, (&models.Debt{Amount: 100, PaidAmount: 150}).Outstanding())
}
