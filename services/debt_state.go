package services

import (
	"time"

	"debtflow-backend/models"
)

// EvaluateDebtStatus classifies a debt from its amounts and due date.
// Pure and total: no side effects, callers persist the result.
//
// payment_claimed is a manual overlay set when a customer claims payment;
// it is never derived here and survives evaluation until explicit
// verification clears it. paid is terminal once the full amount is in.
func EvaluateDebtStatus(debt models.Debt, now time.Time) models.DebtStatus {
	if debt.PaidAmount >= debt.Amount {
		return models.DebtPaid
	}
	if debt.Status == models.DebtPaymentClaimed {
		return models.DebtPaymentClaimed
	}
	if now.After(debt.DueDate) {
		return models.DebtOverdue
	}
	if debt.PaidAmount > 0 {
		return models.DebtPartiallyPaid
	}
	return models.DebtPending
}
