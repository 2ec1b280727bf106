// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"debtflow-backend/config"
	"debtflow-backend/models"
	"debtflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview aggregates the counts the landing dashboard
// shows: open debts, overdue debts, claims awaiting verification,
// reminders sent this month and the pending response queue.
func GetDashboardOverview(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	now := time.Now()
	monthStart := utils.BeginningOfMonth(now)

	var openDebts, overdueDebts, claimedDebts int64
	var openOutstanding float64
	var remindersThisMonth, pendingResponses int64

	if err := config.DB.Model(&models.Debt{}).
		Where("account_id = ? AND status NOT IN ?", accountID,
			[]models.DebtStatus{models.DebtPaid}).
		Count(&openDebts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	config.DB.Model(&models.Debt{}).
		Where("account_id = ? AND status = ?", accountID, models.DebtOverdue).
		Count(&overdueDebts)

	config.DB.Model(&models.Debt{}).
		Where("account_id = ? AND status = ?", accountID, models.DebtPaymentClaimed).
		Count(&claimedDebts)

	config.DB.Model(&models.Debt{}).
		Select("COALESCE(SUM(amount - paid_amount), 0)").
		Where("account_id = ? AND status != ?", accountID, models.DebtPaid).
		Scan(&openOutstanding)

	config.DB.Model(&models.Reminder{}).
		Where("account_id = ? AND sent_at >= ? AND status != ?",
			accountID, monthStart, models.ReminderFailed).
		Count(&remindersThisMonth)

	config.DB.Model(&models.ReminderResponse{}).
		Where("account_id = ? AND verification = ?", accountID, models.VerificationPending).
		Count(&pendingResponses)

	c.JSON(http.StatusOK, gin.H{
		"openDebts":          openDebts,
		"overdueDebts":       overdueDebts,
		"paymentClaimed":     claimedDebts,
		"openOutstanding":    openOutstanding,
		"remindersThisMonth": remindersThisMonth,
		"pendingResponses":   pendingResponses,
	})
}
