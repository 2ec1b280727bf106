// controllers/reminder.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"debtflow-backend/config"
	"debtflow-backend/models"
	"debtflow-backend/services"
	"debtflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	Scheduler *services.ReminderScheduler
}

// GetReminders lists the delivery ledger, newest first
func (rc *ReminderController) GetReminders(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	query := config.DB.Where("account_id = ?", accountID)
	if debtID := c.Query("debtId"); debtID != "" {
		query = query.Where("debt_id = ?", debtID)
	}
	if status := c.Query("status"); status != "" {
		if !models.ReminderStatus(status).Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid reminder status")
			return
		}
		query = query.Where("status = ?", status)
	}

	var reminders []models.Reminder
	if err := query.Order("sent_at DESC").Limit(200).Find(&reminders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminders")
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// RunCycle triggers a reminder cycle for the account outside the cron
// schedule. The clock is injected into the engine, so a manual run is
// just a run with now = time.Now().
func (rc *ReminderController) RunCycle(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var account models.Account
	if err := config.DB.First(&account, "id = ?", accountID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	summary, err := rc.Scheduler.RunCycle(c.Request.Context(), account, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrLockContention) {
			c.JSON(http.StatusConflict, gin.H{"message": "A reminder cycle is already running"})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Reminder cycle failed")
		return
	}

	c.JSON(http.StatusOK, summary)
}
