// controllers/logs.go
package controllers

import (
	"net/http"
	"time"

	"debtflow-backend/config"
	"debtflow-backend/models"
	"debtflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetSystemLogs serves the read-only audit query interface consumed by
// the admin logs view. Filters: level, action, from, to (RFC 3339).
func GetSystemLogs(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	query := config.DB.Where("account_id = ?", accountID)

	if level := c.Query("level"); level != "" {
		switch models.LogLevel(level) {
		case models.LogInfo, models.LogWarning, models.LogError:
			query = query.Where("level = ?", level)
		default:
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid log level")
			return
		}
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp")
			return
		}
		query = query.Where("timestamp >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp")
			return
		}
		query = query.Where("timestamp <= ?", t)
	}

	var logs []models.SystemLog
	if err := query.Order("timestamp DESC").Limit(500).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
