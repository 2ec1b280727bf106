// controllers/settings.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"debtflow-backend/config"
	"debtflow-backend/models"
	"debtflow-backend/services"
	"debtflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SettingsController struct {
	Audit services.AuditSink
}

// UpdateReminderSettingsInput defines the expected JSON structure
type UpdateReminderSettingsInput struct {
	Enabled           *bool      `json:"enabled"`
	ReminderDays      *[]int     `json:"reminderDays"`
	DefaultTemplateID *uuid.UUID `json:"defaultTemplateId"`
	DefaultChannel    *string    `json:"defaultChannel" binding:"omitempty,oneof=email whatsapp"`
}

// GetReminderSettings returns the account's scheduling configuration,
// creating the default record on first read.
func (sc *SettingsController) GetReminderSettings(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	settings, err := loadOrInitSettings(accountID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateReminderSettings updates the account's scheduling configuration
func (sc *SettingsController) UpdateReminderSettings(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var input UpdateReminderSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := loadOrInitSettings(accountID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if input.Enabled != nil {
		settings.Enabled = *input.Enabled
	}
	if input.ReminderDays != nil {
		for _, offset := range *input.ReminderDays {
			if offset < -90 || offset > 365 {
				utils.RespondWithError(c, http.StatusBadRequest,
					fmt.Sprintf("Reminder offset %d out of range", offset))
				return
			}
		}
		settings.ReminderDays = models.OffsetList(*input.ReminderDays)
	}
	if input.DefaultTemplateID != nil {
		var template models.MessageTemplate
		if err := config.DB.Where("account_id = ? AND id = ?", accountID, *input.DefaultTemplateID).
			First(&template).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Default template not found")
			return
		}
		settings.DefaultTemplateID = input.DefaultTemplateID
	}
	if input.DefaultChannel != nil {
		settings.DefaultChannel = models.Channel(*input.DefaultChannel)
	}

	if err := config.DB.Save(settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	sc.Audit.RecordUser(c.Request.Context(), accountID, currentEmail(c), models.LogInfo,
		"reminder_settings_updated",
		fmt.Sprintf("enabled=%t offsets=%v channel=%s", settings.Enabled, settings.ReminderDays.Sorted(), settings.DefaultChannel))
	c.JSON(http.StatusOK, settings)
}

func loadOrInitSettings(accountID uuid.UUID) (*models.ReminderSettings, error) {
	var settings models.ReminderSettings
	err := config.DB.Where("account_id = ?", accountID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.ReminderSettings{
		AccountID:      accountID,
		Enabled:        true,
		ReminderDays:   models.OffsetList{-3, 0, 7},
		DefaultChannel: models.ChannelEmail,
	}
	if err := config.DB.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
