// controllers/template.go
package controllers

import (
	"errors"
	"net/http"

	"debtflow-backend/config"
	"debtflow-backend/models"
	"debtflow-backend/services"
	"debtflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TemplateController carries the audit sink so template changes show up
// in the admin logs view.
type TemplateController struct {
	Audit services.AuditSink
}

// CreateTemplateInput defines the expected JSON structure
type CreateTemplateInput struct {
	Name      string `json:"name" binding:"required"`
	Channel   string `json:"channel" binding:"required,oneof=email whatsapp"`
	Subject   string `json:"subject"`
	Body      string `json:"body" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

// UpdateTemplateInput defines the expected JSON structure
type UpdateTemplateInput struct {
	Name           *string `json:"name"`
	Subject        *string `json:"subject"`
	Body           *string `json:"body"`
	IsDefault      *bool   `json:"isDefault"`
	ApprovalStatus *string `json:"approvalStatus" binding:"omitempty,oneof=draft pending approved"`
}

// CreateTemplate creates a message template. Setting isDefault clears
// any previous default for the same channel in the same transaction, so
// at most one default per account+channel can exist.
func (tc *TemplateController) CreateTemplate(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var input CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	template := models.MessageTemplate{
		AccountID: accountID,
		Name:      input.Name,
		Channel:   models.Channel(input.Channel),
		Subject:   input.Subject,
		Body:      input.Body,
		IsDefault: input.IsDefault,
	}
	// Email needs no provider pre-approval
	if template.Channel == models.ChannelEmail {
		template.ApprovalStatus = models.TemplateApproved
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsDefault {
			if err := tx.Model(&models.MessageTemplate{}).
				Where("account_id = ? AND channel = ? AND is_default = ?", accountID, template.Channel, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&template).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	tc.Audit.RecordUser(c.Request.Context(), accountID, currentEmail(c), models.LogInfo,
		"template_created", "template "+template.Name+" for "+string(template.Channel))
	c.JSON(http.StatusCreated, template)
}

// GetTemplates retrieves all message templates for the account
func (tc *TemplateController) GetTemplates(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	query := config.DB.Where("account_id = ?", accountID)
	if channel := c.Query("channel"); channel != "" {
		query = query.Where("channel = ?", channel)
	}

	var templates []models.MessageTemplate
	if err := query.Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// GetTemplate retrieves a specific template by ID
func (tc *TemplateController) GetTemplate(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var template models.MessageTemplate
	if err := config.DB.Where("account_id = ? AND id = ?", accountID, templateID).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, template)
}

// UpdateTemplate updates an existing template
func (tc *TemplateController) UpdateTemplate(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.MessageTemplate
	if err := config.DB.Where("account_id = ? AND id = ?", accountID, templateID).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		template.Name = *input.Name
	}
	if input.Subject != nil {
		template.Subject = *input.Subject
	}
	if input.Body != nil {
		template.Body = *input.Body
		// A changed WhatsApp body needs re-approval
		if template.Channel == models.ChannelWhatsApp {
			template.ApprovalStatus = models.TemplateDraft
		}
	}
	if input.ApprovalStatus != nil {
		template.ApprovalStatus = models.TemplateApproval(*input.ApprovalStatus)
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsDefault != nil && *input.IsDefault && !template.IsDefault {
			if err := tx.Model(&models.MessageTemplate{}).
				Where("account_id = ? AND channel = ? AND is_default = ?", accountID, template.Channel, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
			template.IsDefault = true
		} else if input.IsDefault != nil && !*input.IsDefault {
			template.IsDefault = false
		}
		return tx.Save(&template).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	tc.Audit.RecordUser(c.Request.Context(), accountID, currentEmail(c), models.LogInfo,
		"template_updated", "template "+template.Name)
	c.JSON(http.StatusOK, template)
}

// DeleteTemplate deletes a template
func (tc *TemplateController) DeleteTemplate(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("account_id = ? AND id = ?", accountID, templateID).
		Delete(&models.MessageTemplate{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}

	tc.Audit.RecordUser(c.Request.Context(), accountID, currentEmail(c), models.LogInfo,
		"template_deleted", "template "+templateID.String())
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}
