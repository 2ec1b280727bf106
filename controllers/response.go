// controllers/response.go
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

type ResponseController struct {
	Correlator *services.ResponseCorrelator
}

// IntakeInput is what a customer submits through the response link.
type IntakeInput struct {
	ResponseType string     `json:"responseType" binding:"required,oneof=paid help issue"`
	PaidAmount   *float64   `json:"paidAmount" binding:"omitempty,min=0"`
	PaidDate     *time.Time `json:"paidDate"`
	Notes        string     `json:"notes"`
}

// VerifyInput is the human verification decision on a staged response.
type VerifyInput struct {
	Approve    bool     `json:"approve"`
	PaidAmount *float64 `json:"paidAmount" binding:"omitempty,min=0"`
}

// Intake is the public endpoint behind the tokenized response link.
// Token possession is the only authentication; an unknown token changes
// nothing and returns 404.
func (rc *ResponseController) Intake(c *gin.Context) {
	token := c.Param("token")

	var input IntakeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	response, err := rc.Correlator.Receive(c.Request.Context(), token, services.ResponseInput{
		Type:       models.ResponseType(input.ResponseType),
		PaidAmount: input.PaidAmount,
		PaidDate:   input.PaidDate,
		Notes:      input.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			utils.RespondWithError(c, http.StatusNotFound, "Invalid token")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record response")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Response recorded",
		"responseType": response.ResponseType,
	})
}

// GetResponses lists staged customer responses for the admin queue,
// filtered by verification status (default: pending).
func (rc *ResponseController) GetResponses(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	verification := c.DefaultQuery("verification", string(models.VerificationPending))

	var responses []models.ReminderResponse
	if err := config.DB.
		Where("account_id = ? AND verification = ?", accountID, verification).
		Order("created_at DESC").
		Find(&responses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve responses")
		return
	}

	c.JSON(http.StatusOK, responses)
}

// Verify applies the confirm/reject decision to a pending response and
// transitions the linked debt accordingly.
func (rc *ResponseController) Verify(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	responseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input VerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	response, err := rc.Correlator.Verify(c.Request.Context(), accountID, responseID,
		input.Approve, input.PaidAmount, currentEmail(c), time.Now())
	if err != nil {
		if errors.Is(err, services.ErrAlreadyVerified) {
			utils.RespondWithError(c, http.StatusConflict, "Response already verified or rejected")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to verify response")
		return
	}

	c.JSON(http.StatusOK, response)
}
