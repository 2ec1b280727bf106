// controllers/webhook.go
package controllers

import (
	"net/http"

	"debtflow-backend/models"
	"debtflow-backend/repository"
	"debtflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type WebhookController struct {
	Ledger repository.ReminderRepository
}

// DeliveryStatusInput mirrors the provider callback payload. Twilio
// posts form-encoded status updates keyed by message SID.
type DeliveryStatusInput struct {
	MessageSid    string `form:"MessageSid" json:"messageSid" binding:"required"`
	MessageStatus string `form:"MessageStatus" json:"messageStatus" binding:"required"`
}

// DeliveryStatus ingests asynchronous provider delivery callbacks and
// advances the matching ledger row. Unknown provider ids are ignored
// with a 200 so the provider does not retry forever.
func (wc *WebhookController) DeliveryStatus(c *gin.Context) {
	var input DeliveryStatusInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid callback payload")
		return
	}

	status, ok := mapProviderStatus(input.MessageStatus)
	if !ok {
		// Intermediate provider states (accepted, sending, ...) carry no
		// ledger transition.
		c.Status(http.StatusOK)
		return
	}

	if err := wc.Ledger.UpdateDeliveryStatus(c.Request.Context(), input.MessageSid, status); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update delivery status")
		return
	}

	c.Status(http.StatusOK)
}

func mapProviderStatus(providerStatus string) (models.ReminderStatus, bool) {
	switch providerStatus {
	case "sent":
		return models.ReminderSent, true
	case "delivered":
		return models.ReminderDelivered, true
	case "read":
		return models.ReminderRead, true
	case "failed", "undelivered":
		return models.ReminderFailed, true
	default:
		return "", false
	}
}
