// controllers/debt.go
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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateDebtInput defines the expected JSON structure for creating a debt
type CreateDebtInput struct {
	CustomerID    uuid.UUID `json:"customerId" binding:"required"`
	InvoiceNumber string    `json:"invoiceNumber" binding:"required"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	PaidAmount    float64   `json:"paidAmount" binding:"min=0"`
	DueDate       time.Time `json:"dueDate" binding:"required"`
	Channel       string    `json:"channel" binding:"omitempty,oneof=email whatsapp"`
}

// UpdateDebtInput defines the expected JSON structure for updating a debt
type UpdateDebtInput struct {
	Description *string    `json:"description"`
	PaidAmount  *float64   `json:"paidAmount" binding:"omitempty,min=0"`
	DueDate     *time.Time `json:"dueDate"`
	Channel     *string    `json:"channel" binding:"omitempty,oneof=email whatsapp"`
}

// CreateDebt registers an outstanding debt. Malformed amounts are
// rejected here, at the write boundary; the scheduler never sees them.
func CreateDebt(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var input CreateDebtInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.PaidAmount > input.Amount {
		utils.RespondWithError(c, http.StatusBadRequest, "Paid amount cannot exceed total amount")
		return
	}

	// Validate customer exists in the same account
	var customer models.Customer
	if err := config.DB.Where("account_id = ? AND id = ?", accountID, input.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Invoice numbers are unique per account
	var existing models.Debt
	if err := config.DB.Where("account_id = ? AND invoice_number = ?", accountID, input.InvoiceNumber).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Debt with this invoice number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	debt := models.Debt{
		AccountID:     accountID,
		CustomerID:    input.CustomerID,
		InvoiceNumber: input.InvoiceNumber,
		Description:   input.Description,
		Amount:        input.Amount,
		PaidAmount:    input.PaidAmount,
		DueDate:       input.DueDate,
		Channel:       models.Channel(input.Channel),
	}
	debt.Status = services.EvaluateDebtStatus(debt, time.Now())

	if err := config.DB.Create(&debt).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create debt")
		return
	}

	c.JSON(http.StatusCreated, debt)
}

// GetDebts retrieves the account's debts, optionally filtered by status
// or customer. Statuses are re-derived on read so due-date rollovers are
// reflected without waiting for a scheduler cycle.
func GetDebts(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	query := config.DB.Where("account_id = ?", accountID)
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var debts []models.Debt
	if err := query.Order("due_date ASC").Find(&debts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve debts")
		return
	}

	now := time.Now()
	for i := range debts {
		refreshDebtStatus(&debts[i], now)
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]models.Debt, 0, len(debts))
		for _, d := range debts {
			if d.Status == models.DebtStatus(status) {
				filtered = append(filtered, d)
			}
		}
		debts = filtered
	}

	c.JSON(http.StatusOK, debts)
}

// GetDebt retrieves a specific debt with its reminder history
func GetDebt(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	debtID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var debt models.Debt
	if err := config.DB.Preload("Reminders").
		Where("account_id = ? AND id = ?", accountID, debtID).
		First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Debt not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	refreshDebtStatus(&debt, time.Now())

	c.JSON(http.StatusOK, debt)
}

// UpdateDebt updates a debt's description, payments, due date or channel
// override. There is no delete: paid debts are retained for audit.
func UpdateDebt(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	debtID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateDebtInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var debt models.Debt
	if err := config.DB.Where("account_id = ? AND id = ?", accountID, debtID).
		First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Debt not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Description != nil {
		debt.Description = *input.Description
	}
	if input.DueDate != nil {
		debt.DueDate = *input.DueDate
	}
	if input.Channel != nil {
		debt.Channel = models.Channel(*input.Channel)
	}
	if input.PaidAmount != nil {
		if *input.PaidAmount > debt.Amount {
			utils.RespondWithError(c, http.StatusBadRequest, "Paid amount cannot exceed total amount")
			return
		}
		debt.PaidAmount = *input.PaidAmount
		// A recorded payment supersedes a standing claim
		if debt.Status == models.DebtPaymentClaimed {
			debt.Status = models.DebtPending
		}
	}

	debt.Status = services.EvaluateDebtStatus(debt, time.Now())

	if err := config.DB.Save(&debt).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update debt")
		return
	}

	c.JSON(http.StatusOK, debt)
}

// refreshDebtStatus persists a re-derived status when the stored one has
// gone stale (e.g. a debt crossed its due date since the last write).
func refreshDebtStatus(debt *models.Debt, now time.Time) {
	current := services.EvaluateDebtStatus(*debt, now)
	if current == debt.Status {
		return
	}
	config.DB.Model(&models.Debt{}).Where("id = ?", debt.ID).Update("status", current)
	debt.Status = current
}
