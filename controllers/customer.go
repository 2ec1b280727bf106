// controllers/customer.go
package controllers

import (
	"errors"
	"net/http"

	"debtflow-backend/config"
	"debtflow-backend/models"
	"debtflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

// CreateCustomer creates a new customer for the account
func CreateCustomer(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// A customer must be reachable on at least one channel
	if input.Email == "" && input.Phone == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer needs an email or a phone number")
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	if input.Phone != "" {
		var existing models.Customer
		if err := config.DB.Where("account_id = ? AND phone = ?", accountID, input.Phone).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	customer := models.Customer{
		AccountID: accountID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Notes:     input.Notes,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers for the account
func GetCustomers(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var customers []models.Customer
	if err := config.DB.Where("account_id = ?", accountID).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("Debts").
		Where("account_id = ? AND id = ?", accountID, customerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("account_id = ? AND id = ?", accountID, customerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		if customer.Phone != *input.Phone && *input.Phone != "" {
			var existing models.Customer
			if err := config.DB.Where("account_id = ? AND phone = ?", accountID, *input.Phone).
				First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer
func DeleteCustomer(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Customers with open debts cannot be removed; debts are never
	// deleted, only transitioned.
	var openDebts int64
	config.DB.Model(&models.Debt{}).
		Where("customer_id = ? AND status <> ?", customerID, models.DebtPaid).
		Count(&openDebts)
	if openDebts > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Customer has open debts")
		return
	}

	result := config.DB.Where("account_id = ? AND id = ?", accountID, customerID).
		Delete(&models.Customer{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
