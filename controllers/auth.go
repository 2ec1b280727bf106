package controllers

import (
	"errors"
	"net/http"
	"time"

	"debtflow-backend/config"
	"debtflow-backend/models"
	"debtflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token. Account provisioning
// and session management live in an external identity service; this
// endpoint only covers the token the API middleware validates.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var account models.Account
	if err := config.DB.Where("email = ? AND is_active = ?", input.Email, true).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, account.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(account.ID.String(), account.Email)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&account).Update("last_login", now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"account": gin.H{
			"id":          account.ID,
			"companyName": account.CompanyName,
			"email":       account.Email,
			"plan":        account.Plan,
		},
	})
}

// Me returns the authenticated account profile
func Me(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var account models.Account
	if err := config.DB.First(&account, "id = ?", accountID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          account.ID,
		"companyName": account.CompanyName,
		"email":       account.Email,
		"phone":       account.Phone,
		"plan":        account.Plan,
		"lastLogin":   account.LastLogin,
	})
}
