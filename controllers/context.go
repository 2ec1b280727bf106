package controllers

import (
	"net/http"

	"debtflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentAccountID pulls the authenticated account out of the gin
// context; it writes the error response itself so handlers can bail with
// a bare return.
func currentAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get("accountId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account ID not found in context")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(accountID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid account ID format")
		return uuid.Nil, false
	}
	return id, true
}

func currentEmail(c *gin.Context) string {
	if v, ok := c.Get("email"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
