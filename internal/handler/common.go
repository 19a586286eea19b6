package handler

import (
	"net/http"
	"time"

	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user set by the auth middleware.
// Writes the error response itself when the user is missing.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(middleware.CtxUser)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return user, true
}

type transactionResp struct {
	ID       uint      `json:"id"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:       t.ID,
		Amount:   t.Amount,
		Category: t.Category,
		Type:     t.Type,
		Date:     t.Date,
	}
}
