package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
)

// LedgerHandler serves the transaction views: home/index listing, add,
// search, sort and clear-history.
type LedgerHandler struct {
	Ledger *ledger.Service
}

func NewLedgerHandler(svc *ledger.Service) *LedgerHandler {
	return &LedgerHandler{Ledger: svc}
}

// renderLedger writes the standard view payload: current balance, the given
// transaction rows and the user's category list.
func (h *LedgerHandler) renderLedger(c *gin.Context, user *models.User, txs []models.Transaction) {
	balance, err := h.Ledger.BalanceOf(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load balance")
		return
	}

	categories, err := h.Ledger.Categories(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load categories")
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}

	util.Success(c, util.Response{
		"balance":      balance.Amount,
		"transactions": items,
		"categories":   categories,
	})
}

// Home shows the balance, all transactions and the category list.
func (h *LedgerHandler) Home(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	txs, err := h.Ledger.List(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}
	h.renderLedger(c, user, txs)
}

// AddTransaction records a transaction from the index form fields
// add_amount, add_category and add_type, then re-renders the full list.
func (h *LedgerHandler) AddTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	amount, err := util.ParseAmount(c.PostForm("add_amount"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a valid amount")
		return
	}

	category := strings.TrimSpace(c.PostForm("add_category"))
	if err := util.ValidateCategory(category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	txType := c.PostForm("add_type")
	if txType != models.TypeIncome && txType != models.TypeExpense {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "type must be income or expense")
		return
	}

	if _, err := h.Ledger.Add(user.ID, amount, category, txType); err != nil {
		switch {
		case errors.Is(err, ledger.ErrAmountNotPositive), errors.Is(err, ledger.ErrInvalidType):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		}
		return
	}

	txs, err := h.Ledger.List(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}
	h.renderLedger(c, user, txs)
}

// Search filters by the form fields search_category and search_amount.
func (h *LedgerHandler) Search(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	category := c.PostForm("search_category")

	var amount *float64
	if s := c.PostForm("search_amount"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "please enter a valid amount")
			return
		}
		amount = &f
	}

	txs, err := h.Ledger.Filter(user.ID, category, amount)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to filter transactions")
		return
	}
	h.renderLedger(c, user, txs)
}

// Sort orders the list by the form fields sort_by and sort_order.
func (h *LedgerHandler) Sort(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	by := c.DefaultPostForm("sort_by", ledger.SortByDate)
	order := c.DefaultPostForm("sort_order", ledger.OrderDesc)

	txs, err := h.Ledger.Sorted(user.ID, by, order)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to sort transactions")
		return
	}
	h.renderLedger(c, user, txs)
}

// ClearHistory deletes all of the user's transactions and redirects back.
// The stored balance is left untouched on purpose.
func (h *LedgerHandler) ClearHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Ledger.ClearHistory(user.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to clear history")
		return
	}

	c.Redirect(http.StatusFound, "/index")
}

// AddTransactionRedirect is a dead legacy endpoint kept for compatibility;
// it only bounces the client back to the index.
func (h *LedgerHandler) AddTransactionRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, "/index")
}
