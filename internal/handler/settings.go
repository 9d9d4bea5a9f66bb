package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"journalx/internal/auth"
	"journalx/internal/models"
	"journalx/internal/repository"
	"journalx/internal/service"
)

type SettingsHandler struct {
	Repo   repository.Repository
	Ledger *service.LedgerService
	Logger *zap.Logger
}

func (h *SettingsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/settings")
	g.GET("", h.get)
	g.PUT("/preferences", h.putPreferences)
	g.POST("/deposit", h.deposit)
	g.POST("/withdraw", h.withdraw)
	g.POST("/balance", h.setBalance)
	g.POST("/blown", h.markBlown)
	g.GET("/deposits", h.listDeposits)
	g.GET("/blown", h.listBlown)
}

func (h *SettingsHandler) get(c *gin.Context) {
	settings, err := h.Repo.GetUserSettings(c.Request.Context(), auth.UID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if settings == nil {
		settings = &models.UserSettings{UID: auth.UID(c), AccountBalance: decimal.Zero}
	}
	Ok(c, settings, nil)
}

type preferencesRequest struct {
	DarkMode              *bool `json:"dark_mode"`
	MousePsychologyAlerts *bool `json:"mouse_psychology_alerts"`
}

func (h *SettingsHandler) putPreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err.Error())
		return
	}
	if req.DarkMode == nil && req.MousePsychologyAlerts == nil {
		ValidationError(c, "nothing to update")
		return
	}
	err := h.Repo.UpdateUserPreferences(c.Request.Context(), auth.UID(c), req.DarkMode, req.MousePsychologyAlerts)
	if err != nil {
		h.fail(c, err)
		return
	}
	settings, err := h.Repo.GetUserSettings(c.Request.Context(), auth.UID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, settings, nil)
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

func (h *SettingsHandler) deposit(c *gin.Context) {
	h.ledgerOp(c, h.Ledger.Deposit)
}

func (h *SettingsHandler) withdraw(c *gin.Context) {
	h.ledgerOp(c, h.Ledger.Withdraw)
}

func (h *SettingsHandler) setBalance(c *gin.Context) {
	h.ledgerOp(c, h.Ledger.SetBalance)
}

func (h *SettingsHandler) ledgerOp(c *gin.Context, op func(ctx context.Context, uid string, amount decimal.Decimal) (*service.LedgerResult, error)) {
	amount, ok := h.parseAmount(c)
	if !ok {
		return
	}
	result, err := op(c.Request.Context(), auth.UID(c), amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, gin.H{
		"balance": result.Balance,
		"record":  result.Record,
	}, nil)
}

func (h *SettingsHandler) markBlown(c *gin.Context) {
	result, err := h.Ledger.MarkBlown(c.Request.Context(), auth.UID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, gin.H{
		"balance":          decimal.Zero,
		"previous_balance": result.PreviousBalance,
	}, nil)
}

func (h *SettingsHandler) listDeposits(c *gin.Context) {
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)
	items, err := h.Repo.ListDepositRecords(c.Request.Context(), auth.UID(c), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, items, nil)
}

func (h *SettingsHandler) listBlown(c *gin.Context) {
	items, err := h.Repo.ListBlownAccountRecords(c.Request.Context(), auth.UID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, items, nil)
}

func (h *SettingsHandler) parseAmount(c *gin.Context) (decimal.Decimal, bool) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err.Error())
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		ValidationError(c, "amount must be a number")
		return decimal.Zero, false
	}
	return amount, true
}

func (h *SettingsHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInsufficientFunds):
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.Error("settings request failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
