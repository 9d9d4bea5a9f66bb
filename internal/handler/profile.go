package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"journalx/internal/auth"
	"journalx/internal/models"
	"journalx/internal/repository"
)

type ProfileHandler struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (h *ProfileHandler) Register(r *gin.Engine) {
	g := r.Group("/api/profile")
	g.GET("", h.get)
	g.PUT("", h.put)
}

func (h *ProfileHandler) get(c *gin.Context) {
	profile, err := h.Repo.GetUserProfileByUID(c.Request.Context(), auth.UID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if profile == nil {
		Error(c, http.StatusNotFound, "profile not found", nil)
		return
	}
	Ok(c, profile, nil)
}

type putProfileRequest struct {
	Username          string                   `json:"username"`
	Email             string                   `json:"email" binding:"omitempty,email"`
	Phone             string                   `json:"phone"`
	Avatar            string                   `json:"avatar"`
	TradingExperience string                   `json:"trading_experience"`
	DailyLossLimit    string                   `json:"daily_loss_limit"`
	AlertPrefs        *models.AlertPreferences `json:"alert_prefs"`
}

// put is create-or-merge keyed by the authenticated uid; the payload cannot
// address another user's profile.
func (h *ProfileHandler) put(c *gin.Context) {
	var req putProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err.Error())
		return
	}

	limit := decimal.Zero
	if strings.TrimSpace(req.DailyLossLimit) != "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(req.DailyLossLimit))
		if err != nil || parsed.Sign() < 0 {
			ValidationError(c, "daily_loss_limit must be a non-negative number")
			return
		}
		limit = parsed
	}

	profile := &models.UserProfile{
		UID:               auth.UID(c),
		Username:          strings.TrimSpace(req.Username),
		Email:             strings.TrimSpace(req.Email),
		Phone:             strings.TrimSpace(req.Phone),
		Avatar:            strings.TrimSpace(req.Avatar),
		TradingExperience: strings.TrimSpace(req.TradingExperience),
		DailyLossLimit:    limit,
	}
	if req.AlertPrefs != nil {
		b, err := json.Marshal(req.AlertPrefs)
		if err != nil {
			ValidationError(c, "invalid alert_prefs")
			return
		}
		profile.AlertPrefs = datatypes.JSON(b)
	}

	if err := h.Repo.UpsertUserProfile(c.Request.Context(), profile); err != nil {
		h.fail(c, err)
		return
	}
	stored, err := h.Repo.GetUserProfileByUID(c.Request.Context(), auth.UID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, stored, nil)
}

func (h *ProfileHandler) fail(c *gin.Context, err error) {
	if h.Logger != nil {
		h.Logger.Error("profile request failed", zap.Error(err))
	}
	Error(c, http.StatusInternalServerError, "internal error", nil)
}
