package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"journalx/internal/auth"
	"journalx/internal/models"
	"journalx/internal/repository"
	"journalx/internal/service"
)

type EntryHandler struct {
	Entries  *service.EntryService
	Analysis *service.AnalysisService
	Logger   *zap.Logger
}

func (h *EntryHandler) Register(r *gin.Engine) {
	g := r.Group("/api/journal")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:journal_id", h.get)
	g.POST("/:journal_id/chat", h.chat)
}

type createEntryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Emotion     string `json:"emotion"`
	Activity    string `json:"activity"`
	ProfitLoss  string `json:"profit_loss"`
	ImageURL    string `json:"image_url"`
	ImagePath   string `json:"image_path"`
}

type historyItem struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

func toHistory(msgs []models.JournalMessage) []historyItem {
	out := make([]historyItem, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, historyItem{Role: m.Role, Text: m.Text})
	}
	return out
}

// @Summary Submit a journal entry and get initial AI commentary
// @Tags journal
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Router /api/journal [post]
func (h *EntryHandler) create(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err.Error())
		return
	}
	pl := decimal.Zero
	if strings.TrimSpace(req.ProfitLoss) != "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(req.ProfitLoss))
		if err != nil {
			ValidationError(c, "profit_loss must be a number")
			return
		}
		pl = parsed
	}

	result, err := h.Entries.CreateEntry(c.Request.Context(), auth.UID(c), service.CreateEntryInput{
		Title:       req.Title,
		Description: req.Description,
		Emotion:     req.Emotion,
		Activity:    req.Activity,
		ProfitLoss:  pl,
		ImageURL:    req.ImageURL,
		ImagePath:   req.ImagePath,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	Created(c, gin.H{
		"id":       result.ID,
		"response": result.Response,
		"history":  toHistory(result.History),
	})
}

func (h *EntryHandler) list(c *gin.Context) {
	params := repository.ListJournalEntriesParams{
		Limit:   intQuery(c, "limit", 50),
		Offset:  intQuery(c, "offset", 0),
		Since:   timeQueryPtr(c, "since"),
		Until:   timeQueryPtr(c, "until"),
		OrderBy: "created_at",
		Asc:     boolPtr(false),
	}
	items, total, err := h.Entries.List(c.Request.Context(), auth.UID(c), params)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(params.Limit, params.Offset, total))
}

// get returns the entry merged with its analysis state; fetching an entry
// with an unanalyzed screenshot triggers the (memoized) vision analysis.
func (h *EntryHandler) get(c *gin.Context) {
	journalID := strings.TrimSpace(c.Param("journal_id"))
	out, err := h.Entries.Get(c.Request.Context(), auth.UID(c), journalID)
	if err != nil {
		h.fail(c, err)
		return
	}
	entry, err := h.Analysis.EnsureAnalysis(c.Request.Context(), out.Entry)
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, entryPayload(entry, out.History), nil)
}

type chatRequest struct {
	Input string `json:"input" binding:"required"`
}

// @Summary Ask a follow-up question about a journal entry
// @Tags journal
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/journal/{journal_id}/chat [post]
func (h *EntryHandler) chat(c *gin.Context) {
	journalID := strings.TrimSpace(c.Param("journal_id"))
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err.Error())
		return
	}
	result, err := h.Entries.FollowUp(c.Request.Context(), auth.UID(c), journalID, req.Input)
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, gin.H{
		"response": result.Response,
		"history":  toHistory(result.History),
	}, nil)
}

func entryPayload(entry *models.JournalEntry, history []models.JournalMessage) gin.H {
	payload := gin.H{
		"id":           entry.ID,
		"title":        entry.Title,
		"description":  entry.Description,
		"emotion":      entry.Emotion,
		"activity":     entry.Activity,
		"profit_loss":  entry.ProfitLoss,
		"created_at":   entry.CreatedAt.UTC().Format(time.RFC3339),
		"history":      toHistory(history),
		"has_analysis": entry.HasAnalysis(),
	}
	if entry.ImageURL != nil {
		payload["image_url"] = *entry.ImageURL
	}
	if entry.ImagePath != nil {
		payload["image_path"] = *entry.ImagePath
	}
	if len(entry.Quotes) > 0 {
		payload["quotes"] = entry.Quotes
	}
	if entry.HasAnalysis() {
		payload["analysis"] = *entry.Analysis
		if entry.AnalyzedAt != nil {
			payload["analyzed_at"] = entry.AnalyzedAt.UTC().Format(time.RFC3339)
		}
		// analysis_type is only surfaced for degraded results.
		if entry.AnalysisType != nil && *entry.AnalysisType == models.AnalysisTypeFallback {
			payload["analysis_type"] = *entry.AnalysisType
			if entry.AnalysisWarning != nil {
				payload["analysis_warning"] = *entry.AnalysisWarning
			}
		}
	}
	return payload
}

func (h *EntryHandler) fail(c *gin.Context, err error) {
	var perr *service.ProviderError
	switch {
	case errors.Is(err, service.ErrNotFound):
		Error(c, http.StatusNotFound, "journal not found", nil)
	case errors.As(err, &perr):
		if h.Logger != nil {
			h.Logger.Warn("ai provider call failed", zap.Error(perr.Unwrap()))
		}
		Error(c, http.StatusBadGateway, "provider_error", map[string]any{
			"details": perr.Unwrap().Error(),
		})
	default:
		if h.Logger != nil {
			h.Logger.Error("journal request failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
