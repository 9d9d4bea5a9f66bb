package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"journalx/internal/auth"
	"journalx/internal/models"
	"journalx/internal/repository"
)

type NewsletterHandler struct {
	Repo    repository.Repository
	Enabled bool
	Logger  *zap.Logger
}

func (h *NewsletterHandler) Register(r *gin.Engine) {
	g := r.Group("/api/newsletter")
	g.POST("/subscribe", h.subscribe)
	g.POST("/unsubscribe", h.unsubscribe)
}

type newsletterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *NewsletterHandler) subscribe(c *gin.Context) {
	if !h.Enabled {
		Error(c, http.StatusServiceUnavailable, "newsletter disabled", nil)
		return
	}
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err.Error())
		return
	}
	sub := &models.NewsletterSubscription{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		UserID:       auth.UID(c),
		SubscribedAt: time.Now().UTC(),
		IsActive:     true,
	}
	if err := h.Repo.UpsertNewsletterSubscription(c.Request.Context(), sub); err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, gin.H{"subscribed": true}, nil)
}

func (h *NewsletterHandler) unsubscribe(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err.Error())
		return
	}
	n, err := h.Repo.SetNewsletterActive(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)), false)
	if err != nil {
		h.fail(c, err)
		return
	}
	if n == 0 {
		Error(c, http.StatusNotFound, "subscription not found", nil)
		return
	}
	Ok(c, gin.H{"subscribed": false}, nil)
}

func (h *NewsletterHandler) fail(c *gin.Context, err error) {
	if h.Logger != nil {
		h.Logger.Error("newsletter request failed", zap.Error(err))
	}
	Error(c, http.StatusInternalServerError, "internal error", nil)
}
