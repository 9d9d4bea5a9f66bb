package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Journal X API

Trading journal backend with AI commentary, screenshot analysis, a balance
ledger, and a social layer.

## Auth

All /api/* routes require a Bearer JWT. Health endpoints are public.

## Notable Routes

- GET /healthz
- GET /readyz
- GET /swagger/index.html
- POST /api/journal
- GET /api/journal
- GET /api/journal/{journal_id}
- POST /api/journal/{journal_id}/chat
- GET /api/posts
- POST /api/posts
- POST /api/posts/{post_id}/comments
- POST /api/posts/{post_id}/like
- GET /api/posts/{post_id}/live (websocket)
- GET /api/settings
- POST /api/settings/deposit
- POST /api/settings/withdraw
- POST /api/settings/balance
- POST /api/settings/blown
- GET /api/profile
- PUT /api/profile
- POST /api/newsletter/subscribe

## Screenshot analysis

Fetching a journal entry that references a screenshot triggers the vision
analysis once; the stored result (AI or fallback template) is returned on
every later fetch.
`)
	})
}
