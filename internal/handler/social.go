package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"journalx/internal/auth"
	"journalx/internal/live"
	"journalx/internal/repository"
	"journalx/internal/service"
)

type SocialHandler struct {
	Social *service.SocialService
	Hub    *live.Hub
	Logger *zap.Logger
}

func (h *SocialHandler) Register(r *gin.Engine) {
	g := r.Group("/api/posts")
	g.POST("", h.createPost)
	g.GET("", h.listPosts)
	g.GET("/:post_id", h.getPost)
	g.DELETE("/:post_id", h.deletePost)
	g.POST("/:post_id/comments", h.addComment)
	g.GET("/:post_id/comments", h.listComments)
	g.DELETE("/:post_id/comments/:comment_id", h.deleteComment)
	g.POST("/:post_id/like", h.like)
	g.DELETE("/:post_id/like", h.unlike)
	g.GET("/:post_id/live", h.live)
}

type createPostRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *SocialHandler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err.Error())
		return
	}
	claims, _ := auth.ClaimsFromContext(c)
	post, err := h.Social.CreatePost(c.Request.Context(), claims.UID, claims.Username, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	Created(c, post)
}

func (h *SocialHandler) listPosts(c *gin.Context) {
	params := repository.ListPostsParams{
		AuthorID: strQueryPtr(c, "author_id"),
		Limit:    intQuery(c, "limit", 50),
		Offset:   intQuery(c, "offset", 0),
	}
	items, total, err := h.Social.ListPosts(c.Request.Context(), auth.UID(c), params)
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, items, paginationMeta(params.Limit, params.Offset, total))
}

func (h *SocialHandler) getPost(c *gin.Context) {
	post, err := h.Social.GetPost(c.Request.Context(), auth.UID(c), strings.TrimSpace(c.Param("post_id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, post, nil)
}

func (h *SocialHandler) deletePost(c *gin.Context) {
	err := h.Social.DeletePost(c.Request.Context(), strings.TrimSpace(c.Param("post_id")), auth.UID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, gin.H{"deleted": true}, nil)
}

type addCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *SocialHandler) addComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err.Error())
		return
	}
	claims, _ := auth.ClaimsFromContext(c)
	comment, err := h.Social.AddComment(c.Request.Context(),
		strings.TrimSpace(c.Param("post_id")), claims.UID, claims.Username, req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	Created(c, comment)
}

func (h *SocialHandler) listComments(c *gin.Context) {
	items, err := h.Social.ListComments(c.Request.Context(), strings.TrimSpace(c.Param("post_id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, items, nil)
}

func (h *SocialHandler) deleteComment(c *gin.Context) {
	err := h.Social.DeleteComment(c.Request.Context(),
		strings.TrimSpace(c.Param("post_id")),
		strings.TrimSpace(c.Param("comment_id")),
		auth.UID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, gin.H{"deleted": true}, nil)
}

func (h *SocialHandler) like(c *gin.Context) {
	created, err := h.Social.Like(c.Request.Context(), strings.TrimSpace(c.Param("post_id")), auth.UID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, gin.H{"liked": true, "created": created}, nil)
}

func (h *SocialHandler) unlike(c *gin.Context) {
	err := h.Social.Unlike(c.Request.Context(), strings.TrimSpace(c.Param("post_id")), auth.UID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	Ok(c, gin.H{"liked": false}, nil)
}

// live upgrades to a websocket and streams the post's like/comment events
// until the client goes away.
func (h *SocialHandler) live(c *gin.Context) {
	postID := strings.TrimSpace(c.Param("post_id"))
	if h.Hub == nil || postID == "" {
		Error(c, http.StatusNotFound, "post not found", nil)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	events, cancel := h.Hub.Subscribe(postID)
	defer cancel()

	// CloseRead surfaces client disconnects through ctx.
	ctx := conn.CloseRead(c.Request.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case b := <-events:
			if err := conn.Write(ctx, websocket.MessageText, b); err != nil {
				if !errors.Is(err, context.Canceled) && h.Logger != nil {
					h.Logger.Debug("websocket write failed", zap.Error(err))
				}
				return
			}
		}
	}
}

func (h *SocialHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		Error(c, http.StatusNotFound, "not found", nil)
		return
	}
	if h.Logger != nil {
		h.Logger.Error("social request failed", zap.Error(err))
	}
	Error(c, http.StatusInternalServerError, "internal error", nil)
}
