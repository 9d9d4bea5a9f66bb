package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"journalx/internal/live"
	"journalx/internal/models"
	"journalx/internal/repository"
)

type SocialService struct {
	Repo   repository.Repository
	Hub    *live.Hub
	Logger *zap.Logger
}

func (s *SocialService) CreatePost(ctx context.Context, authorID, authorName, content string) (*models.Post, error) {
	post := &models.Post{
		ID:         uuid.NewString(),
		AuthorID:   authorID,
		AuthorName: strings.TrimSpace(authorName),
		Content:    strings.TrimSpace(content),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.InsertPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// PostView is a post decorated with like state for the requesting user.
type PostView struct {
	models.Post
	LikeCount int64 `json:"like_count"`
	LikedByMe bool  `json:"liked_by_me"`
}

func (s *SocialService) ListPosts(ctx context.Context, viewerID string, params repository.ListPostsParams) ([]PostView, int64, error) {
	posts, err := s.Repo.ListPosts(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountPosts(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		view, err := s.decorate(ctx, p, viewerID)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

func (s *SocialService) GetPost(ctx context.Context, viewerID, postID string) (*PostView, error) {
	post, err := s.Repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	view, err := s.decorate(ctx, *post, viewerID)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *SocialService) DeletePost(ctx context.Context, postID, authorID string) error {
	n, err := s.Repo.DeletePostByAuthor(ctx, postID, authorID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SocialService) AddComment(ctx context.Context, postID, authorID, authorName, text string) (*models.PostComment, error) {
	post, err := s.Repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	comment := &models.PostComment{
		ID:         uuid.NewString(),
		PostID:     postID,
		AuthorID:   authorID,
		AuthorName: strings.TrimSpace(authorName),
		Text:       strings.TrimSpace(text),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.InsertComment(ctx, comment); err != nil {
		return nil, err
	}
	s.publish(postID, live.EventCommentAdded, comment)
	return comment, nil
}

func (s *SocialService) ListComments(ctx context.Context, postID string) ([]models.PostComment, error) {
	return s.Repo.ListCommentsByPostID(ctx, postID)
}

// DeleteComment removes a comment only when authorID owns it; the ownership
// check lives in the delete predicate, not in the client.
func (s *SocialService) DeleteComment(ctx context.Context, postID, commentID, authorID string) error {
	n, err := s.Repo.DeleteCommentByAuthor(ctx, commentID, authorID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.publish(postID, live.EventCommentDeleted, map[string]string{"comment_id": commentID})
	return nil
}

// Like is idempotent per (post, user); only the first like publishes an
// event.
func (s *SocialService) Like(ctx context.Context, postID, userID string) (bool, error) {
	post, err := s.Repo.GetPostByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, ErrNotFound
	}
	created, err := s.Repo.InsertLike(ctx, &models.PostLike{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return false, err
	}
	if created {
		s.publish(postID, live.EventLikeAdded, map[string]string{"user_id": userID})
	}
	return created, nil
}

func (s *SocialService) Unlike(ctx context.Context, postID, userID string) error {
	n, err := s.Repo.DeleteLike(ctx, postID, userID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.publish(postID, live.EventLikeRemoved, map[string]string{"user_id": userID})
	}
	return nil
}

func (s *SocialService) decorate(ctx context.Context, post models.Post, viewerID string) (PostView, error) {
	count, err := s.Repo.CountLikes(ctx, post.ID)
	if err != nil {
		return PostView{}, err
	}
	liked := false
	if viewerID != "" {
		liked, err = s.Repo.HasLiked(ctx, post.ID, viewerID)
		if err != nil {
			return PostView{}, err
		}
	}
	return PostView{Post: post, LikeCount: count, LikedByMe: liked}, nil
}

func (s *SocialService) publish(postID, eventType string, payload any) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(postID, live.Event{Type: eventType, Payload: payload})
	if s.Logger != nil {
		s.Logger.Debug("social event published",
			zap.String("post_id", postID),
			zap.String("type", eventType),
		)
	}
}
