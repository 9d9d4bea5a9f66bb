package service

import (
	"context"
	"errors"
	"testing"
)

func TestLike_IdempotentPerUser(t *testing.T) {
	repo := newStubRepo()
	svc := &SocialService{Repo: repo}

	post, err := svc.CreatePost(context.Background(), "author", "Alice", "took profit too early again")
	if err != nil {
		t.Fatalf("create err=%v", err)
	}

	created, err := svc.Like(context.Background(), post.ID, "fan")
	if err != nil {
		t.Fatalf("like err=%v", err)
	}
	if !created {
		t.Fatalf("first like not created")
	}
	created, err = svc.Like(context.Background(), post.ID, "fan")
	if err != nil {
		t.Fatalf("second like err=%v", err)
	}
	if created {
		t.Fatalf("duplicate like reported as created")
	}
	n, _ := repo.CountLikes(context.Background(), post.ID)
	if n != 1 {
		t.Fatalf("likes=%d want 1", n)
	}
}

func TestLike_MissingPost(t *testing.T) {
	svc := &SocialService{Repo: newStubRepo()}
	if _, err := svc.Like(context.Background(), "nope", "fan"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestDeleteComment_NonAuthorDeletesNothing(t *testing.T) {
	repo := newStubRepo()
	svc := &SocialService{Repo: repo}

	post, err := svc.CreatePost(context.Background(), "author", "Alice", "post")
	if err != nil {
		t.Fatalf("create err=%v", err)
	}
	comment, err := svc.AddComment(context.Background(), post.ID, "commenter", "Bob", "nice trade")
	if err != nil {
		t.Fatalf("comment err=%v", err)
	}

	err = svc.DeleteComment(context.Background(), post.ID, comment.ID, "someone-else")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
	remaining, _ := repo.ListCommentsByPostID(context.Background(), post.ID)
	if len(remaining) != 1 {
		t.Fatalf("comment deleted by non-author")
	}

	if err := svc.DeleteComment(context.Background(), post.ID, comment.ID, "commenter"); err != nil {
		t.Fatalf("owner delete err=%v", err)
	}
	remaining, _ = repo.ListCommentsByPostID(context.Background(), post.ID)
	if len(remaining) != 0 {
		t.Fatalf("comment survived owner delete")
	}
}

func TestDeletePost_NonAuthorRejected(t *testing.T) {
	repo := newStubRepo()
	svc := &SocialService{Repo: repo}

	post, err := svc.CreatePost(context.Background(), "author", "Alice", "post")
	if err != nil {
		t.Fatalf("create err=%v", err)
	}
	if err := svc.DeletePost(context.Background(), post.ID, "intruder"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
	if repo.posts[post.ID] == nil {
		t.Fatalf("post deleted by non-author")
	}
	if err := svc.DeletePost(context.Background(), post.ID, "author"); err != nil {
		t.Fatalf("owner delete err=%v", err)
	}
}

func TestGetPost_DecoratesLikeState(t *testing.T) {
	repo := newStubRepo()
	svc := &SocialService{Repo: repo}

	post, err := svc.CreatePost(context.Background(), "author", "Alice", "post")
	if err != nil {
		t.Fatalf("create err=%v", err)
	}
	if _, err := svc.Like(context.Background(), post.ID, "fan1"); err != nil {
		t.Fatalf("like err=%v", err)
	}
	if _, err := svc.Like(context.Background(), post.ID, "fan2"); err != nil {
		t.Fatalf("like err=%v", err)
	}

	view, err := svc.GetPost(context.Background(), "fan1", post.ID)
	if err != nil {
		t.Fatalf("get err=%v", err)
	}
	if view.LikeCount != 2 {
		t.Fatalf("like_count=%d want 2", view.LikeCount)
	}
	if !view.LikedByMe {
		t.Fatalf("liked_by_me=false for liker")
	}

	other, err := svc.GetPost(context.Background(), "stranger", post.ID)
	if err != nil {
		t.Fatalf("get err=%v", err)
	}
	if other.LikedByMe {
		t.Fatalf("liked_by_me=true for stranger")
	}
}

func TestUnlike_RemovesOnlyExisting(t *testing.T) {
	repo := newStubRepo()
	svc := &SocialService{Repo: repo}

	post, err := svc.CreatePost(context.Background(), "author", "Alice", "post")
	if err != nil {
		t.Fatalf("create err=%v", err)
	}
	if _, err := svc.Like(context.Background(), post.ID, "fan"); err != nil {
		t.Fatalf("like err=%v", err)
	}
	if err := svc.Unlike(context.Background(), post.ID, "fan"); err != nil {
		t.Fatalf("unlike err=%v", err)
	}
	if err := svc.Unlike(context.Background(), post.ID, "fan"); err != nil {
		t.Fatalf("second unlike err=%v", err)
	}
	n, _ := repo.CountLikes(context.Background(), post.ID)
	if n != 0 {
		t.Fatalf("likes=%d want 0", n)
	}
}
