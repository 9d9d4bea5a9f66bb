package models

import "time"

type Post struct {
	ID         string    `gorm:"type:varchar(36);primaryKey"`
	AuthorID   string    `gorm:"type:varchar(64);not null;index"`
	AuthorName string    `gorm:"type:varchar(100)"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (Post) TableName() string {
	return "posts"
}

type PostComment struct {
	ID         string    `gorm:"type:varchar(36);primaryKey"`
	PostID     string    `gorm:"type:varchar(36);not null;index"`
	AuthorID   string    `gorm:"type:varchar(64);not null;index"`
	AuthorName string    `gorm:"type:varchar(100)"`
	Text       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (PostComment) TableName() string {
	return "post_comments"
}

// PostLike is keyed (post_id, user_id) so "has this user liked" is a lookup,
// not a scan over every like document.
type PostLike struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	PostID    string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_post_user,priority:1;index"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_post_user,priority:2"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
