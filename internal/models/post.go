// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a post authored by a user. Likes and comments are
// hydrated for feed rendering; deletion cascades both.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	Likes     []PostLike `gorm:"foreignKey:PostID" json:"likes"`
	Comments  []Comment  `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// PostLike is the join record for a user liking a post. The unique index
// over (author_id, post_id) is what keeps concurrent toggles from ever
// producing duplicates.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_post_like_once" json:"author_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like_once" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (PostLike) TableName() string {
	return "post_likes"
}

// Comment represents a comment on a post.
type Comment struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	PostID       uint          `gorm:"not null;index" json:"post_id"`
	AuthorID     uint          `gorm:"not null;index" json:"author_id"`
	Author       User          `gorm:"foreignKey:AuthorID" json:"author"`
	Content      string        `gorm:"type:text;not null" json:"content"`
	CommentLikes []CommentLike `gorm:"foreignKey:CommentID" json:"comment_likes"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// CommentLike is the join record for a user liking a comment.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_comment_like_once" json:"author_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_once" json:"comment_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (CommentLike) TableName() string {
	return "comment_likes"
}

// FeedPage is the result of one feed partition: the in-network slice, the
// discover slice, and the total count behind each, for a single page.
type FeedPage struct {
	Timeline      []*Post `json:"timeline_posts"`
	Discover      []*Post `json:"discover_posts"`
	TimelineCount int64   `json:"timeline_posts_count"`
	DiscoverCount int64   `json:"discover_posts_count"`
	Page          int     `json:"page"`
	PageSize      int     `json:"page_size"`
}

// UserPostsPage is one page of a single author's posts plus the total count.
type UserPostsPage struct {
	Posts      []*Post `json:"posts"`
	PostsCount int64   `json:"posts_count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
}
