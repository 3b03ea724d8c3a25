package models

import (
	"database/sql"
	"time"
)

// Post represents a top-level submission.
//
// UpvoteCount, DownvoteCount and VoteScore are derived from the vote
// ledger and owned by the aggregate maintainer; nothing else writes
// them. They are always rebuilt by a full recount, never incremented,
// so a missed update self-heals on the next recount.
type Post struct {
	ID          int64         `gorm:"primaryKey;autoIncrement;column:id"`
	AuthorID    int64         `gorm:"not null;index:drift_posts_ix_author;column:author_id"`
	CommunityID sql.NullInt64 `gorm:"index:drift_posts_ix_community;column:community_id"`
	Title       string        `gorm:"type:varchar(300);not null;column:title"`
	Body        string        `gorm:"type:text;not null;default:'';column:body"`
	CreatedAt   time.Time     `gorm:"not null;index:drift_posts_ix_created;column:created_at"`

	// Moderation / lifecycle flags, written by the moderation service
	IsDeleted bool `gorm:"not null;default:false;column:is_deleted"`
	IsRemoved bool `gorm:"not null;default:false;column:is_removed"`
	IsLocked  bool `gorm:"not null;default:false;column:is_locked"`
	IsPinned  bool `gorm:"not null;default:false;column:is_pinned"`
	IsNSFW    bool `gorm:"not null;default:false;column:is_nsfw"`

	// Derived aggregates (aggregate maintainer only)
	UpvoteCount   int64 `gorm:"not null;default:0;column:upvote_count"`
	DownvoteCount int64 `gorm:"not null;default:0;column:downvote_count"`
	VoteScore     int64 `gorm:"not null;default:0;column:vote_score"`
	CommentCount  int64 `gorm:"not null;default:0;column:comment_count"`

	// Relationships
	Author    *Account   `gorm:"foreignKey:AuthorID;references:ID"`
	Community *Community `gorm:"foreignKey:CommunityID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "drift_posts"
}

// PostTag represents a post-to-tag mapping
type PostTag struct {
	PostID int64  `gorm:"primaryKey;column:post_id"`
	Tag    string `gorm:"type:varchar(32);primaryKey;column:tag"`
}

// TableName specifies the table name for PostTag
func (PostTag) TableName() string {
	return "drift_post_tags"
}
