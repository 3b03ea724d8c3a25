package models

import (
	"database/sql"
	"time"
)

// Comment represents a nested reply under a post. Comments carry the
// same derived vote aggregates as posts, with the same single-writer
// rule (see Post).
type Comment struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64         `gorm:"not null;index:drift_comments_ix_post;column:post_id"`
	ParentID  sql.NullInt64 `gorm:"column:parent_id"`
	AuthorID  int64         `gorm:"not null;column:author_id"`
	Body      string        `gorm:"type:text;not null;column:body"`
	Depth     int16         `gorm:"type:smallint;not null;default:0;column:depth"`
	CreatedAt time.Time     `gorm:"not null;column:created_at"`

	// Moderation / lifecycle flags
	IsDeleted bool `gorm:"not null;default:false;column:is_deleted"`
	IsRemoved bool `gorm:"not null;default:false;column:is_removed"`
	IsLocked  bool `gorm:"not null;default:false;column:is_locked"`
	IsPinned  bool `gorm:"not null;default:false;column:is_pinned"`

	// Derived aggregates (aggregate maintainer only)
	UpvoteCount   int64 `gorm:"not null;default:0;column:upvote_count"`
	DownvoteCount int64 `gorm:"not null;default:0;column:downvote_count"`
	VoteScore     int64 `gorm:"not null;default:0;column:vote_score"`
	ReplyCount    int64 `gorm:"not null;default:0;column:reply_count"`

	// Relationships
	Post   *Post    `gorm:"foreignKey:PostID;references:ID"`
	Parent *Comment `gorm:"foreignKey:ParentID;references:ID"`
	Author *Account `gorm:"foreignKey:AuthorID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "drift_comments"
}
