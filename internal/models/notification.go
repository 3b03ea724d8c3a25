package models

import (
	"database/sql"
	"time"
)

// Notification represents a notification row. Delivery is owned by the
// notification service; this service only writes vote notifications
// fire-and-forget and serves the unread listing.
type Notification struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Type      int16          `gorm:"type:smallint;not null;column:type_id"`
	CreatedAt time.Time      `gorm:"not null;column:created_at"`
	SrcID     sql.NullInt64  `gorm:"column:src_id"`
	DstID     sql.NullInt64  `gorm:"index:drift_notifs_ix_dst;column:dst_id"`
	PostID    sql.NullInt64  `gorm:"column:post_id"`
	CommentID sql.NullInt64  `gorm:"column:comment_id"`
	Payload   sql.NullString `gorm:"type:text;column:payload"`

	// Relationships
	Src  *Account `gorm:"foreignKey:SrcID;references:ID"`
	Dst  *Account `gorm:"foreignKey:DstID;references:ID"`
	Post *Post    `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "drift_notifs"
}

// Notification type constants
const (
	NotifyTypeVoteUp   int16 = 1
	NotifyTypeVoteDown int16 = 2
	NotifyTypeReply    int16 = 3
	NotifyTypeSave     int16 = 4
)
