package models

import (
	"database/sql"
	"time"
)

// Community represents a community (a named board posts belong to)
type Community struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string         `gorm:"type:varchar(32);not null;uniqueIndex:drift_communities_ux1;column:name"`
	Title       string         `gorm:"type:varchar(64);not null;default:'';column:title"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at"`
	Subscribers int64          `gorm:"not null;default:0;column:subscribers"`
	IsNSFW      bool           `gorm:"not null;default:false;column:is_nsfw"`
	IsPrivate   bool           `gorm:"not null;default:false;column:is_private"`
	About       string         `gorm:"type:varchar(500);not null;default:'';column:about"`
	Settings    sql.NullString `gorm:"type:text;default:'{}';column:settings"`
}

// TableName specifies the table name for Community
func (Community) TableName() string {
	return "drift_communities"
}

// Subscription represents a community subscription. The home feed scope
// is composed from the viewer's subscriptions.
type Subscription struct {
	CommunityID int64     `gorm:"primaryKey;column:community_id"`
	AccountID   int64     `gorm:"primaryKey;column:account_id"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Community *Community `gorm:"foreignKey:CommunityID;references:ID"`
	Account   *Account   `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for Subscription
func (Subscription) TableName() string {
	return "drift_subscriptions"
}
