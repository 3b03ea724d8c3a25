package models

import (
	"time"
)

// SavedItem marks a post or comment saved by an account. Read in batch
// by the feed overlay, keyed the same way as votes.
type SavedItem struct {
	AccountID  int64      `gorm:"primaryKey;column:account_id"`
	TargetKind TargetKind `gorm:"type:smallint;primaryKey;column:target_kind"`
	TargetID   int64      `gorm:"primaryKey;column:target_id"`
	CreatedAt  time.Time  `gorm:"not null;column:created_at"`

	// Relationships
	Account *Account `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for SavedItem
func (SavedItem) TableName() string {
	return "drift_saved_items"
}
