package models

import (
	"database/sql"
	"time"
)

// Account represents a platform account. Identity itself (credentials,
// sessions) lives in the identity service; this row carries only what
// voting and feed composition need.
type Account struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `gorm:"type:varchar(32);not null;uniqueIndex:drift_accounts_ux1;column:name"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Role, as asserted by the identity service. Admins may delete any vote.
	IsAdmin bool `gorm:"not null;default:false;column:is_admin"`

	// Viewer preferences
	ShowNSFW bool `gorm:"not null;default:false;column:show_nsfw"`

	// Profile fields
	DisplayName sql.NullString `gorm:"type:varchar(40);column:display_name"`
	About       sql.NullString `gorm:"type:varchar(160);column:about"`

	// Activity tracking
	LastreadAt time.Time `gorm:"not null;default:'1970-01-01 00:00:00';column:lastread_at"`
	ActiveAt   time.Time `gorm:"not null;default:'1970-01-01 00:00:00';column:active_at"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "drift_accounts"
}
