package models

import (
	"fmt"
	"time"
)

// TargetKind discriminates the polymorphic vote target. A vote (or a
// saved-item marker) references a post XOR a comment; the kind plus the
// target id together form the reference, so the "exactly one of"
// invariant is structural rather than two nullable columns.
type TargetKind int16

const (
	TargetPost    TargetKind = 1
	TargetComment TargetKind = 2
)

// Valid reports whether the kind is one of the known discriminants.
func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

func (k TargetKind) String() string {
	switch k {
	case TargetPost:
		return "post"
	case TargetComment:
		return "comment"
	}
	return fmt.Sprintf("unknown(%d)", int16(k))
}

// ParseTargetKind parses the wire form ("post" or "comment").
func ParseTargetKind(s string) (TargetKind, error) {
	switch s {
	case "post":
		return TargetPost, nil
	case "comment":
		return TargetComment, nil
	}
	return 0, fmt.Errorf("invalid target kind: %q", s)
}

// Vote is the authoritative record of one voter's current value on one
// target. Exactly one row may exist per (voter, kind, target); the
// unique index enforces it and the ledger upserts against it. Value 0
// is a retraction kept in place so repeated "set my vote to v" calls
// stay idempotent.
type Vote struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;column:id"`
	VoterID    int64      `gorm:"not null;uniqueIndex:drift_votes_ux1;column:voter_id"`
	TargetKind TargetKind `gorm:"type:smallint;not null;uniqueIndex:drift_votes_ux1;column:target_kind"`
	TargetID   int64      `gorm:"not null;uniqueIndex:drift_votes_ux1;column:target_id"`
	Value      int16      `gorm:"type:smallint;not null;column:value"`
	UpdatedAt  time.Time  `gorm:"not null;column:updated_at"`

	// Relationships
	Voter *Account `gorm:"foreignKey:VoterID;references:ID"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "drift_votes"
}
