package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/driftwood-social/driftwood/internal/models"
)

// VoteRepository provides vote-ledger database operations
type VoteRepository struct {
	*Repository
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(repo *Repository) *VoteRepository {
	return &VoteRepository{Repository: repo}
}

// GetByID retrieves a vote by ID
func (r *VoteRepository) GetByID(ctx context.Context, id int64) (*models.Vote, error) {
	var vote models.Vote
	if err := r.db.WithContext(ctx).First(&vote, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

// GetByVoterTarget retrieves the single vote for a (voter, target) pair
func (r *VoteRepository) GetByVoterTarget(ctx context.Context, voterID int64, kind models.TargetKind, targetID int64) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("voter_id = ? AND target_kind = ? AND target_id = ?", voterID, kind, targetID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

// Upsert inserts or overwrites the vote for its (voter, kind, target)
// key. The unique index serializes concurrent writers on the same key;
// the conflict guard keeps the newest timestamp so reordered requests
// resolve last-write-wins by client time, not arrival order.
func (r *VoteRepository) Upsert(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "voter_id"},
			{Name: "target_kind"},
			{Name: "target_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      vote.Value,
			"updated_at": vote.UpdatedAt,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Lte{
				Column: clause.Column{Table: "drift_votes", Name: "updated_at"},
				Value:  vote.UpdatedAt,
			},
		}},
	}).Create(vote).Error
}

// Delete removes a vote record
func (r *VoteRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Vote{}, id).Error
}

// Tally recounts the ledger for one target. Retractions (value 0) are
// rows too; they count as neither.
func (r *VoteRepository) Tally(ctx context.Context, kind models.TargetKind, targetID int64) (upvotes, downvotes int64, err error) {
	base := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID)

	if err = base.Session(&gorm.Session{}).Where("value = ?", 1).Count(&upvotes).Error; err != nil {
		return 0, 0, err
	}
	if err = base.Session(&gorm.Session{}).Where("value = ?", -1).Count(&downvotes).Error; err != nil {
		return 0, 0, err
	}
	return upvotes, downvotes, nil
}

// GetForViewer returns the viewer's votes over a set of targets in one
// query. This is the only read path the feed overlay uses; it must stay
// batched.
func (r *VoteRepository) GetForViewer(ctx context.Context, voterID int64, kind models.TargetKind, targetIDs []int64) ([]*models.Vote, error) {
	var votes []*models.Vote
	if len(targetIDs) == 0 {
		return votes, nil
	}
	err := r.db.WithContext(ctx).
		Where("voter_id = ? AND target_kind = ? AND target_id IN ?", voterID, kind, targetIDs).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// SavedItemRepository provides saved-item database operations
type SavedItemRepository struct {
	*Repository
}

// NewSavedItemRepository creates a new saved-item repository
func NewSavedItemRepository(repo *Repository) *SavedItemRepository {
	return &SavedItemRepository{Repository: repo}
}

// Save marks a target saved; saving twice is a no-op.
func (r *SavedItemRepository) Save(ctx context.Context, item *models.SavedItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "account_id"},
			{Name: "target_kind"},
			{Name: "target_id"},
		},
		DoNothing: true,
	}).Create(item).Error
}

// Unsave removes a saved marker
func (r *SavedItemRepository) Unsave(ctx context.Context, accountID int64, kind models.TargetKind, targetID int64) error {
	return r.db.WithContext(ctx).
		Where("account_id = ? AND target_kind = ? AND target_id = ?", accountID, kind, targetID).
		Delete(&models.SavedItem{}).Error
}

// GetSetForViewer returns which of the given targets the viewer has
// saved, in one query.
func (r *SavedItemRepository) GetSetForViewer(ctx context.Context, accountID int64, kind models.TargetKind, targetIDs []int64) (map[int64]bool, error) {
	saved := make(map[int64]bool)
	if len(targetIDs) == 0 {
		return saved, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.SavedItem{}).
		Where("account_id = ? AND target_kind = ? AND target_id IN ?", accountID, kind, targetIDs).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		saved[id] = true
	}
	return saved, nil
}

// SubscriptionRepository provides subscription database operations
type SubscriptionRepository struct {
	*Repository
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(repo *Repository) *SubscriptionRepository {
	return &SubscriptionRepository{Repository: repo}
}

// CommunityIDsFor returns the IDs of communities the account subscribes to
func (r *SubscriptionRepository) CommunityIDsFor(ctx context.Context, accountID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("account_id = ?", accountID).
		Pluck("community_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// IsMember reports whether the account subscribes to the community.
// Private communities are only visible to members.
func (r *SubscriptionRepository) IsMember(ctx context.Context, communityID, accountID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("community_id = ? AND account_id = ?", communityID, accountID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// NotificationRepository provides notification database operations
type NotificationRepository struct {
	*Repository
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(repo *Repository) *NotificationRepository {
	return &NotificationRepository{Repository: repo}
}

// Create creates a new notification
func (r *NotificationRepository) Create(ctx context.Context, notif *models.Notification) error {
	return r.db.WithContext(ctx).Create(notif).Error
}

// GetByDstID retrieves notifications addressed to an account, newest
// first, keyset-paginated by lastID.
func (r *NotificationRepository) GetByDstID(ctx context.Context, dstID, lastID int64, limit int) ([]*models.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("dst_id = ?", dstID).
		Order("id DESC").
		Limit(limit)
	if lastID > 0 {
		query = query.Where("id < ?", lastID)
	}
	var notifs []*models.Notification
	if err := query.Find(&notifs).Error; err != nil {
		return nil, err
	}
	return notifs, nil
}

// UnreadCount counts notifications newer than the account's lastread_at
func (r *NotificationRepository) UnreadCount(ctx context.Context, account *models.Account) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("dst_id = ? AND created_at > ?", account.ID, account.LastreadAt).
		Count(&count).Error
	return count, err
}
