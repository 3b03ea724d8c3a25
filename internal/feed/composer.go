package feed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/driftwood-social/driftwood/internal/apperror"
	"github.com/driftwood-social/driftwood/internal/cache"
	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/internal/models"
	"github.com/driftwood-social/driftwood/internal/ranking"
	"github.com/driftwood-social/driftwood/internal/vote"
	"github.com/driftwood-social/driftwood/pkg/logging"
	"github.com/driftwood-social/driftwood/pkg/telemetry"
)

// errEmptyHome marks a home scope with no subscriptions; Compose falls
// back to the global scope instead of returning an empty page.
var errEmptyHome = fmt.Errorf("home scope has no candidates")

// Composer assembles filtered, ranked, paginated, personalized pages
// over votable items. It is a pure reader: it never writes votes or
// aggregates, and its queries are safe to cancel or retry.
type Composer struct {
	repo            *db.Repository
	ledger          *vote.Ledger
	cache           *cache.Cache
	logger          *zap.Logger
	defaultPageSize int
	maxPageSize     int
	cacheEnabled    bool
}

// NewComposer creates a new feed composer
func NewComposer(repo *db.Repository, ledger *vote.Ledger, redisCache *cache.Cache, defaultPageSize, maxPageSize int, cacheEnabled bool) *Composer {
	return &Composer{
		repo:            repo,
		ledger:          ledger,
		cache:           redisCache,
		logger:          logging.WithComponent("feed"),
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		cacheEnabled:    cacheEnabled,
	}
}

// Compose builds one page for the request: scope predicate intersected
// with the visibility filters, sorted by the ordering's rank key,
// paginated, with the viewer overlay merged in from batched lookups.
func (c *Composer) Compose(ctx context.Context, req Request) (*Page, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.compose")
	defer span.End()

	req.Page, req.PageSize = c.normalizePaging(req.Page, req.PageSize)
	if req.Ordering == "" {
		req.Ordering = ranking.OrderingHot
	}

	// Anonymous global pages are identical for everyone; serve them
	// from cache when possible.
	cacheable := req.Viewer == nil && req.Scope == ScopeGlobal &&
		c.cacheEnabled && c.cache != nil && req.Tag == "" && req.Query == ""
	cacheKey := cache.HashKey("feed", string(req.Scope), string(req.Ordering),
		fmt.Sprintf("%d", req.Page), fmt.Sprintf("%d", req.PageSize))
	if cacheable {
		var cached Page
		if err := c.cache.GetJSON(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := c.composeScoped(ctx, req)
	if err == errEmptyHome {
		req.Scope = ScopeGlobal
		result, err = c.composeScoped(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	// Fallback rule: a personalized scope with zero qualifying
	// candidates serves the viewer-agnostic global ordering instead of
	// an empty page.
	if req.Scope == ScopeHome && result.Pagination.TotalCount == 0 {
		req.Scope = ScopeGlobal
		result, err = c.composeScoped(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	if cacheable {
		if err := c.cache.SetJSON(cacheKey, result, cacheTTL(req.Ordering)); err != nil && err != cache.ErrCacheDisabled {
			c.logger.Debug("Feed cache write failed", zap.Error(err))
		}
	}

	return result, nil
}

func (c *Composer) composeScoped(ctx context.Context, req Request) (*Page, error) {
	query, err := c.buildScope(ctx, req)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, apperror.Unavailablef(err, "count feed candidates")
	}

	var posts []models.Post
	err = query.Session(&gorm.Session{}).
		Order(ranking.PostOrderClause(req.Ordering)).
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, apperror.Unavailablef(err, "load feed page")
	}

	items := make([]Item, len(posts))
	ids := make([]int64, len(posts))
	for i := range posts {
		items[i] = Item{Post: &posts[i]}
		ids[i] = posts[i].ID
	}

	if err := c.attachAuthors(ctx, items); err != nil {
		c.logger.Warn("Failed to attach authors", zap.Error(err))
	}

	ov := c.overlayOrEmpty(ctx, req.Viewer, models.TargetPost, ids)
	applyOverlay(items, ov)

	return &Page{
		Items: items,
		Pagination: Pagination{
			Page:       req.Page,
			PageSize:   req.PageSize,
			TotalCount: total,
			TotalPages: TotalPages(total, req.PageSize),
		},
	}, nil
}

// ComposeComments builds one ranked, overlaid page of a post's comments.
func (c *Composer) ComposeComments(ctx context.Context, postID int64, ordering ranking.Ordering, viewer *models.Account, page, pageSize int) (*CommentPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.compose_comments")
	defer span.End()

	page, pageSize = c.normalizePaging(page, pageSize)
	if ordering == "" {
		ordering = ranking.OrderingTop
	}

	post, err := db.NewPostRepository(c.repo).GetByID(ctx, postID)
	if err != nil {
		return nil, apperror.Unavailablef(err, "read post %d", postID)
	}
	if post == nil || post.IsDeleted || post.IsRemoved {
		return nil, apperror.NotFoundf("post %d not found", postID)
	}

	base := c.repo.DB().WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND is_deleted = ? AND is_removed = ?", postID, false, false)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, apperror.Unavailablef(err, "count comments")
	}

	var comments []models.Comment
	err = base.Session(&gorm.Session{}).
		Order(ranking.CommentOrderClause(ordering)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, apperror.Unavailablef(err, "load comments page")
	}

	items := make([]CommentItem, len(comments))
	ids := make([]int64, len(comments))
	authorIDs := make([]int64, 0, len(comments))
	for i := range comments {
		items[i] = CommentItem{Comment: &comments[i]}
		ids[i] = comments[i].ID
		authorIDs = append(authorIDs, comments[i].AuthorID)
	}

	accounts, err := db.NewAccountRepository(c.repo).GetByIDs(ctx, authorIDs)
	if err != nil {
		c.logger.Warn("Failed to attach comment authors", zap.Error(err))
	} else {
		byID := make(map[int64]*models.Account, len(accounts))
		for _, a := range accounts {
			byID[a.ID] = a
		}
		for i := range items {
			items[i].Author = byID[items[i].Comment.AuthorID]
		}
	}

	ov := c.overlayOrEmpty(ctx, viewer, models.TargetComment, ids)
	applyCommentOverlay(items, ov)

	return &CommentPage{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalCount: total,
			TotalPages: TotalPages(total, pageSize),
		},
	}, nil
}

// buildScope assembles the candidate predicate: the scope's own filter
// intersected with the mandatory visibility filters.
func (c *Composer) buildScope(ctx context.Context, req Request) (*gorm.DB, error) {
	q := c.repo.DB().WithContext(ctx).
		Model(&models.Post{}).
		Where("is_deleted = ? AND is_removed = ?", false, false)

	if req.Viewer == nil || !req.Viewer.ShowNSFW {
		q = q.Where("is_nsfw = ?", false)
	}

	// Posts in private communities are only visible inside a community
	// scope the viewer is a member of, or via home (membership implied).
	privateIDs := c.repo.DB().
		Model(&models.Community{}).
		Select("id").
		Where("is_private = ?", true)
	hidePrivate := func(q *gorm.DB) *gorm.DB {
		return q.Where("community_id IS NULL OR community_id NOT IN (?)", privateIDs)
	}

	switch req.Scope {
	case ScopeGlobal:
		return hidePrivate(q), nil

	case ScopeCommunity:
		community, err := db.NewCommunityRepository(c.repo).GetByName(ctx, req.CommunityName)
		if err != nil {
			return nil, apperror.Unavailablef(err, "read community %q", req.CommunityName)
		}
		if community == nil {
			return nil, apperror.NotFoundf("community %q not found", req.CommunityName)
		}
		if community.IsPrivate {
			if req.Viewer == nil {
				return nil, apperror.Forbiddenf("community %q is private", req.CommunityName)
			}
			member, err := db.NewSubscriptionRepository(c.repo).IsMember(ctx, community.ID, req.Viewer.ID)
			if err != nil {
				return nil, apperror.Unavailablef(err, "check membership")
			}
			if !member {
				return nil, apperror.Forbiddenf("community %q is private", req.CommunityName)
			}
		}
		return q.Where("community_id = ?", community.ID), nil

	case ScopeAuthor:
		author, err := db.NewAccountRepository(c.repo).GetByName(ctx, req.AuthorName)
		if err != nil {
			return nil, apperror.Unavailablef(err, "read account %q", req.AuthorName)
		}
		if author == nil {
			return nil, apperror.NotFoundf("account %q not found", req.AuthorName)
		}
		return hidePrivate(q.Where("author_id = ?", author.ID)), nil

	case ScopeHome:
		if req.Viewer == nil {
			return nil, errEmptyHome
		}
		communityIDs, err := db.NewSubscriptionRepository(c.repo).CommunityIDsFor(ctx, req.Viewer.ID)
		if err != nil {
			return nil, apperror.Unavailablef(err, "read subscriptions")
		}
		if len(communityIDs) == 0 {
			return nil, errEmptyHome
		}
		return q.Where("community_id IN ?", communityIDs), nil

	case ScopeTag:
		if req.Tag == "" {
			return nil, apperror.Validationf("tag scope requires a tag")
		}
		return hidePrivate(q.
			Joins("JOIN drift_post_tags ON drift_post_tags.post_id = drift_posts.id").
			Where("drift_post_tags.tag = ?", req.Tag)), nil

	case ScopeSearch:
		if req.Query == "" {
			return nil, apperror.Validationf("search scope requires a query")
		}
		return hidePrivate(q.Where("title ILIKE ?", "%"+req.Query+"%")), nil
	}

	return nil, apperror.Validationf("invalid scope %q", req.Scope)
}

func (c *Composer) attachAuthors(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].Post.AuthorID)
	}
	accounts, err := db.NewAccountRepository(c.repo).GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]*models.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	for i := range items {
		items[i].Author = byID[items[i].Post.AuthorID]
	}
	return nil
}

func (c *Composer) normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = c.defaultPageSize
	}
	if pageSize > c.maxPageSize {
		pageSize = c.maxPageSize
	}
	return page, pageSize
}

// cacheTTL picks how long a composed page may be served stale.
func cacheTTL(o ranking.Ordering) time.Duration {
	switch o {
	case ranking.OrderingNew:
		return 3 * time.Second
	case ranking.OrderingHot, ranking.OrderingTrending:
		return 300 * time.Second
	case ranking.OrderingTop:
		return 30 * time.Second
	default:
		return 60 * time.Second
	}
}
