package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/driftwood-social/driftwood/internal/cache"
	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/internal/feed"
	"github.com/driftwood-social/driftwood/internal/notify"
	"github.com/driftwood-social/driftwood/internal/vote"
	"github.com/driftwood-social/driftwood/pkg/config"
	"github.com/driftwood-social/driftwood/pkg/logging"
)

// Router sets up API routes
type Router struct {
	repo     *db.Repository
	database *db.DB
	cache    *cache.Cache
	ledger   *vote.Ledger
	composer *feed.Composer
	notifier *notify.Notifier
	cfg      *config.Config
	logger   *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, ledger *vote.Ledger, composer *feed.Composer, notifier *notify.Notifier, cfg *config.Config) *Router {
	return &Router{
		repo:     db.NewRepository(database.DB),
		database: database,
		cache:    redisCache,
		ledger:   ledger,
		composer: composer,
		notifier: notifier,
		cfg:      cfg,
		logger:   logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	api := engine.Group("/api", r.identityMiddleware())

	// Vote ledger
	api.POST("/votes", r.rateLimitMiddleware(r.cfg.Vote.RateLimitPerMin), r.castVote)
	api.DELETE("/votes/:id", r.deleteVote)

	// Feeds
	api.GET("/feed", r.getFeed)
	api.GET("/posts/:id/comments", r.getComments)

	// Saved items
	api.PUT("/saved", r.saveItem)
	api.DELETE("/saved", r.unsaveItem)

	// Notifications
	api.GET("/notifications", r.listNotifications)
	api.GET("/notifications/unread", r.unreadNotifications)
	api.POST("/notifications/read", r.markNotificationsRead)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"
	code := 200
	if err := r.database.Health(c.Request.Context()); err != nil {
		status = "DEGRADED"
		code = 503
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "driftwood-api",
	})
}
