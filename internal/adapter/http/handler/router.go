package handler

import (
	"net/http"

	"energy-marketplace/internal/adapter/http/middleware"
	"energy-marketplace/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MetricsExporter observes requests and serves the scrape endpoint.
type MetricsExporter interface {
	middleware.HTTPObserver
	Handler() http.Handler
}

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Market         ports.MarketService
	Actions        ports.ActionService
	TokenSvc       ports.TokenService
	RateLimitStore middleware.Limiter // nil = rate limiting disabled
	Metrics        MetricsExporter    // nil = no /metrics, no request metrics
	HealthCheckers []ports.HealthChecker
	Mode           string // gin mode, release when empty
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(64 << 10)) // action bodies are a few fields
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes ---
	sessionHandler := NewSessionHandler(deps.Actions)
	v1.POST("/sessions", rl("sessions"), sessionHandler.Open)

	// --- Session-authenticated routes ---
	auth := middleware.SessionAuth(deps.TokenSvc, deps.Logger)

	listingHandler := NewListingHandler(deps.Market, deps.Actions, deps.Logger)
	listings := v1.Group("/listings", auth, rl("listings"))
	{
		listings.GET("", listingHandler.Browse)
		listings.GET("/nearest", listingHandler.Nearest)
		listings.GET("/:id", listingHandler.Get)
	}

	accountHandler := NewAccountHandler(deps.Market, deps.Actions)
	me := v1.Group("/me", auth, rl("account"))
	{
		me.GET("/listings", accountHandler.Listings)
		me.GET("/transactions", accountHandler.Transactions)
		me.GET("/purchases", accountHandler.Purchases)
		me.GET("/profile", accountHandler.Profile)
		me.POST("/profile", accountHandler.EnsureProfile)
		me.GET("/actions", accountHandler.Actions)
	}

	actionHandler := NewActionHandler(deps.Actions)
	actions := v1.Group("/actions", auth)
	{
		actions.GET("/state", rl("account"), actionHandler.State)
		actions.POST("/profile", rl("actions"), actionHandler.CreateProfile)
		actions.POST("/listings", rl("actions"), actionHandler.CreateListing)
		actions.POST("/buy", rl("actions"), actionHandler.Buy)
		actions.POST("/cancel", rl("actions"), actionHandler.Cancel)
		actions.POST("/price", rl("actions"), actionHandler.UpdatePrice)
	}

	return r
}
