package router

import (
	"net/http"
	"time"

	"hhdeals/internal/auth"
	"hhdeals/internal/deals"
	"hhdeals/internal/establishment"
	"hhdeals/internal/middleware"
	"hhdeals/internal/preferences"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer is built from.
type Deps struct {
	Auth           *auth.Handler
	Establishments *establishment.Handler
	Deals          *deals.Handler
	Preferences    *preferences.Handler

	// Counter may be nil, which disables rate limiting.
	Counter            middleware.Counter
	RateLimitPerMinute int
	CORSOrigins        []string
	Logger             *zap.Logger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.Recovery(d.Logger),
		middleware.RequestLogger(d.Logger),
		cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.ClientIDHeader},
			ExposeHeaders:    []string{middleware.ClientIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.ClientID(),
	)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", d.Auth.Login)
	}

	public := r.Group("")
	public.Use(middleware.RateLimit(d.Counter, d.RateLimitPerMinute, d.Logger))

	// ───────────────────────── ESTABLISHMENTS ─────────────────────────
	ests := public.Group("/establishments")
	{
		ests.GET("", d.Establishments.List)
		ests.GET("/:id", d.Establishments.Get)
		ests.POST("/:id/visit", d.Establishments.RecordVisit)
	}

	// ───────────────────────── DEALS ─────────────────────────
	dealsGroup := public.Group("/deals")
	{
		dealsGroup.GET("", d.Deals.List)
		dealsGroup.GET("/recommended", d.Deals.Recommended)
		dealsGroup.GET("/:id", d.Deals.Get)
		dealsGroup.POST("/:id/view", d.Deals.RecordView)
	}

	// ───────────────────────── PREFERENCES ─────────────────────────
	prefs := public.Group("/preferences")
	{
		prefs.GET("", d.Preferences.Get)
		prefs.DELETE("", d.Preferences.Reset)
		prefs.PUT("/category", d.Preferences.AdjustCategory)
		prefs.PUT("/price", d.Preferences.AdjustPrice)
		prefs.POST("/saved/:dealId", d.Preferences.SaveDeal)
		prefs.DELETE("/saved/:dealId", d.Preferences.UnsaveDeal)
	}

	// ───────────────────────── ADMIN ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(d.Logger),
		middleware.RequireRole(auth.RoleAdmin, auth.RoleEditor),
	)
	{
		admin.POST("/establishments", d.Establishments.Create)
		admin.DELETE("/establishments/:id", d.Establishments.Delete)
		admin.POST("/deals", d.Deals.Create)
		admin.DELETE("/deals/:id", d.Deals.Delete)
	}

	// Only admins create further accounts.
	accounts := r.Group("/admin/users")
	accounts.Use(
		middleware.AuthMiddleware(d.Logger),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		accounts.POST("", d.Auth.Register)
	}

	return r
}
