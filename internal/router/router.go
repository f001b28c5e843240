package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mockmate/mockmate-backend/internal/config"
	"github.com/mockmate/mockmate-backend/internal/handler"
	"github.com/mockmate/mockmate-backend/internal/middleware"
	"github.com/mockmate/mockmate-backend/internal/response"
	"github.com/mockmate/mockmate-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Role      *handler.RoleHandler
	Interview *handler.InterviewHandler
	Analytics *handler.AnalyticsHandler
	Plan      *handler.PlanHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Authenticated API ──────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireJWT(authService))
	{
		// Profile
		api.PUT("/profile", handlers.Profile.Upsert)
		api.GET("/profile", handlers.Profile.Get)
		api.GET("/profile/suggestions", handlers.Profile.SuggestRoles)

		// Role catalog
		api.GET("/roles", handlers.Role.List)
		api.GET("/roles/:role_id", handlers.Role.Get)

		// Interview sessions
		api.POST("/sessions", handlers.Interview.Create)
		api.GET("/sessions", handlers.Interview.List)
		api.GET("/sessions/:session_id", handlers.Interview.Get)
		api.GET("/sessions/:session_id/questions", handlers.Interview.Questions)
		api.POST("/sessions/:session_id/answers", handlers.Interview.SubmitAnswer)
		api.POST("/sessions/:session_id/finish", handlers.Interview.Finish)
		api.POST("/sessions/:session_id/abandon", handlers.Interview.Abandon)
		api.GET("/sessions/:session_id/report", handlers.Interview.Report)

		// Upgrade plans
		api.POST("/sessions/:session_id/plan", handlers.Plan.Generate)
		api.GET("/sessions/:session_id/plan", handlers.Plan.Get)

		// Analytics
		api.GET("/analytics/skill-map", handlers.Analytics.SkillMap)
		api.GET("/analytics/next-skill", handlers.Analytics.NextSkill)
		api.GET("/analytics/improving", handlers.Analytics.TopImproving)
		api.GET("/analytics/weak", handlers.Analytics.TopWeak)
		api.GET("/analytics/overview", handlers.Analytics.Overview)
	}

	return router
}
