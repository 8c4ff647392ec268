package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/talksapp/talks/config"
	"github.com/talksapp/talks/controllers"
	"github.com/talksapp/talks/hashtags"
	"github.com/talksapp/talks/middleware"
	"github.com/talksapp/talks/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))
	// Record PV after each request
	r.Use(middleware.PageViewRecorder(db))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	indexer := hashtags.NewIndexer(db)

	authController := controllers.NewAuthController(db)
	feedController := controllers.NewFeedController(db)
	postController := controllers.NewPostController(db, indexer)
	likeController := controllers.NewLikeController(db)
	hashtagController := controllers.NewHashtagController(indexer)
	perksController := controllers.NewPerksController(db)
	statsController := controllers.NewStatsController(db)
	contactController := controllers.NewContactController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/send-email-code", authController.SendEmailCode)
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/captcha", authController.Captcha)
	authGroup.POST("/captcha/verify", authController.CaptchaVerify)
	authGroup.GET("/oauth/google/login", authController.GoogleLogin)
	authGroup.GET("/oauth/google/callback", authController.GoogleCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)
	authGroup.POST("/password", middleware.AuthRequired(), authController.ChangePassword)

	// Public endpoints
	api.GET("/hashtags/:tag", hashtagController.GetHashtag)
	api.GET("/trending", hashtagController.Trending)
	api.GET("/stats", statsController.GetStats)
	api.POST("/contact", contactController.Submit)
	api.POST("/posts/:id/report", postController.ReportPost)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.GET("/feed", feedController.Feed)
	protected.GET("/users", authController.ListUsers)
	protected.GET("/users/:username/posts", feedController.UserPosts)
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/posts/:id/comments", postController.CreateComment)
	protected.DELETE("/comments/:id", postController.DeleteComment)
	protected.POST("/posts/:id/like", likeController.TogglePostLike)
	protected.POST("/comments/:id/like", likeController.ToggleCommentLike)
	protected.POST("/perks/daily", perksController.DailyClaim)
	protected.GET("/perks", perksController.PerksStatus)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
