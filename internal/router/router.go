package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gatekeep-dev/gatekeep/internal/handlers"
	"github.com/gatekeep-dev/gatekeep/internal/middleware"
	"github.com/gatekeep-dev/gatekeep/internal/types"
)

func NewRouter(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.NewLoggingMiddleware(logger).LogRequest())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/metrics", middleware.AuthMiddleware(), middleware.RequireRoles(types.RoleAdmin), handlers.Metrics)
		api.GET("/ws/moderation",
			middleware.AuthMiddleware(),
			middleware.RequireRoles(types.RoleReviewer, types.RoleModerator, types.RoleAdmin),
			handlers.ModerationFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		content := api.Group("/content", middleware.AuthMiddleware())
		{
			content.POST("/submit", handlers.SubmitContent)
			content.GET("/submissions", handlers.MySubmissions)
			content.GET("", middleware.RequireRoles(types.RoleModerator, types.RoleAdmin), handlers.ListContent)
			content.PATCH("/:id", middleware.RequireRoles(types.RoleModerator, types.RoleAdmin), handlers.UpdateContentStatus)
		}

		moderation := api.Group("/moderation",
			middleware.AuthMiddleware(),
			middleware.RequireRoles(types.RoleReviewer, types.RoleModerator, types.RoleAdmin))
		{
			moderation.GET("/pending", handlers.PendingQueue)
			moderation.POST("/action", middleware.RequireRoles(types.RoleModerator, types.RoleAdmin), handlers.ModerationAction)
		}

		users := api.Group("/users",
			middleware.AuthMiddleware(),
			middleware.RequireRoles(types.RoleModerator, types.RoleAdmin))
		{
			users.GET("", handlers.ListUsers)
			users.PATCH("/:id", handlers.UpdateUserRole)
		}

		profile := api.Group("/profile", middleware.AuthMiddleware())
		{
			profile.GET("", handlers.GetProfile)
			profile.PUT("", handlers.UpdateProfile)
		}

		api.GET("/analytics",
			middleware.AuthMiddleware(),
			middleware.RequireRoles(types.RoleReviewer, types.RoleModerator, types.RoleAdmin),
			handlers.Analytics)

		api.GET("/audit-logs",
			middleware.AuthMiddleware(),
			middleware.RequireRoles(types.RoleAdmin),
			handlers.ListAuditLogs)

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.PATCH("/:id/read", handlers.MarkNotificationRead)
		}

		preferences := api.Group("/preferences", middleware.AuthMiddleware())
		{
			preferences.GET("", handlers.GetPreferences)
			preferences.PUT("", handlers.UpdatePreferences)
		}
	}

	return r
}
