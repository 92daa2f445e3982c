package router

import (
	"net/http"

	"github.com/anyhire/anyhire-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "anyhire-api",
		})
	})

	statusHandler := handler.NewJobStatusHandler(deps)
	notificationHandler := handler.NewNotificationHandler(deps)
	reportHandler := handler.NewReportHandler(deps)

	// API v1 routes, all behind the gateway-established principal
	v1 := r.Group("/api/v1")
	v1.Use(AuthMiddleware())
	{
		jobstatus := v1.Group("/jobstatus")
		{
			jobstatus.POST("", statusHandler.Create)
			jobstatus.GET("", statusHandler.List)
			jobstatus.GET("/:id", statusHandler.GetByID)
			jobstatus.GET("/category/:category", statusHandler.GetByCategory)
			jobstatus.PUT("/:id", statusHandler.Update)
			jobstatus.DELETE("/owner/:userId", statusHandler.DeleteByOwner)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PATCH("/read-all", notificationHandler.MarkAllRead)
			notifications.PATCH("/:notificationId/read", notificationHandler.MarkRead)
			notifications.DELETE("/clear-all", notificationHandler.ClearAll)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/generate", reportHandler.Generate)
			reports.GET("/user/:userId", reportHandler.GenerateForUser)
		}
	}

	return r
}
