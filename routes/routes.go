package routes

import (
	"net/http"
	"time"

	"github.com/Manelygb/haick-satim-challenge/config"
	"github.com/Manelygb/haick-satim-challenge/controllers"
	"github.com/Manelygb/haick-satim-challenge/middlewares"
	"github.com/Manelygb/haick-satim-challenge/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRouter wires services into controllers and registers every
// route. The hub is passed in (not built here) so main owns its
// lifetime.
func SetupRouter(cfg *config.Config, db *gorm.DB, hub *services.RealtimeHub, log *zap.Logger) *gin.Engine {
	users := services.NewUserService(db)
	alerts := services.NewAlertService(services.AlertThresholds{
		UrgentBelow:  cfg.AlertUrgentBelow,
		WarningBelow: cfg.AlertWarningBelow,
	})
	notifications := services.NewNotificationService(db, hub, log, cfg.AlertWarningBelow)
	analytics := services.NewAnalyticsService(db)
	assistant := services.NewAssistantService(db)
	feedback := services.NewFeedbackService(db, hub)

	authC := controllers.NewAuthController(users, cfg.JWTSecret)
	notifC := controllers.NewNotificationController(notifications, alerts, users)
	analyticsC := controllers.NewAnalyticsController(analytics)
	assistantC := controllers.NewAssistantController(assistant, users)
	feedbackC := controllers.NewFeedbackController(feedback)
	realtimeC := controllers.NewRealtimeController(hub, log)

	r := gin.Default()

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().Format(time.RFC3339)})
	})
	api.POST("/auth/login", authC.Login)

	authed := api.Group("")
	authed.Use(middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		authed.GET("/auth/me", authC.Me)

		authed.GET("/notifications", notifC.List)
		authed.PUT("/notifications/:id/read", notifC.MarkRead)
		authed.GET("/notifications/realtime-check", notifC.RealtimeCheck)
		authed.POST("/notifications/generate", notifC.Generate)

		authed.GET("/analytics/dashboard", analyticsC.Dashboard)
		authed.GET("/analytics/predictions", analyticsC.Predictions)

		authed.POST("/assistant/chat", assistantC.Chat)
		authed.GET("/assistant/predictions", assistantC.Predictions)

		authed.POST("/feedback", feedbackC.Submit)
		authed.GET("/feedback/analytics", feedbackC.Analytics)
		authed.GET("/feedback/transaction/:transactionId", feedbackC.ForTransaction)

		authed.GET("/ws/notifications", realtimeC.Serve)
	}

	return r
}
