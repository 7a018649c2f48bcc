package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Manelygb/haick-satim-challenge/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	Notifications *services.NotificationService
	Alerts        *services.AlertService
	Users         *services.UserService
}

func NewNotificationController(
	notifications *services.NotificationService,
	alerts *services.AlertService,
	users *services.UserService,
) *NotificationController {
	return &NotificationController{Notifications: notifications, Alerts: alerts, Users: users}
}

// GET /api/notifications
func (n *NotificationController) List(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	notifications, err := n.Notifications.ListForUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Notification service error"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// PUT /api/notifications/:id/read
//
// Replies {"success":true} whether or not a row was affected; an
// ownership mismatch is success-shaped but ineffective.
func (n *NotificationController) MarkRead(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if _, err := n.Notifications.MarkRead(c.Request.Context(), uint(id), uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Notification service error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/notifications/realtime-check
func (n *NotificationController) RealtimeCheck(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := n.Users.ByID(c.Request.Context(), uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Real-time check failed"})
		return
	}

	c.JSON(http.StatusOK, n.Alerts.Evaluate(user.Balance))
}

// POST /api/notifications/generate
func (n *NotificationController) Generate(c *gin.Context) {
	if _, ok := userIDFromCtx(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if _, err := n.Notifications.GenerateForAllUsers(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Proactive notifications generated"})
}
