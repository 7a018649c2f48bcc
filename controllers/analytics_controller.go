package controllers

import (
	"net/http"

	"github.com/Manelygb/haick-satim-challenge/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

// GET /api/analytics/dashboard
func (h *AnalyticsController) Dashboard(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	out, err := h.Svc.Dashboard(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analytics service error"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/analytics/predictions
func (h *AnalyticsController) Predictions(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	out, err := h.Svc.Predictions(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction service error"})
		return
	}
	c.JSON(http.StatusOK, out)
}
