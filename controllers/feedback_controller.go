package controllers

import (
	"net/http"
	"strconv"

	"github.com/Manelygb/haick-satim-challenge/services"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	Svc *services.FeedbackService
}

func NewFeedbackController(svc *services.FeedbackService) *FeedbackController {
	return &FeedbackController{Svc: svc}
}

// POST /api/feedback
func (h *FeedbackController) Submit(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input services.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fb, err := h.Svc.Submit(c.Request.Context(), uid, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Feedback submission failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"feedback": fb,
		"message":  "Thank you for your feedback! This helps improve our service.",
	})
}

// GET /api/feedback/analytics
func (h *FeedbackController) Analytics(c *gin.Context) {
	if _, ok := userIDFromCtx(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	out, err := h.Svc.Analytics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analytics retrieval failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/feedback/transaction/:transactionId
func (h *FeedbackController) ForTransaction(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	txID, err := strconv.ParseUint(c.Param("transactionId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	fb, err := h.Svc.ForTransaction(c.Request.Context(), uint(txID), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Feedback retrieval failed"})
		return
	}
	c.JSON(http.StatusOK, fb) // null when no feedback exists
}
