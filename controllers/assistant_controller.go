package controllers

import (
	"net/http"

	"github.com/Manelygb/haick-satim-challenge/services"

	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	Svc   *services.AssistantService
	Users *services.UserService
}

func NewAssistantController(svc *services.AssistantService, users *services.UserService) *AssistantController {
	return &AssistantController{Svc: svc, Users: users}
}

type ChatInput struct {
	Message  string `json:"message" binding:"required"`
	Language string `json:"language"`
}

// POST /api/assistant/chat
func (h *AssistantController) Chat(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Language == "" {
		input.Language = "en"
	}

	user, err := h.Users.ByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant service error"})
		return
	}

	c.JSON(http.StatusOK, h.Svc.Chat(user, input.Message, input.Language))
}

// GET /api/assistant/predictions
func (h *AssistantController) Predictions(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	predictions, err := h.Svc.Predictions(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction service error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}
