package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techdocs-rag-platform/middleware"
	"techdocs-rag-platform/models"
	"techdocs-rag-platform/services"
	"techdocs-rag-platform/utils"
)

// ChatRequest is one question against a set of indexed documents.
type ChatRequest struct {
	Message     string               `json:"message" binding:"required"`
	DocumentIDs []string             `json:"document_ids" binding:"required"`
	History     []models.ChatMessage `json:"history"`
}

// SetupChatRoutes wires the retrieval-augmented answering endpoint.
func SetupChatRoutes(router *gin.Engine, chat *services.ChatService) {
	group := router.Group("/chat")
	group.Use(middleware.RequestIDMiddleware())

	group.POST("/send", func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		answer, err := chat.Respond(c.Request.Context(), req.Message, req.DocumentIDs, req.History)
		if err != nil {
			utils.RespondWithInternalError(c, "failed to generate answer", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, answer)
	})
}
