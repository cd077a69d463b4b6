package handlers

import (
	"log"
	"net/http"
	"travelmate/database"
	"travelmate/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

func ChatHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
			return
		}
		if req.SessionID == "" {
			req.SessionID = "default"
		}

		reply, err := chatSvc.Respond(c.Request.Context(), req.SessionID, req.Message)
		if err != nil {
			log.Printf("❌ Chat failed for session %s: %v", req.SessionID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Transcript persistence is best effort; a DB outage must not
		// break the conversation.
		saveTranscript(req.SessionID, "user", req.Message)
		saveTranscript(req.SessionID, "bot", reply.Response)

		c.JSON(http.StatusOK, reply)
	}
}

func saveTranscript(sessionID, sender, content string) {
	if database.DB == nil {
		return
	}
	err := database.SaveChatMessage(&database.ChatRecord{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Sender:    sender,
		Content:   content,
	})
	if err != nil {
		log.Printf("⚠️  Failed to save chat message: %v", err)
	}
}

// ChatHistoryHandler returns the stored transcript for one session.
func ChatHistoryHandler(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session ID"})
		return
	}

	msgs, err := database.GetChatMessages(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat history"})
		return
	}
	if msgs == nil {
		msgs = []database.ChatRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
