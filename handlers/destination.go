package handlers

import (
	"net/http"
	"travelmate/services"

	"github.com/gin-gonic/gin"
)

type DestinationRequest struct {
	Destination string `json:"destination"`
	SessionID   string `json:"sessionId"`
}

// DestinationDetailsHandler aggregates weather, flights, hotels and a
// budget summary for one destination page.
func DestinationDetailsHandler(prefs *services.PreferenceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DestinationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if req.Destination == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No destination provided"})
			return
		}
		if req.SessionID == "" {
			req.SessionID = "default"
		}

		details := services.BuildDestinationDetails(
			c.Request.Context(),
			req.Destination,
			prefs.Get(req.SessionID),
		)
		c.JSON(http.StatusOK, details)
	}
}
