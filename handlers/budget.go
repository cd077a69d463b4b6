package handlers

import (
	"log"
	"net/http"
	"travelmate/auth"
	"travelmate/database"
	"travelmate/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BudgetHandler computes a trip estimate, stores the report with its
// PDF rendering, and returns the breakdown plus a download link.
func BudgetHandler(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.BudgetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if req.Destination == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No destination provided"})
			return
		}

		result := services.CalculateTripBudget(req)

		travelerName := ""
		if user := authSvc.Current(); user != nil {
			travelerName = user.Name
		}

		reportID := ""
		pdfBytes, err := services.GenerateBudgetPDF(travelerName, result)
		if err != nil {
			log.Printf("⚠️  Budget PDF generation failed: %v", err)
		} else if database.DB != nil {
			reportID = uuid.New().String()
			err := database.SaveBudgetReport(&database.BudgetReport{
				ID:          reportID,
				SessionID:   req.SessionID,
				Destination: result.Destination,
				BudgetLevel: result.BudgetLevel,
				Duration:    result.Duration,
				Travelers:   result.Travelers,
				PDFData:     pdfBytes,
			})
			if err != nil {
				log.Printf("⚠️  Failed to save budget report: %v", err)
				reportID = ""
			}
		}

		resp := gin.H{"budget": result}
		if reportID != "" {
			resp["report_id"] = reportID
			resp["pdf_url"] = "/api/reports/" + reportID + "/pdf"
		}
		c.JSON(http.StatusOK, resp)
	}
}
