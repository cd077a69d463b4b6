package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"travelmate/services"

	"github.com/gin-gonic/gin"
)

// FlightDestinationsHandler returns the normalized destination list for
// the landing page: international arrivals only, deduplicated, with a
// derived display price.
func FlightDestinationsHandler(c *gin.Context) {
	homeCountry := strings.ToUpper(c.Query("country"))
	if homeCountry == "" {
		homeCountry = strings.ToUpper(os.Getenv("HOME_COUNTRY"))
	}
	if homeCountry == "" {
		homeCountry = "MA"
	}

	maxResults := services.DefaultMaxDestinations
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxResults = n
		}
	}

	var records []services.RawFlightRecord
	if client := services.GetAviationstackClient(); client != nil {
		fetched, err := client.FetchFlights(c.Request.Context(), homeCountry)
		if err != nil {
			log.Printf("⚠️  Flight fetch failed: %v — using fallback", err)
		} else {
			records = fetched
		}
	}
	if len(records) == 0 {
		records = services.GenerateFlightsFallback(homeCountry)
	}

	destinations, err := services.NormalizeFlights(records, homeCountry, maxResults)
	if err != nil {
		if errors.Is(err, services.ErrNoDestinations) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No destinations found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load destinations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"destinations": destinations})
}
