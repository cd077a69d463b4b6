package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type Accommodation struct {
	Name      string   `json:"name"`
	Rating    int      `json:"rating"`
	Price     string   `json:"price"`
	Location  string   `json:"location"`
	Amenities []string `json:"amenities"`
}

// ─── Travel Advisor Client ────────────────────────────────────────────────────

type TravelAdvisorClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var travelAdvisorClient *TravelAdvisorClient

func InitTravelAdvisor() {
	travelAdvisorClient = &TravelAdvisorClient{
		apiKey:  os.Getenv("RAPIDAPI_KEY"),
		baseURL: "https://travel-advisor.p.rapidapi.com",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}

	if travelAdvisorClient.apiKey == "" {
		log.Println("⚠️  RAPIDAPI_KEY not set — hotel lookups will use sample data")
		return
	}
	log.Println("✅ Travel Advisor API configured")
}

func GetTravelAdvisorClient() *TravelAdvisorClient {
	return travelAdvisorClient
}

// destinationContentIDs maps lowercase city names to Travel Advisor
// location content ids.
var destinationContentIDs = map[string]string{
	"paris":         "187147",
	"london":        "186338",
	"new york":      "60763",
	"tokyo":         "298184",
	"rome":          "187791",
	"barcelona":     "187497",
	"dubai":         "295424",
	"sydney":        "255060",
	"amsterdam":     "188590",
	"bangkok":       "293916",
	"los angeles":   "32655",
	"las vegas":     "45963",
	"chicago":       "35805",
	"miami":         "34439",
	"berlin":        "187323",
	"madrid":        "187514",
	"singapore":     "294265",
	"san francisco": "60713",
	"hong kong":     "294217",
}

type travelAdvisorResponse struct {
	Data struct {
		Content []struct {
			Business struct {
				Name   string `json:"name"`
				Rating struct {
					Primary float64 `json:"primary"`
				} `json:"rating"`
				PriceRange   string `json:"price_range"`
				LocationName string `json:"location_string"`
				Amenities    []struct {
					Name string `json:"name"`
				} `json:"amenities"`
			} `json:"business"`
		} `json:"content"`
	} `json:"data"`
}

// FetchHotels looks up top hotels for a destination via the Travel
// Advisor answers API. Returns at most three results.
func (c *TravelAdvisorClient) FetchHotels(ctx context.Context, destination string) ([]Accommodation, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("travel advisor not configured")
	}

	contentID, ok := destinationContentIDs[strings.ToLower(destination)]
	if !ok {
		contentID = "60763"
	}

	payload, err := json.Marshal(map[string]string{
		"contentType": "hotel",
		"contentId":   contentID,
		"questionId":  "8393250",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseURL+"/answers/v2/list", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", "travel-advisor.p.rapidapi.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("travel advisor error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed travelAdvisorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse travel advisor response: %v", err)
	}

	hotels := make([]Accommodation, 0, 3)
	for _, item := range parsed.Data.Content {
		b := item.Business
		if b.Name == "" {
			continue
		}

		amenities := make([]string, 0, len(b.Amenities))
		for _, a := range b.Amenities {
			if a.Name != "" {
				amenities = append(amenities, a.Name)
			}
		}
		if len(amenities) > 4 {
			amenities = amenities[:4]
		}

		price := b.PriceRange
		if price == "" {
			price = "$$"
		}
		location := b.LocationName
		if location == "" {
			location = titleCase(destination)
		}

		hotels = append(hotels, Accommodation{
			Name:      b.Name,
			Rating:    int(b.Rating.Primary + 0.5),
			Price:     price,
			Location:  location,
			Amenities: amenities,
		})
		if len(hotels) == 3 {
			break
		}
	}

	if len(hotels) == 0 {
		return nil, fmt.Errorf("no hotels returned for %s", destination)
	}
	return hotels, nil
}

// ─── Fallback (when Travel Advisor is not configured or fails) ────────────────

// GenerateAccommodationsFallback produces plausible hotel data without
// an API key.
func GenerateAccommodationsFallback(destination string) []Accommodation {
	city := titleCase(destination)
	prefixes := []string{"Grand", "Royal", "Luxury", "Premium", "Comfort", "Imperial"}
	areas := []string{"City Center", "Old Town", "Riverside", "Downtown"}
	amenityPool := [][]string{
		{"Free WiFi", "Pool", "Spa", "Restaurant"},
		{"Free WiFi", "Gym", "Bar", "Airport Shuttle"},
		{"Free WiFi", "Breakfast", "Parking", "Concierge"},
	}
	priceRanges := []string{"$$", "$$$", "$$$$"}

	hotels := make([]Accommodation, 0, 3)
	for i := 0; i < 3; i++ {
		prefix := prefixes[rand.Intn(len(prefixes))]
		hotels = append(hotels, Accommodation{
			Name:      fmt.Sprintf("%s %s Hotel", prefix, city),
			Rating:    3 + rand.Intn(3),
			Price:     priceRanges[i],
			Location:  fmt.Sprintf("%s, %s", areas[rand.Intn(len(areas))], city),
			Amenities: amenityPool[i],
		})
	}
	return hotels
}
