package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type ForecastDay struct {
	Day         string `json:"day"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
}

type WeatherInfo struct {
	Temperature int           `json:"temperature"`
	Condition   string        `json:"condition"`
	Humidity    int           `json:"humidity"`
	Wind        int           `json:"wind"`
	Forecast    []ForecastDay `json:"forecast"`
}

type FlightOption struct {
	Airline          string `json:"airline"`
	Price            int    `json:"price"`
	DepartureTime    string `json:"departureTime"`
	ArrivalTime      string `json:"arrivalTime"`
	Duration         string `json:"duration"`
	DepartureAirport string `json:"departureAirport"`
	ArrivalAirport   string `json:"arrivalAirport"`
}

// BudgetSummary is the condensed budget block attached to destination
// details.
type BudgetSummary struct {
	DailyMin         int          `json:"daily_min"`
	DailyMax         int          `json:"daily_max"`
	AccommodationMin int          `json:"accommodation_min"`
	AccommodationMax int          `json:"accommodation_max"`
	FoodMin          int          `json:"food_min"`
	FoodMax          int          `json:"food_max"`
	Attractions      []Attraction `json:"attractions"`
}

type DestinationDetails struct {
	Weather        WeatherInfo     `json:"weather"`
	Flights        []FlightOption  `json:"flights"`
	Accommodations []Accommodation `json:"accommodations"`
	Budget         BudgetSummary   `json:"budget"`
}

// ─── Aggregation ──────────────────────────────────────────────────────────────

// BuildDestinationDetails assembles weather, flights, hotels and a budget
// summary for one destination. Real hotel data takes priority over the
// sample generator; AI weather and flight data fall back to generated
// values when the model is unavailable or returns something unparsable.
func BuildDestinationDetails(ctx context.Context, destination string, prefs Preferences) DestinationDetails {
	var hotels []Accommodation
	if ta := GetTravelAdvisorClient(); ta != nil {
		if h, err := ta.FetchHotels(ctx, destination); err == nil {
			hotels = h
		} else {
			log.Printf("⚠️  Hotel lookup failed for %s: %v", destination, err)
		}
	}
	if len(hotels) == 0 {
		hotels = GenerateAccommodationsFallback(destination)
	}

	details, err := aiDestinationDetails(ctx, destination)
	if err != nil {
		log.Printf("⚠️  AI destination data failed for %s: %v", destination, err)
		details = generateMockDetails(destination)
	}

	details.Accommodations = hotels

	level := prefs.BudgetLevel
	if level == "" {
		level = LevelMidRange
	}
	daily := CalculateDailyBudget(destination, level)
	details.Budget = BudgetSummary{
		DailyMin:         daily.DailyTotal.Min,
		DailyMax:         daily.DailyTotal.Max,
		AccommodationMin: daily.Accommodation.Min,
		AccommodationMax: daily.Accommodation.Max,
		FoodMin:          daily.Food.Min,
		FoodMax:          daily.Food.Max,
		Attractions:      daily.Attractions,
	}

	return details
}

func aiDestinationDetails(ctx context.Context, destination string) (DestinationDetails, error) {
	ai := GetAIClient()
	if ai == nil {
		return DestinationDetails{}, fmt.Errorf("ai client not initialized")
	}

	raw, err := ai.GenerateDestinationData(ctx, destination)
	if err != nil {
		return DestinationDetails{}, err
	}

	var details DestinationDetails
	if err := json.Unmarshal([]byte(ExtractJSONBlock(raw)), &details); err != nil {
		return DestinationDetails{}, fmt.Errorf("failed to parse AI response: %v", err)
	}
	if len(details.Flights) == 0 && details.Weather.Condition == "" {
		return DestinationDetails{}, fmt.Errorf("ai response missing weather and flights")
	}
	return details, nil
}

// ExtractJSONBlock strips a markdown code fence from around a JSON
// payload, if present. Models often wrap structured output in ```json
// fences despite being told not to.
func ExtractJSONBlock(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.LastIndex(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		if end := strings.LastIndex(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}

// ─── Fallback (when the AI model is not configured or fails) ─────────────────

var weatherConditions = []string{"Sunny", "Cloudy", "Partly Cloudy", "Rainy", "Clear"}

func generateMockDetails(destination string) DestinationDetails {
	now := time.Now()

	weather := WeatherInfo{
		Temperature: 15 + rand.Intn(16),
		Condition:   weatherConditions[rand.Intn(len(weatherConditions))],
		Humidity:    40 + rand.Intn(51),
		Wind:        5 + rand.Intn(16),
	}
	for i := 1; i <= 5; i++ {
		weather.Forecast = append(weather.Forecast, ForecastDay{
			Day:         now.AddDate(0, 0, i).Format("Mon"),
			Temperature: 15 + rand.Intn(16),
			Condition:   weatherConditions[rand.Intn(len(weatherConditions))],
		})
	}

	airlines := []string{"Air Travel", "SkyWings", "Global Air", "FastJet", "StarFlight"}
	airports := []string{"JFK", "LAX", "LHR", "CDG", "DXB", "SIN", "SYD", "HND"}
	minuteMarks := []string{"00", "15", "30", "45"}

	arrivalCode := strings.ToUpper(destination)
	if len(arrivalCode) > 3 {
		arrivalCode = arrivalCode[:3]
	}

	flights := make([]FlightOption, 0, 3)
	for i := 0; i < 3; i++ {
		depHour := 6 + rand.Intn(17)
		durHours := 1 + rand.Intn(14)
		depMin := minuteMarks[rand.Intn(len(minuteMarks))]

		flights = append(flights, FlightOption{
			Airline:          airlines[rand.Intn(len(airlines))],
			Price:            200 + rand.Intn(1301),
			DepartureTime:    fmt.Sprintf("%02d:%s", depHour, depMin),
			ArrivalTime:      fmt.Sprintf("%02d:%s", (depHour+durHours)%24, depMin),
			Duration:         fmt.Sprintf("%dh %sm", durHours, minuteMarks[rand.Intn(len(minuteMarks))]),
			DepartureAirport: airports[rand.Intn(len(airports))],
			ArrivalAirport:   arrivalCode,
		})
	}

	return DestinationDetails{
		Weather:        weather,
		Flights:        flights,
		Accommodations: GenerateAccommodationsFallback(destination),
	}
}
