package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

// ─── Types ────────────────────────────────────────────────────────────────────

// FlightEndpoint is one end of a scheduled flight as reported by the
// provider. Country fields are only populated on arrivals.
type FlightEndpoint struct {
	Airport     string `json:"airport"`
	IATA        string `json:"iata"`
	Scheduled   string `json:"scheduled"`
	Timezone    string `json:"timezone"`
	Terminal    string `json:"terminal"`
	Gate        string `json:"gate"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

type AirlineInfo struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
}

type FlightInfo struct {
	Number   string   `json:"number"`
	IATA     string   `json:"iata"`
	Distance *float64 `json:"distance,omitempty"`
}

// RawFlightRecord is the provider's flight shape. Any field may be missing;
// downstream processing must degrade instead of failing.
type RawFlightRecord struct {
	FlightDate   string         `json:"flight_date"`
	FlightStatus string         `json:"flight_status"`
	Departure    FlightEndpoint `json:"departure"`
	Arrival      FlightEndpoint `json:"arrival"`
	Airline      AirlineInfo    `json:"airline"`
	Flight       FlightInfo     `json:"flight"`
	Duration     string         `json:"duration,omitempty"`
}

// ─── Aviationstack Client ─────────────────────────────────────────────────────

type AviationstackClient struct {
	accessKey  string
	baseURL    string
	limit      int
	httpClient *http.Client
}

var aviationstackClient *AviationstackClient

func InitAviationstack() {
	baseURL := os.Getenv("AVIATIONSTACK_URL")
	if baseURL == "" {
		baseURL = "http://api.aviationstack.com"
	}

	aviationstackClient = &AviationstackClient{
		accessKey: os.Getenv("AVIATIONSTACK_ACCESS_KEY"),
		baseURL:   baseURL,
		limit:     100,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if aviationstackClient.accessKey == "" {
		log.Println("⚠️  AVIATIONSTACK_ACCESS_KEY not set — destination listings will use sample data")
	} else {
		log.Println("✅ Aviationstack flight provider configured")
	}
}

func GetAviationstackClient() *AviationstackClient {
	return aviationstackClient
}

type aviationstackResponse struct {
	Data  []RawFlightRecord `json:"data"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// FetchFlights lists scheduled flights departing from depCountry. The batch
// size is capped by the configured limit.
func (c *AviationstackClient) FetchFlights(ctx context.Context, depCountry string) ([]RawFlightRecord, error) {
	if c.accessKey == "" {
		return nil, fmt.Errorf("aviationstack not configured")
	}

	params := url.Values{}
	params.Set("access_key", c.accessKey)
	params.Set("dep_country", depCountry)
	params.Set("limit", fmt.Sprintf("%d", c.limit))

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/flights?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aviationstack error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed aviationstackResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse flight listing: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("aviationstack error: %s", parsed.Error.Info)
	}

	return parsed.Data, nil
}

// ─── Fallback (when aviationstack is not configured or fails) ─────────────────

// GenerateFlightsFallback produces a plausible departure board without an
// API key so the destination list still renders.
func GenerateFlightsFallback(homeCountryCode string) []RawFlightRecord {
	type route struct {
		airport  string
		iata     string
		country  string
		code     string
		airline  string
		carrier  string
		number   string
		hours    int
		distance float64
	}

	routes := []route{
		{"Madrid Barajas", "MAD", "Spain", "ES", "Iberia", "IB", "IB3201", 2, 0},
		{"Charles de Gaulle", "CDG", "France", "FR", "Air France", "AF", "AF1459", 3, 1880},
		{"Heathrow", "LHR", "United Kingdom", "GB", "British Airways", "BA", "BA457", 3, 2090},
		{"Istanbul Airport", "IST", "Turkey", "TR", "Turkish Airlines", "TK", "TK620", 5, 3420},
		{"Dubai International", "DXB", "United Arab Emirates", "AE", "Emirates", "EK", "EK752", 7, 0},
		{"Frankfurt am Main", "FRA", "Germany", "DE", "Lufthansa", "LH", "LH1237", 4, 2300},
	}

	now := time.Now().UTC().Truncate(time.Hour)
	records := make([]RawFlightRecord, 0, len(routes))
	for i, r := range routes {
		dep := now.Add(time.Duration(2+i) * time.Hour)
		arr := dep.Add(time.Duration(r.hours) * time.Hour)

		rec := RawFlightRecord{
			FlightDate:   dep.Format("2006-01-02"),
			FlightStatus: "scheduled",
			Departure: FlightEndpoint{
				Airport:   "Mohammed V International",
				IATA:      "CMN",
				Scheduled: dep.Format(time.RFC3339),
				Timezone:  "Africa/Casablanca",
			},
			Arrival: FlightEndpoint{
				Airport:     r.airport,
				IATA:        r.iata,
				Scheduled:   arr.Format(time.RFC3339),
				Country:     r.country,
				CountryCode: r.code,
			},
			Airline: AirlineInfo{Name: r.airline, IATA: r.carrier},
			Flight:  FlightInfo{Number: r.number, IATA: r.carrier + r.number},
		}
		if r.distance > 0 {
			d := r.distance
			rec.Flight.Distance = &d
		}
		records = append(records, rec)
	}
	return records
}
