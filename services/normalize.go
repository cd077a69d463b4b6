package services

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrNoDestinations is returned when a batch yields nothing to display.
var ErrNoDestinations = errors.New("no destinations found")

const (
	// DefaultMaxDestinations caps the rendered destination list.
	DefaultMaxDestinations = 10

	// pricePerHour is the heuristic rate applied to flight time when the
	// provider reports no distance. Placeholder pricing, not authoritative.
	pricePerHour = 500

	// defaultPrice is the last-resort price when nothing can be derived.
	defaultPrice = 1000
)

// DisplayDestination is a deduplicated, display-ready arrival city.
type DisplayDestination struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
	Price   int    `json:"price"`
}

// Label renders the destination name, with the country suffixed when known.
func (d DisplayDestination) Label() string {
	if d.Country == "" {
		return d.City
	}
	return d.City + ", " + d.Country
}

// NormalizeFlights turns a raw provider batch into at most max display
// destinations. Domestic arrivals and records without an arrival airport are
// skipped, the first record per arrival airport wins, and missing fields
// degrade to the next pricing fallback rather than failing the batch.
func NormalizeFlights(records []RawFlightRecord, homeCountryCode string, max int) ([]DisplayDestination, error) {
	if max <= 0 {
		max = DefaultMaxDestinations
	}

	seen := make(map[string]bool)
	out := make([]DisplayDestination, 0, max)

	for _, rec := range records {
		if len(out) >= max {
			break
		}
		if rec.Arrival.Airport == "" {
			continue
		}
		if homeCountryCode != "" && rec.Arrival.CountryCode == homeCountryCode {
			continue
		}
		if seen[rec.Arrival.Airport] {
			continue
		}
		seen[rec.Arrival.Airport] = true

		out = append(out, DisplayDestination{
			City:    rec.Arrival.Airport,
			Country: rec.Arrival.Country,
			Price:   derivePrice(rec),
		})
	}

	if len(out) == 0 {
		return nil, ErrNoDestinations
	}
	return out, nil
}

// derivePrice applies the pricing fallback chain: reported distance, then
// elapsed flight time at a fixed hourly rate, then the digits of the flight
// number, then a flat default.
func derivePrice(rec RawFlightRecord) int {
	if rec.Flight.Distance != nil {
		return int(math.Round(*rec.Flight.Distance))
	}

	if dep, arr, ok := scheduledTimes(rec); ok {
		hours := arr.Sub(dep).Hours()
		return int(math.Round(hours * pricePerHour))
	}

	if n, ok := flightNumberDigits(rec.Flight.Number); ok {
		return n
	}
	return defaultPrice
}

func scheduledTimes(rec RawFlightRecord) (dep, arr time.Time, ok bool) {
	if rec.Departure.Scheduled == "" || rec.Arrival.Scheduled == "" {
		return time.Time{}, time.Time{}, false
	}
	dep, err := time.Parse(time.RFC3339, rec.Departure.Scheduled)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	arr, err = time.Parse(time.RFC3339, rec.Arrival.Scheduled)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return dep, arr, true
}

func flightNumberDigits(number string) (int, bool) {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
