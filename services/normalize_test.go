package services

import (
	"testing"
	"time"
)

func record(airport, country, code string) RawFlightRecord {
	return RawFlightRecord{
		Arrival: FlightEndpoint{Airport: airport, Country: country, CountryCode: code},
		Flight:  FlightInfo{Number: "AT1001"},
	}
}

func TestNormalizeFlightsDedupAndFilter(t *testing.T) {
	records := []RawFlightRecord{
		record("Madrid Barajas", "Spain", "ES"),
		record("Agadir Al Massira", "Morocco", "MA"), // domestic
		record("Madrid Barajas", "Spain", "ES"),      // duplicate
		{Flight: FlightInfo{Number: "XX12"}},         // no arrival airport
		record("Heathrow", "United Kingdom", "GB"),
	}

	got, err := NormalizeFlights(records, "MA", 10)
	if err != nil {
		t.Fatalf("NormalizeFlights() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d destinations, want 2: %v", len(got), got)
	}
	if got[0].City != "Madrid Barajas" || got[1].City != "Heathrow" {
		t.Errorf("unexpected order: %v", got)
	}
	if got[0].Label() != "Madrid Barajas, Spain" {
		t.Errorf("Label() = %q", got[0].Label())
	}

	seen := map[string]bool{}
	for _, d := range got {
		if seen[d.City] {
			t.Errorf("duplicate city %q in output", d.City)
		}
		seen[d.City] = true
	}
}

func TestNormalizeFlightsCap(t *testing.T) {
	var records []RawFlightRecord
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		records = append(records, record(name+" Intl", "", ""))
	}
	got, err := NormalizeFlights(records, "MA", 3)
	if err != nil {
		t.Fatalf("NormalizeFlights() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d destinations, want cap of 3", len(got))
	}
}

func TestNormalizeFlightsEmpty(t *testing.T) {
	records := []RawFlightRecord{
		record("Agadir Al Massira", "Morocco", "MA"),
		{},
	}
	if _, err := NormalizeFlights(records, "MA", 10); err != ErrNoDestinations {
		t.Fatalf("NormalizeFlights() = %v, want ErrNoDestinations", err)
	}
}

func TestDerivePrice(t *testing.T) {
	dep := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	distance := 1200.0

	tests := []struct {
		name string
		rec  RawFlightRecord
		want int
	}{
		{
			name: "distance wins",
			rec: RawFlightRecord{
				Departure: FlightEndpoint{Scheduled: dep.Format(time.RFC3339)},
				Arrival:   FlightEndpoint{Scheduled: dep.Add(3 * time.Hour).Format(time.RFC3339)},
				Flight:    FlightInfo{Number: "AF007", Distance: &distance},
			},
			want: 1200,
		},
		{
			name: "elapsed hours at fixed rate",
			rec: RawFlightRecord{
				Departure: FlightEndpoint{Scheduled: dep.Format(time.RFC3339)},
				Arrival:   FlightEndpoint{Scheduled: dep.Add(3 * time.Hour).Format(time.RFC3339)},
				Flight:    FlightInfo{Number: "AF007"},
			},
			want: 1500,
		},
		{
			name: "flight number digits",
			rec:  RawFlightRecord{Flight: FlightInfo{Number: "AF007"}},
			want: 7,
		},
		{
			name: "no digits falls back to default",
			rec:  RawFlightRecord{Flight: FlightInfo{Number: "XYZ"}},
			want: 1000,
		},
		{
			name: "empty record",
			rec:  RawFlightRecord{},
			want: 1000,
		},
	}

	for _, tt := range tests {
		if got := derivePrice(tt.rec); got != tt.want {
			t.Errorf("%s: derivePrice() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
