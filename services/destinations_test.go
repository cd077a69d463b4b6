package services

import "testing"

func TestExtractJSONBlock(t *testing.T) {
	fenced := "Here you go:\n```json\n{\"weather\": {}}\n```\nEnjoy!"
	if got := ExtractJSONBlock(fenced); got != `{"weather": {}}` {
		t.Errorf("fenced block = %q", got)
	}

	bare := "```\n{\"a\": 1}\n```"
	if got := ExtractJSONBlock(bare); got != `{"a": 1}` {
		t.Errorf("bare fence = %q", got)
	}

	plain := `{"a": 1}`
	if got := ExtractJSONBlock(plain); got != plain {
		t.Errorf("plain JSON = %q", got)
	}
}

func TestGenerateMockDetails(t *testing.T) {
	d := generateMockDetails("Tokyo")

	if len(d.Weather.Forecast) != 5 {
		t.Fatalf("forecast days = %d, want 5", len(d.Weather.Forecast))
	}
	if d.Weather.Temperature < 15 || d.Weather.Temperature > 30 {
		t.Errorf("temperature out of range: %d", d.Weather.Temperature)
	}
	if len(d.Flights) != 3 {
		t.Fatalf("flights = %d, want 3", len(d.Flights))
	}
	for _, f := range d.Flights {
		if f.ArrivalAirport != "TOK" {
			t.Errorf("arrival airport = %q, want TOK", f.ArrivalAirport)
		}
		if f.Airline == "" || f.Price <= 0 {
			t.Errorf("incomplete flight: %+v", f)
		}
	}
}
