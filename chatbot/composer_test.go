package chatbot

import (
	"strings"
	"testing"
)

func TestComposePlainReply(t *testing.T) {
	msg, suggestions := Compose(Reply{Response: "Just some text."})

	if msg.Text != "Just some text." {
		t.Fatalf("text = %q", msg.Text)
	}
	if msg.DestinationCards != nil {
		t.Fatalf("plain reply should have no cards: %v", msg.DestinationCards)
	}
	if suggestions != nil {
		t.Fatalf("plain reply should not change suggestions: %v", suggestions)
	}
	if msg.Sender != SenderBot {
		t.Fatalf("sender = %q", msg.Sender)
	}
}

func TestComposeStructuredReply(t *testing.T) {
	msg, suggestions := Compose(Reply{
		Response: "raw text with markers",
		Processed: &Processed{
			Text:              "## Top picks\n\n**Paris** and **Tokyo**",
			DestinationCards:  []string{"Paris", "Tokyo"},
			SuggestionButtons: []string{"I choose Paris", "Budget for Paris"},
		},
	})

	if msg.Text != "## Top picks\n\n**Paris** and **Tokyo**" {
		t.Fatalf("text = %q", msg.Text)
	}
	if len(msg.DestinationCards) != 2 {
		t.Fatalf("cards = %v", msg.DestinationCards)
	}
	if len(suggestions) != 2 {
		t.Fatalf("suggestions = %v", suggestions)
	}
	if !strings.Contains(msg.HTML, "<h2") || !strings.Contains(msg.HTML, "<strong>Paris</strong>") {
		t.Fatalf("markdown not rendered: %q", msg.HTML)
	}
}

func TestComposeEmptyProcessedTextFallsBack(t *testing.T) {
	msg, _ := Compose(Reply{
		Response:  "fallback text",
		Processed: &Processed{},
	})
	if msg.Text != "fallback text" {
		t.Fatalf("text = %q", msg.Text)
	}
}

func TestFormatReportStructure(t *testing.T) {
	report := FormatReport(BudgetResult{
		Destination:    "Paris",
		Duration:       7,
		Travelers:      2,
		BudgetLevel:    LevelLuxury,
		DailyCost:      Range{Min: 500, Max: 900},
		Accommodation:  Range{Min: 300, Max: 500},
		Food:           Range{Min: 100, Max: 200},
		Activities:     Range{Min: 60, Max: 120},
		Transportation: Range{Min: 40, Max: 80},
		Flights:        Range{Min: 2400, Max: 5000},
		TotalCost:      Range{Min: 5900, Max: 11300},
	})

	for _, want := range []string{
		"## Budget Estimate for Paris",
		"7 days, 2 traveler(s), luxury",
		"**Accommodation:** $300 - $500",
		"**Daily total:** $500 - $900",
		"**Flights (round-trip):** $2400 - $5000",
		"**Total trip estimate: $5900 - $11300**",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}
