package services

import (
	"fmt"
	"math/rand"
	"strings"
)

// ─── Types ────────────────────────────────────────────────────────────────────

// Range is a min/max cost estimate in USD.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CategoryRange is a Range with the trip-length total for the category.
type CategoryRange struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Total int `json:"total"`
}

type Attraction struct {
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

// DailyBudget is the per-person, per-day cost breakdown for a destination.
type DailyBudget struct {
	Accommodation Range        `json:"accommodation"`
	Food          Range        `json:"food"`
	Activities    Range        `json:"activities"`
	Transport     Range        `json:"transport"`
	DailyTotal    Range        `json:"daily_total"`
	Attractions   []Attraction `json:"attractions"`
}

// BudgetRequest carries the calculator parameters. Duration and Travelers
// are clamped, not rejected; BudgetLevel defaults to mid-range.
type BudgetRequest struct {
	Destination string `json:"destination"`
	BudgetLevel string `json:"budgetLevel"`
	Duration    int    `json:"duration"`
	Travelers   int    `json:"travelers"`
	SessionID   string `json:"sessionId"`
}

// BudgetResponse is the full trip estimate returned by the calculator.
type BudgetResponse struct {
	Destination    string        `json:"destination"`
	Duration       int           `json:"duration"`
	Travelers      int           `json:"travelers"`
	BudgetLevel    string        `json:"budgetLevel"`
	DailyCost      Range         `json:"dailyCost"`
	Accommodation  CategoryRange `json:"accommodation"`
	Food           CategoryRange `json:"food"`
	Activities     CategoryRange `json:"activities"`
	Transportation CategoryRange `json:"transportation"`
	Flights        Range         `json:"flights"`
	TotalCost      Range         `json:"totalCost"`
	Attractions    []Attraction  `json:"attractions"`
}

// ─── Pricing tables ───────────────────────────────────────────────────────────

const (
	LevelBudget   = "budget"
	LevelMidRange = "mid-range"
	LevelLuxury   = "luxury"
)

// Per person, per day base costs in USD.
var baseCosts = map[string]map[string]Range{
	LevelBudget: {
		"accommodation": {50, 100},
		"food":          {20, 40},
		"activities":    {10, 30},
		"transport":     {5, 15},
	},
	LevelMidRange: {
		"accommodation": {100, 250},
		"food":          {40, 80},
		"activities":    {30, 60},
		"transport":     {15, 40},
	},
	LevelLuxury: {
		"accommodation": {250, 1000},
		"food":          {80, 200},
		"activities":    {60, 200},
		"transport":     {40, 150},
	},
}

// Cost-of-living multipliers per destination.
var costMultipliers = map[string]float64{
	"paris":         1.3,
	"london":        1.4,
	"new york":      1.5,
	"tokyo":         1.4,
	"dubai":         1.3,
	"sydney":        1.2,
	"hong kong":     1.3,
	"singapore":     1.2,
	"las vegas":     1.1,
	"bangkok":       0.6,
	"barcelona":     1.0,
	"rome":          1.1,
	"berlin":        1.0,
	"madrid":        1.0,
	"amsterdam":     1.2,
	"chicago":       1.1,
	"los angeles":   1.3,
	"san francisco": 1.4,
	"miami":         1.2,
}

// Round-trip flight costs per budget tier.
var flightCosts = map[string]Range{
	LevelBudget:   {300, 600},
	LevelMidRange: {600, 1200},
	LevelLuxury:   {1200, 3000},
}

// Flight price multipliers for long-haul or premium routes.
var flightMultipliers = map[string]float64{
	"paris":    1.2,
	"london":   1.2,
	"new york": 1.0,
	"tokyo":    1.5,
	"dubai":    1.3,
	"sydney":   1.8,
	"bangkok":  1.4,
}

var attractionsData = map[string][]Attraction{
	"paris": {
		{"Eiffel Tower", 25},
		{"Louvre Museum", 17},
		{"Seine River Cruise", 15},
	},
	"london": {
		{"Tower of London", 30},
		{"London Eye", 35},
		{"Westminster Abbey", 25},
	},
	"new york": {
		{"Empire State Building", 42},
		{"Metropolitan Museum of Art", 25},
		{"Statue of Liberty Ferry", 24},
	},
	"tokyo": {
		{"Tokyo Skytree", 23},
		{"Robot Restaurant Show", 80},
		{"Senso-ji Temple", 0},
	},
	"rome": {
		{"Colosseum", 16},
		{"Vatican Museums", 17},
		{"Roman Forum", 16},
	},
}

// ─── Calculation ──────────────────────────────────────────────────────────────

// ClampBudgetRequest normalizes form input in place: duration 1–30, travelers
// 1–10, budget level one of the three tiers.
func ClampBudgetRequest(req *BudgetRequest) {
	if req.Duration < 1 {
		req.Duration = 1
	} else if req.Duration > 30 {
		req.Duration = 30
	}
	if req.Travelers < 1 {
		req.Travelers = 1
	} else if req.Travelers > 10 {
		req.Travelers = 10
	}
	switch req.BudgetLevel {
	case LevelBudget, LevelMidRange, LevelLuxury:
	default:
		req.BudgetLevel = LevelMidRange
	}
}

// CalculateDailyBudget scales base tier costs by the destination's
// cost-of-living multiplier.
func CalculateDailyBudget(destination, budgetLevel string) DailyBudget {
	base, ok := baseCosts[budgetLevel]
	if !ok {
		base = baseCosts[LevelMidRange]
	}

	mult := 1.0
	if m, ok := costMultipliers[strings.ToLower(destination)]; ok {
		mult = m
	}

	scale := func(r Range) Range {
		return Range{Min: int(float64(r.Min) * mult), Max: int(float64(r.Max) * mult)}
	}

	b := DailyBudget{
		Accommodation: scale(base["accommodation"]),
		Food:          scale(base["food"]),
		Activities:    scale(base["activities"]),
		Transport:     scale(base["transport"]),
		Attractions:   destinationAttractions(destination),
	}
	b.DailyTotal = Range{
		Min: b.Accommodation.Min + b.Food.Min + b.Activities.Min + b.Transport.Min,
		Max: b.Accommodation.Max + b.Food.Max + b.Activities.Max + b.Transport.Max,
	}
	return b
}

// CalculateTripBudget assembles the full estimate: daily costs scaled by
// travelers and duration, plus tier flight costs with route adjustment.
func CalculateTripBudget(req BudgetRequest) BudgetResponse {
	ClampBudgetRequest(&req)

	daily := CalculateDailyBudget(req.Destination, req.BudgetLevel)

	dailyMin := daily.DailyTotal.Min * req.Travelers
	dailyMax := daily.DailyTotal.Max * req.Travelers
	tripMin := dailyMin * req.Duration
	tripMax := dailyMax * req.Duration

	flights := flightCosts[req.BudgetLevel]
	flightMult := 1.0
	if m, ok := flightMultipliers[strings.ToLower(req.Destination)]; ok {
		flightMult = m
	}
	flightMin := int(float64(flights.Min*req.Travelers) * flightMult)
	flightMax := int(float64(flights.Max*req.Travelers) * flightMult)

	category := func(r Range) CategoryRange {
		return CategoryRange{
			Min:   r.Min * req.Travelers,
			Max:   r.Max * req.Travelers,
			Total: r.Min * req.Travelers * req.Duration,
		}
	}

	return BudgetResponse{
		Destination:    req.Destination,
		Duration:       req.Duration,
		Travelers:      req.Travelers,
		BudgetLevel:    req.BudgetLevel,
		DailyCost:      Range{Min: dailyMin, Max: dailyMax},
		Accommodation:  category(daily.Accommodation),
		Food:           category(daily.Food),
		Activities:     category(daily.Activities),
		Transportation: category(daily.Transport),
		Flights:        Range{Min: flightMin, Max: flightMax},
		TotalCost:      Range{Min: tripMin + flightMin, Max: tripMax + flightMax},
		Attractions:    daily.Attractions,
	}
}

func destinationAttractions(destination string) []Attraction {
	if a, ok := attractionsData[strings.ToLower(destination)]; ok {
		return a
	}
	title := titleCase(destination)
	return []Attraction{
		{Name: title + " City Tour", Cost: 15 + rand.Intn(26)},
		{Name: title + " Museum", Cost: 10 + rand.Intn(16)},
		{Name: title + " Historic Site", Cost: 5 + rand.Intn(26)},
	}
}

// FormatBudgetChatReply renders the in-chat budget summary the assistant
// returns when a budget question names a known destination. Suggestion
// buttons ride along as markers for the response processor.
func FormatBudgetChatReply(destination string, b DailyBudget) string {
	title := titleCase(destination)

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Budget Estimate for %s\n\n", title)

	sb.WriteString("**Accommodation:**\n")
	fmt.Fprintf(&sb, "* Budget: $%d-$%d per night\n", b.Accommodation.Min, b.Accommodation.Max)
	fmt.Fprintf(&sb, "* Mid-range: $%d-$%d per night\n", b.Accommodation.Min*2, b.Accommodation.Max*3/2)
	fmt.Fprintf(&sb, "* Luxury: $%d+ per night\n\n", b.Accommodation.Max*3/2)

	sb.WriteString("**Food:**\n")
	fmt.Fprintf(&sb, "* Budget meals: $%d-$%d per day\n", b.Food.Min, b.Food.Min*3/2)
	fmt.Fprintf(&sb, "* Mid-range dining: $%d-$%d per day\n", b.Food.Min*3/2, b.Food.Max)
	fmt.Fprintf(&sb, "* Fine dining: $%d+ per meal\n\n", b.Food.Max)

	sb.WriteString("**Transportation:**\n")
	fmt.Fprintf(&sb, "* Public transit: $%d per day\n", b.Transport.Min)
	fmt.Fprintf(&sb, "* Car rental: $%d-$%d per day\n", b.Transport.Min*3, b.Transport.Max*2)
	fmt.Fprintf(&sb, "* Taxis/rideshares: Average $%d per ride\n\n", b.Transport.Min*2)

	sb.WriteString("**Activities:**\n")
	if len(b.Attractions) > 0 {
		for i, a := range b.Attractions {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&sb, "* %s: $%d\n", a.Name, a.Cost)
		}
	} else {
		sb.WriteString("* Free attractions: Parks, walking tours, public spaces\n")
		fmt.Fprintf(&sb, "* Paid attractions: $%d-$%d per activity\n", b.Activities.Min, b.Activities.Max)
		fmt.Fprintf(&sb, "* Tours: $%d-$%d per tour\n", b.Activities.Min*2, b.Activities.Max*2)
	}

	fmt.Fprintf(&sb, "\n**Estimated daily budget:** $%d-$%d depending on travel style\n\n", b.DailyTotal.Min, b.DailyTotal.Max)
	fmt.Fprintf(&sb, `{suggest_buttons}["I choose %s", "Weather in %s", "Things to do in %s"]{/suggest_buttons}`,
		title, title, title)

	return sb.String()
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
