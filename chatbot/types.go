// Package chatbot implements the conversational travel assistant: an
// intent router over chat messages, a response composer for structured
// replies, and a budget estimator client. Remote concerns are injected
// through small backend interfaces so the session logic stays testable.
package chatbot

import "context"

// Message is one entry in a session transcript. Ordering is insertion
// order and never changes.
type Message struct {
	Text             string   `json:"text"`
	HTML             string   `json:"html,omitempty"`
	Sender           string   `json:"sender"`
	DestinationCards []string `json:"destinationCards,omitempty"`
	IsRedirect       bool     `json:"isRedirect,omitempty"`
	IsBudget         bool     `json:"isBudget,omitempty"`
}

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Processed is the structured payload a chat backend may attach to a
// reply: cleaned display text plus optional cards and follow-up
// suggestions.
type Processed struct {
	Text              string   `json:"text"`
	DestinationCards  []string `json:"destinationCards"`
	SuggestionButtons []string `json:"suggestionButtons"`
}

// Reply is a chat backend response. Processed is nil when the backend
// returned plain text only.
type Reply struct {
	Response    string                 `json:"response"`
	Processed   *Processed             `json:"processed_response,omitempty"`
	Preferences map[string]interface{} `json:"userPreferences,omitempty"`
}

// Range is a min/max estimate in USD.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// BudgetParams carries the estimator form values. Duration and
// Travelers are clamped before sending, never rejected.
type BudgetParams struct {
	Destination string `json:"destination"`
	BudgetLevel string `json:"budgetLevel"`
	Duration    int    `json:"duration"`
	Travelers   int    `json:"travelers"`
}

const (
	LevelBudget   = "budget"
	LevelMidRange = "mid-range"
	LevelLuxury   = "luxury"

	MinDuration  = 1
	MaxDuration  = 30
	MinTravelers = 1
	MaxTravelers = 10
)

// BudgetResult is the remote estimator's cost breakdown.
type BudgetResult struct {
	Destination    string `json:"destination"`
	Duration       int    `json:"duration"`
	Travelers      int    `json:"travelers"`
	BudgetLevel    string `json:"budgetLevel"`
	DailyCost      Range  `json:"dailyCost"`
	Accommodation  Range  `json:"accommodation"`
	Food           Range  `json:"food"`
	Activities     Range  `json:"activities"`
	Transportation Range  `json:"transportation"`
	Flights        Range  `json:"flights"`
	TotalCost      Range  `json:"totalCost"`
}

// ChatBackend answers free-form messages for a session.
type ChatBackend interface {
	Chat(ctx context.Context, sessionID, message string) (Reply, error)
}

// BudgetBackend computes a trip cost breakdown.
type BudgetBackend interface {
	Estimate(ctx context.Context, sessionID string, params BudgetParams) (BudgetResult, error)
}

// ClampParams forces the form values into their allowed ranges and
// defaults the budget level to mid-range.
func ClampParams(p *BudgetParams) {
	if p.Duration < MinDuration {
		p.Duration = MinDuration
	}
	if p.Duration > MaxDuration {
		p.Duration = MaxDuration
	}
	if p.Travelers < MinTravelers {
		p.Travelers = MinTravelers
	}
	if p.Travelers > MaxTravelers {
		p.Travelers = MaxTravelers
	}
	switch p.BudgetLevel {
	case LevelBudget, LevelMidRange, LevelLuxury:
	default:
		p.BudgetLevel = LevelMidRange
	}
}
