package services

import (
	"context"
	"encoding/json"
	"strings"
)

// ─── Types ────────────────────────────────────────────────────────────────────

// ProcessedResponse is an assistant reply with the formatting markers
// extracted for the client.
type ProcessedResponse struct {
	Text              string   `json:"text"`
	DestinationCards  []string `json:"destinationCards"`
	SuggestionButtons []string `json:"suggestionButtons"`
}

// ChatReply bundles the raw model text with its processed form and the
// session's current preferences.
type ChatReply struct {
	Response    string            `json:"response"`
	Processed   ProcessedResponse `json:"processed_response"`
	Preferences Preferences       `json:"userPreferences"`
}

const (
	destCardOpen  = "{destination_card}"
	destCardClose = "{/destination_card}"
	suggestOpen   = "{suggest_buttons}"
	suggestClose  = "{/suggest_buttons}"
)

// ─── Chat Service ─────────────────────────────────────────────────────────────

type ChatService struct {
	ai    *AIClient
	prefs *PreferenceStore
}

func NewChatService(ai *AIClient, prefs *PreferenceStore) *ChatService {
	return &ChatService{ai: ai, prefs: prefs}
}

// Respond answers one user message. Budget questions that name a known
// destination are answered from the pricing tables without a model call;
// everything else goes through the assistant model.
func (s *ChatService) Respond(ctx context.Context, sessionID, message string) (ChatReply, error) {
	prefs := s.prefs.Update(sessionID, message)

	var responseText string
	if dest, ok := budgetDestination(message); ok {
		level := prefs.BudgetLevel
		if level == "" {
			level = LevelMidRange
		}
		responseText = FormatBudgetChatReply(dest, CalculateDailyBudget(dest, level))
		s.ai.RecordExchange(sessionID, message, responseText)
	} else {
		text, err := s.ai.Chat(ctx, sessionID, message)
		if err != nil {
			return ChatReply{}, err
		}
		responseText = text
	}

	return ChatReply{
		Response:    responseText,
		Processed:   ExtractMarkers(responseText),
		Preferences: prefs,
	}, nil
}

// budgetDestination reports whether the message is a budget question
// about a known destination.
func budgetDestination(message string) (string, bool) {
	if !strings.Contains(strings.ToLower(message), "budget") {
		return "", false
	}
	return KnownDestination(message)
}

// ─── Marker extraction ────────────────────────────────────────────────────────

// ExtractMarkers pulls destination cards and suggestion buttons out of a
// model reply and returns the cleaned display text. Card markers become
// bold spans; button markers are removed entirely.
func ExtractMarkers(text string) ProcessedResponse {
	cards := extractSpans(text, destCardOpen, destCardClose)

	var buttons []string
	for _, span := range extractSpans(text, suggestOpen, suggestClose) {
		var parsed []string
		if err := json.Unmarshal([]byte(span), &parsed); err == nil {
			buttons = parsed
		}
	}

	clean := strings.ReplaceAll(text, destCardOpen, "**")
	clean = strings.ReplaceAll(clean, destCardClose, "**")
	clean = strings.ReplaceAll(clean, suggestOpen, "")
	clean = strings.ReplaceAll(clean, suggestClose, "")
	clean = stripJSONArtifact(clean)

	if cards == nil {
		cards = []string{}
	}
	if buttons == nil {
		buttons = []string{}
	}

	return ProcessedResponse{
		Text:              clean,
		DestinationCards:  cards,
		SuggestionButtons: buttons,
	}
}

func extractSpans(text, open, close string) []string {
	var spans []string
	for {
		start := strings.Index(text, open)
		if start < 0 {
			break
		}
		rest := text[start+len(open):]
		end := strings.Index(rest, close)
		if end < 0 {
			break
		}
		spans = append(spans, strings.TrimSpace(rest[:end]))
		text = rest[end+len(close):]
	}
	return spans
}

// stripJSONArtifact removes a leftover button array that survived marker
// removal, recognized by quotes and commas inside brackets.
func stripJSONArtifact(text string) string {
	start := strings.Index(text, "[")
	if start < 0 {
		return text
	}
	end := strings.Index(text[start:], "]")
	if end < 0 {
		return text
	}
	candidate := text[start : start+end+1]
	if strings.Contains(candidate, `"`) && strings.Contains(candidate, ",") {
		return strings.Replace(text, candidate, "", 1)
	}
	return text
}
