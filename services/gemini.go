package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultChatModel = "gemini-1.5-flash-latest"

	// maxHistoryEntries bounds per-session history (10 exchanges).
	maxHistoryEntries = 20

	assistantInstruction = "You are TravelMate, a friendly travel assistant. Help users pick " +
		"destinations, plan trips, and estimate costs. Keep answers concise and use markdown " +
		"headings, bold text, and lists where it helps. When you recommend specific destinations, " +
		"wrap each city name in {destination_card}City{/destination_card} markers. When useful " +
		"follow-up questions exist, end the reply with " +
		`{suggest_buttons}["First suggestion", "Second suggestion"]{/suggest_buttons} ` +
		"containing two or three short phrases the user might send next."
)

// AIClient wraps the Gemini API and keeps per-session conversation history.
type AIClient struct {
	client *genai.Client
	model  string

	mu        sync.Mutex
	histories map[string][]*genai.Content
}

var aiClient *AIClient

func InitAI() {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultChatModel
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set — chat replies will use fallback text")
		aiClient = &AIClient{model: model, histories: make(map[string][]*genai.Content)}
		return
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("⚠️  Failed to create Gemini client: %v — chat replies will use fallback text", err)
		aiClient = &AIClient{model: model, histories: make(map[string][]*genai.Content)}
		return
	}

	aiClient = &AIClient{
		client:    client,
		model:     model,
		histories: make(map[string][]*genai.Content),
	}
	log.Println("✅ AI (Gemini) initialized with model:", model)
}

func GetAIClient() *AIClient {
	return aiClient
}

func (c *AIClient) Close() {
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			log.Printf("Error closing Gemini client: %v", err)
		}
	}
}

// Chat sends one user message within the session's running conversation and
// returns the model's raw reply, markers included.
func (c *AIClient) Chat(ctx context.Context, sessionID, message string) (string, error) {
	if c.client == nil {
		reply := fallbackChatReply()
		c.appendHistory(sessionID, message, reply)
		return reply, nil
	}

	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(assistantInstruction)},
	}
	temp := float32(0.7)
	maxTokens := int32(800)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temp,
		MaxOutputTokens: &maxTokens,
	}

	c.mu.Lock()
	history := append([]*genai.Content(nil), c.histories[sessionID]...)
	c.mu.Unlock()

	chat := model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini chat request failed: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}

	c.appendHistory(sessionID, message, text)
	return text, nil
}

// RecordExchange stores a locally produced exchange (for example a budget
// short-circuit) so the model keeps conversational context.
func (c *AIClient) RecordExchange(sessionID, userMessage, reply string) {
	c.appendHistory(sessionID, userMessage, reply)
}

func (c *AIClient) appendHistory(sessionID, userMessage, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := append(c.histories[sessionID],
		&genai.Content{Role: "user", Parts: []genai.Part{genai.Text(userMessage)}},
		&genai.Content{Role: "model", Parts: []genai.Part{genai.Text(reply)}},
	)
	if len(h) > maxHistoryEntries {
		h = h[len(h)-maxHistoryEntries:]
	}
	c.histories[sessionID] = h
}

// GenerateDestinationData asks the model for structured weather and flight
// data for a destination. The caller parses and falls back on error.
func (c *AIClient) GenerateDestinationData(ctx context.Context, destination string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("gemini not configured")
	}

	prompt := fmt.Sprintf(`Generate realistic travel data for %s in JSON format with these sections:
1. Weather information for %s with current conditions and 5-day forecast
2. Three recommended flights to %s from major hubs

Format:
{
  "weather": {
    "temperature": <current temperature in Celsius>,
    "condition": <current weather condition>,
    "humidity": <humidity percentage>,
    "wind": <wind speed in km/h>,
    "forecast": <array of 5 days with day, temperature, and condition>
  },
  "flights": <array of 3 flights with airline, price, departureTime, arrivalTime, duration, departureAirport, arrivalAirport>
}

Important: Return ONLY the JSON with no additional text or explanation.
Use realistic data appropriate for %s's climate and geography.`,
		destination, destination, destination, destination)

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation request failed: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}

// fallbackChatReply keeps the assistant usable without an API key: a
// canned recommendation set using the same marker format the model is
// instructed to produce.
func fallbackChatReply() string {
	return "Here are a few destinations travelers love:\n\n" +
		"{destination_card}Paris{/destination_card}\n" +
		"Museums, cafes and walkable neighborhoods.\n\n" +
		"{destination_card}Tokyo{/destination_card}\n" +
		"Incredible food and seamless transit.\n\n" +
		"{destination_card}Barcelona{/destination_card}\n" +
		"Beaches, Gaudi and late dinners.\n\n" +
		`{suggest_buttons}["I choose Paris", "Budget for Tokyo", "I choose Barcelona"]{/suggest_buttons}`
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}
