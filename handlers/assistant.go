package handlers

import (
	"context"
	"log"
	"net/http"
	"sync"
	"travelmate/chatbot"
	"travelmate/database"
	"travelmate/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ─── Backend adapters ─────────────────────────────────────────────────────────

// chatAdapter exposes the chat service as a chatbot backend.
type chatAdapter struct {
	svc *services.ChatService
}

func (a chatAdapter) Chat(ctx context.Context, sessionID, message string) (chatbot.Reply, error) {
	reply, err := a.svc.Respond(ctx, sessionID, message)
	if err != nil {
		return chatbot.Reply{}, err
	}

	return chatbot.Reply{
		Response: reply.Response,
		Processed: &chatbot.Processed{
			Text:              reply.Processed.Text,
			DestinationCards:  reply.Processed.DestinationCards,
			SuggestionButtons: reply.Processed.SuggestionButtons,
		},
		Preferences: preferencesMap(reply.Preferences),
	}, nil
}

func preferencesMap(p services.Preferences) map[string]interface{} {
	m := make(map[string]interface{})
	if len(p.PreferredDestinations) > 0 {
		m["preferred_destinations"] = p.PreferredDestinations
	}
	if len(p.TravelInterests) > 0 {
		m["travel_interests"] = p.TravelInterests
	}
	if p.BudgetLevel != "" {
		m["budget_level"] = p.BudgetLevel
	}
	if p.TravelType != "" {
		m["travel_type"] = p.TravelType
	}
	if p.TravelDuration != "" {
		m["travel_duration"] = p.TravelDuration
	}
	return m
}

// budgetAdapter computes estimates from the local pricing tables.
type budgetAdapter struct{}

func (budgetAdapter) Estimate(ctx context.Context, sessionID string, params chatbot.BudgetParams) (chatbot.BudgetResult, error) {
	result := services.CalculateTripBudget(services.BudgetRequest{
		Destination: params.Destination,
		BudgetLevel: params.BudgetLevel,
		Duration:    params.Duration,
		Travelers:   params.Travelers,
		SessionID:   sessionID,
	})

	toRange := func(r services.Range) chatbot.Range {
		return chatbot.Range{Min: r.Min, Max: r.Max}
	}
	return chatbot.BudgetResult{
		Destination:    result.Destination,
		Duration:       result.Duration,
		Travelers:      result.Travelers,
		BudgetLevel:    result.BudgetLevel,
		DailyCost:      toRange(result.DailyCost),
		Accommodation:  chatbot.Range{Min: result.Accommodation.Min, Max: result.Accommodation.Max},
		Food:           chatbot.Range{Min: result.Food.Min, Max: result.Food.Max},
		Activities:     chatbot.Range{Min: result.Activities.Min, Max: result.Activities.Max},
		Transportation: chatbot.Range{Min: result.Transportation.Min, Max: result.Transportation.Max},
		Flights:        toRange(result.Flights),
		TotalCost:      toRange(result.TotalCost),
	}, nil
}

// ─── Session registry ─────────────────────────────────────────────────────────

// AssistantRegistry owns the server-side assistant sessions and tracks
// the destination each session last redirected to.
type AssistantRegistry struct {
	chatSvc *services.ChatService

	mu       sync.Mutex
	sessions map[string]*chatbot.Session
	selected map[string]string
}

func NewAssistantRegistry(chatSvc *services.ChatService) *AssistantRegistry {
	return &AssistantRegistry{
		chatSvc:  chatSvc,
		sessions: make(map[string]*chatbot.Session),
		selected: make(map[string]string),
	}
}

func (r *AssistantRegistry) get(id string) *chatbot.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id]
}

type sessionState struct {
	SessionID      string               `json:"session_id"`
	Messages       []chatbot.Message    `json:"messages"`
	Suggestions    []string             `json:"suggestions"`
	Loading        bool                 `json:"loading"`
	BudgetFormOpen bool                 `json:"budgetFormOpen"`
	BudgetParams   chatbot.BudgetParams `json:"budgetParams"`
	SelectedDest   string               `json:"selectedDestination,omitempty"`
}

func (r *AssistantRegistry) state(id string, s *chatbot.Session) sessionState {
	r.mu.Lock()
	selected := r.selected[id]
	r.mu.Unlock()

	return sessionState{
		SessionID:      id,
		Messages:       s.Messages(),
		Suggestions:    s.Suggestions(),
		Loading:        s.Loading(),
		BudgetFormOpen: s.BudgetFormOpen(),
		BudgetParams:   s.BudgetParams(),
		SelectedDest:   selected,
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

func (r *AssistantRegistry) CreateSessionHandler(c *gin.Context) {
	// The redirect callback fires after the confirmation delay, well
	// after the id below is filled in; the client polls the selection
	// from session state.
	id := new(string)
	s := chatbot.NewSession(chatbot.Config{
		Chat:   chatAdapter{svc: r.chatSvc},
		Budget: budgetAdapter{},
		OnDestinationSelected: func(destination string) {
			r.mu.Lock()
			r.selected[*id] = destination
			r.mu.Unlock()
		},
	})
	*id = s.ID

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	c.JSON(http.StatusCreated, r.state(s.ID, s))
}

func (r *AssistantRegistry) PostMessageHandler(c *gin.Context) {
	s := r.get(c.Param("id"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		return
	}

	s.HandleMessage(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, r.state(c.Param("id"), s))
}

func (r *AssistantRegistry) SelectCardHandler(c *gin.Context) {
	s := r.get(c.Param("id"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req struct {
		Destination string `json:"destination" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	s.SelectDestinationCard(c.Request.Context(), req.Destination)
	c.JSON(http.StatusOK, r.state(c.Param("id"), s))
}

func (r *AssistantRegistry) BudgetHandler(c *gin.Context) {
	id := c.Param("id")
	s := r.get(id)
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var params chatbot.BudgetParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, ok := s.RequestBudget(c.Request.Context(), params)
	if ok {
		r.persistReport(id, result)
	}
	c.JSON(http.StatusOK, r.state(id, s))
}

func (r *AssistantRegistry) persistReport(sessionID string, result chatbot.BudgetResult) {
	if database.DB == nil {
		return
	}
	err := database.SaveBudgetReport(&database.BudgetReport{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Destination: result.Destination,
		BudgetLevel: result.BudgetLevel,
		Duration:    result.Duration,
		Travelers:   result.Travelers,
		ReportMD:    chatbot.FormatReport(result),
	})
	if err != nil {
		log.Printf("⚠️  Failed to save assistant budget report: %v", err)
	}
}

func (r *AssistantRegistry) CloseSessionHandler(c *gin.Context) {
	id := c.Param("id")

	r.mu.Lock()
	s := r.sessions[id]
	delete(r.sessions, id)
	delete(r.selected, id)
	r.mu.Unlock()

	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	s.Close()
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}
