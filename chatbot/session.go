package chatbot

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultRedirectDelay is how long a destination confirmation stays
	// on screen before the selection callback fires.
	DefaultRedirectDelay = 1500 * time.Millisecond

	failureReply = "Sorry, there was an error. Please try again."
)

// Config wires a Session to its backends. Chat is required; Budget and
// OnDestinationSelected may be nil when those features are unused.
type Config struct {
	Chat                  ChatBackend
	Budget                BudgetBackend
	OnDestinationSelected func(destination string)
	RedirectDelay         time.Duration
}

// Session owns one conversation: its transcript, suggestion buttons,
// preference map and budget form state. All mutation goes through the
// session mutex.
type Session struct {
	ID string

	cfg Config

	mu            sync.Mutex
	messages      []Message
	suggestions   []string
	preferences   map[string]interface{}
	loading       bool
	budgetOpen    bool
	budgetParams  BudgetParams
	redirectTimer *time.Timer
	closed        bool
}

// NewSession creates a session with a fresh stable id. The id is reused
// for every request in this session so the remote backend can keep
// conversational state.
func NewSession(cfg Config) *Session {
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	return &Session{
		ID:          uuid.New().String(),
		cfg:         cfg,
		preferences: make(map[string]interface{}),
		budgetParams: BudgetParams{
			BudgetLevel: LevelMidRange,
			Duration:    7,
			Travelers:   1,
		},
	}
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Suggestions returns the current follow-up buttons.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// Loading reports whether a free-form request is in flight. The send
// action is disabled while true.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// BudgetFormOpen reports whether the budget form should be shown.
func (s *Session) BudgetFormOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgetOpen
}

// BudgetParams returns the current form values.
func (s *Session) BudgetParams() BudgetParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgetParams
}

// Preferences returns a copy of the accumulated preference map.
func (s *Session) Preferences() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]interface{}, len(s.preferences))
	for k, v := range s.preferences {
		out[k] = v
	}
	return out
}

// Close cancels any pending redirect and clears the transcript. The
// session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.redirectTimer != nil {
		s.redirectTimer.Stop()
		s.redirectTimer = nil
	}
	s.messages = nil
	s.suggestions = nil
	s.budgetOpen = false
	s.closed = true
}

func (s *Session) append(m Message) {
	s.messages = append(s.messages, m)
}

// sendFreeForm issues one remote chat call and absorbs any failure into
// an apology bot message. Errors never propagate to the caller.
func (s *Session) sendFreeForm(ctx context.Context, text string) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.append(Message{Text: text, Sender: SenderUser})
	s.mu.Unlock()

	reply, err := s.cfg.Chat.Chat(ctx, s.ID, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if s.closed {
		return
	}
	if err != nil {
		s.append(Message{Text: failureReply, Sender: SenderBot})
		return
	}

	for k, v := range reply.Preferences {
		s.preferences[k] = v
	}

	msg, suggestions := Compose(reply)
	s.append(msg)
	if suggestions != nil {
		s.suggestions = suggestions
	}
}
