package chatbot

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	chooseRe = regexp.MustCompile(`(?i)^I\s+choose\s+(.+)$`)
	budgetRe = regexp.MustCompile(`(?i)^budget\s+for\s+(.+)$`)
)

// intent pairs a pattern with its handler. Evaluated in order, first
// match wins; the free-form branch is the fallthrough.
type intent struct {
	pattern *regexp.Regexp
	handle  func(s *Session, raw, arg string)
}

var intents = []intent{
	{chooseRe, (*Session).handleDestinationChoice},
	{budgetRe, (*Session).handleBudgetRequest},
}

// HandleMessage routes one user message. Destination choices and budget
// requests are handled locally with no remote call; anything else goes
// to the chat backend.
func (s *Session) HandleMessage(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	for _, in := range intents {
		if m := in.pattern.FindStringSubmatch(text); m != nil {
			in.handle(s, text, strings.TrimSpace(m[1]))
			return
		}
	}

	s.sendFreeForm(ctx, text)
}

// SelectDestinationCard routes a card click as if the user had typed
// the choice.
func (s *Session) SelectDestinationCard(ctx context.Context, destination string) {
	s.HandleMessage(ctx, "I choose "+destination)
}

// handleDestinationChoice confirms the choice, then fires the selection
// callback after the redirect delay so the confirmation can render.
func (s *Session) handleDestinationChoice(raw, destination string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.append(Message{Text: raw, Sender: SenderUser})
	s.append(Message{
		Text:       fmt.Sprintf("Great choice! Taking you to %s...", destination),
		Sender:     SenderBot,
		IsRedirect: true,
	})

	if s.redirectTimer != nil {
		s.redirectTimer.Stop()
	}
	cb := s.cfg.OnDestinationSelected
	s.redirectTimer = time.AfterFunc(s.cfg.RedirectDelay, func() {
		if cb != nil {
			cb(destination)
		}
	})
}

// handleBudgetRequest records the destination and opens the budget
// form. Only the user's own message is appended.
func (s *Session) handleBudgetRequest(raw, destination string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.append(Message{Text: raw, Sender: SenderUser})
	s.budgetParams.Destination = destination
	s.budgetOpen = true
}
