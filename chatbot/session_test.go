package chatbot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type chatCall struct {
	sessionID string
	message   string
}

type fakeChat struct {
	mu    sync.Mutex
	calls []chatCall
	reply Reply
	err   error
}

func (f *fakeChat) Chat(ctx context.Context, sessionID, message string) (Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, chatCall{sessionID, message})
	return f.reply, f.err
}

func (f *fakeChat) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeBudget struct {
	got    BudgetParams
	result BudgetResult
	err    error
}

func (f *fakeBudget) Estimate(ctx context.Context, sessionID string, params BudgetParams) (BudgetResult, error) {
	f.got = params
	return f.result, f.err
}

func TestDestinationChoiceIntent(t *testing.T) {
	chat := &fakeChat{}
	selected := make(chan string, 1)

	s := NewSession(Config{
		Chat:                  chat,
		OnDestinationSelected: func(d string) { selected <- d },
		RedirectDelay:         10 * time.Millisecond,
	})

	s.HandleMessage(context.Background(), "I choose Paris")

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Sender != SenderUser || msgs[0].Text != "I choose Paris" {
		t.Fatalf("unexpected user message: %+v", msgs[0])
	}
	if msgs[1].Sender != SenderBot || !msgs[1].IsRedirect {
		t.Fatalf("second message should be a redirect bot message: %+v", msgs[1])
	}

	select {
	case d := <-selected:
		if d != "Paris" {
			t.Fatalf("callback got %q, want Paris", d)
		}
	case <-time.After(time.Second):
		t.Fatal("selection callback never fired")
	}

	if n := chat.callCount(); n != 0 {
		t.Fatalf("destination choice made %d remote calls, want 0", n)
	}
}

func TestDestinationChoiceCaseInsensitive(t *testing.T) {
	selected := make(chan string, 1)
	s := NewSession(Config{
		Chat:                  &fakeChat{},
		OnDestinationSelected: func(d string) { selected <- d },
		RedirectDelay:         time.Millisecond,
	})

	s.HandleMessage(context.Background(), "i CHOOSE   Rome")

	select {
	case d := <-selected:
		if d != "Rome" {
			t.Fatalf("callback got %q, want Rome", d)
		}
	case <-time.After(time.Second):
		t.Fatal("selection callback never fired")
	}
}

func TestBudgetIntent(t *testing.T) {
	chat := &fakeChat{}
	s := NewSession(Config{Chat: chat})

	s.HandleMessage(context.Background(), "budget for Tokyo")

	if got := s.BudgetParams().Destination; got != "Tokyo" {
		t.Fatalf("destination = %q, want Tokyo", got)
	}
	if !s.BudgetFormOpen() {
		t.Fatal("budget form should be open")
	}
	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].Sender != SenderUser {
		t.Fatalf("only the user's own message should be appended, got %+v", msgs)
	}
	if n := chat.callCount(); n != 0 {
		t.Fatalf("budget intent made %d remote calls, want 0", n)
	}
}

func TestFreeFormMessage(t *testing.T) {
	chat := &fakeChat{
		reply: Reply{
			Response: "Rome is sunny today.",
			Processed: &Processed{
				Text:              "Rome is sunny today.",
				DestinationCards:  []string{"Rome"},
				SuggestionButtons: []string{"I choose Rome"},
			},
			Preferences: map[string]interface{}{"budget_level": "luxury"},
		},
	}
	s := NewSession(Config{Chat: chat})

	s.HandleMessage(context.Background(), "What's the weather in Rome?")

	chat.mu.Lock()
	calls := append([]chatCall(nil), chat.calls...)
	chat.mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("got %d remote calls, want 1", len(calls))
	}
	if calls[0].message != "What's the weather in Rome?" {
		t.Fatalf("sent %q, want original message", calls[0].message)
	}
	if calls[0].sessionID != s.ID {
		t.Fatalf("sent session %q, want %q", calls[0].sessionID, s.ID)
	}

	if s.Loading() {
		t.Fatal("loading flag still set after response")
	}

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[1].Sender != SenderBot || len(msgs[1].DestinationCards) != 1 {
		t.Fatalf("unexpected bot message: %+v", msgs[1])
	}
	if sugg := s.Suggestions(); len(sugg) != 1 || sugg[0] != "I choose Rome" {
		t.Fatalf("suggestions = %v", sugg)
	}
	if got := s.Preferences()["budget_level"]; got != "luxury" {
		t.Fatalf("preferences not merged: %v", s.Preferences())
	}
}

func TestFreeFormSessionIDStable(t *testing.T) {
	chat := &fakeChat{reply: Reply{Response: "ok"}}
	s := NewSession(Config{Chat: chat})

	s.HandleMessage(context.Background(), "first")
	s.HandleMessage(context.Background(), "second")

	chat.mu.Lock()
	defer chat.mu.Unlock()
	if len(chat.calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(chat.calls))
	}
	if chat.calls[0].sessionID != chat.calls[1].sessionID {
		t.Fatal("session id changed between requests")
	}
}

func TestFreeFormErrorAbsorbed(t *testing.T) {
	chat := &fakeChat{err: errors.New("backend down")}
	s := NewSession(Config{Chat: chat})

	s.HandleMessage(context.Background(), "hello")

	if s.Loading() {
		t.Fatal("loading flag still set after failure")
	}
	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want user + apology", len(msgs))
	}
	if msgs[1].Sender != SenderBot || !strings.Contains(msgs[1].Text, "error") {
		t.Fatalf("expected apology bot message, got %+v", msgs[1])
	}
}

func TestCloseCancelsRedirect(t *testing.T) {
	selected := make(chan string, 1)
	s := NewSession(Config{
		Chat:                  &fakeChat{},
		OnDestinationSelected: func(d string) { selected <- d },
		RedirectDelay:         50 * time.Millisecond,
	})

	s.HandleMessage(context.Background(), "I choose Paris")
	s.Close()

	select {
	case <-selected:
		t.Fatal("callback fired after Close")
	case <-time.After(150 * time.Millisecond):
	}

	if len(s.Messages()) != 0 {
		t.Fatal("transcript not cleared on Close")
	}
}

func TestRequestBudget(t *testing.T) {
	budget := &fakeBudget{
		result: BudgetResult{
			Destination: "Tokyo",
			Duration:    30,
			Travelers:   2,
			BudgetLevel: LevelMidRange,
			DailyCost:   Range{Min: 200, Max: 400},
			Flights:     Range{Min: 1600, Max: 3200},
			TotalCost:   Range{Min: 7600, Max: 15200},
		},
	}
	s := NewSession(Config{Chat: &fakeChat{}, Budget: budget})

	s.HandleMessage(context.Background(), "budget for Tokyo")

	result, ok := s.RequestBudget(context.Background(), BudgetParams{
		Destination: "Tokyo",
		BudgetLevel: "extravagant",
		Duration:    99,
		Travelers:   0,
	})
	if !ok {
		t.Fatal("estimate failed")
	}
	if result.Destination != "Tokyo" {
		t.Fatalf("result destination = %q", result.Destination)
	}

	if budget.got.Duration != 30 || budget.got.Travelers != 1 {
		t.Fatalf("params not clamped: %+v", budget.got)
	}
	if budget.got.BudgetLevel != LevelMidRange {
		t.Fatalf("budget level not defaulted: %q", budget.got.BudgetLevel)
	}

	if s.BudgetFormOpen() {
		t.Fatal("budget form still open after report")
	}
	msgs := s.Messages()
	last := msgs[len(msgs)-1]
	if !last.IsBudget || last.Sender != SenderBot {
		t.Fatalf("expected budget bot message, got %+v", last)
	}
	if !strings.Contains(last.Text, "Tokyo") || !strings.Contains(last.Text, "$7600 - $15200") {
		t.Fatalf("unexpected report text: %q", last.Text)
	}
}

func TestRequestBudgetError(t *testing.T) {
	budget := &fakeBudget{err: errors.New("estimator down")}
	s := NewSession(Config{Chat: &fakeChat{}, Budget: budget})

	if _, ok := s.RequestBudget(context.Background(), BudgetParams{Destination: "Paris", Duration: 5, Travelers: 2}); ok {
		t.Fatal("expected failure")
	}
	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].Sender != SenderBot {
		t.Fatalf("expected a single apology bot message, got %+v", msgs)
	}
}

func TestCardClickRoutesAsChoice(t *testing.T) {
	selected := make(chan string, 1)
	s := NewSession(Config{
		Chat:                  &fakeChat{},
		OnDestinationSelected: func(d string) { selected <- d },
		RedirectDelay:         time.Millisecond,
	})

	s.SelectDestinationCard(context.Background(), "Barcelona")

	select {
	case d := <-selected:
		if d != "Barcelona" {
			t.Fatalf("callback got %q", d)
		}
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
}
