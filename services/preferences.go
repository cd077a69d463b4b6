package services

import (
	"fmt"
	"strings"
	"sync"
)

// Preferences are travel preferences inferred from a session's messages.
type Preferences struct {
	PreferredDestinations []string `json:"preferred_destinations"`
	TravelInterests       []string `json:"travel_interests"`
	BudgetLevel           string   `json:"budget_level,omitempty"`
	TravelType            string   `json:"travel_type,omitempty"`
	TravelDuration        string   `json:"travel_duration,omitempty"`
}

var travelInterests = []string{
	"beach", "mountain", "hiking", "culture", "history", "food", "adventure",
	"relaxation", "shopping", "nightlife", "nature", "wildlife", "diving",
	"skiing", "art", "museum",
}

// PreferenceStore accumulates per-session preferences across messages.
type PreferenceStore struct {
	mu    sync.Mutex
	prefs map[string]*Preferences
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{prefs: make(map[string]*Preferences)}
}

// Get returns a copy of the session's preferences.
func (s *PreferenceStore) Get(sessionID string) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.prefs[sessionID]; ok {
		return *p
	}
	return Preferences{}
}

// Update extracts signals from one message and merges them into the
// session's preferences, returning the merged result.
func (s *PreferenceStore) Update(sessionID, message string) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.prefs[sessionID]
	if !ok {
		p = &Preferences{
			PreferredDestinations: []string{},
			TravelInterests:       []string{},
		}
		s.prefs[sessionID] = p
	}

	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "luxury", "high-end", "five-star", "5-star"):
		p.BudgetLevel = LevelLuxury
	case containsAny(lower, "budget", "cheap", "affordable", "inexpensive"):
		p.BudgetLevel = LevelBudget
	case containsAny(lower, "mid-range", "moderate", "medium"):
		p.BudgetLevel = LevelMidRange
	}

	switch {
	case containsAny(lower, "family", "kids", "children"):
		p.TravelType = "family"
	case containsAny(lower, "solo", "alone", "by myself"):
		p.TravelType = "solo"
	case containsAny(lower, "couple", "romantic", "honeymoon"):
		p.TravelType = "couple"
	case containsAny(lower, "friends", "group"):
		p.TravelType = "group"
	}

	for _, interest := range travelInterests {
		if strings.Contains(lower, interest) && !containsString(p.TravelInterests, interest) {
			p.TravelInterests = append(p.TravelInterests, interest)
		}
	}

	for _, unit := range []string{"day", "days", "week", "weeks", "month", "months"} {
		if !strings.Contains(lower, unit) {
			continue
		}
		for n := 1; n <= 30; n++ {
			if strings.Contains(lower, fmt.Sprintf("%d %s", n, unit)) {
				p.TravelDuration = fmt.Sprintf("%d %s", n, unit)
				break
			}
		}
	}

	for dest := range destinationContentIDs {
		if strings.Contains(lower, dest) && !containsString(p.PreferredDestinations, dest) {
			p.PreferredDestinations = append(p.PreferredDestinations, dest)
		}
	}

	return *p
}

// KnownDestination returns the first known destination mentioned in the
// message, if any.
func KnownDestination(message string) (string, bool) {
	lower := strings.ToLower(message)
	for dest := range destinationContentIDs {
		if strings.Contains(lower, dest) {
			return dest, true
		}
	}
	return "", false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
