package services

import "testing"

func TestPreferenceExtraction(t *testing.T) {
	ps := NewPreferenceStore()

	p := ps.Update("s1", "We want a luxury honeymoon in Paris with great food, about 10 days")

	if p.BudgetLevel != LevelLuxury {
		t.Errorf("budget level = %q, want luxury", p.BudgetLevel)
	}
	if p.TravelType != "couple" {
		t.Errorf("travel type = %q, want couple", p.TravelType)
	}
	if p.TravelDuration != "10 days" {
		t.Errorf("duration = %q, want 10 days", p.TravelDuration)
	}
	if len(p.PreferredDestinations) != 1 || p.PreferredDestinations[0] != "paris" {
		t.Errorf("destinations = %v, want [paris]", p.PreferredDestinations)
	}
	if len(p.TravelInterests) != 1 || p.TravelInterests[0] != "food" {
		t.Errorf("interests = %v, want [food]", p.TravelInterests)
	}
}

func TestPreferencesAccumulateAcrossMessages(t *testing.T) {
	ps := NewPreferenceStore()

	ps.Update("s1", "Somewhere cheap with beaches")
	p := ps.Update("s1", "Maybe Bangkok, I love food and food markets")

	if p.BudgetLevel != LevelBudget {
		t.Errorf("budget level = %q, want budget", p.BudgetLevel)
	}
	if len(p.TravelInterests) != 2 {
		t.Errorf("interests = %v, want beach and food once each", p.TravelInterests)
	}
	if len(p.PreferredDestinations) != 1 || p.PreferredDestinations[0] != "bangkok" {
		t.Errorf("destinations = %v", p.PreferredDestinations)
	}

	// Sessions are isolated.
	if other := ps.Get("s2"); other.BudgetLevel != "" || len(other.TravelInterests) != 0 {
		t.Errorf("unexpected prefs for fresh session: %+v", other)
	}
}

func TestKnownDestination(t *testing.T) {
	if dest, ok := KnownDestination("I'd love to visit New York in spring"); !ok || dest != "new york" {
		t.Errorf("got (%q, %v), want (new york, true)", dest, ok)
	}
	if _, ok := KnownDestination("somewhere warm"); ok {
		t.Error("unknown place should not match")
	}
}
