package chatbot

import (
	"context"
	"fmt"
	"strings"
)

// RequestBudget clamps the form values, asks the estimator for a
// breakdown and appends the formatted report to the transcript. Like
// free-form chat, failures become an apology bot message instead of a
// returned error. On success the budget form closes and the result is
// returned for callers that persist it.
func (s *Session) RequestBudget(ctx context.Context, params BudgetParams) (BudgetResult, bool) {
	ClampParams(&params)

	s.mu.Lock()
	if s.closed || s.cfg.Budget == nil {
		s.mu.Unlock()
		return BudgetResult{}, false
	}
	s.budgetParams = params
	s.mu.Unlock()

	result, err := s.cfg.Budget.Estimate(ctx, s.ID, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return BudgetResult{}, false
	}
	if err != nil {
		s.append(Message{Text: failureReply, Sender: SenderBot})
		return BudgetResult{}, false
	}

	report := FormatReport(result)
	s.append(Message{
		Text:     report,
		HTML:     RenderMarkdown(report),
		Sender:   SenderBot,
		IsBudget: true,
	})
	s.budgetOpen = false
	return result, true
}

// FormatReport renders a cost breakdown as a fixed-structure markdown
// report: trip details, per-category daily ranges, flights, total.
func FormatReport(r BudgetResult) string {
	var b strings.Builder

	rangeLine := func(label string, rng Range) {
		fmt.Fprintf(&b, "- **%s:** $%d - $%d\n", label, rng.Min, rng.Max)
	}

	fmt.Fprintf(&b, "## Budget Estimate for %s\n\n", r.Destination)
	fmt.Fprintf(&b, "**Trip details:** %d days, %d traveler(s), %s\n\n", r.Duration, r.Travelers, r.BudgetLevel)

	b.WriteString("**Daily costs (all travelers):**\n")
	rangeLine("Accommodation", r.Accommodation)
	rangeLine("Food", r.Food)
	rangeLine("Activities", r.Activities)
	rangeLine("Local transport", r.Transportation)
	rangeLine("Daily total", r.DailyCost)
	b.WriteString("\n")

	rangeLine("Flights (round-trip)", r.Flights)
	b.WriteString("\n")
	fmt.Fprintf(&b, "**Total trip estimate: $%d - $%d**\n", r.TotalCost.Min, r.TotalCost.Max)

	return b.String()
}
