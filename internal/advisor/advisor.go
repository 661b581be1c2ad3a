package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Recommendation is one bidding or structure strategy suggested for a goal.
type Recommendation struct {
	Strategy       string `json:"strategy"`
	Reason         string `json:"reason"`
	Implementation string `json:"implementation"`
}

// Advisor turns a free-form business goal into strategy recommendations.
// The rule set always works; the optional LLM client only adds a narrative
// summary and never gates the result.
type Advisor struct {
	llm Client
}

func New(llm Client) *Advisor {
	return &Advisor{llm: llm}
}

// Recommend maps goal keywords to strategies. An unrecognized goal yields
// an empty list, not an error.
func (a *Advisor) Recommend(goal string) []Recommendation {
	lower := strings.ToLower(goal)
	var out []Recommendation

	if strings.Contains(lower, "lead") || strings.Contains(lower, "conversion") {
		out = append(out, Recommendation{
			Strategy:       "Maximize Conversions with Target CPA",
			Reason:         "Best for lead generation goals",
			Implementation: "Use MAXIMIZE_CONVERSIONS bidding with target_cpa_micros based on your desired cost per lead",
		})
	}
	if strings.Contains(lower, "roas") || strings.Contains(lower, "revenue") {
		out = append(out, Recommendation{
			Strategy:       "Maximize Conversion Value with Target ROAS",
			Reason:         "Best for revenue optimization",
			Implementation: "Use MAXIMIZE_CONVERSION_VALUE bidding with target_roas based on your profit margins",
		})
	}
	if strings.Contains(lower, "expand") || strings.Contains(lower, "new market") {
		out = append(out, Recommendation{
			Strategy:       "Geographic Expansion Strategy",
			Reason:         "Scale successful campaigns to new locations",
			Implementation: "Copy high-performing campaigns and adjust geo-targeting and bids for new markets",
		})
	}
	return out
}

// NextSteps is the standard follow-up checklist attached to every
// recommendation response.
func NextSteps() []string {
	return []string{
		"Review current campaign performance",
		"Identify top-performing keywords and ads",
		"Implement recommended bidding strategy",
		"Set up proper conversion tracking",
	}
}

// Narrate asks the LLM to summarize the recommendations for the given goal.
// Without a client, or on any LLM failure, it returns an empty string and
// the caller proceeds with the rule-based output alone.
func (a *Advisor) Narrate(ctx context.Context, goal, businessContext string, recs []Recommendation) string {
	if a.llm == nil || len(recs) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Business goal: %s\n", goal)
	if businessContext != "" {
		fmt.Fprintf(&b, "Context: %s\n", businessContext)
	}
	b.WriteString("Proposed Google Ads strategies:\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", r.Strategy, r.Reason, r.Implementation)
	}
	b.WriteString("In 3 sentences or fewer, explain which strategy to start with and why.")

	resp, err := a.llm.Generate(ctx, []Message{
		{Role: "system", Content: "You are a concise Google Ads strategist."},
		{Role: "user", Content: b.String()},
	})
	if err != nil {
		log.Printf("⚠️ Advisor LLM unavailable, returning rule-based recommendations only: %v", err)
		return ""
	}
	return strings.TrimSpace(resp.Content)
}
