package knowledge

import (
	"strings"
	"testing"
)

func TestSuggestSettingsMostCommonValue(t *testing.T) {
	s, _ := newTestStore(t)
	e := NewEngine(s)

	s.Record(NewRecord("budget_creation", "111", "CREATE budget a", 1,
		map[string]any{"delivery_method": "STANDARD"}))
	s.Record(NewRecord("budget_creation", "111", "CREATE budget b", 1,
		map[string]any{"delivery_method": "STANDARD"}))
	s.Record(NewRecord("budget_creation", "111", "CREATE budget c", 1,
		map[string]any{"delivery_method": "ACCELERATED"}))

	got := e.SuggestSettings("budget_creation", "")
	if got.RecommendedSettings["delivery_method"] != "STANDARD" {
		t.Fatalf("want STANDARD, got %q", got.RecommendedSettings["delivery_method"])
	}
	found := false
	for _, line := range got.Reasoning {
		if line == "delivery_method: STANDARD (used successfully 2 times)" {
			found = true
		}
	}
	if !found {
		t.Fatalf("reasoning must cite the count, got %v", got.Reasoning)
	}
	if got.Confidence != ConfidenceMedium {
		t.Fatalf("want medium confidence without customer history, got %q", got.Confidence)
	}
}

func TestSuggestSettingsTieBreakFirstSeen(t *testing.T) {
	s, _ := newTestStore(t)
	e := NewEngine(s)

	s.Record(NewRecord("budget_creation", "111", "a", 1, map[string]any{"delivery_method": "ACCELERATED"}))
	s.Record(NewRecord("budget_creation", "111", "b", 1, map[string]any{"delivery_method": "STANDARD"}))

	// Equal counts: the first-recorded value wins, every time.
	for i := 0; i < 3; i++ {
		got := e.SuggestSettings("budget_creation", "")
		if got.RecommendedSettings["delivery_method"] != "ACCELERATED" {
			t.Fatalf("tie must go to the first-seen value, got %q", got.RecommendedSettings["delivery_method"])
		}
	}
}

func TestSuggestSettingsCustomerConfidence(t *testing.T) {
	s, _ := newTestStore(t)
	e := NewEngine(s)

	s.Record(NewRecord("campaign_creation", "111", "CREATE campaign", 1,
		map[string]any{"bidding_strategy_type": "MAXIMIZE_CONVERSIONS"}))

	known := e.SuggestSettings("campaign_creation", "111")
	if known.Confidence != ConfidenceHigh {
		t.Fatalf("customer with history must get high confidence, got %q", known.Confidence)
	}
	cited := false
	for _, line := range known.Reasoning {
		if strings.Contains(line, "Customer 111 has 1 successful campaign_creation operations") {
			cited = true
		}
	}
	if !cited {
		t.Fatalf("reasoning must name the customer, got %v", known.Reasoning)
	}

	unknown := e.SuggestSettings("campaign_creation", "222")
	if unknown.Confidence != ConfidenceMedium {
		t.Fatalf("unseen customer must stay medium, got %q", unknown.Confidence)
	}
}

func TestSuggestSettingsUnknownOperation(t *testing.T) {
	s, _ := newTestStore(t)
	e := NewEngine(s)

	got := e.SuggestSettings("never_seen", "111")
	if len(got.RecommendedSettings) != 0 || len(got.Reasoning) != 0 {
		t.Fatalf("want empty suggestion, got %+v", got)
	}
	if got.Confidence != ConfidenceMedium {
		t.Fatalf("want medium, got %q", got.Confidence)
	}
}

func TestAiContextFiltering(t *testing.T) {
	s, _ := newTestStore(t)
	e := NewEngine(s)

	s.Record(NewRecord("gaql_query", "111", "SELECT 1", 2, nil))
	s.Record(NewRecord("campaign_creation", "222", "CREATE campaign", 1,
		map[string]any{"bidding_strategy_type": "TARGET_ROAS"}))

	ctx := e.AiContext("111", "gaql_query")
	if ctx.CustomerContext.SuccessfulOperations["gaql_query"] != 1 {
		t.Fatalf("customer slice wrong: %+v", ctx.CustomerContext)
	}
	if ctx.OperationContext.SuccessCount != 1 {
		t.Fatalf("operation slice wrong: %+v", ctx.OperationContext)
	}
	// Optimal configurations and the full pattern map stay unfiltered.
	if ctx.OptimalConfigurations["campaign_bidding"] == nil {
		t.Fatal("optimal configurations must be unfiltered")
	}
	if len(ctx.AllPatterns) != 2 {
		t.Fatalf("all patterns must be unfiltered, got %d", len(ctx.AllPatterns))
	}

	// Absent customer and operation come back as empty slices, not nil.
	empty := e.AiContext("999", "never_seen")
	if empty.CustomerContext == nil || len(empty.CustomerContext.SuccessfulOperations) != 0 {
		t.Fatalf("want empty customer context, got %+v", empty.CustomerContext)
	}
	if empty.OperationContext == nil || empty.OperationContext.SuccessCount != 0 {
		t.Fatalf("want empty operation context, got %+v", empty.OperationContext)
	}
}

func TestBuildSummary(t *testing.T) {
	s, _ := newTestStore(t)

	s.Record(NewRecord("gaql_query", "111", "SELECT 1", 2, nil))
	s.Record(NewRecord("campaign_creation", "222", "CREATE campaign", 1,
		map[string]any{"bidding_strategy_type": "TARGET_ROAS"}))

	sum := BuildSummary(s)
	if sum.LoggedEvents != 2 || sum.TotalSuccesses != 2 || sum.UniqueCustomers != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if sum.TopBiddingChoice != "TARGET_ROAS" {
		t.Fatalf("want TARGET_ROAS, got %q", sum.TopBiddingChoice)
	}
	text := sum.Render()
	if !strings.Contains(text, "gaql_query: 1") || !strings.Contains(text, "TARGET_ROAS") {
		t.Fatalf("render missing content:\n%s", text)
	}
}
