package googleads

import (
	"strings"
	"testing"
)

func float64p(v float64) *float64 { return &v }
func int64p(v int64) *int64       { return &v }

func TestCampaignMutatePayloadMask(t *testing.T) {
	payload, mask, err := CampaignMutatePayload("123", "456", CampaignUpdates{
		MCVTargetROAS:     float64p(27.5),
		DailyBudgetMicros: int64p(50000000),
		Status:            "PAUSED",
	})
	if err != nil {
		t.Fatalf("mutate payload: %v", err)
	}
	want := []string{"maximize_conversion_value.target_roas", "campaign_budget.amount_micros", "status"}
	if len(mask) != len(want) {
		t.Fatalf("want mask %v, got %v", want, mask)
	}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("want mask %v, got %v", want, mask)
		}
	}

	ops := payload["operations"].([]any)
	update := ops[0].(map[string]any)["update"].(map[string]any)
	if update["resource_name"] != "customers/123/campaigns/456" {
		t.Fatalf("resource name wrong: %v", update["resource_name"])
	}
	if update["update_mask"] != strings.Join(want, ",") {
		t.Fatalf("update mask wrong: %v", update["update_mask"])
	}
	mcv := update["maximize_conversion_value"].(map[string]any)
	if mcv["target_roas"] != 27.5 {
		t.Fatalf("mcv target roas wrong: %v", mcv)
	}
}

func TestCampaignMutatePayloadRequiresFields(t *testing.T) {
	_, _, err := CampaignMutatePayload("123", "456", CampaignUpdates{})
	if err == nil {
		t.Fatal("empty updates must error: the API requires an update mask")
	}
}

func TestBudgetCreatePayloadDefaults(t *testing.T) {
	payload := BudgetCreatePayload("Test Budget", 50000000, "")
	create := payload["operations"].([]any)[0].(map[string]any)["create"].(map[string]any)
	if create["delivery_method"] != "STANDARD" {
		t.Fatalf("want STANDARD default, got %v", create["delivery_method"])
	}
	if create["period"] != "DAILY" || create["explicitly_shared"] != false {
		t.Fatalf("budget defaults wrong: %v", create)
	}
}

func TestCampaignCreatePayloadBiddingStrategies(t *testing.T) {
	cases := []struct {
		strategy string
		key      string
	}{
		{"MAXIMIZE_CONVERSIONS", "maximize_conversions"},
		{"MAXIMIZE_CONVERSION_VALUE", "maximize_conversion_value"},
		{"MAXIMIZE_CLICKS", "maximize_clicks"},
		{"TARGET_CPA", "target_cpa"},
		{"TARGET_ROAS", "target_roas"},
		{"TARGET_IMPRESSION_SHARE", "target_impression_share"},
		{"TARGET_CPM", "target_cpm"},
		{"TARGET_SPEND", "target_spend"},
		{"MANUAL_CPC", "manual_cpc"},
		{"MANUAL_CPM", "manual_cpm"},
		{"MANUAL_CPV", "manual_cpv"},
		{"COMMISSION", "commission"},
		{"PERCENT_CPC", "percent_cpc"},
		{"SOMETHING_ELSE", "manual_cpc"},
		{"", "manual_cpc"},
	}
	for _, c := range cases {
		payload := CampaignCreatePayload(CampaignSpec{
			Name:                "c",
			BudgetResourceName:  "customers/1/campaignBudgets/2",
			BiddingStrategyType: c.strategy,
		})
		create := payload["operations"].([]any)[0].(map[string]any)["create"].(map[string]any)
		if _, ok := create[c.key]; !ok {
			t.Errorf("strategy %q: missing %q in %v", c.strategy, c.key, create)
		}
		if create["status"] != "PAUSED" {
			t.Errorf("strategy %q: new campaigns default to PAUSED", c.strategy)
		}
		if create["advertising_channel_type"] != "SEARCH" {
			t.Errorf("strategy %q: channel type wrong", c.strategy)
		}
	}
}

func TestCampaignCreatePayloadTargetDefaults(t *testing.T) {
	payload := CampaignCreatePayload(CampaignSpec{
		Name:                "c",
		BudgetResourceName:  "b",
		BiddingStrategyType: "TARGET_CPA",
	})
	create := payload["operations"].([]any)[0].(map[string]any)["create"].(map[string]any)
	tcpa := create["target_cpa"].(map[string]any)
	if tcpa["target_cpa_micros"] != int64(50000000) {
		t.Fatalf("want default target CPA, got %v", tcpa)
	}
}

func TestKeywordsCreatePayload(t *testing.T) {
	payload := KeywordsCreatePayload("customers/1/adGroups/2", []Keyword{
		{Text: "running shoes", MatchType: "EXACT"},
		{Text: "sneakers", MatchType: "BROAD"},
	})
	ops := payload["operations"].([]any)
	if len(ops) != 2 {
		t.Fatalf("want one operation per keyword, got %d", len(ops))
	}
	create := ops[0].(map[string]any)["create"].(map[string]any)
	kw := create["keyword"].(map[string]any)
	if kw["text"] != "running shoes" || kw["match_type"] != "EXACT" {
		t.Fatalf("keyword wrong: %v", kw)
	}
}

func TestValidateAdText(t *testing.T) {
	ok := ValidateAdText(
		[]string{"Buy Shoes", "Great Shoes", "Best Shoes"},
		[]string{"Quality footwear for less.", "Free shipping on all orders."},
	)
	if len(ok) != 0 {
		t.Fatalf("valid copy flagged: %v", ok)
	}

	errs := ValidateAdText(
		[]string{"This headline is way too long to pass validation at all", "Two"},
		[]string{"One"},
	)
	if len(errs) != 3 {
		t.Fatalf("want 3 violations (long headline, <3 headlines, <2 descriptions), got %v", errs)
	}

	longDesc := strings.Repeat("d", 91)
	errs = ValidateAdText([]string{"a", "b", "c"}, []string{longDesc, "ok"})
	if len(errs) != 1 || !strings.Contains(errs[0], "Description 1 too long") {
		t.Fatalf("want one long-description violation, got %v", errs)
	}
}

func TestResponsiveSearchAdPayloadPaths(t *testing.T) {
	payload := ResponsiveSearchAdPayload("customers/1/adGroups/2",
		[]string{"h1", "h2", "h3"}, []string{"d1", "d2"}, []string{"https://example.com"}, "shoes", "")
	create := payload["operations"].([]any)[0].(map[string]any)["create"].(map[string]any)
	ad := create["ad"].(map[string]any)
	rsa := ad["responsive_search_ad"].(map[string]any)
	if rsa["path1"] != "shoes" {
		t.Fatalf("path1 missing: %v", rsa)
	}
	if _, ok := rsa["path2"]; ok {
		t.Fatal("empty path2 must be omitted")
	}
	if len(rsa["headlines"].([]any)) != 3 {
		t.Fatal("headlines lost")
	}
}

func TestMatchOperation(t *testing.T) {
	cases := []struct {
		desc     string
		endpoint string
		ok       bool
	}{
		{"Create campaign for lead gen", "campaigns:mutate", true},
		{"please ADD NEGATIVE KEYWORDS to block spam", "campaignCriteria:mutate", true},
		{"upload conversions from crm", "conversionUploads:uploadClickConversions", true},
		{"do something mysterious", "", false},
	}
	for _, c := range cases {
		got, ok := MatchOperation(c.desc)
		if ok != c.ok || got != c.endpoint {
			t.Errorf("MatchOperation(%q): want (%q,%v), got (%q,%v)", c.desc, c.endpoint, c.ok, got, ok)
		}
	}
}

func TestLookupDoc(t *testing.T) {
	doc, _, ok := LookupDoc("Campaign")
	if !ok {
		t.Fatal("campaign doc must exist")
	}
	if len(doc.CommonFields) == 0 || doc.ExampleQuery == "" {
		t.Fatalf("campaign doc incomplete: %+v", doc)
	}

	if _, _, ok := LookupDoc("GoogleAdsService"); !ok {
		t.Fatal("GoogleAdsService doc must exist regardless of case")
	}

	_, available, ok := LookupDoc("nonexistent")
	if ok || len(available) == 0 {
		t.Fatal("unknown resource must list the available ones")
	}
}
