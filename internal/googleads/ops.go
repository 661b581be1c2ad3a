package googleads

import (
	"fmt"
	"strings"
)

// Endpoint renders a customer-scoped API path.
func Endpoint(customerID, suffix string) string {
	return fmt.Sprintf("customers/%s/%s", customerID, suffix)
}

// SearchPayload wraps a GAQL query for the googleAds:search endpoint.
func SearchPayload(query string) map[string]any {
	return map[string]any{"query": query}
}

// CampaignSearchQuery lists non-removed campaigns with basic metrics.
func CampaignSearchQuery(limit int) string {
	if limit <= 0 {
		limit = 10
	}
	return fmt.Sprintf(`SELECT
    campaign.id,
    campaign.name,
    campaign.status,
    campaign.advertising_channel_type,
    metrics.impressions,
    metrics.clicks,
    metrics.cost_micros
FROM campaign
WHERE campaign.status != 'REMOVED'
LIMIT %d`, limit)
}

// AccountInfoQuery selects the basic customer account fields.
func AccountInfoQuery() string {
	return `SELECT
    customer.id,
    customer.descriptive_name,
    customer.currency_code,
    customer.time_zone,
    customer.auto_tagging_enabled,
    customer.pay_per_conversion_eligibility_failure_reasons
FROM customer
WHERE customer.id = customer.id`
}

// CampaignUpdates are the supported mutate_campaign fields.
type CampaignUpdates struct {
	TargetROAS              *float64       `json:"target_roas,omitempty"`
	MCVTargetROAS           *float64       `json:"mcv_target_roas,omitempty"`
	MaximizeConversionValue map[string]any `json:"maximize_conversion_value,omitempty"`
	DailyBudgetMicros       *int64         `json:"daily_budget_micros,omitempty"`
	Status                  string         `json:"status,omitempty"`
}

// CampaignMutatePayload builds the update operation and its update mask.
// It returns an error when no supported field was provided: the API
// rejects mutations without a mask.
func CampaignMutatePayload(customerID, campaignID string, updates CampaignUpdates) (map[string]any, []string, error) {
	update := map[string]any{
		"resource_name": fmt.Sprintf("customers/%s/campaigns/%s", customerID, campaignID),
	}
	var mask []string

	if updates.TargetROAS != nil {
		update["target_roas"] = map[string]any{"target_roas": *updates.TargetROAS}
		mask = append(mask, "target_roas.target_roas")
	}
	if updates.MaximizeConversionValue != nil {
		update["maximize_conversion_value"] = updates.MaximizeConversionValue
		if _, ok := updates.MaximizeConversionValue["target_roas"]; ok {
			mask = append(mask, "maximize_conversion_value.target_roas")
		}
	}
	if updates.MCVTargetROAS != nil {
		update["maximize_conversion_value"] = map[string]any{"target_roas": *updates.MCVTargetROAS}
		mask = append(mask, "maximize_conversion_value.target_roas")
	}
	if updates.DailyBudgetMicros != nil {
		update["campaign_budget"] = map[string]any{"amount_micros": *updates.DailyBudgetMicros}
		mask = append(mask, "campaign_budget.amount_micros")
	}
	if updates.Status != "" {
		update["status"] = updates.Status
		mask = append(mask, "status")
	}

	if len(mask) == 0 {
		return nil, nil, fmt.Errorf("no valid fields provided for update; use 'mcv_target_roas' for maximize conversion value campaigns")
	}
	update["update_mask"] = strings.Join(mask, ",")

	return map[string]any{
		"operations": []any{map[string]any{"update": update}},
	}, mask, nil
}

// BudgetCreatePayload builds a daily campaign budget creation.
// explicitly_shared stays false: smart bidding strategies require it.
func BudgetCreatePayload(name string, amountMicros int64, deliveryMethod string) map[string]any {
	if deliveryMethod == "" {
		deliveryMethod = "STANDARD"
	}
	return map[string]any{
		"operations": []any{map[string]any{
			"create": map[string]any{
				"name":              name,
				"amount_micros":     amountMicros,
				"delivery_method":   deliveryMethod,
				"period":            "DAILY",
				"explicitly_shared": false,
			},
		}},
	}
}

// CampaignSpec describes a search campaign to create.
type CampaignSpec struct {
	Name                string
	BudgetResourceName  string
	BiddingStrategyType string
	TargetCPAMicros     int64
	TargetROAS          float64
	Status              string
}

// CampaignCreatePayload builds a search campaign creation covering every
// supported bidding strategy. Unrecognized strategies fall back to manual
// CPC. Location targeting is applied separately, after creation.
func CampaignCreatePayload(spec CampaignSpec) map[string]any {
	status := spec.Status
	if status == "" {
		status = "PAUSED"
	}
	campaign := map[string]any{
		"name":                     spec.Name,
		"status":                   status,
		"advertising_channel_type": "SEARCH",
		"campaign_budget":          spec.BudgetResourceName,
		"network_settings": map[string]any{
			"target_google_search":          true,
			"target_search_network":         true,
			"target_partner_search_network": false,
			"target_content_network":        false,
		},
		"geo_target_type_setting": map[string]any{
			"positive_geo_target_type": "PRESENCE_OR_INTEREST",
			"negative_geo_target_type": "PRESENCE",
		},
	}

	switch spec.BiddingStrategyType {
	case "MAXIMIZE_CONVERSIONS":
		strategy := map[string]any{}
		if spec.TargetCPAMicros > 0 {
			strategy["target_cpa_micros"] = spec.TargetCPAMicros
		}
		campaign["maximize_conversions"] = strategy
	case "MAXIMIZE_CONVERSION_VALUE":
		strategy := map[string]any{}
		if spec.TargetROAS > 0 {
			strategy["target_roas"] = spec.TargetROAS
		}
		campaign["maximize_conversion_value"] = strategy
	case "MAXIMIZE_CLICKS":
		strategy := map[string]any{}
		if spec.TargetCPAMicros > 0 {
			strategy["target_spend_micros"] = spec.TargetCPAMicros
		}
		campaign["maximize_clicks"] = strategy
	case "TARGET_CPA":
		campaign["target_cpa"] = map[string]any{"target_cpa_micros": defaultInt64(spec.TargetCPAMicros, 50000000)}
	case "TARGET_ROAS":
		campaign["target_roas"] = map[string]any{"target_roas": defaultFloat(spec.TargetROAS, 4.0)}
	case "TARGET_IMPRESSION_SHARE":
		campaign["target_impression_share"] = map[string]any{
			"target_impression_share_micros": int64(defaultFloat(spec.TargetROAS, 0.5) * 1000000),
			"cpc_bid_ceiling_micros":         defaultInt64(spec.TargetCPAMicros, 10000000),
			"location":                       "SEARCH_PAGE_TOP",
		}
	case "TARGET_CPM":
		campaign["target_cpm"] = map[string]any{"target_cpm_micros": defaultInt64(spec.TargetCPAMicros, 5000000)}
	case "TARGET_SPEND":
		campaign["target_spend"] = map[string]any{"target_spend_micros": defaultInt64(spec.TargetCPAMicros, 50000000)}
	case "MANUAL_CPC":
		campaign["manual_cpc"] = map[string]any{}
	case "MANUAL_CPM":
		campaign["manual_cpm"] = map[string]any{}
	case "MANUAL_CPV":
		campaign["manual_cpv"] = map[string]any{}
	case "COMMISSION":
		campaign["commission"] = map[string]any{"commission_rate_micros": int64(defaultFloat(spec.TargetROAS, 0.05) * 1000000)}
	case "PERCENT_CPC":
		campaign["percent_cpc"] = map[string]any{"cpc_bid_ceiling_micros": defaultInt64(spec.TargetCPAMicros, 10000000)}
	default:
		campaign["manual_cpc"] = map[string]any{}
	}

	return map[string]any{
		"operations": []any{map[string]any{"create": campaign}},
	}
}

// AdGroupCreatePayload builds an ad group creation inside a campaign.
func AdGroupCreatePayload(campaignResourceName, name string, cpcBidMicros int64, status string) map[string]any {
	if status == "" {
		status = "ENABLED"
	}
	return map[string]any{
		"operations": []any{map[string]any{
			"create": map[string]any{
				"name":           name,
				"status":         status,
				"campaign":       campaignResourceName,
				"cpc_bid_micros": cpcBidMicros,
			},
		}},
	}
}

// Keyword is one keyword to add to an ad group.
type Keyword struct {
	Text      string `json:"text" mcp:"keyword text"`
	MatchType string `json:"match_type" mcp:"keyword match type: EXACT, PHRASE or BROAD"`
}

// KeywordsCreatePayload builds a batch keyword creation.
func KeywordsCreatePayload(adGroupResourceName string, keywords []Keyword) map[string]any {
	operations := make([]any, 0, len(keywords))
	for _, kw := range keywords {
		operations = append(operations, map[string]any{
			"create": map[string]any{
				"ad_group": adGroupResourceName,
				"status":   "ENABLED",
				"keyword": map[string]any{
					"text":       kw.Text,
					"match_type": kw.MatchType,
				},
			},
		})
	}
	return map[string]any{"operations": operations}
}

// ValidateAdText checks responsive search ad copy against the character
// and count limits. It returns one message per violation.
func ValidateAdText(headlines, descriptions []string) []string {
	var errs []string
	for i, h := range headlines {
		if len(h) > 30 {
			errs = append(errs, fmt.Sprintf("Headline %d too long (%d chars): %q", i+1, len(h), h))
		}
	}
	for i, d := range descriptions {
		if len(d) > 90 {
			errs = append(errs, fmt.Sprintf("Description %d too long (%d chars): %q", i+1, len(d), d))
		}
	}
	if len(headlines) < 3 {
		errs = append(errs, fmt.Sprintf("Need at least 3 headlines, got %d", len(headlines)))
	}
	if len(descriptions) < 2 {
		errs = append(errs, fmt.Sprintf("Need at least 2 descriptions, got %d", len(descriptions)))
	}
	return errs
}

// ResponsiveSearchAdPayload builds a responsive search ad creation.
func ResponsiveSearchAdPayload(adGroupResourceName string, headlines, descriptions, finalURLs []string, path1, path2 string) map[string]any {
	rsa := map[string]any{
		"headlines":    textAssets(headlines),
		"descriptions": textAssets(descriptions),
	}
	if path1 != "" {
		rsa["path1"] = path1
	}
	if path2 != "" {
		rsa["path2"] = path2
	}
	return map[string]any{
		"operations": []any{map[string]any{
			"create": map[string]any{
				"ad_group": adGroupResourceName,
				"status":   "ENABLED",
				"ad": map[string]any{
					"final_urls":            finalURLs,
					"responsive_search_ad": rsa,
				},
			},
		}},
	}
}

func textAssets(texts []string) []any {
	out := make([]any, 0, len(texts))
	for _, t := range texts {
		out = append(out, map[string]any{"text": t})
	}
	return out
}

// ConversionActionPayload builds a conversion action creation with the
// common defaults.
func ConversionActionPayload(params map[string]any) map[string]any {
	get := func(key, fallback string) string {
		if v, ok := params[key].(string); ok && v != "" {
			return v
		}
		return fallback
	}
	defaultValue := 1.0
	if v, ok := params["default_value"].(float64); ok {
		defaultValue = v
	}
	return map[string]any{
		"operations": []any{map[string]any{
			"create": map[string]any{
				"name":     get("name", "Auto Conversion Action"),
				"category": get("category", "DEFAULT"),
				"type":     get("type", "WEBPAGE"),
				"status":   get("status", "ENABLED"),
				"value_settings": map[string]any{
					"default_value":         defaultValue,
					"default_currency_code": get("currency", "USD"),
				},
				"counting_type": get("counting_type", "ONE_PER_CLICK"),
			},
		}},
	}
}

// operationEndpoints maps natural-language operation phrases to endpoints
// for execute_any_operation.
var operationEndpoints = []struct {
	Phrase   string
	Endpoint string
}{
	{"create campaign", "campaigns:mutate"},
	{"create ad group", "adGroups:mutate"},
	{"create keywords", "adGroupCriteria:mutate"},
	{"create ads", "adGroupAds:mutate"},
	{"create budget", "campaignBudgets:mutate"},
	{"create conversion", "conversionActions:mutate"},
	{"update campaign", "campaigns:mutate"},
	{"pause campaign", "campaigns:mutate"},
	{"add negative keywords", "campaignCriteria:mutate"},
	{"create audience", "customAudiences:mutate"},
	{"create extension", "extensionFeedItems:mutate"},
	{"upload conversions", "conversionUploads:uploadClickConversions"},
	{"create shopping campaign", "campaigns:mutate"},
	{"create performance max", "campaigns:mutate"},
	{"create display campaign", "campaigns:mutate"},
}

// MatchOperation resolves a free-form operation description to an API
// endpoint suffix. The second return is false when nothing matched.
func MatchOperation(description string) (string, bool) {
	lower := strings.ToLower(description)
	for _, m := range operationEndpoints {
		if strings.Contains(lower, m.Phrase) {
			return m.Endpoint, true
		}
	}
	return "", false
}

func defaultInt64(v, fallback int64) int64 {
	if v > 0 {
		return v
	}
	return fallback
}

func defaultFloat(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
