package googleads

import "strings"

// ResourceDoc is a static documentation entry for an API resource.
type ResourceDoc struct {
	Description      string            `json:"description"`
	CommonFields     []string          `json:"common_fields,omitempty"`
	ExampleQuery     string            `json:"example_query,omitempty"`
	MutationExamples map[string]string `json:"mutation_examples,omitempty"`
	Methods          []string          `json:"methods,omitempty"`
	CommonErrors     map[string]string `json:"common_errors,omitempty"`
	DocsURL          string            `json:"docs_url,omitempty"`
}

var resourceDocs = map[string]ResourceDoc{
	"campaign": {
		Description: "Campaign resource for managing advertising campaigns",
		CommonFields: []string{
			"campaign.id", "campaign.name", "campaign.status",
			"campaign.target_roas.target_roas", "campaign.maximize_conversion_value.target_roas",
			"campaign.bidding_strategy_type", "campaign.advertising_channel_type", "campaign.campaign_budget",
		},
		ExampleQuery: "SELECT campaign.id, campaign.name, campaign.maximize_conversion_value.target_roas FROM campaign WHERE campaign.status = 'ENABLED'",
		MutationExamples: map[string]string{
			"update_mcv_roas":                  "mutate_campaign(customer_id='123', campaign_id='456', updates={'mcv_target_roas': 27.5}) - for maximize conversion value campaigns",
			"update_standard_roas":             "mutate_campaign(customer_id='123', campaign_id='456', updates={'target_roas': 27.5}) - for standard bidding strategies",
			"update_maximize_conversion_value": "mutate_campaign(customer_id='123', campaign_id='456', updates={'maximize_conversion_value': {'target_roas': 27.5}})",
		},
		DocsURL: "https://developers.google.com/google-ads/api/reference/rpc/v20/Campaign",
	},
	"customer": {
		Description: "Customer account information",
		CommonFields: []string{
			"customer.id", "customer.descriptive_name", "customer.currency_code",
			"customer.time_zone", "customer.auto_tagging_enabled",
		},
		ExampleQuery: "SELECT customer.id, customer.descriptive_name FROM customer",
		DocsURL:      "https://developers.google.com/google-ads/api/reference/rpc/v20/Customer",
	},
	"customer_client": {
		Description: "Manager-client relationship information",
		CommonFields: []string{
			"customer_client.id", "customer_client.descriptive_name",
			"customer_client.status", "customer_client.level",
		},
		ExampleQuery: "SELECT customer_client.id, customer_client.descriptive_name FROM customer_client",
		DocsURL:      "https://developers.google.com/google-ads/api/reference/rpc/v20/CustomerClient",
	},
	"googleadsservice": {
		Description: "Main service for querying Google Ads data",
		Methods:     []string{"search", "searchStream", "mutate"},
		CommonErrors: map[string]string{
			"403_forbidden":   "Add login_customer_id header for child accounts",
			"400_bad_request": "Check GAQL syntax and field names",
			"empty_results":   "Verify customer_id and query conditions",
		},
		DocsURL: "https://developers.google.com/google-ads/api/docs/query/overview",
	},
}

// LookupDoc returns the documentation entry for a resource name
// (case-insensitive) and the list of available resources when unknown.
func LookupDoc(resource string) (ResourceDoc, []string, bool) {
	doc, ok := resourceDocs[strings.ToLower(resource)]
	if ok {
		return doc, nil, true
	}
	available := make([]string, 0, len(resourceDocs))
	for name := range resourceDocs {
		available = append(available, name)
	}
	return ResourceDoc{}, available, false
}
