package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ads-mcp/internal/advisor"
	"ads-mcp/internal/config"
	"ads-mcp/internal/googleads"
	"ads-mcp/internal/knowledge"
)

// AdsServer wires the MCP tools to the dispatcher and the knowledge layer.
type AdsServer struct {
	cfg        *config.Config
	dispatcher *googleads.Dispatcher
	store      *knowledge.Store
	patterns   *knowledge.Patterns
	engine     *knowledge.Engine
	advisor    *advisor.Advisor
}

func NewAdsServer(cfg *config.Config, dispatcher *googleads.Dispatcher, store *knowledge.Store, adv *advisor.Advisor) *AdsServer {
	return &AdsServer{
		cfg:        cfg,
		dispatcher: dispatcher,
		store:      store,
		patterns:   knowledge.NewPatterns(store),
		engine:     knowledge.NewEngine(store),
		advisor:    adv,
	}
}

// childScope returns the scope mutations are issued under: the root MCC
// for child accounts, none for the root itself.
func (s *AdsServer) childScope(customerID string) string {
	if customerID != s.dispatcher.RootMCC() {
		return s.dispatcher.RootMCC()
	}
	return ""
}

// respond renders the result as indented JSON. Failed or empty results get
// the AI guidance block attached so the caller can self-correct.
func (s *AdsServer) respond(result map[string]any) *mcp.CallToolResultFor[any] {
	if shouldGuide(result) {
		result["ai_guidance"] = s.guidance()
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return &mcp.CallToolResultFor[any]{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("❌ Failed to encode result: %v", err)}},
		}
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

func shouldGuide(result map[string]any) bool {
	if err, ok := result["error"]; ok && err != nil {
		if msg, isString := err.(string); !isString || msg != "" {
			return true
		}
	}
	if results, ok := result["results"]; ok {
		if list, isList := results.([]map[string]any); isList && len(list) == 0 {
			return true
		}
	}
	return false
}

// guidance collects the proven recent queries and the standing advice
// attached to failed or empty responses.
func (s *AdsServer) guidance() map[string]any {
	recent := s.patterns.RecentSuccesses("", 0)
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	return map[string]any{
		"proven_queries":         recent,
		"working_customer_ids":   s.patterns.KnownCustomerIDs(0),
		"best_practices":         bestPractices(""),
		"common_errors_to_avoid": commonErrors(""),
	}
}

func bestPractices(operationType string) []string {
	var out []string
	if operationType == "gaql_query" || operationType == "" {
		out = append(out,
			"Use specific field names like 'campaign.maximize_conversion_value.target_roas' for MCV campaigns",
			"Always include WHERE clauses to filter results effectively",
			"Use segments.date DURING YESTERDAY for date filtering",
			"Include login_customer_id for child account access",
		)
	}
	if operationType == "campaign_mutation" || operationType == "" {
		out = append(out,
			"Use 'maximize_conversion_value': {'target_roas': X} for MCV campaigns",
			"Always include proper update_mask: 'maximize_conversion_value.target_roas'",
			"Use mcv_target_roas shorthand for convenience",
		)
	}
	return out
}

func commonErrors(operationType string) []string {
	var out []string
	if operationType == "gaql_query" || operationType == "" {
		out = append(out,
			"Don't use 'segments.date = YESTERDAY' - use 'DURING YESTERDAY'",
			"Don't forget login_customer_id for child accounts (403 errors)",
			"Don't use complex JOINs in GAQL - keep queries simple",
			"Don't use campaign.target_roas.target_roas for MCV campaigns - use maximize_conversion_value.target_roas",
		)
	}
	if operationType == "campaign_mutation" || operationType == "" {
		out = append(out,
			"Don't use 'target_roas': {'target_roas': X} for MCV campaigns",
			"Don't forget the update_mask - it's required for mutations",
			"Don't omit login_customer_id for child account mutations",
		)
	}
	return out
}

// runGAQL executes a query through the dispatcher and shapes the common
// query result document.
func (s *AdsServer) runGAQL(ctx context.Context, customerID, query, loginCustomerID string) map[string]any {
	resp, err := s.dispatcher.Do(ctx, googleads.Request{
		Endpoint:        googleads.Endpoint(customerID, "googleAds:search"),
		Payload:         googleads.SearchPayload(query),
		Method:          "POST",
		CustomerID:      customerID,
		LoginCustomerID: loginCustomerID,
		OperationType:   "gaql_query",
		Description:     query,
		RequireRows:     true,
	})
	if err != nil {
		return map[string]any{"customer_id": customerID, "query": query, "error": err.Error()}
	}

	effectiveScope := loginCustomerID
	if effectiveScope == "" {
		effectiveScope = s.childScope(customerID)
	}
	result := map[string]any{
		"customer_id":       customerID,
		"query":             query,
		"login_customer_id": effectiveScope,
		"results":           resp.Results,
		"error":             errMessage(resp),
	}
	if resp.Error == nil && len(resp.Results) == 0 {
		result["suggestion"] = "No rows returned. Check ai_guidance below for proven query patterns."
	}
	return result
}

func errMessage(resp *googleads.Response) any {
	if resp.Error == nil {
		return nil
	}
	return resp.Error.Error()
}

// --- search_campaigns ---

type SearchCampaignsParams struct {
	CustomerID string `json:"customer_id" mcp:"Google Ads customer ID (10 digits, no dashes)"`
	Limit      int    `json:"limit,omitempty" mcp:"maximum number of campaigns to return (default: 10)"`
}

func (s *AdsServer) SearchCampaigns(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[SearchCampaignsParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	log.Printf("🔍 Searching campaigns for customer %s", args.CustomerID)
	return s.respond(s.runGAQL(ctx, args.CustomerID, googleads.CampaignSearchQuery(args.Limit), "")), nil
}

// --- run_gaql ---

type RunGAQLParams struct {
	CustomerID      string `json:"customer_id" mcp:"Google Ads customer ID"`
	Query           string `json:"query" mcp:"GAQL query to execute"`
	LoginCustomerID string `json:"login_customer_id,omitempty" mcp:"manager account ID for accessing child accounts"`
}

func (s *AdsServer) RunGAQL(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[RunGAQLParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	return s.respond(s.runGAQL(ctx, args.CustomerID, args.Query, args.LoginCustomerID)), nil
}

// --- get_account_info ---

type GetAccountInfoParams struct {
	CustomerID string `json:"customer_id" mcp:"Google Ads customer ID"`
}

func (s *AdsServer) GetAccountInfo(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[GetAccountInfoParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	return s.respond(s.runGAQL(ctx, args.CustomerID, googleads.AccountInfoQuery(), "")), nil
}

// --- mutate_campaign ---

type MutateCampaignParams struct {
	CustomerID string                    `json:"customer_id" mcp:"Google Ads customer ID"`
	CampaignID string                    `json:"campaign_id" mcp:"campaign ID to update"`
	Updates    googleads.CampaignUpdates `json:"updates" mcp:"fields to update: target_roas, mcv_target_roas, daily_budget_micros, status"`
}

func (s *AdsServer) MutateCampaign(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[MutateCampaignParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments

	payload, mask, err := googleads.CampaignMutatePayload(args.CustomerID, args.CampaignID, args.Updates)
	if err != nil {
		return s.respond(map[string]any{
			"customer_id": args.CustomerID,
			"campaign_id": args.CampaignID,
			"error":       err.Error(),
		}), nil
	}

	resp, err := s.dispatcher.Do(ctx, googleads.Request{
		Endpoint:        googleads.Endpoint(args.CustomerID, "campaigns:mutate"),
		Payload:         payload,
		Method:          "POST",
		CustomerID:      args.CustomerID,
		LoginCustomerID: s.childScope(args.CustomerID),
		OperationType:   "campaign_mutation",
		Description:     fmt.Sprintf("UPDATE campaign %s: %v", args.CampaignID, mask),
		Context: map[string]any{
			"campaign_id": args.CampaignID,
			"update_mask": strings.Join(mask, ","),
		},
		RequireRows: true,
	})
	if err != nil {
		return s.respond(map[string]any{"customer_id": args.CustomerID, "error": err.Error()}), nil
	}

	return s.respond(map[string]any{
		"customer_id": args.CustomerID,
		"campaign_id": args.CampaignID,
		"update_mask": strings.Join(mask, ","),
		"result":      resp.Results,
		"error":       errMessage(resp),
	}), nil
}

// --- lookup_docs ---

type LookupDocsParams struct {
	Resource string `json:"resource" mcp:"API resource to look up (e.g., 'campaign', 'customer', 'GoogleAdsService')"`
}

func (s *AdsServer) LookupDocs(_ context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[LookupDocsParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	doc, available, ok := googleads.LookupDoc(args.Resource)
	if !ok {
		return s.respond(map[string]any{
			"resource":            args.Resource,
			"error":               fmt.Sprintf("No documentation found for '%s'", args.Resource),
			"available_resources": available,
			"status":              "not_found",
		}), nil
	}
	return s.respond(map[string]any{
		"resource": args.Resource,
		"info":     doc,
		"status":   "found",
	}), nil
}

// --- get_ai_context ---

type GetAIContextParams struct {
	OperationType string `json:"operation_type,omitempty" mcp:"filter by operation type (e.g., 'gaql_query', 'campaign_mutation')"`
	CustomerID    string `json:"customer_id,omitempty" mcp:"filter customer context by ID"`
}

func (s *AdsServer) GetAIContext(_ context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[GetAIContextParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments

	recent := s.patterns.RecentSuccesses(args.OperationType, 0)
	merged := s.engine.AiContext(args.CustomerID, args.OperationType)

	operationType := args.OperationType
	if operationType == "" {
		operationType = "all"
	}
	return s.respond(map[string]any{
		"operation_type": operationType,
		"context": map[string]any{
			"successful_patterns": map[string]any{
				"successful_queries":   recent,
				"working_customer_ids": s.patterns.KnownCustomerIDs(0),
			},
			"learned": merged,
			"ai_guidance": map[string]any{
				"proven_queries":         recent,
				"working_customer_ids":   s.patterns.KnownCustomerIDs(0),
				"best_practices":         bestPractices(args.OperationType),
				"common_errors_to_avoid": commonErrors(args.OperationType),
			},
		},
		"summary":      fmt.Sprintf("Found %d successful patterns", len(recent)),
		"last_updated": merged.LastUpdated,
	}), nil
}

// --- api_call ---

type APICallParams struct {
	Endpoint        string         `json:"endpoint" mcp:"API endpoint path, e.g. 'customers/{customer_id}/campaignBudgets:mutate'"`
	CustomerID      string         `json:"customer_id" mcp:"Google Ads customer ID"`
	Method          string         `json:"method,omitempty" mcp:"HTTP method (default: POST)"`
	Data            map[string]any `json:"data,omitempty" mcp:"request payload"`
	LoginCustomerID string         `json:"login_customer_id,omitempty" mcp:"manager account ID for child account access"`
}

func (s *AdsServer) APICall(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[APICallParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	method := args.Method
	if method == "" {
		method = "POST"
	}
	return s.respond(s.apiCall(ctx, args.Endpoint, args.CustomerID, method, args.Data, args.LoginCustomerID)), nil
}

// apiCall issues a raw endpoint call with eager child-account scoping and
// an operation type derived from the endpoint shape.
func (s *AdsServer) apiCall(ctx context.Context, endpoint, customerID, method string, data map[string]any, loginCustomerID string) map[string]any {
	if loginCustomerID == "" {
		loginCustomerID = s.childScope(customerID)
	}
	endpoint = strings.ReplaceAll(endpoint, "{customer_id}", customerID)

	operationType := "api_call"
	switch {
	case strings.Contains(endpoint, "mutate"):
		operationType = "mutation"
	case strings.Contains(endpoint, "search"):
		operationType = "search"
	case strings.HasSuffix(endpoint, ":list") || strings.EqualFold(method, "GET"):
		operationType = "list"
	}

	description := fmt.Sprintf("%s %s", strings.ToUpper(method), endpoint)
	if len(data) > 0 {
		if encoded, err := json.Marshal(data); err == nil {
			if len(encoded) > 100 {
				encoded = encoded[:100]
			}
			description += " with data: " + string(encoded)
		}
	}

	resp, err := s.dispatcher.Do(ctx, googleads.Request{
		Endpoint:        endpoint,
		Payload:         data,
		Method:          method,
		CustomerID:      customerID,
		LoginCustomerID: loginCustomerID,
		OperationType:   operationType,
		Description:     description,
		Context:         map[string]any{"has_data": len(data) > 0},
	})
	if err != nil {
		return map[string]any{"customer_id": customerID, "endpoint": endpoint, "error": err.Error()}
	}

	return map[string]any{
		"customer_id":       customerID,
		"endpoint":          endpoint,
		"method":            method,
		"login_customer_id": loginCustomerID,
		"result":            resp.Results,
		"error":             errMessage(resp),
	}
}

// mutate runs one creation payload and shapes the common creation result.
func (s *AdsServer) mutate(ctx context.Context, customerID, endpointSuffix string, payload map[string]any, operationType, description string, extra map[string]any) map[string]any {
	resp, err := s.dispatcher.Do(ctx, googleads.Request{
		Endpoint:        googleads.Endpoint(customerID, endpointSuffix),
		Payload:         payload,
		Method:          "POST",
		CustomerID:      customerID,
		LoginCustomerID: s.childScope(customerID),
		OperationType:   operationType,
		Description:     description,
		Context:         extra,
		RequireRows:     true,
	})
	if err != nil {
		return map[string]any{"customer_id": customerID, "error": err.Error()}
	}
	return map[string]any{
		"customer_id": customerID,
		"result":      resp.Results,
		"error":       errMessage(resp),
	}
}

// --- create_campaign_budget ---

type CreateBudgetParams struct {
	CustomerID     string `json:"customer_id" mcp:"Google Ads customer ID"`
	Name           string `json:"name" mcp:"budget name"`
	AmountMicros   int64  `json:"amount_micros" mcp:"daily budget in micros (1000000 = 1 unit of currency)"`
	DeliveryMethod string `json:"delivery_method,omitempty" mcp:"STANDARD or ACCELERATED (default: STANDARD)"`
}

func (s *AdsServer) CreateCampaignBudget(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[CreateBudgetParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	result := s.mutate(ctx, args.CustomerID, "campaignBudgets:mutate",
		googleads.BudgetCreatePayload(args.Name, args.AmountMicros, args.DeliveryMethod),
		"budget_creation",
		fmt.Sprintf("CREATE budget %s: %d micros", args.Name, args.AmountMicros),
		map[string]any{"name": args.Name, "amount_micros": args.AmountMicros},
	)
	result["budget_name"] = args.Name
	result["amount_micros"] = args.AmountMicros
	return s.respond(result), nil
}

// --- create_campaign ---

type CreateCampaignParams struct {
	CustomerID          string  `json:"customer_id" mcp:"Google Ads customer ID"`
	Name                string  `json:"name" mcp:"campaign name"`
	BudgetResourceName  string  `json:"budget_resource_name" mcp:"resource name of an existing campaign budget"`
	BiddingStrategyType string  `json:"bidding_strategy_type,omitempty" mcp:"bidding strategy (default: MANUAL_CPC)"`
	TargetCPAMicros     int64   `json:"target_cpa_micros,omitempty" mcp:"target CPA in micros for CPA-based strategies"`
	TargetROAS          float64 `json:"target_roas,omitempty" mcp:"target ROAS for value-based strategies"`
	Status              string  `json:"status,omitempty" mcp:"initial status (default: PAUSED)"`
}

func (s *AdsServer) CreateCampaign(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[CreateCampaignParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	strategy := args.BiddingStrategyType
	if strategy == "" {
		strategy = "MANUAL_CPC"
	}
	result := s.mutate(ctx, args.CustomerID, "campaigns:mutate",
		googleads.CampaignCreatePayload(googleads.CampaignSpec{
			Name:                args.Name,
			BudgetResourceName:  args.BudgetResourceName,
			BiddingStrategyType: strategy,
			TargetCPAMicros:     args.TargetCPAMicros,
			TargetROAS:          args.TargetROAS,
			Status:              args.Status,
		}),
		"campaign_creation",
		fmt.Sprintf("CREATE campaign %s: %s", args.Name, strategy),
		map[string]any{
			"name":                  args.Name,
			"bidding_strategy_type": strategy,
			"budget_resource_name":  args.BudgetResourceName,
		},
	)
	result["campaign_name"] = args.Name
	result["bidding_strategy_type"] = strategy
	return s.respond(result), nil
}

// --- create_ad_group ---

type CreateAdGroupParams struct {
	CustomerID           string `json:"customer_id" mcp:"Google Ads customer ID"`
	CampaignResourceName string `json:"campaign_resource_name" mcp:"resource name of the parent campaign"`
	Name                 string `json:"name" mcp:"ad group name"`
	CPCBidMicros         int64  `json:"cpc_bid_micros" mcp:"default CPC bid in micros"`
	Status               string `json:"status,omitempty" mcp:"initial status (default: ENABLED)"`
}

func (s *AdsServer) CreateAdGroup(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[CreateAdGroupParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	result := s.mutate(ctx, args.CustomerID, "adGroups:mutate",
		googleads.AdGroupCreatePayload(args.CampaignResourceName, args.Name, args.CPCBidMicros, args.Status),
		"ad_group_creation",
		fmt.Sprintf("CREATE ad_group %s: %d micros", args.Name, args.CPCBidMicros),
		map[string]any{"name": args.Name, "campaign_resource_name": args.CampaignResourceName},
	)
	result["ad_group_name"] = args.Name
	result["campaign_resource_name"] = args.CampaignResourceName
	return s.respond(result), nil
}

// --- create_keywords ---

type CreateKeywordsParams struct {
	CustomerID          string              `json:"customer_id" mcp:"Google Ads customer ID"`
	AdGroupResourceName string              `json:"ad_group_resource_name" mcp:"resource name of the target ad group"`
	Keywords            []googleads.Keyword `json:"keywords" mcp:"keywords to create"`
}

func (s *AdsServer) CreateKeywords(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[CreateKeywordsParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	result := s.mutate(ctx, args.CustomerID, "adGroupCriteria:mutate",
		googleads.KeywordsCreatePayload(args.AdGroupResourceName, args.Keywords),
		"keyword_creation",
		fmt.Sprintf("CREATE %d keywords in %s", len(args.Keywords), args.AdGroupResourceName),
		map[string]any{"ad_group_resource_name": args.AdGroupResourceName},
	)
	result["ad_group_resource_name"] = args.AdGroupResourceName
	result["keywords_count"] = len(args.Keywords)
	return s.respond(result), nil
}

// --- create_responsive_search_ad ---

type CreateRSAParams struct {
	CustomerID          string   `json:"customer_id" mcp:"Google Ads customer ID"`
	AdGroupResourceName string   `json:"ad_group_resource_name" mcp:"resource name of the target ad group"`
	Headlines           []string `json:"headlines" mcp:"ad headlines (3-15, max 30 chars each)"`
	Descriptions        []string `json:"descriptions" mcp:"ad descriptions (2-4, max 90 chars each)"`
	FinalURLs           []string `json:"final_urls" mcp:"landing page URLs"`
	Path1               string   `json:"path1,omitempty" mcp:"first display URL path segment"`
	Path2               string   `json:"path2,omitempty" mcp:"second display URL path segment"`
}

func (s *AdsServer) CreateResponsiveSearchAd(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[CreateRSAParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments

	if violations := googleads.ValidateAdText(args.Headlines, args.Descriptions); len(violations) > 0 {
		return s.respond(map[string]any{
			"customer_id":            args.CustomerID,
			"ad_group_resource_name": args.AdGroupResourceName,
			"result":                 []map[string]any{},
			"error":                  "Validation failed: " + strings.Join(violations, "; "),
		}), nil
	}

	result := s.mutate(ctx, args.CustomerID, "adGroupAds:mutate",
		googleads.ResponsiveSearchAdPayload(args.AdGroupResourceName, args.Headlines, args.Descriptions, args.FinalURLs, args.Path1, args.Path2),
		"ad_creation",
		fmt.Sprintf("CREATE responsive search ad in %s", args.AdGroupResourceName),
		map[string]any{
			"ad_group_resource_name": args.AdGroupResourceName,
			"headlines_count":        len(args.Headlines),
			"descriptions_count":     len(args.Descriptions),
		},
	)
	result["ad_group_resource_name"] = args.AdGroupResourceName
	result["headlines_count"] = len(args.Headlines)
	result["descriptions_count"] = len(args.Descriptions)
	return s.respond(result), nil
}

// --- get_smart_recommendations ---

type SmartRecommendationsParams struct {
	CustomerID string `json:"customer_id" mcp:"Google Ads customer ID"`
	Goal       string `json:"goal" mcp:"business goal (e.g., 'increase leads', 'reduce CPA', 'expand to new markets')"`
	Context    string `json:"context,omitempty" mcp:"additional context about business, budget, timeline, etc."`
}

func (s *AdsServer) GetSmartRecommendations(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[SmartRecommendationsParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	log.Printf("💡 Building recommendations for customer %s, goal %q", args.CustomerID, args.Goal)

	recs := s.advisor.Recommend(args.Goal)
	accountInfo := s.runGAQL(ctx, args.CustomerID, googleads.AccountInfoQuery(), "")

	result := map[string]any{
		"customer_id":        args.CustomerID,
		"goal":               args.Goal,
		"recommendations":    recs,
		"suggested_settings": s.engine.SuggestSettings("campaign_creation", args.CustomerID),
		"context": map[string]any{
			"customer_id":          args.CustomerID,
			"goal":                 args.Goal,
			"context":              args.Context,
			"successful_patterns":  s.patterns.RecentSuccesses("", 10),
			"working_customer_ids": s.patterns.KnownCustomerIDs(0),
			"account_info":         accountInfo,
		},
		"next_steps": advisor.NextSteps(),
	}
	if narrative := s.advisor.Narrate(ctx, args.Goal, args.Context, recs); narrative != "" {
		result["narrative"] = narrative
	}
	return s.respond(result), nil
}

// --- execute_any_operation ---

type ExecuteAnyOperationParams struct {
	CustomerID           string         `json:"customer_id" mcp:"Google Ads customer ID"`
	OperationDescription string         `json:"operation_description" mcp:"natural language description of what you want to do"`
	Parameters           map[string]any `json:"parameters,omitempty" mcp:"optional parameters like budget, targeting, etc."`
}

func (s *AdsServer) ExecuteAnyOperation(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[ExecuteAnyOperationParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	if args.Parameters == nil {
		args.Parameters = map[string]any{}
	}

	endpoint, ok := googleads.MatchOperation(args.OperationDescription)
	if !ok {
		return s.respond(map[string]any{
			"customer_id": args.CustomerID,
			"operation":   args.OperationDescription,
			"error":       "Operation not recognized. Please use the 'api_call' function with specific endpoint and data.",
			"suggestion":  "Describe your goal in more detail or provide the specific API endpoint you want to use.",
		}), nil
	}

	lower := strings.ToLower(args.OperationDescription)
	switch {
	case strings.Contains(lower, "create campaign"):
		return s.respond(s.createCampaignChain(ctx, args.CustomerID, args.Parameters)), nil
	case strings.Contains(lower, "conversion") && strings.Contains(lower, "create"):
		payload := googleads.ConversionActionPayload(args.Parameters)
		return s.respond(s.apiCall(ctx, googleads.Endpoint(args.CustomerID, endpoint), args.CustomerID, "POST", payload, "")), nil
	default:
		return s.respond(s.apiCall(ctx, googleads.Endpoint(args.CustomerID, endpoint), args.CustomerID, "POST", args.Parameters, "")), nil
	}
}

// createCampaignChain creates a budget and then a campaign bound to it,
// filling reasonable defaults for anything not provided.
func (s *AdsServer) createCampaignChain(ctx context.Context, customerID string, parameters map[string]any) map[string]any {
	stamp := timestamp()
	budgetName := stringParam(parameters, "budget_name", "Auto Budget "+stamp)
	campaignName := stringParam(parameters, "campaign_name", "Auto Campaign "+stamp)
	budgetMicros := int64Param(parameters, "budget_micros", 50000000)

	budgetResult := s.mutate(ctx, customerID, "campaignBudgets:mutate",
		googleads.BudgetCreatePayload(budgetName, budgetMicros, ""),
		"budget_creation",
		fmt.Sprintf("CREATE budget %s: %d micros", budgetName, budgetMicros),
		map[string]any{"name": budgetName, "amount_micros": budgetMicros},
	)
	if budgetResult["error"] != nil {
		return budgetResult
	}

	budgetRN := resourceName(budgetResult["result"])
	if budgetRN == "" {
		budgetResult["error"] = "budget created but no resource name returned"
		return budgetResult
	}

	strategy := stringParam(parameters, "bidding_strategy", "MANUAL_CPC")
	result := s.mutate(ctx, customerID, "campaigns:mutate",
		googleads.CampaignCreatePayload(googleads.CampaignSpec{
			Name:                campaignName,
			BudgetResourceName:  budgetRN,
			BiddingStrategyType: strategy,
			TargetCPAMicros:     int64Param(parameters, "target_cpa_micros", 0),
			TargetROAS:          floatParam(parameters, "target_roas", 0),
			Status:              stringParam(parameters, "status", "PAUSED"),
		}),
		"campaign_creation",
		fmt.Sprintf("CREATE campaign %s: %s", campaignName, strategy),
		map[string]any{
			"name":                  campaignName,
			"bidding_strategy_type": strategy,
			"budget_resource_name":  budgetRN,
		},
	)
	result["campaign_name"] = campaignName
	result["budget_resource_name"] = budgetRN
	result["bidding_strategy_type"] = strategy
	return result
}

func timestamp() string {
	return time.Now().Format("20060102_150405")
}

func resourceName(result any) string {
	list, ok := result.([]map[string]any)
	if !ok || len(list) == 0 {
		return ""
	}
	rn, _ := list[0]["resourceName"].(string)
	return rn
}

func stringParam(params map[string]any, key, fallback string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func int64Param(params map[string]any, key string, fallback int64) int64 {
	switch v := params[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return fallback
}

func floatParam(params map[string]any, key string, fallback float64) float64 {
	if v, ok := params[key].(float64); ok {
		return v
	}
	return fallback
}
