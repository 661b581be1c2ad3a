package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ads-mcp/internal/advisor"
	"ads-mcp/internal/auth"
	"ads-mcp/internal/config"
	"ads-mcp/internal/googleads"
	"ads-mcp/internal/knowledge"
	"ads-mcp/internal/scheduler"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	tokens, err := auth.NewTokenSource(cfg.PermanentJWTToken, cfg.SessionFilePath)
	if err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			log.Fatal("❌ Set PERMANENT_JWT_TOKEN or SESSION_FILE_PATH to authenticate with the Google Ads proxy")
		}
		log.Fatalf("❌ Failed to set up credentials: %v", err)
	}

	store, err := knowledge.NewStore(cfg.EventLogPath, cfg.LearningContextPath)
	if err != nil {
		log.Fatalf("❌ Failed to open knowledge store: %v", err)
	}

	client := googleads.NewClient(cfg.ProxyBaseURL, cfg.APIVersion, cfg.OrgID, cfg.LinkedAccountID, tokens)
	dispatcher := googleads.NewDispatcher(client, store, cfg.RootMCCID)

	var llm advisor.Client
	if cfg.OpenAIAPIKey != "" {
		llm = advisor.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		log.Printf("✅ Advisor LLM enabled (model: %s)", cfg.OpenAIModel)
	} else {
		log.Println("⚠️ OPENAI_API_KEY not set, recommendations will be rule-based only")
	}

	ads := NewAdsServer(cfg, dispatcher, store, advisor.New(llm))

	sched := scheduler.New(cfg.ReportSchedule)
	sched.SetReportFunction(func(ctx context.Context) error {
		log.Printf("📊 Learning summary:\n%s", knowledge.BuildSummary(store).Render())
		return nil
	})
	if err := sched.Start(); err != nil {
		log.Printf("⚠️ Scheduler failed to start: %v", err)
	}
	defer sched.Stop()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "google-ads-mcp",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_campaigns",
		Description: "Search for campaigns in a Google Ads account",
	}, ads.SearchCampaigns)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_gaql",
		Description: "Execute a custom GAQL query against a Google Ads account",
	}, ads.RunGAQL)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_account_info",
		Description: "Get basic account information for a Google Ads customer",
	}, ads.GetAccountInfo)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mutate_campaign",
		Description: "Update campaign settings like ROAS targets, budgets or status",
	}, ads.MutateCampaign)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup_docs",
		Description: "Look up documentation and field examples for Google Ads API resources",
	}, ads.LookupDocs)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_ai_context",
		Description: "Get learned context from successful API call patterns",
	}, ads.GetAIContext)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "api_call",
		Description: "Make any Google Ads API call - campaigns, ad groups, keywords, budgets, etc.",
	}, ads.APICall)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_campaign_budget",
		Description: "Create a new daily campaign budget",
	}, ads.CreateCampaignBudget)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_campaign",
		Description: "Create a new search campaign with any bidding strategy",
	}, ads.CreateCampaign)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_ad_group",
		Description: "Create a new ad group in a campaign",
	}, ads.CreateAdGroup)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_keywords",
		Description: "Create keywords in an ad group",
	}, ads.CreateKeywords)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_responsive_search_ad",
		Description: "Create a responsive search ad with headlines and descriptions",
	}, ads.CreateResponsiveSearchAd)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_smart_recommendations",
		Description: "Get AI-powered recommendations based on successful patterns and account context",
	}, ads.GetSmartRecommendations)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "execute_any_operation",
		Description: "Execute ANY Google Ads API operation with intelligent assistance",
	}, ads.ExecuteAnyOperation)

	log.Printf("🚀 Starting Google Ads MCP server (root MCC: %s)", cfg.RootMCCID)
	log.Println("🔗 Listening on stdin/stdout...")

	transport := mcp.NewStdioTransport()
	if err := server.Run(context.Background(), transport); err != nil {
		log.Fatalf("❌ MCP server failed: %v", err)
	}
}
