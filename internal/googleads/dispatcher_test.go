package googleads

import (
	"context"
	"path/filepath"
	"testing"

	"ads-mcp/internal/knowledge"
)

type fakeCall struct {
	Endpoint        string
	Method          string
	LoginCustomerID string
}

type fakeTransport struct {
	calls     []fakeCall
	responses []*Response
}

func (f *fakeTransport) Execute(_ context.Context, endpoint string, _ map[string]any, method, loginCustomerID string) (*Response, error) {
	f.calls = append(f.calls, fakeCall{Endpoint: endpoint, Method: method, LoginCustomerID: loginCustomerID})
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func newTestDispatcher(t *testing.T, transport Transport) (*Dispatcher, *knowledge.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := knowledge.NewStore(filepath.Join(dir, "log.json"), filepath.Join(dir, "context.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewDispatcher(transport, store, "1639353427"), store
}

func forbidden() *Response {
	return &Response{Error: &APIError{StatusCode: 403, Message: "403 Forbidden"}}
}

func success(rows int) *Response {
	resp := &Response{Raw: map[string]any{"results": []any{}}, Results: []map[string]any{}}
	for i := 0; i < rows; i++ {
		resp.Results = append(resp.Results, map[string]any{"resourceName": "x"})
	}
	return resp
}

func TestDispatcherEscalatesOnceForChildAccount(t *testing.T) {
	transport := &fakeTransport{responses: []*Response{forbidden(), success(2)}}
	d, store := newTestDispatcher(t, transport)

	resp, err := d.Do(context.Background(), Request{
		Endpoint:      "customers/999/googleAds:search",
		Payload:       SearchPayload("SELECT campaign.id FROM campaign"),
		Method:        "POST",
		CustomerID:    "999",
		OperationType: "gaql_query",
		Description:   "SELECT campaign.id FROM campaign",
		RequireRows:   true,
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("want success after escalation, got %v", resp.Error)
	}

	if len(transport.calls) != 2 {
		t.Fatalf("want exactly 2 attempts, got %d", len(transport.calls))
	}
	if transport.calls[0].LoginCustomerID != "" {
		t.Fatalf("first attempt must use the caller's scope, got %q", transport.calls[0].LoginCustomerID)
	}
	if transport.calls[1].LoginCustomerID != "1639353427" {
		t.Fatalf("retry must authenticate as the root MCC, got %q", transport.calls[1].LoginCustomerID)
	}

	// Exactly one record, carrying the escalated scope.
	events, _ := store.Query()
	if len(events) != 1 {
		t.Fatalf("want 1 recorded event, got %d", len(events))
	}
	if events[0].Context["login_customer_id"] != "1639353427" {
		t.Fatalf("recorded scope must be the root MCC, got %v", events[0].Context["login_customer_id"])
	}
}

func TestDispatcherNoEscalationWithExplicitScope(t *testing.T) {
	transport := &fakeTransport{responses: []*Response{forbidden()}}
	d, store := newTestDispatcher(t, transport)

	resp, err := d.Do(context.Background(), Request{
		Endpoint:        "customers/999/googleAds:search",
		Method:          "POST",
		CustomerID:      "999",
		LoginCustomerID: "555",
		OperationType:   "gaql_query",
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.Error == nil {
		t.Fatal("error must pass through")
	}
	if len(transport.calls) != 1 {
		t.Fatalf("explicit scope must never retry, got %d attempts", len(transport.calls))
	}
	events, _ := store.Query()
	if len(events) != 0 {
		t.Fatalf("failures must not be recorded, got %d events", len(events))
	}
}

func TestDispatcherNoEscalationForRootAccount(t *testing.T) {
	transport := &fakeTransport{responses: []*Response{forbidden()}}
	d, _ := newTestDispatcher(t, transport)

	resp, err := d.Do(context.Background(), Request{
		Endpoint:      "customers/1639353427/googleAds:search",
		Method:        "POST",
		CustomerID:    "1639353427",
		OperationType: "gaql_query",
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.Error == nil || !resp.Error.IsForbidden() {
		t.Fatalf("root account forbidden error must surface unchanged, got %v", resp.Error)
	}
	if len(transport.calls) != 1 {
		t.Fatalf("target equal to root MCC must never retry, got %d attempts", len(transport.calls))
	}
}

func TestDispatcherNonForbiddenErrorPassesThrough(t *testing.T) {
	transport := &fakeTransport{responses: []*Response{
		{Error: &APIError{StatusCode: 400, Message: "bad GAQL"}},
	}}
	d, store := newTestDispatcher(t, transport)

	resp, err := d.Do(context.Background(), Request{
		Endpoint:      "customers/999/googleAds:search",
		Method:        "POST",
		CustomerID:    "999",
		OperationType: "gaql_query",
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.Error == nil || resp.Error.StatusCode != 400 {
		t.Fatalf("want 400 untouched, got %v", resp.Error)
	}
	if len(transport.calls) != 1 {
		t.Fatal("only authorization failures are retried")
	}
	events, _ := store.Query()
	if len(events) != 0 {
		t.Fatal("failed call must not be recorded")
	}
}

func TestDispatcherRequireRowsSkipsEmptyReads(t *testing.T) {
	transport := &fakeTransport{responses: []*Response{success(0)}}
	d, store := newTestDispatcher(t, transport)

	resp, err := d.Do(context.Background(), Request{
		Endpoint:      "customers/999/googleAds:search",
		Method:        "POST",
		CustomerID:    "999",
		OperationType: "gaql_query",
		RequireRows:   true,
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("empty read is still a success for the caller: %v", resp.Error)
	}
	events, _ := store.Query()
	if len(events) != 0 {
		t.Fatal("zero-row read must not be recorded")
	}
}

func TestDispatcherRecordsMutationContext(t *testing.T) {
	transport := &fakeTransport{responses: []*Response{success(1)}}
	d, store := newTestDispatcher(t, transport)

	_, err := d.Do(context.Background(), Request{
		Endpoint:      "customers/999/campaigns:mutate",
		Method:        "POST",
		CustomerID:    "999",
		OperationType: "campaign_creation",
		Description:   "CREATE campaign lead-gen: MAXIMIZE_CONVERSIONS",
		Context:       map[string]any{"bidding_strategy_type": "MAXIMIZE_CONVERSIONS"},
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}

	events, learned := store.Query()
	if len(events) != 1 {
		t.Fatalf("want 1 event, got %d", len(events))
	}
	e := events[0]
	if e.OperationType != "campaign_creation" || e.CustomerID != "999" || e.ResultCount != 1 {
		t.Fatalf("unexpected record: %+v", e)
	}
	if e.Context["endpoint"] != "customers/999/campaigns:mutate" || e.Context["method"] != "POST" {
		t.Fatalf("endpoint context missing: %+v", e.Context)
	}
	// The extra context must flow into the aggregates too.
	vc := learned.OptimalConfigurations["campaign_bidding"]
	if vc == nil || vc.Count("MAXIMIZE_CONVERSIONS") != 1 {
		t.Fatal("bidding strategy must reach optimal configurations")
	}
}

func TestAPIErrorIsForbidden(t *testing.T) {
	cases := []struct {
		err  APIError
		want bool
	}{
		{APIError{StatusCode: 403, Message: "Forbidden"}, true},
		{APIError{Message: "API request failed: 403 Client Error"}, true},
		{APIError{StatusCode: 400, Message: "bad request"}, false},
		{APIError{Message: "timeout"}, false},
	}
	for _, c := range cases {
		if got := c.err.IsForbidden(); got != c.want {
			t.Errorf("IsForbidden(%+v): want %v, got %v", c.err, c.want, got)
		}
	}
}
