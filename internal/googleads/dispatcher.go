package googleads

import (
	"context"
	"log"

	"ads-mcp/internal/knowledge"
)

// Request is one remote operation to dispatch.
type Request struct {
	Endpoint   string
	Payload    map[string]any
	Method     string
	CustomerID string
	// LoginCustomerID is an explicit authorization scope chosen by the
	// caller. When set, the dispatcher never escalates.
	LoginCustomerID string
	// OperationType tags the learning record ("gaql_query",
	// "campaign_creation", ...).
	OperationType string
	// Description is the human-readable query or mutation summary stored
	// with the record.
	Description string
	// Context carries extra parameters to learn from on success.
	Context map[string]any
	// RequireRows marks read operations: a success with zero rows is
	// returned to the caller but not recorded.
	RequireRows bool
}

// Dispatcher executes remote operations, applying the authorization-scope
// fallback: a forbidden failure against a child account with no explicit
// scope is retried exactly once as the root manager account. Successful
// calls are recorded in the knowledge store.
type Dispatcher struct {
	transport Transport
	store     *knowledge.Store
	rootMCC   string
}

func NewDispatcher(transport Transport, store *knowledge.Store, rootMCC string) *Dispatcher {
	return &Dispatcher{transport: transport, store: store, rootMCC: rootMCC}
}

// RootMCC returns the configured top-level manager account id.
func (d *Dispatcher) RootMCC() string { return d.rootMCC }

// Do executes the request with at most one scope escalation. The returned
// response carries the upstream error untouched when both attempts fail;
// there is no backoff and no further retry.
func (d *Dispatcher) Do(ctx context.Context, req Request) (*Response, error) {
	loginID := req.LoginCustomerID

	resp, err := d.transport.Execute(ctx, req.Endpoint, req.Payload, req.Method, loginID)
	if err != nil {
		return nil, err
	}

	if resp.Error != nil && resp.Error.IsForbidden() &&
		req.LoginCustomerID == "" && req.CustomerID != d.rootMCC {
		log.Printf("🔁 Retrying %s as root MCC %s for child account %s", req.Endpoint, d.rootMCC, req.CustomerID)
		loginID = d.rootMCC
		resp, err = d.transport.Execute(ctx, req.Endpoint, req.Payload, req.Method, loginID)
		if err != nil {
			return nil, err
		}
	}

	if resp.Error == nil {
		d.record(req, resp, loginID)
	}
	return resp, nil
}

func (d *Dispatcher) record(req Request, resp *Response, loginID string) {
	count := resp.ResultCount()
	if req.RequireRows && count == 0 {
		return
	}

	context := map[string]any{
		"endpoint":      req.Endpoint,
		"method":        req.Method,
		"response_keys": resp.ResponseKeys(),
	}
	if loginID != "" {
		context["login_customer_id"] = loginID
	}
	for k, v := range req.Context {
		context[k] = v
	}

	operationType := req.OperationType
	if operationType == "" {
		operationType = "custom_api_call"
	}
	d.store.Record(knowledge.NewRecord(operationType, req.CustomerID, req.Description, count, context))
}
