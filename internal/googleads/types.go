package googleads

import (
	"context"
	"fmt"
	"strings"
)

// APIError is an upstream rejection of a call. StatusCode is zero when the
// error came back inside a 200 body or from the network layer.
type APIError struct {
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// IsForbidden reports whether the error is the recoverable
// authorization-scope subclass. The upstream proxy sometimes folds the
// status into the message text, so both forms are recognized.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == 403 || strings.Contains(e.Message, "403")
}

// Response is the opaque result shape the dispatcher depends on: an error
// present or absent, a results collection for logging, and the raw body.
type Response struct {
	Results []map[string]any `json:"results,omitempty"`
	Error   *APIError        `json:"error,omitempty"`
	Raw     map[string]any   `json:"-"`
}

// ResultCount returns the number of results produced, for logging. A
// non-error response without a results collection counts as one.
func (r *Response) ResultCount() int {
	if r.Error != nil {
		return 0
	}
	if r.Results != nil {
		return len(r.Results)
	}
	if len(r.Raw) > 0 {
		return 1
	}
	return 0
}

// ResponseKeys lists the top-level keys of the raw body, a cheap shape
// summary for the learning context.
func (r *Response) ResponseKeys() []string {
	keys := make([]string, 0, len(r.Raw))
	for k := range r.Raw {
		keys = append(keys, k)
	}
	return keys
}

// Transport executes one remote call against the ads API. loginCustomerID
// is the authorization scope to authenticate as; empty means none.
type Transport interface {
	Execute(ctx context.Context, endpoint string, payload map[string]any, method, loginCustomerID string) (*Response, error)
}
