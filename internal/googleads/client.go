package googleads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Client talks to the Google Ads proxy API over REST.
type Client struct {
	baseURL         string
	apiVersion      string
	orgID           string
	linkedAccountID string
	tokens          oauth2.TokenSource
	httpClient      *http.Client
}

// NewClient builds a proxy client. The token source supplies the bearer
// token per request so rotated credentials are picked up without restart.
func NewClient(baseURL, apiVersion, orgID, linkedAccountID string, tokens oauth2.TokenSource) *Client {
	return &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		apiVersion:      apiVersion,
		orgID:           orgID,
		linkedAccountID: linkedAccountID,
		tokens:          tokens,
		httpClient:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Execute performs one call against the proxy. Upstream rejections come
// back inside the Response; the error return is reserved for local
// failures (credentials, request construction, cancelled context).
func (c *Client) Execute(ctx context.Context, endpoint string, payload map[string]any, method, loginCustomerID string) (*Response, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("resolve access token: %w", err)
	}

	var reqBody io.Reader
	if payload != nil && method != http.MethodGet {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := fmt.Sprintf("%s/p/%s/%s", c.baseURL, c.apiVersion, endpoint)
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	if c.orgID != "" {
		req.Header.Set("x-org-id", c.orgID)
	}
	if c.linkedAccountID != "" {
		req.Header.Set("x-linked-account-id", c.linkedAccountID)
	}
	if loginCustomerID != "" {
		req.Header.Set("login-customer-id", loginCustomerID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return &Response{Error: &APIError{Message: fmt.Sprintf("API request failed: %v", err)}}, nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Response{Error: &APIError{Message: fmt.Sprintf("read response: %v", err)}}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Response{Error: &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}}, nil
	}

	return parseBody(body), nil
}

func parseBody(body []byte) *Response {
	raw := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return &Response{Error: &APIError{Message: fmt.Sprintf("decode response: %v", err)}}
		}
	}
	out := &Response{Raw: raw}

	// Some upstream errors arrive inside a 200 body.
	if errVal, ok := raw["error"]; ok && errVal != nil {
		switch e := errVal.(type) {
		case string:
			out.Error = &APIError{Message: e}
		default:
			data, _ := json.Marshal(e)
			out.Error = &APIError{Message: string(data)}
		}
		return out
	}

	if results, ok := raw["results"].([]any); ok {
		for _, item := range results {
			if m, ok := item.(map[string]any); ok {
				out.Results = append(out.Results, m)
			}
		}
		if out.Results == nil {
			out.Results = []map[string]any{}
		}
	}
	return out
}
