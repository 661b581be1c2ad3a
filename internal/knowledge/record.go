package knowledge

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Record describes one successful API operation. It is immutable once
// created and is the unit stored in the event log. A record is only built
// for operations that completed without an upstream error; read operations
// additionally must have returned at least one row.
type Record struct {
	Timestamp     time.Time      `json:"timestamp"`
	OperationType string         `json:"operation_type"`
	CustomerID    string         `json:"customer_id"`
	Query         string         `json:"query"`
	QueryHash     string         `json:"query_hash"`
	ResultCount   int            `json:"result_count"`
	Context       map[string]any `json:"context"`
	Success       bool           `json:"success"`
}

// NewRecord builds a success record for the given operation. The query hash
// is derived from the query text so duplicates can be spotted without
// comparing full payloads.
func NewRecord(operationType, customerID, query string, resultCount int, context map[string]any) Record {
	if context == nil {
		context = map[string]any{}
	}
	return Record{
		Timestamp:     time.Now().UTC(),
		OperationType: operationType,
		CustomerID:    customerID,
		Query:         query,
		QueryHash:     QueryHash(query),
		ResultCount:   resultCount,
		Context:       context,
		Success:       true,
	}
}

// QueryHash returns the first 8 hex characters of the MD5 of the query text.
// The format is fixed by the persisted log schema.
func QueryHash(query string) string {
	sum := md5.Sum([]byte(query))
	return hex.EncodeToString(sum[:])[:8]
}

// stringifyValue renders an arbitrary context value as a stable string.
// Strings pass through untouched, everything else goes through JSON and
// falls back to fmt on marshal failure. It never fails.
func stringifyValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
