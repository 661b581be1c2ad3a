package knowledge

// defaultPatternWindow is the number of most recent log entries examined
// by the windowed views.
const defaultPatternWindow = 50

// PatternView is the display form of a recent success.
type PatternView struct {
	Query         string `json:"query"`
	CustomerID    string `json:"customer_id"`
	ResultCount   int    `json:"result_count"`
	OperationType string `json:"operation"`
}

// Patterns computes windowed read-only views over the event log: "what has
// worked recently". It holds no state of its own.
type Patterns struct {
	store *Store
}

func NewPatterns(store *Store) *Patterns {
	return &Patterns{store: store}
}

// RecentSuccesses returns the recent successful calls, optionally filtered
// by operation type. The window is taken over the unfiltered tail of the
// log first and the filter applied after, so it mirrors recent activity: a
// narrow filter on a log dominated by other operations may legitimately
// come back short or empty.
func (p *Patterns) RecentSuccesses(operationType string, window int) []PatternView {
	if window <= 0 {
		window = defaultPatternWindow
	}
	events, _ := p.store.Query()
	if len(events) > window {
		events = events[len(events)-window:]
	}
	var out []PatternView
	for _, e := range events {
		if operationType != "" && e.OperationType != operationType {
			continue
		}
		out = append(out, PatternView{
			Query:         e.Query,
			CustomerID:    e.CustomerID,
			ResultCount:   e.ResultCount,
			OperationType: e.OperationType,
		})
	}
	return out
}

// KnownCustomerIDs returns the distinct customer ids seen in the same
// window, in order of first appearance. Informational only, not an
// allow-list.
func (p *Patterns) KnownCustomerIDs(window int) []string {
	if window <= 0 {
		window = defaultPatternWindow
	}
	events, _ := p.store.Query()
	if len(events) > window {
		events = events[len(events)-window:]
	}
	seen := make(map[string]bool)
	var out []string
	for _, e := range events {
		if !seen[e.CustomerID] {
			seen[e.CustomerID] = true
			out = append(out, e.CustomerID)
		}
	}
	return out
}
