package knowledge

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Summary is a point-in-time digest of accumulated learning, produced for
// the periodic report.
type Summary struct {
	GeneratedAt      time.Time      `json:"generated_at"`
	LoggedEvents     int            `json:"logged_events"`
	TotalSuccesses   int            `json:"total_successes"`
	OperationCounts  map[string]int `json:"operation_counts"`
	UniqueCustomers  int            `json:"unique_customers"`
	TopBiddingChoice string         `json:"top_bidding_choice,omitempty"`
	LastUpdated      time.Time      `json:"last_updated"`
}

// BuildSummary digests the current store contents. Total successes come
// from the monotonic aggregate counters, so they keep counting past log
// eviction.
func BuildSummary(store *Store) *Summary {
	events, learned := store.Query()

	s := &Summary{
		GeneratedAt:     time.Now().UTC(),
		LoggedEvents:    len(events),
		OperationCounts: make(map[string]int),
		UniqueCustomers: len(learned.CustomerPreferences),
		LastUpdated:     learned.LastUpdated,
	}
	for op, pattern := range learned.LearnedPatterns {
		s.OperationCounts[op] = pattern.SuccessCount
		s.TotalSuccesses += pattern.SuccessCount
	}
	if vc, ok := learned.OptimalConfigurations[configClassCampaignBidding]; ok {
		if best, _, ok := vc.Best(); ok {
			s.TopBiddingChoice = best
		}
	}
	return s
}

// Render produces the loggable text block for the daily report.
func (s *Summary) Render() string {
	out := fmt.Sprintf(`Learning summary as of %s:

Overall activity:
- Logged events: %d
- Total recorded successes: %d
- Unique customers: %d

`, s.GeneratedAt.Format("2006-01-02 15:04"), s.LoggedEvents, s.TotalSuccesses, s.UniqueCustomers)

	if len(s.OperationCounts) > 0 {
		ops := make([]string, 0, len(s.OperationCounts))
		for op := range s.OperationCounts {
			ops = append(ops, op)
		}
		sort.Strings(ops)
		out += "Successes by operation type:\n"
		for _, op := range ops {
			out += fmt.Sprintf("- %s: %d\n", op, s.OperationCounts[op])
		}
		out += "\n"
	}
	if s.TopBiddingChoice != "" {
		out += fmt.Sprintf("Most used bidding strategy: %s\n", s.TopBiddingChoice)
	}
	return out
}

// ToJSON serializes the summary for detailed inspection.
func (s *Summary) ToJSON() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
