package knowledge

import (
	"fmt"
	"time"
)

// Confidence levels for suggestions. This is a deliberately local,
// non-numeric model: two levels, no probabilistic scoring.
const (
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Suggestion is a set of recommended parameter values with the reasoning
// that produced them.
type Suggestion struct {
	RecommendedSettings map[string]string `json:"recommended_settings"`
	Reasoning           []string          `json:"reasoning"`
	Confidence          string            `json:"confidence"`
}

// AIContext is the merged knowledge view used to brief a caller: the
// closest-matching customer and operation slices plus the unfiltered
// optimal configurations.
type AIContext struct {
	CustomerContext       *CustomerPreferences         `json:"customer_context"`
	OperationContext      *OperationPattern            `json:"operation_context"`
	OptimalConfigurations map[string]*ValueCounts      `json:"optimal_configurations"`
	AllPatterns           map[string]*OperationPattern `json:"all_patterns"`
	LastUpdated           time.Time                    `json:"last_updated"`
}

// Engine turns the learning context into actionable suggestions. It only
// depends on the store's read path.
type Engine struct {
	store *Store
}

func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// SuggestSettings recommends, for every parameter observed with the given
// operation type, the value that succeeded most often. Ties go to the value
// recorded first. A customer with prior successes of this operation type
// raises confidence to high; otherwise it stays medium.
func (e *Engine) SuggestSettings(operationType, customerID string) Suggestion {
	_, learned := e.store.Query()

	suggestion := Suggestion{
		RecommendedSettings: make(map[string]string),
		Reasoning:           []string{},
		Confidence:          ConfidenceMedium,
	}

	if pattern, ok := learned.LearnedPatterns[operationType]; ok {
		for _, param := range pattern.CommonParameters.Names() {
			value, count, ok := pattern.CommonParameters.Get(param).Best()
			if !ok {
				continue
			}
			suggestion.RecommendedSettings[param] = value
			suggestion.Reasoning = append(suggestion.Reasoning,
				fmt.Sprintf("%s: %s (used successfully %d times)", param, value, count))
		}
	}

	if customerID != "" {
		if prefs, ok := learned.CustomerPreferences[customerID]; ok {
			if n := prefs.SuccessfulOperations[operationType]; n > 0 {
				suggestion.Confidence = ConfidenceHigh
				suggestion.Reasoning = append(suggestion.Reasoning,
					fmt.Sprintf("Customer %s has %d successful %s operations", customerID, n, operationType))
			}
		}
	}

	return suggestion
}

// AiContext returns the filtered customer and operation slices (empty when
// absent or not requested) plus the full optimal configurations.
func (e *Engine) AiContext(customerID, operationType string) AIContext {
	_, learned := e.store.Query()

	out := AIContext{
		CustomerContext:       &CustomerPreferences{SuccessfulOperations: map[string]int{}, PreferredSettings: map[string]any{}, BusinessContext: map[string]any{}},
		OperationContext:      &OperationPattern{CommonParameters: &ParamFrequency{}},
		OptimalConfigurations: learned.OptimalConfigurations,
		AllPatterns:           learned.LearnedPatterns,
		LastUpdated:           learned.LastUpdated,
	}
	if customerID != "" {
		if prefs, ok := learned.CustomerPreferences[customerID]; ok {
			out.CustomerContext = prefs
		}
	}
	if operationType != "" {
		if pattern, ok := learned.LearnedPatterns[operationType]; ok {
			out.OperationContext = pattern
		}
	}
	return out
}
