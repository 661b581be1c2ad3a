package knowledge

import "time"

// WorkingExample is one recent successful call kept alongside the aggregates.
type WorkingExample struct {
	Query       string         `json:"query"`
	Context     map[string]any `json:"context"`
	ResultCount int            `json:"result_count"`
	Timestamp   time.Time      `json:"timestamp"`
}

// OperationPattern aggregates everything learned about one operation type.
// SuccessCount is monotonic: it counts every recorded success ever, even
// after the raw entries have been evicted from the event log.
type OperationPattern struct {
	SuccessCount     int              `json:"success_count"`
	CommonParameters *ParamFrequency  `json:"common_parameters"`
	WorkingExamples  []WorkingExample `json:"working_examples"`
	BestPractices    []string         `json:"best_practices"`
}

// CustomerPreferences tracks per-customer operation history.
type CustomerPreferences struct {
	SuccessfulOperations map[string]int `json:"successful_operations"`
	PreferredSettings    map[string]any `json:"preferred_settings"`
	BusinessContext      map[string]any `json:"business_context"`
}

// LearningContext is the derived aggregate document. It is rebuildable from
// the event log in principle but maintained incrementally; the store is its
// sole writer. Field names match the JSON written by earlier deployments so
// existing documents stay loadable.
type LearningContext struct {
	LearnedPatterns       map[string]*OperationPattern    `json:"learned_patterns"`
	SuccessfulWorkflows   map[string]any                  `json:"successful_workflows"`
	CustomerPreferences   map[string]*CustomerPreferences `json:"customer_preferences"`
	OptimalConfigurations map[string]*ValueCounts         `json:"optimal_configurations"`
	ErrorPrevention       map[string]any                  `json:"error_prevention"`
	LastUpdated           time.Time                       `json:"last_updated"`
}

// The only configuration class currently tracked in optimal configurations.
const configClassCampaignBidding = "campaign_bidding"

// Context key that feeds the campaign bidding configuration class.
const contextKeyBiddingStrategy = "bidding_strategy_type"

func newLearningContext() *LearningContext {
	return &LearningContext{
		LearnedPatterns:       make(map[string]*OperationPattern),
		SuccessfulWorkflows:   make(map[string]any),
		CustomerPreferences:   make(map[string]*CustomerPreferences),
		OptimalConfigurations: make(map[string]*ValueCounts),
		ErrorPrevention:       make(map[string]any),
		LastUpdated:           time.Now().UTC(),
	}
}

// normalize re-creates any nil maps after a partial unmarshal so the
// aggregation transform never has to nil-check them.
func (l *LearningContext) normalize() {
	if l.LearnedPatterns == nil {
		l.LearnedPatterns = make(map[string]*OperationPattern)
	}
	if l.SuccessfulWorkflows == nil {
		l.SuccessfulWorkflows = make(map[string]any)
	}
	if l.CustomerPreferences == nil {
		l.CustomerPreferences = make(map[string]*CustomerPreferences)
	}
	if l.OptimalConfigurations == nil {
		l.OptimalConfigurations = make(map[string]*ValueCounts)
	}
	if l.ErrorPrevention == nil {
		l.ErrorPrevention = make(map[string]any)
	}
	for _, p := range l.LearnedPatterns {
		if p.CommonParameters == nil {
			p.CommonParameters = &ParamFrequency{}
		}
	}
	for _, c := range l.CustomerPreferences {
		if c.SuccessfulOperations == nil {
			c.SuccessfulOperations = make(map[string]int)
		}
		if c.PreferredSettings == nil {
			c.PreferredSettings = make(map[string]any)
		}
		if c.BusinessContext == nil {
			c.BusinessContext = make(map[string]any)
		}
	}
}

func (l *LearningContext) clone() *LearningContext {
	out := newLearningContext()
	out.LastUpdated = l.LastUpdated
	for op, p := range l.LearnedPatterns {
		cp := &OperationPattern{
			SuccessCount:     p.SuccessCount,
			CommonParameters: p.CommonParameters.Clone(),
			BestPractices:    append([]string(nil), p.BestPractices...),
		}
		for _, ex := range p.WorkingExamples {
			cp.WorkingExamples = append(cp.WorkingExamples, WorkingExample{
				Query:       ex.Query,
				Context:     cloneAnyMap(ex.Context),
				ResultCount: ex.ResultCount,
				Timestamp:   ex.Timestamp,
			})
		}
		out.LearnedPatterns[op] = cp
	}
	for k, v := range l.SuccessfulWorkflows {
		out.SuccessfulWorkflows[k] = v
	}
	for id, c := range l.CustomerPreferences {
		cc := &CustomerPreferences{
			SuccessfulOperations: make(map[string]int, len(c.SuccessfulOperations)),
			PreferredSettings:    cloneAnyMap(c.PreferredSettings),
			BusinessContext:      cloneAnyMap(c.BusinessContext),
		}
		for op, n := range c.SuccessfulOperations {
			cc.SuccessfulOperations[op] = n
		}
		out.CustomerPreferences[id] = cc
	}
	for class, vc := range l.OptimalConfigurations {
		out.OptimalConfigurations[class] = vc.Clone()
	}
	for k, v := range l.ErrorPrevention {
		out.ErrorPrevention[k] = v
	}
	return out
}

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
