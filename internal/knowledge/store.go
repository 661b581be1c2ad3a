package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// maxLogEntries caps the event log; oldest entries are evicted first.
	maxLogEntries = 1000
	// maxWorkingExamples caps the per-operation example list.
	maxWorkingExamples = 10
)

// Store is the durable home of the event log and the learning context.
// It is the sole writer of both documents: Record serializes the whole
// read-transform-persist cycle under one lock, readers take shared access
// and always observe a consistent snapshot.
type Store struct {
	logPath     string
	contextPath string

	mu      sync.RWMutex
	events  []Record
	learned *LearningContext
}

// NewStore opens (or initializes) the two documents at the given paths.
// A missing or unparseable document is treated as absent and replaced with
// its empty default rather than failing startup.
func NewStore(logPath, contextPath string) (*Store, error) {
	for _, p := range []string{logPath, contextPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
	}
	s := &Store{logPath: logPath, contextPath: contextPath}
	s.events = loadEventLog(logPath)
	s.learned = loadLearningContext(contextPath)
	return s, nil
}

// Record appends the event to the log, folds it into the learning context
// and persists both documents. It never fails the caller: the remote side
// effect already happened, so persistence trouble only costs the learning
// signal and is reported as a warning.
func (s *Store) Record(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, rec)
	if len(s.events) > maxLogEntries {
		s.events = s.events[len(s.events)-maxLogEntries:]
	}
	s.apply(rec)

	if err := writeDocument(s.logPath, s.events); err != nil {
		log.Printf("⚠️ Failed to persist event log: %v", err)
	}
	if err := writeDocument(s.contextPath, s.learned); err != nil {
		log.Printf("⚠️ Failed to persist learning context: %v", err)
	}
}

// apply is the aggregation transform: old context + event -> new context.
// It is the only path that mutates the learning context and runs under the
// store's write lock.
func (s *Store) apply(rec Record) {
	pattern, ok := s.learned.LearnedPatterns[rec.OperationType]
	if !ok {
		pattern = &OperationPattern{CommonParameters: &ParamFrequency{}}
		s.learned.LearnedPatterns[rec.OperationType] = pattern
	}
	pattern.SuccessCount++

	for key, value := range rec.Context {
		pattern.CommonParameters.Inc(key, stringifyValue(value))
	}

	pattern.WorkingExamples = append(pattern.WorkingExamples, WorkingExample{
		Query:       rec.Query,
		Context:     cloneAnyMap(rec.Context),
		ResultCount: rec.ResultCount,
		Timestamp:   rec.Timestamp,
	})
	if len(pattern.WorkingExamples) > maxWorkingExamples {
		pattern.WorkingExamples = pattern.WorkingExamples[len(pattern.WorkingExamples)-maxWorkingExamples:]
	}

	prefs, ok := s.learned.CustomerPreferences[rec.CustomerID]
	if !ok {
		prefs = &CustomerPreferences{
			SuccessfulOperations: make(map[string]int),
			PreferredSettings:    make(map[string]any),
			BusinessContext:      make(map[string]any),
		}
		s.learned.CustomerPreferences[rec.CustomerID] = prefs
	}
	prefs.SuccessfulOperations[rec.OperationType]++

	if rec.OperationType == "campaign_creation" {
		if strategy := stringifyValue(rec.Context[contextKeyBiddingStrategy]); strategy != "" {
			vc, ok := s.learned.OptimalConfigurations[configClassCampaignBidding]
			if !ok {
				vc = &ValueCounts{}
				s.learned.OptimalConfigurations[configClassCampaignBidding] = vc
			}
			vc.Inc(strategy)
		}
	}

	s.learned.LastUpdated = time.Now().UTC()
}

// Query returns point-in-time copies of the event log and learning context.
func (s *Store) Query() ([]Record, *LearningContext) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]Record, len(s.events))
	for i, e := range s.events {
		events[i] = e
		events[i].Context = cloneAnyMap(e.Context)
	}
	return events, s.learned.clone()
}

// writeDocument replaces the document at path atomically: the JSON is
// written to a temporary file in the same directory, synced and renamed
// over the target. A crash mid-write never leaves a half-written document.
func writeDocument(path string, v any) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}

func loadEventLog(path string) []Record {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("⚠️ Event log unreadable, starting empty: %v", err)
		}
		return nil
	}
	var events []Record
	if err := json.Unmarshal(data, &events); err != nil {
		log.Printf("⚠️ Event log corrupt, starting empty: %v", err)
		return nil
	}
	if len(events) > maxLogEntries {
		events = events[len(events)-maxLogEntries:]
	}
	return events
}

func loadLearningContext(path string) *LearningContext {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("⚠️ Learning context unreadable, starting empty: %v", err)
		}
		return newLearningContext()
	}
	learned := &LearningContext{}
	if err := json.Unmarshal(data, learned); err != nil {
		log.Printf("⚠️ Learning context corrupt, starting empty: %v", err)
		return newLearningContext()
	}
	learned.normalize()
	if learned.LastUpdated.IsZero() {
		learned.LastUpdated = time.Now().UTC()
	}
	return learned
}
