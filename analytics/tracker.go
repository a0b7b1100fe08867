package analytics

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Aashish23092/salary-extraction-engine/dto"
)

// Store persists the event log. Implementations must round-trip the
// ordered event lists losslessly.
type Store interface {
	Load() (map[string][]Event, error)
	SaveKey(patternKey string, events []Event) error
	Reset() error
	Close() error
}

// Tracker is the extraction analytics subsystem: an append-only,
// writer-serialized event log with snapshot reads. A persistence
// failure never blocks extraction; the tracker degrades to in-memory
// behavior and keeps going.
type Tracker struct {
	mu     sync.RWMutex
	events map[string][]Event
	store  Store // nil disables persistence
}

// NewTracker loads persisted events at startup. A load failure starts
// the tracker empty rather than failing construction.
func NewTracker(store Store) *Tracker {
	t := &Tracker{events: make(map[string][]Event), store: store}
	if store != nil {
		loaded, err := store.Load()
		if err != nil {
			log.Printf("analytics: load failed, starting empty: %v", err)
		} else if loaded != nil {
			t.events = loaded
		}
	}
	return t
}

// RecordSuccess appends a success event for a pattern.
func (t *Tracker) RecordSuccess(patternKey string, elapsed time.Duration) {
	t.append(patternKey, Event{
		Type:           EventSuccess,
		Timestamp:      time.Now(),
		ExtractionTime: &elapsed,
	})
}

// RecordFailure appends a failure event with an optional error kind.
func (t *Tracker) RecordFailure(patternKey string, elapsed time.Duration, errorKind string) {
	t.append(patternKey, Event{
		Type:           EventFailure,
		Timestamp:      time.Now(),
		ExtractionTime: &elapsed,
		ErrorKind:      errorKind,
	})
}

// RecordFeedback appends a user-feedback event.
func (t *Tracker) RecordFeedback(patternKey string, accurate bool, correction string) {
	t.append(patternKey, Event{
		Type:       EventFeedback,
		Timestamp:  time.Now(),
		Accurate:   &accurate,
		Correction: correction,
	})
}

func (t *Tracker) append(patternKey string, event Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.events[patternKey] = append(t.events[patternKey], event)

	if t.store != nil {
		if err := t.store.SaveKey(patternKey, t.events[patternKey]); err != nil {
			log.Printf("analytics: persist failed for %s: %v", patternKey, err)
		}
	}
}

// Performance recomputes one pattern's metrics from its event log.
// With no events recorded the success rate reports 0.0 and the user
// accuracy rate 1.0 (absence of negative signal is not evidence of
// inaccuracy).
func (t *Tracker) Performance(patternKey string) dto.PatternPerformance {
	t.mu.RLock()
	events := make([]Event, len(t.events[patternKey]))
	copy(events, t.events[patternKey])
	t.mu.RUnlock()

	return computePerformance(patternKey, events)
}

// AllPerformance returns a snapshot for every tracked pattern, sorted
// by key so repeated reads are comparable.
func (t *Tracker) AllPerformance() []dto.PatternPerformance {
	t.mu.RLock()
	keys := make([]string, 0, len(t.events))
	for key := range t.events {
		keys = append(keys, key)
	}
	snapshot := make(map[string][]Event, len(t.events))
	for key, events := range t.events {
		copied := make([]Event, len(events))
		copy(copied, events)
		snapshot[key] = copied
	}
	t.mu.RUnlock()

	sort.Strings(keys)
	out := make([]dto.PatternPerformance, 0, len(keys))
	for _, key := range keys {
		out = append(out, computePerformance(key, snapshot[key]))
	}
	return out
}

// Reset clears the log and the underlying store.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.events = make(map[string][]Event)
	if t.store != nil {
		return t.store.Reset()
	}
	return nil
}

func computePerformance(patternKey string, events []Event) dto.PatternPerformance {
	perf := dto.PatternPerformance{PatternKey: patternKey, UserAccuracyRate: 1.0}

	var successes, attempts, feedback, accurate int
	var timed int
	var totalTime time.Duration
	var lastUsed time.Time

	for _, event := range events {
		switch event.Type {
		case EventSuccess, EventFailure:
			attempts++
			if event.Type == EventSuccess {
				successes++
			}
			if event.ExtractionTime != nil {
				timed++
				totalTime += *event.ExtractionTime
			}
			if event.Timestamp.After(lastUsed) {
				lastUsed = event.Timestamp
			}
		case EventFeedback:
			feedback++
			if event.Accurate != nil && *event.Accurate {
				accurate++
			}
		}
	}

	perf.ExtractionCount = attempts
	if attempts > 0 {
		perf.SuccessRate = float64(successes) / float64(attempts)
	}
	if timed > 0 {
		perf.AverageExtractionTime = totalTime / time.Duration(timed)
	}
	if feedback > 0 {
		perf.UserAccuracyRate = float64(accurate) / float64(feedback)
	}
	if !lastUsed.IsZero() {
		used := lastUsed
		perf.LastUsed = &used
	}

	return perf
}
