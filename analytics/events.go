package analytics

import "time"

// EventType classifies one entry in a pattern's event log.
type EventType string

const (
	EventSuccess  EventType = "success"
	EventFailure  EventType = "failure"
	EventFeedback EventType = "feedback"
)

// Event is the sole durable state of the analytics subsystem: one
// append-only entry per extraction attempt or feedback submission.
// Metrics are recomputed from these on read, never maintained as
// running aggregates.
type Event struct {
	Type           EventType      `json:"type"`
	Timestamp      time.Time      `json:"timestamp"`
	ExtractionTime *time.Duration `json:"extraction_time,omitempty"`
	ErrorKind      string         `json:"error_kind,omitempty"`
	Accurate       *bool          `json:"accurate,omitempty"`
	Correction     string         `json:"correction,omitempty"`
}
