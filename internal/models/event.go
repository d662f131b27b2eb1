// Package models defines data structures and domain types.
package models

// EventType identifies which record category an error event came from.
type EventType string

const (
	// EventBug is a bug report attached to a session document.
	EventBug EventType = "bug"
	// EventFailure is a failed file operation.
	EventFailure EventType = "failure"
	// EventError is a request/response pair that ended in error status.
	EventError EventType = "error"
	// EventCLI is a failed CLI command execution.
	EventCLI EventType = "cli"
)

// String returns the wire name of the event type.
func (t EventType) String() string {
	return string(t)
}

// Plural returns the key used for this type in time-series buckets
// and in the stats block (bug -> bugs, cli -> cli).
func (t EventType) Plural() string {
	switch t {
	case EventBug:
		return "bugs"
	case EventFailure:
		return "failures"
	case EventError:
		return "errors"
	case EventCLI:
		return "cli"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventBug, EventFailure, EventError, EventCLI:
		return true
	}
	return false
}

// ErrorEvent is one flattened error record. Events are produced by
// flattening four independent record categories out of session
// documents: bugs, operation failures, error response pairs, and CLI
// execution failures. The timestamp is kept as the raw ISO-8601 string
// from the document; consumers that need a time.Time parse it and skip
// the record when parsing fails.
type ErrorEvent struct {
	Type        EventType `json:"type"`
	BugType     string    `json:"bugType,omitempty"`
	Timestamp   string    `json:"timestamp"`
	SessionID   string    `json:"sessionId"`
	PairIndex   int       `json:"pairIndex"`
	Description string    `json:"description"`
	Details     string    `json:"details,omitempty"`
	// ReportedBy distinguishes user-filed bugs from script-detected
	// ones. Empty for non-bug events.
	ReportedBy   string `json:"reportedBy,omitempty"`
	DebugContext any    `json:"debugContext,omitempty"`

	// CLI-only fields.
	Command         string `json:"command,omitempty"`
	ExitCode        *int   `json:"exitCode,omitempty"`
	WasAutoExecuted bool   `json:"wasAutoExecuted,omitempty"`
	WasWhitelisted  bool   `json:"wasWhitelisted,omitempty"`
}

// Stats holds the headline counters for one refresh.
type Stats struct {
	Bugs           int `json:"bugs"`
	Failures       int `json:"failures"`
	Errors         int `json:"errors"`
	CLI            int `json:"cli"`
	UniqueSessions int `json:"uniqueSessions"`
}

// Total returns the combined number of error events.
func (s Stats) Total() int {
	return s.Bugs + s.Failures + s.Errors + s.CLI
}
