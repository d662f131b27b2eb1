package models

// ExtensionInfo describes how a session document was split once it
// outgrew the single-document size limit.
type ExtensionInfo struct {
	CurrentExtension int `json:"currentExtension"`
	TotalExtensions  int `json:"totalExtensions,omitempty"`
}

// SessionStat is the per-session summary row used for charts and
// classification. One per session document in the selected time range.
type SessionStat struct {
	ID                 string         `json:"id"`
	UpdatedAt          string         `json:"updatedAt"`
	TokensIn           int            `json:"tokensIn"`
	TokensOut          int            `json:"tokensOut"`
	Cost               float64        `json:"cost,omitempty"`
	ExtensionInfo      *ExtensionInfo `json:"extensionInfo,omitempty"`
	ParentSessionID    string         `json:"parentSessionId,omitempty"`
	HandoffToSessionID string         `json:"handoffToSessionId,omitempty"`
}

// EstimatedBytes approximates the session payload size at ~4 bytes per
// token.
func (s SessionStat) EstimatedBytes() int {
	return (s.TokensIn + s.TokensOut) * 4
}

// SessionType classifies how a session relates to other sessions.
type SessionType string

const (
	// SessionSingle is a normal session with all data in one document.
	SessionSingle SessionType = "single"
	// SessionExtended was split into multiple documents due to size.
	SessionExtended SessionType = "extended"
	// SessionHandoff was continued from, or handed off to, another
	// session.
	SessionHandoff SessionType = "handoff"
)

// String returns the wire name of the session type.
func (t SessionType) String() string {
	return string(t)
}

// Classify assigns the session exactly one type. The checks form a
// priority chain: extension state wins over handoff references.
func (s SessionStat) Classify() SessionType {
	if s.ExtensionInfo != nil && s.ExtensionInfo.CurrentExtension > 1 {
		return SessionExtended
	}
	if s.ParentSessionID != "" || s.HandoffToSessionID != "" {
		return SessionHandoff
	}
	return SessionSingle
}

// SessionTypeCounts aggregates classification results.
type SessionTypeCounts struct {
	Single   int `json:"single"`
	Extended int `json:"extended"`
	Handoff  int `json:"handoff"`
}

// Total returns the number of classified sessions.
func (c SessionTypeCounts) Total() int {
	return c.Single + c.Extended + c.Handoff
}
