package models

import "testing"

func TestSessionStatClassify(t *testing.T) {
	tests := []struct {
		name string
		stat SessionStat
		want SessionType
	}{
		{
			name: "plain session",
			stat: SessionStat{ID: "s1"},
			want: SessionSingle,
		},
		{
			name: "first extension document is still single",
			stat: SessionStat{ID: "s2", ExtensionInfo: &ExtensionInfo{CurrentExtension: 1}},
			want: SessionSingle,
		},
		{
			name: "later extension document",
			stat: SessionStat{ID: "s3", ExtensionInfo: &ExtensionInfo{CurrentExtension: 2}},
			want: SessionExtended,
		},
		{
			name: "child of a handoff",
			stat: SessionStat{ID: "s4", ParentSessionID: "s1"},
			want: SessionHandoff,
		},
		{
			name: "parent that handed off",
			stat: SessionStat{ID: "s5", HandoffToSessionID: "s6"},
			want: SessionHandoff,
		},
		{
			name: "extension wins over handoff reference",
			stat: SessionStat{
				ID:              "s7",
				ExtensionInfo:   &ExtensionInfo{CurrentExtension: 3},
				ParentSessionID: "s1",
			},
			want: SessionExtended,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stat.Classify(); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionStatEstimatedBytes(t *testing.T) {
	stat := SessionStat{TokensIn: 1000, TokensOut: 500}
	if got := stat.EstimatedBytes(); got != 6000 {
		t.Errorf("EstimatedBytes() = %d, want 6000", got)
	}
}

func TestEventTypePlural(t *testing.T) {
	tests := []struct {
		eventType EventType
		want      string
	}{
		{EventBug, "bugs"},
		{EventFailure, "failures"},
		{EventError, "errors"},
		{EventCLI, "cli"},
	}

	for _, tt := range tests {
		if got := tt.eventType.Plural(); got != tt.want {
			t.Errorf("%v.Plural() = %q, want %q", tt.eventType, got, tt.want)
		}
		if !tt.eventType.Valid() {
			t.Errorf("%v.Valid() = false, want true", tt.eventType)
		}
	}

	if EventType("panic").Valid() {
		t.Error(`EventType("panic").Valid() = true, want false`)
	}
}

func TestStatsTotal(t *testing.T) {
	stats := Stats{Bugs: 1, Failures: 2, Errors: 3, CLI: 4, UniqueSessions: 9}
	if got := stats.Total(); got != 10 {
		t.Errorf("Total() = %d, want 10", got)
	}
}
