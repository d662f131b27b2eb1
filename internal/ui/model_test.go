package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/grok-error-dashboard/internal/models"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdateQuitKeys(t *testing.T) {
	m := NewModel(nil, nil, 0)

	for _, key := range []string{"q"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q returned no command, want tea.Quit", key)
		}
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c returned no command, want tea.Quit")
	}
}

func TestUpdateRangeToggle(t *testing.T) {
	m := NewModel(nil, nil, 0)
	if m.timeRange != models.RangeDay {
		t.Fatalf("initial range = %v, want day", m.timeRange)
	}

	next, _ := m.Update(keyMsg("t"))
	got := next.(Model)
	if got.timeRange != models.RangeWeek {
		t.Errorf("range after toggle = %v, want week", got.timeRange)
	}
	if !got.loading {
		t.Error("loading = false after range toggle, want true")
	}
}

func TestUpdateDropsStaleSnapshot(t *testing.T) {
	m := NewModel(nil, nil, 0)
	m.timeRange = models.RangeWeek

	stale := snapshotMsg{
		snapshot:  &models.Snapshot{Stats: models.Stats{Bugs: 3}},
		timeRange: models.RangeDay,
	}
	next, _ := m.Update(stale)
	if got := next.(Model); got.snapshot != nil {
		t.Error("stale snapshot was applied")
	}

	fresh := snapshotMsg{
		snapshot:  &models.Snapshot{Stats: models.Stats{Bugs: 3}},
		timeRange: models.RangeWeek,
	}
	next, _ = m.Update(fresh)
	got := next.(Model)
	if got.snapshot == nil || got.snapshot.Stats.Bugs != 3 {
		t.Error("fresh snapshot was not applied")
	}
	if got.loading {
		t.Error("loading = true after snapshot, want false")
	}
}

func TestFormatEventTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-01-15T10:15:00Z", "01/15 10:15"},
		{"2024-01-15T10:15:00", "01/15 10:15"},
		{"garbage", "garbage"},
		{"", "-"},
	}

	for _, tt := range tests {
		if got := formatEventTime(tt.input); got != tt.want {
			t.Errorf("formatEventTime(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
