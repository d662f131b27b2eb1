package telemetry

import (
	"testing"

	"github.com/j-veylop/grok-error-dashboard/internal/models"
)

func TestClassifySessions(t *testing.T) {
	stats := []models.SessionStat{
		{ID: "plain"},
		{ID: "ext", ExtensionInfo: &models.ExtensionInfo{CurrentExtension: 2}},
		{ID: "child", ParentSessionID: "plain"},
		{ID: "parent", HandoffToSessionID: "child"},
		{ID: "ext-and-handoff", ExtensionInfo: &models.ExtensionInfo{CurrentExtension: 3}, ParentSessionID: "plain"},
	}

	counts, typeMap := ClassifySessions(stats)

	if counts.Single != 1 || counts.Extended != 2 || counts.Handoff != 2 {
		t.Errorf("counts = %+v, want 1 single, 2 extended, 2 handoff", counts)
	}

	// Every session gets exactly one type and the counts cover all of
	// them.
	if counts.Total() != len(stats) {
		t.Errorf("Total() = %d, want %d", counts.Total(), len(stats))
	}
	if len(typeMap) != len(stats) {
		t.Errorf("len(typeMap) = %d, want %d", len(typeMap), len(stats))
	}

	wantTypes := map[string]models.SessionType{
		"plain":           models.SessionSingle,
		"ext":             models.SessionExtended,
		"child":           models.SessionHandoff,
		"parent":          models.SessionHandoff,
		"ext-and-handoff": models.SessionExtended,
	}
	for id, want := range wantTypes {
		if got := typeMap[id]; got != want {
			t.Errorf("typeMap[%q] = %v, want %v", id, got, want)
		}
	}
}

func TestClassifySessionsEmpty(t *testing.T) {
	counts, typeMap := ClassifySessions(nil)
	if counts.Total() != 0 {
		t.Errorf("Total() = %d, want 0", counts.Total())
	}
	if len(typeMap) != 0 {
		t.Errorf("len(typeMap) = %d, want 0", len(typeMap))
	}
}
