package telemetry

import "github.com/j-veylop/grok-error-dashboard/internal/models"

// ClassifySessions assigns every session exactly one type and returns
// the per-type counts alongside the id-to-type map used for table
// badges. The counts always sum to len(stats).
func ClassifySessions(stats []models.SessionStat) (models.SessionTypeCounts, map[string]models.SessionType) {
	var counts models.SessionTypeCounts
	typeMap := make(map[string]models.SessionType, len(stats))

	for _, s := range stats {
		sessionType := s.Classify()
		typeMap[s.ID] = sessionType

		switch sessionType {
		case models.SessionExtended:
			counts.Extended++
		case models.SessionHandoff:
			counts.Handoff++
		default:
			counts.Single++
		}
	}

	return counts, typeMap
}
