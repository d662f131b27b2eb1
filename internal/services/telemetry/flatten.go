package telemetry

import (
	"fmt"

	"github.com/j-veylop/grok-error-dashboard/internal/models"
	"github.com/j-veylop/grok-error-dashboard/internal/store"
)

// maxCommandLen bounds the command text carried in a CLI failure
// description; the full command stays in the Command field.
const maxCommandLen = 50

// rowString reads a string field, tolerating absent or mistyped values.
func rowString(row store.Row, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

// rowInt reads a numeric field. JSON numbers decode as float64.
func rowInt(row store.Row, key string) int {
	switch v := row[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func rowFloat(row store.Row, key string) float64 {
	switch v := row[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func rowBool(row store.Row, key string) bool {
	if v, ok := row[key].(bool); ok {
		return v
	}
	return false
}

// bugEvent flattens one unnested bug row.
func bugEvent(row store.Row) models.ErrorEvent {
	bugType := rowString(row, "bugType")
	if bugType == "" {
		bugType = "unknown"
	}
	reportedBy := rowString(row, "reportedBy")
	if reportedBy == "" {
		reportedBy = "script"
	}
	return models.ErrorEvent{
		Type:         models.EventBug,
		BugType:      bugType,
		Timestamp:    rowString(row, "timestamp"),
		SessionID:    rowString(row, "sessionId"),
		PairIndex:    rowInt(row, "pairIndex"),
		Description:  fmt.Sprintf("[%s] %s", bugType, rowString(row, "description")),
		Details:      fmt.Sprintf("Pair #%d", rowInt(row, "pairIndex")),
		ReportedBy:   reportedBy,
		DebugContext: row["debugContext"],
	}
}

// failureEvent flattens one unnested operation failure row.
func failureEvent(row store.Row) models.ErrorEvent {
	opType := rowString(row, "operationType")
	if opType == "" {
		opType = "unknown"
	}
	return models.ErrorEvent{
		Type:         models.EventFailure,
		Timestamp:    rowString(row, "timestamp"),
		SessionID:    rowString(row, "sessionId"),
		PairIndex:    rowInt(row, "pairIndex"),
		Description:  fmt.Sprintf("[%s] %s", opType, rowString(row, "filePath")),
		Details:      rowString(row, "error"),
		DebugContext: row["debugContext"],
	}
}

// pairErrorEvent flattens one error response pair row.
func pairErrorEvent(row store.Row) models.ErrorEvent {
	description := rowString(row, "errorMessage")
	if description == "" {
		description = "Unknown error"
	}
	return models.ErrorEvent{
		Type:        models.EventError,
		Timestamp:   rowString(row, "timestamp"),
		SessionID:   rowString(row, "sessionId"),
		PairIndex:   rowInt(row, "pairIndex"),
		Description: description,
		Details:     fmt.Sprintf("Pair #%d", rowInt(row, "pairIndex")),
	}
}

// cliEvent flattens one failed CLI execution row.
func cliEvent(row store.Row) models.ErrorEvent {
	command := rowString(row, "command")
	shortCmd := command
	if len(shortCmd) > maxCommandLen {
		shortCmd = shortCmd[:maxCommandLen]
	}
	details := rowString(row, "error")
	if details == "" {
		details = rowString(row, "stderr")
	}

	event := models.ErrorEvent{
		Type:            models.EventCLI,
		Timestamp:       rowString(row, "timestamp"),
		SessionID:       rowString(row, "sessionId"),
		PairIndex:       rowInt(row, "pairIndex"),
		Description:     fmt.Sprintf("[CLI] %s", shortCmd),
		Details:         details,
		Command:         command,
		WasAutoExecuted: rowBool(row, "wasAutoExecuted"),
		WasWhitelisted:  rowBool(row, "wasWhitelisted"),
	}
	if _, ok := row["exitCode"]; ok {
		code := rowInt(row, "exitCode")
		event.ExitCode = &code
	}
	return event
}

// sessionStat decodes one session stats row.
func sessionStat(row store.Row) models.SessionStat {
	stat := models.SessionStat{
		ID:                 rowString(row, "id"),
		UpdatedAt:          rowString(row, "updatedAt"),
		TokensIn:           rowInt(row, "tokensIn"),
		TokensOut:          rowInt(row, "tokensOut"),
		Cost:               rowFloat(row, "cost"),
		ParentSessionID:    rowString(row, "parentSessionId"),
		HandoffToSessionID: rowString(row, "handoffToSessionId"),
	}
	if ext, ok := row["extensionInfo"].(map[string]any); ok {
		stat.ExtensionInfo = &models.ExtensionInfo{
			CurrentExtension: rowInt(ext, "currentExtension"),
			TotalExtensions:  rowInt(ext, "totalExtensions"),
		}
	}
	return stat
}
