package telemetry

import "fmt"

// The upstream documents are "chat" session documents carrying nested
// arrays of bugs, operation failures, request/response pairs, and CLI
// executions. Each statement unnests one category and filters by the
// bound $start bound; only the keyspace name is interpolated (it is
// validated at config load).

func bugsQuery(bucket string) string {
	return fmt.Sprintf("SELECT d.id AS sessionId, b.id AS bugId, b.type AS bugType, b.description, "+
		"b.timestamp, b.pairIndex, b.debugContext, b.`by` AS reportedBy "+
		"FROM `%s` d UNNEST d.bugs b "+
		"WHERE d.docType = \"chat\" AND d.updatedAt >= $start AND d.bugs IS NOT MISSING "+
		"ORDER BY b.timestamp DESC", bucket)
}

func failuresQuery(bucket string) string {
	return fmt.Sprintf("SELECT d.id AS sessionId, f.id AS failureId, f.operationType, f.error, "+
		"f.timestamp, f.filePath, f.pairIndex, f.debugContext "+
		"FROM `%s` d UNNEST d.operationFailures f "+
		"WHERE d.docType = \"chat\" AND d.updatedAt >= $start AND d.operationFailures IS NOT MISSING "+
		"ORDER BY f.timestamp DESC", bucket)
}

func pairErrorsQuery(bucket string) string {
	return fmt.Sprintf("SELECT d.id AS sessionId, ARRAY_POSITION(d.pairs, p) AS pairIndex, "+
		"p.response.status, p.response.errorMessage, p.response.timestamp "+
		"FROM `%s` d UNNEST d.pairs p "+
		"WHERE d.docType = \"chat\" AND d.updatedAt >= $start AND p.response.status = \"error\" "+
		"ORDER BY p.response.timestamp DESC LIMIT 100", bucket)
}

func cliFailuresQuery(bucket string) string {
	return fmt.Sprintf("SELECT d.id AS sessionId, c.id AS cliId, c.command, c.error, c.timestamp, "+
		"c.pairIndex, c.cwd, c.durationMs, c.wasAutoExecuted, c.wasWhitelisted, c.exitCode, c.stderr "+
		"FROM `%s` d UNNEST d.cliExecutions c "+
		"WHERE d.docType = \"chat\" AND d.updatedAt >= $start AND c.success = false "+
		"ORDER BY c.timestamp DESC", bucket)
}

func sessionStatsQuery(bucket string) string {
	return fmt.Sprintf("SELECT d.id, d.updatedAt, d.tokensIn, d.tokensOut, d.cost, "+
		"d.extensionInfo, d.parentSessionId, d.handoffToSessionId "+
		"FROM `%s` d "+
		"WHERE d.docType = \"chat\" AND d.updatedAt >= $start "+
		"ORDER BY d.updatedAt DESC", bucket)
}

func sessionByIDQuery(bucket string) string {
	return fmt.Sprintf("SELECT d.* FROM `%s` d WHERE META(d).id = $id", bucket)
}
