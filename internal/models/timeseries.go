package models

// BucketSummary is one emitted time-series bucket. Period is the
// formatted bucket label for the selected range; buckets are emitted
// in ascending label order.
type BucketSummary struct {
	Period           string  `json:"period"`
	Bugs             int     `json:"bugs"`
	Failures         int     `json:"failures"`
	Errors           int     `json:"errors"`
	CLI              int     `json:"cli"`
	AvgPerSession    float64 `json:"avgPerSession"`
	TokensIn         int     `json:"tokensIn"`
	TokensOut        int     `json:"tokensOut"`
	AvgSessionSizeKB float64 `json:"avgSessionSizeKB"`
}

// Snapshot is the complete result of one telemetry refresh, shaped to
// match the /api/errors response.
type Snapshot struct {
	Stats          Stats                  `json:"stats"`
	Errors         []ErrorEvent           `json:"errors"`
	TimeSeries     []BucketSummary        `json:"timeSeries"`
	SessionTypes   SessionTypeCounts      `json:"sessionTypes"`
	SessionTypeMap map[string]SessionType `json:"sessionTypeMap"`
	// Degraded is set when at least one upstream query failed and its
	// rows were replaced with an empty set. The counts on a degraded
	// snapshot are lower bounds, not observations of zero.
	Degraded bool `json:"degraded"`
}
