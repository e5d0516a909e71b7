package domain

import "time"

// StageTiming records how long one pipeline stage took. Retried external
// calls produce one entry per attempt.
type StageTiming struct {
	Stage    Stage         `json:"stage"`
	Attempt  int           `json:"attempt"`
	Duration time.Duration `json:"duration"`
}

// ResultSummary is the persisted digest of a ResultSet. Full row data is
// returned to the caller but only the shape is kept in history.
type ResultSummary struct {
	Columns  []Column `json:"columns"`
	RowCount int      `json:"row_count"`
}

// PipelineResult is the unit of record for one request. It is append-only:
// once created it is never mutated.
type PipelineResult struct {
	RequestID string    `json:"request_id"`
	RawText   string    `json:"raw_text"`
	CreatedAt time.Time `json:"created_at"`

	Intent  *Intent        `json:"intent,omitempty"`
	Plan    *QueryPlan     `json:"plan,omitempty"`
	Summary *ResultSummary `json:"summary,omitempty"`

	// Chart is the selected visualization. NoVisualization marks the valid
	// "scalar answer, no chart applies" outcome; exactly one of the two is
	// set on a completed result.
	Chart           *ChartSpec `json:"chart,omitempty"`
	NoVisualization bool       `json:"no_visualization,omitempty"`

	Timings []StageTiming `json:"timings"`

	Success     bool   `json:"success"`
	FailedStage Stage  `json:"failed_stage,omitempty"`
	ErrorDetail string `json:"error_detail,omitempty"`

	// ResultSet carries the full row data back to the caller. Only the
	// Summary digest is persisted to history.
	ResultSet *ResultSet `json:"-"`
}
