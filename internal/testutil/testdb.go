package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/history"
)

// NewTestDB creates an in-memory history database with migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := history.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestResult builds a completed pipeline result for history tests.
func NewTestResult(id, text string, opts ...ResultOption) *domain.PipelineResult {
	res := &domain.PipelineResult{
		RequestID: id,
		RawText:   text,
		CreatedAt: time.Now().UTC(),
		Success:   true,
		Intent: &domain.Intent{
			PatternID:  "annual_sales",
			Confidence: 0.8,
			Source:     domain.SourceTemplate,
		},
		Plan: &domain.QueryPlan{
			SQL:       "SELECT * FROM analytics.kpi_annual_sales LIMIT 1000",
			Risk:      domain.RiskReadOnly,
			Source:    domain.SourceTemplate,
			PatternID: "annual_sales",
		},
		Summary: &domain.ResultSummary{
			Columns: []domain.Column{
				{Name: "year", Type: domain.TypeTemporal},
				{Name: "total_sales", Type: domain.TypeNumeric},
			},
			RowCount: 15,
		},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// ResultOption customizes a test pipeline result.
type ResultOption func(*domain.PipelineResult)

// WithFailure marks the result failed at the given stage.
func WithFailure(stage domain.Stage, detail string) ResultOption {
	return func(res *domain.PipelineResult) {
		res.Success = false
		res.FailedStage = stage
		res.ErrorDetail = detail
		res.Plan = nil
		res.Summary = nil
		res.Chart = nil
	}
}

// WithCreatedAt overrides the result timestamp.
func WithCreatedAt(ts time.Time) ResultOption {
	return func(res *domain.PipelineResult) {
		res.CreatedAt = ts
	}
}
