package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/pattern"
)

func init() {
	SetPlain()
}

func sampleResult() *domain.PipelineResult {
	return &domain.PipelineResult{
		RequestID: "req-1",
		RawText:   "Mostre as vendas por ano",
		CreatedAt: time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC),
		Success:   true,
		Intent: &domain.Intent{
			PatternID:  "annual_sales",
			Confidence: 0.82,
			Source:     domain.SourceTemplate,
		},
		Plan: &domain.QueryPlan{
			SQL:       "SELECT * FROM analytics.kpi_annual_sales LIMIT 1000",
			PatternID: "annual_sales",
			Source:    domain.SourceTemplate,
		},
		ResultSet: &domain.ResultSet{
			Columns: []domain.Column{
				{Name: "year", Type: domain.TypeTemporal},
				{Name: "total_sales", Type: domain.TypeNumeric},
			},
			Rows: [][]any{
				{int64(2023), int64(120000)},
				{int64(2024), int64(135000)},
			},
		},
		Chart: &domain.ChartSpec{
			Family: domain.ChartLine,
			Title:  "Annual Sales",
			X:      &domain.Encoding{Column: "year", Type: domain.TypeTemporal},
			Y:      &domain.Encoding{Column: "total_sales", Type: domain.TypeNumeric},
		},
		Timings: []domain.StageTiming{
			{Stage: domain.StageClassifying, Attempt: 1, Duration: 2 * time.Millisecond},
			{Stage: domain.StageExecuting, Attempt: 1, Duration: 40 * time.Millisecond},
		},
	}
}

func TestFormatResultSuccess(t *testing.T) {
	out := FormatResult(sampleResult())

	assert.Contains(t, out, "Mostre as vendas por ano")
	assert.Contains(t, out, "annual_sales")
	assert.Contains(t, out, "confidence 0.82")
	assert.Contains(t, out, "kpi_annual_sales")
	assert.Contains(t, out, "2023")
	assert.Contains(t, out, "chart: line")
	assert.Contains(t, out, "x=year")
	assert.Contains(t, out, "executing 40ms")
}

func TestFormatResultFailure(t *testing.T) {
	res := &domain.PipelineResult{
		RawText:     "asdf qwerty",
		FailedStage: domain.StageSynthesizing,
		ErrorDetail: "no viable intent",
	}
	out := FormatResult(res)

	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "failed at synthesizing")
	assert.Contains(t, out, "no viable intent")
	assert.NotContains(t, out, "chart:")
}

func TestFormatResultTruncatesRows(t *testing.T) {
	res := sampleResult()
	res.ResultSet.Rows = nil
	for i := 0; i < 25; i++ {
		res.ResultSet.Rows = append(res.ResultSet.Rows, []any{int64(2000 + i), int64(i)})
	}
	out := FormatResult(res)

	assert.Contains(t, out, "… 5 more rows")
}

func TestFormatResultNoVisualization(t *testing.T) {
	res := sampleResult()
	res.Chart = nil
	res.NoVisualization = true
	out := FormatResult(res)

	assert.Contains(t, out, "no chart: single-value answer")
}

func TestFormatResultChartWarning(t *testing.T) {
	res := sampleResult()
	res.Chart.Warning = "pie is incompatible with temporal data, using line"
	out := FormatResult(res)

	assert.Contains(t, out, "warning: pie is incompatible")
}

func TestFormatHistory(t *testing.T) {
	ok := sampleResult()
	failed := &domain.PipelineResult{
		RawText:     strings.Repeat("vendas ", 20),
		CreatedAt:   time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC),
		FailedStage: domain.StageExecuting,
		Intent:      &domain.Intent{Source: domain.SourceGenerated},
	}
	out := FormatHistory([]*domain.PipelineResult{ok, failed})

	assert.Contains(t, out, "When")
	assert.Contains(t, out, "annual_sales")
	assert.Contains(t, out, "(generated)")
	assert.Contains(t, out, "@executing")
	assert.Contains(t, out, "…") // long query truncated

	assert.Contains(t, FormatHistory(nil), "no history entries")
}

func TestFormatSchema(t *testing.T) {
	out := FormatSchema(&domain.SchemaSummary{
		Tables: map[string][]domain.ColumnDef{
			"bmw_sales": {
				{Name: "year", DataType: "integer"},
				{Name: "region", DataType: "text", Nullable: true},
			},
		},
		Views: []string{"analytics.kpi_annual_sales"},
	})

	assert.Contains(t, out, "bmw_sales")
	assert.Contains(t, out, "region")
	assert.Contains(t, out, "text null")
	assert.Contains(t, out, "analytics.kpi_annual_sales")
}

func TestFormatPatterns(t *testing.T) {
	out := FormatPatterns(pattern.BuiltinLibrary().Lookup())

	assert.Contains(t, out, "annual_sales")
	assert.Contains(t, out, "region*")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ação…", truncate("ação de venda", 5))
}
