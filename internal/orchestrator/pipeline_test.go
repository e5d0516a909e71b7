package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/classify"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/config"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/history"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/llm"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/pattern"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/synth"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/testutil"
)

type fakeExecutor struct {
	rs      *domain.ResultSet
	err     error
	calls   int
	lastSQL string
}

func (f *fakeExecutor) Execute(_ context.Context, plan *domain.QueryPlan) (*domain.ResultSet, error) {
	f.calls++
	f.lastSQL = plan.SQL
	if f.err != nil {
		return nil, f.err
	}
	return f.rs, nil
}

func (f *fakeExecutor) Schema(_ context.Context) (*domain.SchemaSummary, error) {
	return testSchema(), nil
}

type fakeGenerator struct {
	resp      *llm.Response
	durations []time.Duration
	err       error
	calls     int
}

func (f *fakeGenerator) GenerateSQL(_ context.Context, _ string, _ *domain.SchemaSummary) (*llm.Response, []time.Duration, error) {
	f.calls++
	return f.resp, f.durations, f.err
}

func (f *fakeGenerator) Available(_ context.Context) bool { return true }

func testSchema() *domain.SchemaSummary {
	return &domain.SchemaSummary{
		Tables: map[string][]domain.ColumnDef{
			"bmw_sales": {
				{Name: "model", DataType: "character varying"},
				{Name: "year", DataType: "integer"},
				{Name: "region", DataType: "character varying"},
				{Name: "price_usd", DataType: "numeric"},
				{Name: "sales_volume", DataType: "integer"},
			},
		},
		Views: []string{
			"analytics.kpi_executive_dashboard",
			"analytics.kpi_top_5_regions",
			"analytics.kpi_top_10_models",
			"analytics.kpi_annual_sales",
			"analytics.kpi_temporal_trends",
			"analytics.kpi_regional_performance",
			"analytics.kpi_model_performance",
			"analytics.kpi_fuel_type_performance",
			"analytics.kpi_transmission_performance",
			"analytics.kpi_annual_growth",
		},
	}
}

func annualSalesResultSet() *domain.ResultSet {
	return &domain.ResultSet{
		Columns: []domain.Column{
			{Name: "year", Type: domain.TypeTemporal},
			{Name: "total_sales", Type: domain.TypeNumeric},
		},
		Rows: [][]any{
			{int64(2020), int64(41000)},
			{int64(2021), int64(43500)},
			{int64(2022), int64(47200)},
		},
	}
}

func newTestPipeline(t *testing.T, exec *fakeExecutor, gen llm.Client) (*Pipeline, *history.Store) {
	t.Helper()
	cfg := config.Default()
	schema := testSchema()
	library := pattern.BuiltinLibrary()
	classifier := classify.New(library, classify.DefaultLookupContext(), cfg.Classifier)
	validator := synth.NewValidator(schema, cfg.Warehouse.RowLimit)
	synthesizer := synth.New(library, validator, gen, cfg.Classifier.ConfidenceFloor, nil)
	store := history.NewStore(testutil.NewTestDB(t), cfg.History)
	return New(classifier, synthesizer, exec, store, schema, nil), store
}

func TestRunAnnualSalesSelectsLineChart(t *testing.T) {
	exec := &fakeExecutor{rs: annualSalesResultSet()}
	pipe, store := newTestPipeline(t, exec, nil)

	req := domain.NewQueryRequest("Mostre as vendas totais por ano", "", domain.LangPortuguese)
	res := pipe.Run(context.Background(), req, Options{})

	require.True(t, res.Success)
	require.NotNil(t, res.Intent)
	assert.Equal(t, "annual_sales", res.Intent.PatternID)
	assert.GreaterOrEqual(t, res.Intent.Confidence, 0.5)

	require.NotNil(t, res.Plan)
	assert.Contains(t, res.Plan.SQL, "analytics.kpi_annual_sales")
	assert.Contains(t, res.Plan.SQL, "LIMIT 1000")
	assert.Equal(t, domain.SourceTemplate, res.Plan.Source)

	require.NotNil(t, res.Chart)
	assert.Equal(t, domain.ChartLine, res.Chart.Family)
	assert.Equal(t, "year", res.Chart.X.Column)
	assert.False(t, res.NoVisualization)

	entries, err := store.ListRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, req.ID, entries[0].RequestID)
	assert.True(t, entries[0].Success)
}

func TestRunTopModelsRendersSlot(t *testing.T) {
	exec := &fakeExecutor{rs: &domain.ResultSet{
		Columns: []domain.Column{
			{Name: "model", Type: domain.TypeCategorical},
			{Name: "total_sales", Type: domain.TypeNumeric},
		},
		Rows: [][]any{
			{"3 Series", int64(9100)},
			{"X5", int64(8300)},
			{"5 Series", int64(7900)},
			{"X3", int64(7100)},
			{"7 Series", int64(6500)},
		},
	}}
	pipe, _ := newTestPipeline(t, exec, nil)

	req := domain.NewQueryRequest("Quais são os top 5 modelos por vendas?", "", domain.LangUnknown)
	res := pipe.Run(context.Background(), req, Options{})

	require.True(t, res.Success)
	assert.Equal(t, "top_n_models", res.Intent.PatternID)
	assert.Equal(t, "5", res.Plan.Bindings["n"])
	assert.Contains(t, res.Plan.SQL, "LIMIT 5")

	require.NotNil(t, res.Chart)
	assert.Equal(t, domain.ChartBar, res.Chart.Family)
}

func TestRunGibberishWithoutFallbackFails(t *testing.T) {
	exec := &fakeExecutor{}
	pipe, store := newTestPipeline(t, exec, nil)

	req := domain.NewQueryRequest("florble grumpet xyzzy", "", domain.LangUnknown)
	res := pipe.Run(context.Background(), req, Options{Fallback: false})

	assert.False(t, res.Success)
	assert.Equal(t, domain.StageSynthesizing, res.FailedStage)
	assert.NotEmpty(t, res.ErrorDetail)
	assert.Zero(t, exec.calls)

	failed, err := store.ListBySuccess(context.Background(), false, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, domain.StageSynthesizing, failed[0].FailedStage)
}

func TestRunGenerationTimeoutRecordsEveryAttempt(t *testing.T) {
	exec := &fakeExecutor{}
	gen := &fakeGenerator{
		err:       llm.ErrTimeout,
		durations: []time.Duration{10 * time.Second, 10 * time.Second},
	}
	pipe, _ := newTestPipeline(t, exec, gen)

	req := domain.NewQueryRequest("florble grumpet xyzzy", "", domain.LangUnknown)
	res := pipe.Run(context.Background(), req, Options{Fallback: true})

	assert.False(t, res.Success)
	assert.Equal(t, domain.StageSynthesizing, res.FailedStage)
	assert.Equal(t, 1, gen.calls)
	assert.Zero(t, exec.calls)

	var synthTimings []domain.StageTiming
	for _, tm := range res.Timings {
		if tm.Stage == domain.StageSynthesizing {
			synthTimings = append(synthTimings, tm)
		}
	}
	require.Len(t, synthTimings, 2)
	assert.Equal(t, 1, synthTimings[0].Attempt)
	assert.Equal(t, 2, synthTimings[1].Attempt)
	assert.Equal(t, 10*time.Second, synthTimings[0].Duration)
}

func TestRunGeneratedPlanOffAllowListNeverExecutes(t *testing.T) {
	exec := &fakeExecutor{}
	gen := &fakeGenerator{
		resp:      &llm.Response{SQL: "SELECT * FROM pg_catalog.pg_tables", Model: "llama3.2"},
		durations: []time.Duration{120 * time.Millisecond},
	}
	pipe, _ := newTestPipeline(t, exec, gen)

	req := domain.NewQueryRequest("florble grumpet xyzzy", "", domain.LangUnknown)
	res := pipe.Run(context.Background(), req, Options{Fallback: true})

	assert.False(t, res.Success)
	assert.Equal(t, domain.StageSynthesizing, res.FailedStage)
	assert.Zero(t, exec.calls, "rejected plan must never reach the warehouse")
}

func TestRunGeneratedPlanSucceeds(t *testing.T) {
	exec := &fakeExecutor{rs: &domain.ResultSet{
		Columns: []domain.Column{{Name: "total", Type: domain.TypeNumeric}},
		Rows:    [][]any{{int64(123456)}},
	}}
	gen := &fakeGenerator{
		resp:      &llm.Response{SQL: "SELECT SUM(sales_volume) AS total FROM bmw_sales", Model: "llama3.2"},
		durations: []time.Duration{200 * time.Millisecond},
	}
	pipe, _ := newTestPipeline(t, exec, gen)

	req := domain.NewQueryRequest("florble grumpet xyzzy", "", domain.LangUnknown)
	res := pipe.Run(context.Background(), req, Options{Fallback: true})

	require.True(t, res.Success)
	assert.Equal(t, domain.SourceGenerated, res.Plan.Source)
	assert.Equal(t, domain.SourceGenerated, res.Intent.Source)
	assert.Contains(t, exec.lastSQL, "LIMIT 1000")

	// A single aggregate cell is a direct answer: no chart applies.
	assert.Nil(t, res.Chart)
	assert.True(t, res.NoVisualization)
}

func TestRunExecutionFailureKeepsPartialResult(t *testing.T) {
	exec := &fakeExecutor{err: domain.ErrQueryError}
	pipe, store := newTestPipeline(t, exec, nil)

	req := domain.NewQueryRequest("Mostre as vendas totais por ano", "", domain.LangPortuguese)
	res := pipe.Run(context.Background(), req, Options{})

	assert.False(t, res.Success)
	assert.Equal(t, domain.StageExecuting, res.FailedStage)
	require.NotNil(t, res.Intent)
	require.NotNil(t, res.Plan)
	assert.Nil(t, res.Summary)

	failed, err := store.ListBySuccess(context.Background(), false, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	require.NotNil(t, failed[0].Plan)
	assert.Contains(t, failed[0].Plan.SQL, "analytics.kpi_annual_sales")
}

func TestRunRecordsStageTimings(t *testing.T) {
	exec := &fakeExecutor{rs: annualSalesResultSet()}
	pipe, _ := newTestPipeline(t, exec, nil)

	req := domain.NewQueryRequest("Mostre as vendas totais por ano", "", domain.LangPortuguese)
	res := pipe.Run(context.Background(), req, Options{})

	stages := map[domain.Stage]bool{}
	for _, tm := range res.Timings {
		stages[tm.Stage] = true
	}
	assert.True(t, stages[domain.StageClassifying])
	assert.True(t, stages[domain.StageSynthesizing])
	assert.True(t, stages[domain.StageExecuting])
	assert.True(t, stages[domain.StageVisualizing])
}
