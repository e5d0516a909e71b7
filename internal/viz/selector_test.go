package viz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
)

func catNumResult(rows int) *domain.ResultSet {
	rs := &domain.ResultSet{
		Columns: []domain.Column{
			{Name: "region", Type: domain.TypeCategorical},
			{Name: "total_sales", Type: domain.TypeNumeric},
		},
	}
	for i := 0; i < rows; i++ {
		rs.Rows = append(rs.Rows, []any{fmt.Sprintf("region-%d", i), int64(1000 - i)})
	}
	return rs
}

func temporalResult() *domain.ResultSet {
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

func TestSelectScalarAnswerHasNoChart(t *testing.T) {
	rs := &domain.ResultSet{
		Columns: []domain.Column{{Name: "total_records", Type: domain.TypeNumeric}},
		Rows:    [][]any{{int64(50000)}},
	}
	spec, ok := Select(rs, nil)
	assert.Nil(t, spec)
	assert.False(t, ok)
}

func TestSelectCategoryMeasureIsBar(t *testing.T) {
	spec, ok := Select(catNumResult(6), nil)
	require.True(t, ok)

	assert.Equal(t, domain.ChartBar, spec.Family)
	assert.Equal(t, "region", spec.X.Column)
	assert.Equal(t, "total_sales", spec.Y.Column)
	assert.True(t, spec.SortDescending)
	assert.Zero(t, spec.TopN)
}

func TestSelectTemporalMeasureIsLine(t *testing.T) {
	spec, ok := Select(temporalResult(), nil)
	require.True(t, ok)

	assert.Equal(t, domain.ChartLine, spec.Family)
	assert.Equal(t, "year", spec.X.Column)
	assert.False(t, spec.SortDescending)
}

func TestSelectLongTailIsTopNBar(t *testing.T) {
	spec, ok := Select(catNumResult(40), nil)
	require.True(t, ok)

	assert.Equal(t, domain.ChartBar, spec.Family)
	assert.Equal(t, 10, spec.TopN)
}

func TestSelectTwoMeasuresIsScatter(t *testing.T) {
	rs := &domain.ResultSet{
		Columns: []domain.Column{
			{Name: "price_usd", Type: domain.TypeNumeric},
			{Name: "sales_volume", Type: domain.TypeNumeric},
		},
		Rows: [][]any{
			{55000.0, int64(310)},
			{42000.0, int64(520)},
			{61000.0, int64(180)},
		},
	}
	spec, ok := Select(rs, nil)
	require.True(t, ok)

	assert.Equal(t, domain.ChartScatter, spec.Family)
	assert.Equal(t, "price_usd", spec.X.Column)
	assert.Equal(t, "sales_volume", spec.Y.Column)
}

func TestSelectSquareMatrixIsHeatmap(t *testing.T) {
	rs := &domain.ResultSet{
		Columns: []domain.Column{
			{Name: "price_usd", Type: domain.TypeNumeric},
			{Name: "mileage_km", Type: domain.TypeNumeric},
			{Name: "sales_volume", Type: domain.TypeNumeric},
		},
		Rows: [][]any{
			{1.0, 0.2, -0.1},
			{0.2, 1.0, 0.4},
			{-0.1, 0.4, 1.0},
		},
	}
	spec, ok := Select(rs, nil)
	require.True(t, ok)
	assert.Equal(t, domain.ChartHeatmap, spec.Family)
}

func TestSelectTemporalWinsOverCategorical(t *testing.T) {
	// A category column next to a time axis still charts over time.
	rs := &domain.ResultSet{
		Columns: []domain.Column{
			{Name: "year", Type: domain.TypeTemporal},
			{Name: "region", Type: domain.TypeCategorical},
			{Name: "total_sales", Type: domain.TypeNumeric},
		},
		Rows: [][]any{
			{int64(2021), "Europe", int64(20000)},
			{int64(2022), "Europe", int64(22000)},
		},
	}
	spec, ok := Select(rs, nil)
	require.True(t, ok)
	assert.Equal(t, domain.ChartLine, spec.Family)
}

func TestSelectHonorsExplicitCompatibleRequest(t *testing.T) {
	intent := &domain.Intent{
		PatternID:  "regional_performance",
		Parameters: map[string]string{"chart": "pie"},
	}
	spec, ok := Select(catNumResult(5), intent)
	require.True(t, ok)
	assert.Equal(t, domain.ChartPie, spec.Family)
	assert.Empty(t, spec.Warning)
}

func TestSelectDegradesIncompatibleRequest(t *testing.T) {
	intent := &domain.Intent{
		PatternID:  "annual_sales",
		Parameters: map[string]string{"chart": "pie"},
	}
	spec, ok := Select(temporalResult(), intent)
	require.True(t, ok)

	assert.Equal(t, domain.ChartLine, spec.Family)
	assert.Contains(t, spec.Warning, "pie")
}

func TestSelectEmptyAndNilResults(t *testing.T) {
	spec, ok := Select(nil, nil)
	assert.Nil(t, spec)
	assert.False(t, ok)

	empty := &domain.ResultSet{}
	spec, ok = Select(empty, nil)
	assert.Nil(t, spec)
	assert.False(t, ok)
}

func TestSelectDeterministic(t *testing.T) {
	rs := catNumResult(12)
	intent := &domain.Intent{PatternID: "top_regions"}

	first, ok := Select(rs, intent)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, okAgain := Select(rs, intent)
		require.True(t, okAgain)
		assert.Equal(t, first, again)
	}
}

func TestTitleFromPatternID(t *testing.T) {
	intent := &domain.Intent{PatternID: "top_n_models"}
	spec, ok := Select(catNumResult(4), intent)
	require.True(t, ok)
	assert.Equal(t, "Top N Models", spec.Title)
}
