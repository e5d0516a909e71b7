package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mostre as VENDAS totais!", "mostre as vendas totais"},
		{"regiões", "regioes"},
		{"Qual é o preço médio?", "qual e o preco medio"},
		{"  muito   espaço  ", "muito espaco"},
		{"top-5 modelos", "top 5 modelos"},
		{"", ""},
		{"?!.,", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestContainsTermWholeWordsOnly(t *testing.T) {
	assert.True(t, containsTerm("mostre as vendas totais", "vendas"))
	assert.True(t, containsTerm("vendas por ano", "por ano"))
	assert.False(t, containsTerm("mostre as vendas totais", "total"))
	assert.False(t, containsTerm("anos anteriores", "ano"))
}

func TestExtractInt(t *testing.T) {
	got, ok := extractInt("top 5 modelos", 1, 100)
	assert.True(t, ok)
	assert.Equal(t, "5", got)

	_, ok = extractInt("top modelos", 1, 100)
	assert.False(t, ok)

	// Out-of-range candidates are skipped, not clamped.
	_, ok = extractInt("vendas de 2022", 1, 100)
	assert.False(t, ok)

	got, ok = extractInt("vendas de 2022", 1990, 2100)
	assert.True(t, ok)
	assert.Equal(t, "2022", got)
}

func TestExtractAliasLongestWins(t *testing.T) {
	lookup := DefaultLookupContext()

	got, ok := extractAlias("vendas na america do norte", lookup.Regions)
	assert.True(t, ok)
	assert.Equal(t, "North America", got)

	got, ok = extractAlias("vendas da serie 3 este ano", lookup.Models)
	assert.True(t, ok)
	assert.Equal(t, "3 Series", got)

	_, ok = extractAlias("vendas totais", lookup.Regions)
	assert.False(t, ok)
}

func TestExtractChartFamily(t *testing.T) {
	tests := []struct {
		in   string
		want domain.ChartFamily
	}{
		{"vendas em grafico de pizza", domain.ChartPie},
		{"mostre um mapa de calor das vendas", domain.ChartHeatmap},
		{"sales as a bar chart", domain.ChartBar},
		{"evolucao em linha", domain.ChartLine},
		{"vendas por ano", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractChartFamily(Normalize(tt.in)), "input %q", tt.in)
	}
}
