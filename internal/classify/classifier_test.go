package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/config"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/pattern"
)

func newClassifier() *Classifier {
	return New(pattern.BuiltinLibrary(), DefaultLookupContext(), config.Default().Classifier)
}

func TestClassifyAnnualSalesPortuguese(t *testing.T) {
	c := newClassifier()

	intents := c.Classify("Mostre as vendas totais por ano", domain.LangPortuguese)
	require.NotEmpty(t, intents)

	top := intents[0]
	assert.Equal(t, "annual_sales", top.PatternID)
	assert.GreaterOrEqual(t, top.Confidence, 0.5)
	assert.Equal(t, domain.SourceTemplate, top.Source)
}

func TestClassifyTopModelsExtractsCount(t *testing.T) {
	c := newClassifier()

	intents := c.Classify("Quais são os top 5 modelos por vendas?", domain.LangUnknown)
	require.NotEmpty(t, intents)

	top := intents[0]
	assert.Equal(t, "top_n_models", top.PatternID)
	assert.Equal(t, "5", top.Param("n"))
}

func TestClassifyTopModelsDefaultsCount(t *testing.T) {
	c := newClassifier()

	intents := c.Classify("top modelos mais vendidos", domain.LangPortuguese)
	require.NotEmpty(t, intents)
	assert.Equal(t, "top_n_models", intents[0].PatternID)
	assert.Equal(t, "10", intents[0].Param("n"))
}

func TestClassifyEnglish(t *testing.T) {
	c := newClassifier()

	intents := c.Classify("Show total sales by year", domain.LangEnglish)
	require.NotEmpty(t, intents)
	assert.Equal(t, "annual_sales", intents[0].PatternID)
}

func TestClassifyRegionSlot(t *testing.T) {
	c := newClassifier()

	intents := c.Classify("Mostre as vendas na Europa", domain.LangPortuguese)
	require.NotEmpty(t, intents)

	var regionIntent *domain.Intent
	for i := range intents {
		if intents[i].PatternID == "region_sales" {
			regionIntent = &intents[i]
			break
		}
	}
	require.NotNil(t, regionIntent)
	assert.Equal(t, "Europe", regionIntent.Param("region"))
	assert.GreaterOrEqual(t, regionIntent.Confidence, 0.5)
}

func TestClassifyMissingRequiredSlotCapsConfidence(t *testing.T) {
	c := newClassifier()

	floor := config.Default().Classifier.ConfidenceFloor
	intents := c.Classify("Mostre as vendas", domain.LangPortuguese)
	for _, intent := range intents {
		if intent.PatternID == "region_sales" || intent.PatternID == "model_sales" {
			assert.Less(t, intent.Confidence, floor,
				"%s without its slot must stay below the floor", intent.PatternID)
		}
	}
}

func TestClassifyGibberishYieldsNothing(t *testing.T) {
	c := newClassifier()
	assert.Empty(t, c.Classify("florble grumpet xyzzy", domain.LangUnknown))
	assert.Empty(t, c.Classify("", domain.LangUnknown))
	assert.Empty(t, c.Classify("!!! ???", domain.LangUnknown))
}

func TestClassifyConfidenceBounds(t *testing.T) {
	c := newClassifier()

	queries := []string{
		"Mostre as vendas totais por ano",
		"Quais são os top 5 modelos por vendas?",
		"quantos registros temos",
		"preço médio dos carros",
		"show fuel type performance",
		"vendas na Asia em grafico de pizza",
	}
	for _, q := range queries {
		for _, intent := range c.Classify(q, domain.LangUnknown) {
			assert.GreaterOrEqual(t, intent.Confidence, 0.0, q)
			assert.LessOrEqual(t, intent.Confidence, 1.0, q)
		}
	}
}

func TestClassifyOrderedByConfidence(t *testing.T) {
	c := newClassifier()

	intents := c.Classify("Mostre as vendas totais por ano", domain.LangPortuguese)
	for i := 1; i < len(intents); i++ {
		assert.GreaterOrEqual(t, intents[i-1].Confidence, intents[i].Confidence)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := newClassifier()

	query := "Mostre as vendas da serie 3 na Europa em grafico de barras"
	first := c.Classify(query, domain.LangPortuguese)
	for i := 0; i < 20; i++ {
		again := c.Classify(query, domain.LangPortuguese)
		require.Equal(t, first, again)
	}
}

func TestClassifyChartRequestAttached(t *testing.T) {
	c := newClassifier()

	intents := c.Classify("vendas por regiao em grafico de pizza", domain.LangPortuguese)
	require.NotEmpty(t, intents)
	for _, intent := range intents {
		assert.Equal(t, "pie", intent.Param("chart"))
	}
}

func TestClassifyLanguageHintIsPreferenceNotFilter(t *testing.T) {
	c := newClassifier()

	// English text with a Portuguese hint must still classify.
	intents := c.Classify("Show total sales by year", domain.LangPortuguese)
	require.NotEmpty(t, intents)
	assert.Equal(t, "annual_sales", intents[0].PatternID)
}
