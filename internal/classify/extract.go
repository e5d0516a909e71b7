package classify

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/pattern"
)

// LookupContext carries the known categorical values used by slot
// extractors. Keys are normalized aliases, values are canonical dataset
// values (e.g. "europa" -> "Europe").
type LookupContext struct {
	Regions map[string]string
	Models  map[string]string
}

// DefaultLookupContext returns the aliases for the BMW sales dataset. In a
// deployment these would be refreshed from the warehouse's distinct values.
func DefaultLookupContext() LookupContext {
	return LookupContext{
		Regions: map[string]string{
			"north america":    "North America",
			"america do norte": "North America",
			"south america":    "South America",
			"america do sul":   "South America",
			"europe":           "Europe",
			"europa":           "Europe",
			"asia":             "Asia",
			"africa":           "Africa",
			"middle east":      "Middle East",
			"oriente medio":    "Middle East",
		},
		Models: map[string]string{
			"serie 3":  "3 Series",
			"series 3": "3 Series",
			"3 series": "3 Series",
			"serie 5":  "5 Series",
			"series 5": "5 Series",
			"5 series": "5 Series",
			"serie 7":  "7 Series",
			"series 7": "7 Series",
			"7 series": "7 Series",
			"x1":       "X1",
			"x3":       "X3",
			"x5":       "X5",
			"x6":       "X6",
			"i3":       "i3",
			"i8":       "i8",
			"m3":       "M3",
			"m5":       "M5",
		},
	}
}

// chartFamilyAliases maps normalized chart keywords (pt and en) to chart
// families, for users who name the chart they want.
var chartFamilyAliases = map[string]domain.ChartFamily{
	"barra": domain.ChartBar, "barras": domain.ChartBar,
	"bar": domain.ChartBar, "bars": domain.ChartBar, "coluna": domain.ChartBar,
	"linha": domain.ChartLine, "linhas": domain.ChartLine, "line": domain.ChartLine,
	"pizza": domain.ChartPie, "torta": domain.ChartPie, "pie": domain.ChartPie,
	"dispersao": domain.ChartScatter, "scatter": domain.ChartScatter,
	"heatmap": domain.ChartHeatmap, "mapa de calor": domain.ChartHeatmap,
	"histograma": domain.ChartHistogram, "histogram": domain.ChartHistogram,
	"area": domain.ChartArea, "boxplot": domain.ChartBox,
}

// chartAliasOrder fixes the probe order: longest alias first, then
// lexicographic, so extraction is deterministic.
var chartAliasOrder = func() []string {
	aliases := make([]string, 0, len(chartFamilyAliases))
	for alias := range chartFamilyAliases {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})
	return aliases
}()

// extractChartFamily finds an explicitly requested chart family in the
// normalized text, or "" if none.
func extractChartFamily(normalized string) domain.ChartFamily {
	for _, alias := range chartAliasOrder {
		if containsTerm(normalized, alias) {
			return chartFamilyAliases[alias]
		}
	}
	return ""
}

// extractSlot runs the type-specific extractor for a slot against the
// normalized text. Returns the canonical value and whether extraction
// succeeded.
func (c *Classifier) extractSlot(slot pattern.Slot, normalized string) (string, bool) {
	switch slot.Type {
	case pattern.SlotInt:
		return extractInt(normalized, 1, 100)
	case pattern.SlotYear:
		return extractInt(normalized, 1990, 2100)
	case pattern.SlotRegion:
		return extractAlias(normalized, c.lookup.Regions)
	case pattern.SlotModel:
		return extractAlias(normalized, c.lookup.Models)
	default:
		return "", false
	}
}

// extractInt returns the first standalone integer in [min, max].
func extractInt(normalized string, min, max int) (string, bool) {
	for _, field := range strings.Fields(normalized) {
		n, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		if n >= min && n <= max {
			return strconv.Itoa(n), true
		}
	}
	return "", false
}

// extractAlias finds the longest alias present in the text and returns its
// canonical value. Longest-first keeps "north america" from losing to a
// shorter overlapping alias.
func extractAlias(normalized string, aliases map[string]string) (string, bool) {
	bestAlias := ""
	bestValue := ""
	for alias, canonical := range aliases {
		if !containsTerm(normalized, alias) {
			continue
		}
		// Length wins; equal lengths break on the alias itself so the
		// result never depends on map order.
		if len(alias) > len(bestAlias) || (len(alias) == len(bestAlias) && alias < bestAlias) {
			bestAlias = alias
			bestValue = canonical
		}
	}
	return bestValue, bestAlias != ""
}
