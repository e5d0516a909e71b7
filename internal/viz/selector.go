package viz

import (
	"strings"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
)

// topNBucket is the number of categories kept before the remainder is
// folded into an "Others" bucket, to keep long-tailed bar charts readable.
const topNBucket = 10

// maxBarCategories is the row-count threshold above which a plain bar chart
// switches to the top-N form.
const maxBarCategories = 25

// shape summarizes the structural features of a result set the decision
// table cares about.
type shape struct {
	categorical []int
	numeric     []int
	temporal    []int
	rows        int
	total       int
}

func analyze(rs *domain.ResultSet) shape {
	return shape{
		categorical: rs.ColumnsOfType(domain.TypeCategorical),
		numeric:     rs.ColumnsOfType(domain.TypeNumeric),
		temporal:    rs.ColumnsOfType(domain.TypeTemporal),
		rows:        rs.RowCount(),
		total:       len(rs.Columns),
	}
}

// Select chooses a chart for the result set. It is a pure function of the
// result shape and the intent: identical inputs always produce an identical
// ChartSpec. The second return is false when no visualization applies (a
// scalar answer rendered as text).
func Select(rs *domain.ResultSet, intent *domain.Intent) (*domain.ChartSpec, bool) {
	if rs == nil || len(rs.Columns) == 0 {
		return nil, false
	}
	sh := analyze(rs)

	// An explicitly requested family wins when it fits the result shape.
	// Incompatible requests degrade to the shape rules below, with the
	// degradation recorded on the chart spec rather than failing the request.
	warning := ""
	if requested := requestedFamily(intent); requested != "" {
		if spec := buildIfCompatible(requested, rs, sh, intent); spec != nil {
			return spec, true
		}
		warning = "requested chart type '" + string(requested) + "' is not compatible with the result shape"
	}

	spec, ok := selectByShape(rs, sh, intent)
	if !ok {
		return nil, false
	}
	spec.Warning = warning
	return spec, true
}

// selectByShape is the deterministic decision table, evaluated in order,
// first match wins.
func selectByShape(rs *domain.ResultSet, sh shape, intent *domain.Intent) (*domain.ChartSpec, bool) {
	switch {
	// Single numeric cell: a scalar answer, no chart.
	case sh.rows == 1 && len(sh.numeric) == 1 && len(sh.categorical) == 0 && len(sh.temporal) == 0:
		return nil, false

	// One category against one measure, few rows: ranked bar chart.
	case len(sh.categorical) >= 1 && len(sh.numeric) >= 1 && sh.rows <= maxBarCategories && len(sh.temporal) == 0:
		return barSpec(rs, sh, intent, 0), true

	// A measure over time: line chart, time ascending.
	case len(sh.temporal) >= 1 && len(sh.numeric) >= 1:
		return lineSpec(rs, sh, intent), true

	// Long-tailed category ranking: top-N bar plus an Others bucket.
	case len(sh.categorical) >= 1 && len(sh.numeric) >= 1 && sh.rows > maxBarCategories:
		return barSpec(rs, sh, intent, topNBucket), true

	// Exactly two measures, multiple observations: scatter.
	case len(sh.numeric) == 2 && len(sh.categorical) == 0 && len(sh.temporal) == 0 && sh.rows > 1:
		return scatterSpec(rs, sh, intent), true

	// A correlation-style square numeric matrix: heatmap.
	case squareMatrix(sh):
		return heatmapSpec(rs, intent), true

	default:
		return nil, false
	}
}

// squareMatrix reports whether the set looks like a correlation-style
// numeric matrix: as many rows as numeric columns, at least 2x2.
func squareMatrix(sh shape) bool {
	n := len(sh.numeric)
	return n >= 2 && sh.rows == n && sh.total == n+len(sh.categorical) && len(sh.categorical) <= 1
}

func requestedFamily(intent *domain.Intent) domain.ChartFamily {
	if intent == nil {
		return ""
	}
	family := domain.ChartFamily(intent.Param("chart"))
	if domain.ValidChartFamilies[family] {
		return family
	}
	return ""
}

// buildIfCompatible honors an explicit chart request when the result shape
// structurally supports that family. Returns nil when incompatible.
func buildIfCompatible(family domain.ChartFamily, rs *domain.ResultSet, sh shape, intent *domain.Intent) *domain.ChartSpec {
	switch family {
	case domain.ChartPie:
		// A pie needs exactly one category and one measure.
		if len(sh.categorical) == 1 && len(sh.numeric) == 1 && sh.rows > 0 && sh.rows <= maxBarCategories {
			spec := barSpec(rs, sh, intent, 0)
			spec.Family = domain.ChartPie
			spec.SortDescending = false
			return spec
		}
	case domain.ChartBar:
		if len(sh.categorical) >= 1 && len(sh.numeric) >= 1 {
			n := 0
			if sh.rows > maxBarCategories {
				n = topNBucket
			}
			return barSpec(rs, sh, intent, n)
		}
	case domain.ChartLine, domain.ChartArea:
		if len(sh.temporal) >= 1 && len(sh.numeric) >= 1 {
			spec := lineSpec(rs, sh, intent)
			spec.Family = family
			return spec
		}
	case domain.ChartScatter:
		if len(sh.numeric) >= 2 && sh.rows > 1 {
			return scatterSpec(rs, sh, intent)
		}
	case domain.ChartHeatmap:
		if squareMatrix(sh) {
			return heatmapSpec(rs, intent)
		}
	case domain.ChartHistogram:
		if len(sh.numeric) >= 1 && sh.rows > 1 {
			col := rs.Columns[sh.numeric[0]]
			return &domain.ChartSpec{
				Family: domain.ChartHistogram,
				Title:  title(intent, col.Name),
				X:      &domain.Encoding{Column: col.Name, Type: col.Type},
			}
		}
	case domain.ChartBox:
		if len(sh.categorical) >= 1 && len(sh.numeric) >= 1 {
			spec := barSpec(rs, sh, intent, 0)
			spec.Family = domain.ChartBox
			spec.SortDescending = false
			return spec
		}
	}
	return nil
}

func barSpec(rs *domain.ResultSet, sh shape, intent *domain.Intent, topN int) *domain.ChartSpec {
	x := rs.Columns[sh.categorical[0]]
	y := rs.Columns[sh.numeric[0]]
	return &domain.ChartSpec{
		Family:         domain.ChartBar,
		Title:          title(intent, x.Name+" by "+y.Name),
		X:              &domain.Encoding{Column: x.Name, Type: x.Type},
		Y:              &domain.Encoding{Column: y.Name, Type: y.Type},
		SortDescending: true,
		TopN:           topN,
	}
}

func lineSpec(rs *domain.ResultSet, sh shape, intent *domain.Intent) *domain.ChartSpec {
	x := rs.Columns[sh.temporal[0]]
	y := rs.Columns[sh.numeric[0]]
	return &domain.ChartSpec{
		Family: domain.ChartLine,
		Title:  title(intent, y.Name+" over "+x.Name),
		X:      &domain.Encoding{Column: x.Name, Type: x.Type},
		Y:      &domain.Encoding{Column: y.Name, Type: y.Type},
	}
}

func scatterSpec(rs *domain.ResultSet, sh shape, intent *domain.Intent) *domain.ChartSpec {
	x := rs.Columns[sh.numeric[0]]
	y := rs.Columns[sh.numeric[1]]
	return &domain.ChartSpec{
		Family: domain.ChartScatter,
		Title:  title(intent, x.Name+" vs "+y.Name),
		X:      &domain.Encoding{Column: x.Name, Type: x.Type},
		Y:      &domain.Encoding{Column: y.Name, Type: y.Type},
	}
}

func heatmapSpec(rs *domain.ResultSet, intent *domain.Intent) *domain.ChartSpec {
	return &domain.ChartSpec{
		Family: domain.ChartHeatmap,
		Title:  title(intent, "correlation matrix"),
	}
}

// title derives a human-readable chart title from the pattern id, falling
// back to a column-based description.
func title(intent *domain.Intent, fallback string) string {
	name := fallback
	if intent != nil && intent.PatternID != "" {
		name = intent.PatternID
	}
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
