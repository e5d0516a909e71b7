package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/pattern"
)

// maxPrintedRows caps the rows rendered for one result. The full set is
// still available via --json.
const maxPrintedRows = 20

// FormatResult renders one pipeline result for the terminal.
func FormatResult(res *domain.PipelineResult) string {
	var b strings.Builder

	b.WriteString(Header("Query"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n", Outcome(res.Success), res.RawText)

	if res.Intent != nil && res.Intent.PatternID != "" {
		fmt.Fprintf(&b, "%s %s %s\n",
			Dim("interpreted as"),
			Bold(res.Intent.PatternID),
			Dim(fmt.Sprintf("(confidence %.2f)", res.Intent.Confidence)))
	} else if res.Intent != nil && res.Intent.Source == domain.SourceGenerated {
		fmt.Fprintf(&b, "%s\n", Dim("interpreted via generation fallback"))
	}

	if res.Plan != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("sql:"), StyleBlue.Render(res.Plan.SQL))
	}

	if !res.Success {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", StyleRed.Render("failed at "+string(res.FailedStage)+":"), res.ErrorDetail)
		return b.String()
	}

	if res.ResultSet != nil && res.ResultSet.RowCount() > 0 {
		b.WriteString("\n")
		b.WriteString(renderResultSet(res.ResultSet))
	}

	b.WriteString("\n")
	b.WriteString(chartLine(res))
	b.WriteString("\n")
	b.WriteString(Dim(timingsLine(res.Timings)))
	b.WriteString("\n")
	return b.String()
}

func renderResultSet(rs *domain.ResultSet) string {
	headers := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		headers[i] = c.Name
	}

	shown := rs.Rows
	if len(shown) > maxPrintedRows {
		shown = shown[:maxPrintedRows]
	}
	rows := make([][]string, len(shown))
	for i, row := range shown {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatCell(v)
		}
		rows[i] = cells
	}

	out := RenderTable(headers, rows)
	if rs.RowCount() > maxPrintedRows {
		out += Dim(fmt.Sprintf("… %d more rows\n", rs.RowCount()-maxPrintedRows))
	}
	return out
}

func chartLine(res *domain.PipelineResult) string {
	if res.NoVisualization || res.Chart == nil {
		return Dim("no chart: single-value answer")
	}
	c := res.Chart
	parts := []string{fmt.Sprintf("chart: %s", Bold(string(c.Family)))}
	if c.X != nil {
		parts = append(parts, fmt.Sprintf("x=%s", c.X.Column))
	}
	if c.Y != nil {
		parts = append(parts, fmt.Sprintf("y=%s", c.Y.Column))
	}
	if c.TopN > 0 {
		parts = append(parts, fmt.Sprintf("top %d", c.TopN))
	}
	line := strings.Join(parts, "  ")
	if c.Warning != "" {
		line += "\n" + StyleYellow.Render("warning: "+c.Warning)
	}
	return line
}

func timingsLine(timings []domain.StageTiming) string {
	if len(timings) == 0 {
		return ""
	}
	parts := make([]string, 0, len(timings))
	for _, t := range timings {
		label := string(t.Stage)
		if t.Attempt > 1 {
			label = fmt.Sprintf("%s#%d", label, t.Attempt)
		}
		parts = append(parts, fmt.Sprintf("%s %s", label, t.Duration.Round(time.Millisecond)))
	}
	return strings.Join(parts, " · ")
}

// FormatHistory renders recent history entries as a table.
func FormatHistory(entries []*domain.PipelineResult) string {
	if len(entries) == 0 {
		return Dim("no history entries") + "\n"
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		patternID := ""
		if e.Intent != nil {
			patternID = e.Intent.PatternID
			if patternID == "" && e.Intent.Source == domain.SourceGenerated {
				patternID = "(generated)"
			}
		}
		outcome := Outcome(e.Success)
		if !e.Success {
			outcome += Dim(" @" + string(e.FailedStage))
		}
		rows[i] = []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(e.RawText, 48),
			patternID,
			outcome,
		}
	}
	return RenderTable([]string{"When", "Query", "Pattern", "Outcome"}, rows)
}

// FormatSchema renders the warehouse schema summary.
func FormatSchema(schema *domain.SchemaSummary) string {
	var b strings.Builder

	b.WriteString(Header("Tables"))
	b.WriteString("\n")
	names := make([]string, 0, len(schema.Tables))
	for name := range schema.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(Bold(name))
		b.WriteString("\n")
		for _, col := range schema.Tables[name] {
			null := ""
			if col.Nullable {
				null = " null"
			}
			fmt.Fprintf(&b, "  %s %s\n", col.Name, Dim(col.DataType+null))
		}
	}

	b.WriteString("\n")
	b.WriteString(Header("Analytics Views"))
	b.WriteString("\n")
	for _, v := range schema.Views {
		fmt.Fprintf(&b, "  %s\n", v)
	}
	return b.String()
}

// FormatPatterns renders the pattern catalog.
func FormatPatterns(defs []pattern.Definition) string {
	rows := make([][]string, len(defs))
	for i, def := range defs {
		var slots []string
		for _, s := range def.Slots {
			name := s.Name
			if s.Required {
				name += "*"
			}
			slots = append(slots, name)
		}
		rows[i] = []string{def.ID, def.Description, strings.Join(slots, ", ")}
	}
	return RenderTable([]string{"Pattern", "Description", "Slots"}, rows)
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return Dim("null")
	case float64:
		return fmt.Sprintf("%.2f", t)
	case float32:
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
